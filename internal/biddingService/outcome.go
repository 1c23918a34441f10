package bidding

import (
	"context"
	"time"
)

// Kind tags what happened as a result of a bid, chat or close
type Kind int

const (
	KindError Kind = iota + 1
	KindInfo
	KindNewHighBid
	KindNewHighBidder
	KindLotEndWinner
	KindChat
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "ERROR"
	case KindInfo:
		return "INFO"
	case KindNewHighBid:
		return "NEW_HIGH_BID"
	case KindNewHighBidder:
		return "NEW_HIGH_BIDDER"
	case KindLotEndWinner:
		return "LOT_END_WINNER"
	case KindChat:
		return "CHAT"
	default:
		return "UNKNOWN"
	}
}

// Audience selects who receives an outcome
type Audience int

const (
	// AudienceBidder delivers only to the acting user's private channel for the lot
	AudienceBidder Audience = iota + 1
	// AudienceEveryone delivers to every viewer of the lot
	AudienceEveryone
)

// Outcome is the disposition of one bidding, chat or closing action.
// Every call into the service yields one, including rejections.
type Outcome struct {
	Kind     Kind
	Audience Audience
	LotID    string
	// UserID and Username identify the acting user
	UserID   string
	Username string
	// HighBidderID is empty when unknown or hidden
	HighBidderID string
	Price        int64
	Message      string
	// EndTime is set when the lot's deadline moved or the lot closed
	EndTime *time.Time
	// OutbidUserID is the dethroned leader on a NEW_HIGH_BIDDER outcome
	OutbidUserID string
	// HistoryID is the history row the outcome wrote, if any
	HistoryID string
	At        time.Time
}

// Accepted reports whether the action went through
func (o Outcome) Accepted() bool {
	return o.Kind != KindError
}

// Public reports whether the outcome goes to every viewer of the lot
func (o Outcome) Public() bool {
	return o.Audience == AudienceEveryone
}

// ChangesPrice reports whether the outcome moved the lot's recorded price
func (o Outcome) ChangesPrice() bool {
	switch o.Kind {
	case KindNewHighBid, KindNewHighBidder, KindLotEndWinner:
		return true
	case KindError, KindInfo, KindChat:
		return false
	}
	return false
}

// Publisher delivers outcomes to connected viewers
type Publisher interface {
	Publish(ctx context.Context, o Outcome)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Outcome) {}
