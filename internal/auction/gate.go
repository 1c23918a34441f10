package auction

import (
	"time"

	model "lot-bidding/internal/models"
)

const (
	DefaultFirstBidDelay = 20 * time.Minute
	DefaultChatGrace     = 60 * time.Minute
)

// Verdict is the result of a permission check. Reason is empty when allowed.
type Verdict struct {
	Allowed bool
	Reason  string
}

func allow() Verdict { return Verdict{Allowed: true} }

func deny(reason string) Verdict { return Verdict{Reason: reason} }

// Subject carries everything the gate needs to judge one user acting on one lot.
// Ban flags are resolved by the caller so the gate stays free of storage.
type Subject struct {
	Lot     model.Lot
	Auction *model.Auction
	User    model.User
	// BannedBySeller is true when the lot's seller banned the user
	BannedBySeller bool
	// BannedByOwner is true when the auction's owner banned the user
	BannedByOwner bool
	Now           time.Time
}

// Gate checks eligibility to bid or chat before any mutation is attempted.
type Gate struct {
	Clock         Clock
	FirstBidDelay time.Duration
	ChatGrace     time.Duration
}

// NewGate returns a gate, falling back to the defaults for zero durations
func NewGate(clock Clock, firstBidDelay, chatGrace time.Duration) Gate {
	if firstBidDelay <= 0 {
		firstBidDelay = DefaultFirstBidDelay
	}
	if chatGrace <= 0 {
		chatGrace = DefaultChatGrace
	}
	return Gate{Clock: clock, FirstBidDelay: firstBidDelay, ChatGrace: chatGrace}
}

// BiddingOpensAt is the earliest time anyone may bid on the lot.
func (g Gate) BiddingOpensAt(lot model.Lot, a *model.Auction) time.Time {
	opens := lot.DateCreated.Add(g.FirstBidDelay)
	if a != nil && a.StartTime.After(opens) {
		opens = a.StartTime
	}
	return opens
}

// CanBid reports the first failing bid condition, in a fixed order.
func (g Gate) CanBid(s Subject) Verdict {
	lot := s.Lot
	switch {
	case lot.Sold() || lot.ClosedAt != nil || g.Clock.Ended(lot, s.Now):
		return deny("Bidding on this lot has ended")
	case lot.Banned:
		return deny("This lot has been removed")
	case lot.Deactivated:
		return deny("This lot has been deactivated by its seller")
	case lot.SellerID == s.User.UserID:
		return deny("You can't bid on your own lot")
	case s.Now.Before(g.BiddingOpensAt(lot, s.Auction)):
		return deny("This lot was just added; bidding opens at " + g.BiddingOpensAt(lot, s.Auction).UTC().Format(time.RFC3339))
	case s.BannedBySeller:
		return deny("The seller has banned you from bidding on their lots")
	case s.BannedByOwner:
		return deny("The auction's creator has banned you from bidding in this auction")
	}
	return allow()
}

// CanChat reports the first failing chat condition, in a fixed order.
func (g Gate) CanChat(s Subject) Verdict {
	lot := s.Lot
	switch {
	case !lot.ChatEnabled:
		return deny("Chat is disabled for this lot")
	case s.Auction != nil && !s.Auction.ChatEnabled:
		return deny("Chat is disabled for this auction")
	case s.User.ChatSuspendedUntil != nil && s.Now.Before(*s.User.ChatSuspendedUntil):
		return deny("You've been suspended from chatting")
	case s.Now.After(g.Clock.CalculatedEnd(lot, s.Now).Add(g.ChatGrace)):
		return deny("Chat on this lot has closed")
	}
	return allow()
}
