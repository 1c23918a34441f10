// Package broadcast fans bidding outcomes out to everyone watching a lot.
// Public messages go to the whole room; private ones only reach the acting
// user's connections on that lot. Delivery is at-most-once: a client whose
// buffer is full simply misses the message.
package broadcast

import (
	"time"

	bidding "lot-bidding/internal/biddingService"
	model "lot-bidding/internal/models"
)

// Message is the JSON frame written to websocket clients
type Message struct {
	ID           string     `json:"id,omitempty"`
	Type         string     `json:"type"`
	LotID        string     `json:"lot_id"`
	Message      string     `json:"message,omitempty"`
	UserID       string     `json:"user_id,omitempty"`
	Username     string     `json:"username,omitempty"`
	HighBidderID string     `json:"high_bidder_id,omitempty"`
	Price        int64      `json:"price,omitempty"`
	End          *time.Time `json:"end,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
	Replay       bool       `json:"replay,omitempty"`
}

// Envelope is what travels through a Layer. A non-empty Recipient limits
// delivery to that user's connections on the lot.
type Envelope struct {
	LotID     string  `json:"lot_id"`
	Recipient string  `json:"recipient,omitempty"`
	Message   Message `json:"message"`
}

// FromOutcome converts a service outcome into a frame
func FromOutcome(o bidding.Outcome) Message {
	return Message{
		ID:           o.HistoryID,
		Type:         o.Kind.String(),
		LotID:        o.LotID,
		Message:      o.Message,
		UserID:       o.UserID,
		Username:     o.Username,
		HighBidderID: o.HighBidderID,
		Price:        o.Price,
		End:          o.EndTime,
		Timestamp:    o.At,
	}
}

// FromHistory converts a stored history row into a replay frame
func FromHistory(h model.LotHistory) Message {
	m := Message{
		ID:        h.HistoryID,
		Type:      bidding.KindInfo.String(),
		LotID:     h.LotID,
		Message:   h.Message,
		Timestamp: h.Timestamp,
		Replay:    true,
	}
	if h.UserID != nil {
		m.Type = bidding.KindChat.String()
		m.UserID = *h.UserID
	}
	if h.CurrentPrice != nil {
		m.Price = *h.CurrentPrice
	}
	return m
}

// envelopeFor wraps an outcome for the layer, addressing private outcomes to the actor
func envelopeFor(o bidding.Outcome) (Envelope, bool) {
	env := Envelope{LotID: o.LotID, Message: FromOutcome(o)}
	if o.Public() {
		return env, true
	}
	if o.UserID == "" {
		return Envelope{}, false
	}
	env.Recipient = o.UserID
	return env, true
}
