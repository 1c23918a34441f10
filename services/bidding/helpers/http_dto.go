package helpers

import (
	"encoding/json"
	"time"

	bidding "lot-bidding/internal/biddingService"
	model "lot-bidding/internal/models"
)

// Request/Response DTOs

// PlaceBidRequest carries the amount as a JSON number so fractional or
// oversized values can be rejected instead of silently truncated
type PlaceBidRequest struct {
	Amount json.Number `json:"amount" binding:"required"`
}

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type OutcomeResponse struct {
	Type         string  `json:"type"`
	LotID        string  `json:"lot_id"`
	Accepted     bool    `json:"accepted"`
	Message      string  `json:"message"`
	HighBidderID string  `json:"high_bidder_id,omitempty"`
	Price        int64   `json:"price"`
	End          *string `json:"end,omitempty"`
	Timestamp    string  `json:"timestamp"`
}

type HistoryEntryResponse struct {
	UserID       *string `json:"user_id,omitempty"`
	Message      string  `json:"message"`
	Timestamp    string  `json:"timestamp"`
	ChangedPrice bool    `json:"changed_price"`
	CurrentPrice *int64  `json:"current_price,omitempty"`
}

type LotResponse struct {
	LotID        string  `json:"lot_id"`
	Title        string  `json:"title"`
	SellerID     string  `json:"seller_id"`
	ReservePrice int64   `json:"reserve_price"`
	BuyNowPrice  *int64  `json:"buy_now_price,omitempty"`
	SealedBid    bool    `json:"sealed_bid"`
	DateEnd      *string `json:"date_end,omitempty"`
	WinnerID     *string `json:"winner_id,omitempty"`
	WinningPrice *int64  `json:"winning_price,omitempty"`
}

// WSClientMessage is one frame from a websocket client: either a chat
// message or a bid
type WSClientMessage struct {
	Message *string     `json:"message,omitempty"`
	Bid     json.Number `json:"bid,omitempty"`
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}

func NewOutcomeResponse(o bidding.Outcome) OutcomeResponse {
	return OutcomeResponse{
		Type:         o.Kind.String(),
		LotID:        o.LotID,
		Accepted:     o.Accepted(),
		Message:      o.Message,
		HighBidderID: o.HighBidderID,
		Price:        o.Price,
		End:          formatTime(o.EndTime),
		Timestamp:    o.At.UTC().Format(time.RFC3339),
	}
}

func NewHistoryResponse(entries []model.LotHistory) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{
			UserID:       e.UserID,
			Message:      e.Message,
			Timestamp:    e.Timestamp.UTC().Format(time.RFC3339),
			ChangedPrice: e.ChangedPrice,
			CurrentPrice: e.CurrentPrice,
		})
	}
	return out
}

func NewLotsResponse(lots []model.Lot) []LotResponse {
	out := make([]LotResponse, 0, len(lots))
	for _, l := range lots {
		out = append(out, LotResponse{
			LotID:        l.LotID,
			Title:        l.Title,
			SellerID:     l.SellerID,
			ReservePrice: l.ReservePrice,
			BuyNowPrice:  l.BuyNowPrice,
			SealedBid:    l.SealedBid,
			DateEnd:      formatTime(l.DateEnd),
			WinnerID:     l.WinnerID,
			WinningPrice: l.WinningPrice,
		})
	}
	return out
}
