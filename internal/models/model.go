package models

import "time"

// User represents a participant in the auction
type User struct {
	UserID             string     `json:"user_id" gorm:"primaryKey;type:varchar(64)"`
	Username           string     `json:"username" gorm:"type:varchar(150);not null"`
	ChatSuspendedUntil *time.Time `json:"chat_suspended_until,omitempty" gorm:"type:timestamptz"`
}

func (User) TableName() string {
	return "users"
}

// Auction groups lots under one owner and schedule
type Auction struct {
	AuctionID   string    `json:"auction_id" gorm:"primaryKey;type:varchar(64)"`
	OwnerID     string    `json:"owner_id" gorm:"type:varchar(64);not null;index"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	StartTime   time.Time `json:"start_time" gorm:"type:timestamptz;not null"`
	ChatEnabled bool      `json:"chat_enabled" gorm:"not null;default:true"`
}

func (Auction) TableName() string {
	return "auctions"
}

// Lot represents an auctionable item.
// WinnerID and WinningPrice are set together, once, when the lot is sold.
type Lot struct {
	LotID        string     `json:"lot_id" gorm:"primaryKey;type:varchar(64)"`
	AuctionID    *string    `json:"auction_id,omitempty" gorm:"type:varchar(64);index"`
	SellerID     string     `json:"seller_id" gorm:"type:varchar(64);not null;index"`
	Title        string     `json:"title" gorm:"type:varchar(255);not null"`
	ReservePrice int64      `json:"reserve_price" gorm:"not null;default:1"`
	BuyNowPrice  *int64     `json:"buy_now_price,omitempty"`
	DateCreated  time.Time  `json:"date_created" gorm:"type:timestamptz;autoCreateTime"`
	ScheduledEnd *time.Time `json:"scheduled_end,omitempty" gorm:"type:timestamptz"`
	DateEnd      *time.Time `json:"date_end,omitempty" gorm:"type:timestamptz;index"`
	SealedBid    bool       `json:"sealed_bid" gorm:"not null;default:false"`
	DynamicEnd   bool       `json:"dynamic_end" gorm:"not null;default:true"`
	ChatEnabled  bool       `json:"chat_enabled" gorm:"not null;default:true"`
	Banned       bool       `json:"banned" gorm:"not null;default:false"`
	Deactivated  bool       `json:"deactivated" gorm:"not null;default:false"`
	WinnerID     *string    `json:"winner_id,omitempty" gorm:"type:varchar(64);index"`
	WinningPrice *int64     `json:"winning_price,omitempty"`
	ClosedAt     *time.Time `json:"closed_at,omitempty" gorm:"type:timestamptz;index"`
}

func (Lot) TableName() string {
	return "lots"
}

// Sold reports whether a winner has been recorded
func (l Lot) Sold() bool {
	return l.WinnerID != nil
}

// Bid is one bidder's standing proxy commitment on a lot.
// There is at most one row per (LotID, UserID).
type Bid struct {
	BidID       string    `json:"bid_id" gorm:"primaryKey;type:varchar(64)"`
	LotID       string    `json:"lot_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_bid_lot_user"`
	UserID      string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_bid_lot_user;index"`
	Amount      int64     `json:"amount" gorm:"not null"`
	LastBidTime time.Time `json:"last_bid_time" gorm:"type:timestamptz;not null"`
	WasHighBid  bool      `json:"was_high_bid" gorm:"not null;default:false"`
}

func (Bid) TableName() string {
	return "bids"
}

// LotHistory is an append-only chat or price-change entry
type LotHistory struct {
	HistoryID        string    `json:"history_id" gorm:"primaryKey;type:varchar(64)"`
	LotID            string    `json:"lot_id" gorm:"type:varchar(64);not null;index:idx_history_lot_time"`
	UserID           *string   `json:"user_id,omitempty" gorm:"type:varchar(64)"`
	Message          string    `json:"message" gorm:"type:text;not null"`
	Timestamp        time.Time `json:"timestamp" gorm:"type:timestamptz;not null;index:idx_history_lot_time"`
	ChangedPrice     bool      `json:"changed_price" gorm:"not null;default:false"`
	CurrentPrice     *int64    `json:"current_price,omitempty"`
	Seen             bool      `json:"seen" gorm:"not null;default:false"`
	NotificationSent bool      `json:"notification_sent" gorm:"not null;default:false"`
}

func (LotHistory) TableName() string {
	return "lot_history"
}

// UserBan forbids BannedUserID from bidding on lots or auctions owned by UserID
type UserBan struct {
	BanID        string    `json:"ban_id" gorm:"primaryKey;type:varchar(64)"`
	UserID       string    `json:"user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_ban_pair"`
	BannedUserID string    `json:"banned_user_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_ban_pair"`
	CreatedAt    time.Time `json:"created_at" gorm:"type:timestamptz;autoCreateTime"`
}

func (UserBan) TableName() string {
	return "user_bans"
}
