package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lot-bidding/internal/biddingerrors"
	model "lot-bidding/internal/models"
)

// GormRepo is the PostgreSQL-backed implementation of AuctionDB
type GormRepo struct {
	db *gorm.DB
}

// NewGormRepo wraps an open gorm connection
func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func notFound(err error, sentinel error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, sentinel)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// InTx runs fn in a database transaction. A repo already bound to a
// transaction nests through a savepoint.
func (r *GormRepo) InTx(ctx context.Context, fn func(tx AuctionDB) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepo{db: tx})
	})
}

// LockLot reads the lot with SELECT ... FOR UPDATE, so every process
// bidding on it queues behind the current transaction
func (r *GormRepo) LockLot(ctx context.Context, lotID string) (model.Lot, error) {
	var lot model.Lot
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("lot_id = ?", lotID).
		First(&lot).Error
	if err != nil {
		return model.Lot{}, notFound(err, biddingerrors.ErrLotNotFound, "lock lot %s", lotID)
	}
	return lot, nil
}

func (r *GormRepo) GetLot(ctx context.Context, lotID string) (model.Lot, error) {
	var lot model.Lot
	if err := r.db.WithContext(ctx).Where("lot_id = ?", lotID).First(&lot).Error; err != nil {
		return model.Lot{}, notFound(err, biddingerrors.ErrLotNotFound, "get lot %s", lotID)
	}
	return lot, nil
}

func (r *GormRepo) SaveLot(ctx context.Context, lot model.Lot) error {
	res := r.db.WithContext(ctx).Model(&lot).
		Select("date_end", "winner_id", "winning_price", "closed_at").
		Updates(&lot)
	if res.Error != nil {
		return fmt.Errorf("save lot %s: %w", lot.LotID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("save lot %s: %w", lot.LotID, biddingerrors.ErrLotNotFound)
	}
	return nil
}

func (r *GormRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var a model.Auction
	if err := r.db.WithContext(ctx).Where("auction_id = ?", auctionID).First(&a).Error; err != nil {
		return model.Auction{}, notFound(err, biddingerrors.ErrAuctionNotFound, "get auction %s", auctionID)
	}
	return a, nil
}

func (r *GormRepo) GetUser(ctx context.Context, userID string) (model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		return model.User{}, notFound(err, biddingerrors.ErrUserNotFound, "get user %s", userID)
	}
	return u, nil
}

func (r *GormRepo) HasBan(ctx context.Context, ownerID, userID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserBan{}).
		Where("user_id = ? AND banned_user_id = ?", ownerID, userID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check ban %s -> %s: %w", ownerID, userID, err)
	}
	return n > 0, nil
}

func (r *GormRepo) GetBidsByLot(ctx context.Context, lotID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := r.db.WithContext(ctx).
		Where("lot_id = ?", lotID).
		Order("last_bid_time asc").
		Find(&bids).Error
	if err != nil {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	return bids, nil
}

func (r *GormRepo) GetBid(ctx context.Context, lotID, userID string) (model.Bid, error) {
	var b model.Bid
	err := r.db.WithContext(ctx).Where("lot_id = ? AND user_id = ?", lotID, userID).First(&b).Error
	if err != nil {
		return model.Bid{}, notFound(err, biddingerrors.ErrBidNotFound, "get bid on lot %s by user %s", lotID, userID)
	}
	return b, nil
}

// UpsertBid relies on the (lot_id, user_id) unique index so a bidder never holds two rows
func (r *GormRepo) UpsertBid(ctx context.Context, bid model.Bid) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lot_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "last_bid_time", "was_high_bid"}),
	}).Create(&bid).Error
	if err != nil {
		return fmt.Errorf("upsert bid for lot %s: %w", bid.LotID, err)
	}
	return nil
}

func (r *GormRepo) GetLotsByUser(ctx context.Context, userID string) ([]model.Lot, error) {
	var lots []model.Lot
	err := r.db.WithContext(ctx).
		Joins("JOIN bids ON bids.lot_id = lots.lot_id").
		Where("bids.user_id = ?", userID).
		Order("bids.last_bid_time asc").
		Find(&lots).Error
	if err != nil {
		return nil, fmt.Errorf("get lots for user %s: %w", userID, err)
	}
	if len(lots) == 0 {
		return nil, fmt.Errorf("get lots for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}
	return lots, nil
}

func (r *GormRepo) AddHistory(ctx context.Context, entry model.LotHistory) error {
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("add history for lot %s: %w", entry.LotID, err)
	}
	return nil
}

func (r *GormRepo) GetRecentHistory(ctx context.Context, lotID string, limit int) ([]model.LotHistory, error) {
	var entries []model.LotHistory
	q := r.db.WithContext(ctx).Where("lot_id = ?", lotID).Order("timestamp desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("get history for lot %s: %w", lotID, err)
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

func (r *GormRepo) MarkHistorySeen(ctx context.Context, lotID string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.LotHistory{}).
		Where("lot_id = ? AND seen = ?", lotID, false).
		Update("seen", true)
	if res.Error != nil {
		return 0, fmt.Errorf("mark history seen for lot %s: %w", lotID, res.Error)
	}
	return res.RowsAffected, nil
}

func (r *GormRepo) ListLotsPendingClose(ctx context.Context, now time.Time, limit int) ([]model.Lot, error) {
	var lots []model.Lot
	q := r.db.WithContext(ctx).
		Where("winner_id IS NULL").
		Where("closed_at IS NULL").
		Where("date_end IS NOT NULL AND date_end < ?", now).
		Order("date_end asc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("list lots pending close: %w", err)
	}
	return lots, nil
}
