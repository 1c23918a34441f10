package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"lot-bidding/internal/biddingerrors"
	model "lot-bidding/internal/models"
)

// AuctionDB defines the storage interface consumed by the bidding engine
type AuctionDB interface {
	// InTx runs fn as one unit of work: when fn returns an error every write
	// it made through tx is undone. Nested calls join the outer unit.
	InTx(ctx context.Context, fn func(tx AuctionDB) error) error
	// LockLot reads a lot and holds it against concurrent writers until the
	// surrounding unit of work ends
	LockLot(ctx context.Context, lotID string) (model.Lot, error)

	GetLot(ctx context.Context, lotID string) (model.Lot, error)
	SaveLot(ctx context.Context, lot model.Lot) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	GetUser(ctx context.Context, userID string) (model.User, error)
	HasBan(ctx context.Context, ownerID, userID string) (bool, error)

	GetBidsByLot(ctx context.Context, lotID string) ([]model.Bid, error)
	GetBid(ctx context.Context, lotID, userID string) (model.Bid, error)
	UpsertBid(ctx context.Context, bid model.Bid) error
	GetLotsByUser(ctx context.Context, userID string) ([]model.Lot, error)

	AddHistory(ctx context.Context, entry model.LotHistory) error
	GetRecentHistory(ctx context.Context, lotID string, limit int) ([]model.LotHistory, error)
	MarkHistorySeen(ctx context.Context, lotID string) (int64, error)

	ListLotsPendingClose(ctx context.Context, now time.Time, limit int) ([]model.Lot, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	lots     map[string]model.Lot
	auctions map[string]model.Auction
	users    map[string]model.User
	bans     map[string]map[string]struct{}  // key: ownerID -> banned userIDs
	bids     map[string]map[string]model.Bid // key: lotID -> userID -> bid
	userLots map[string][]string             // key: userID -> lotIDs the user has bid on
	history  map[string][]model.LotHistory   // key: lotID -> entries in append order
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		lots:     make(map[string]model.Lot),
		auctions: make(map[string]model.Auction),
		users:    make(map[string]model.User),
		bans:     make(map[string]map[string]struct{}),
		bids:     make(map[string]map[string]model.Bid),
		userLots: make(map[string][]string),
		history:  make(map[string][]model.LotHistory),
	}
}

// GetLot returns a lot by id
func (r *MemoryRepo) GetLot(_ context.Context, lotID string) (model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lot, ok := r.lots[lotID]
	if !ok {
		return model.Lot{}, fmt.Errorf("get lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	return lot, nil
}

// LockLot reads a lot. Writers to one lot are already serialized by the
// caller in process, so there is nothing more to hold.
func (r *MemoryRepo) LockLot(ctx context.Context, lotID string) (model.Lot, error) {
	return r.GetLot(ctx, lotID)
}

// SaveLot overwrites an existing lot
func (r *MemoryRepo) SaveLot(_ context.Context, lot model.Lot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saveLot(lot)
}

func (r *MemoryRepo) saveLot(lot model.Lot) error {
	if _, ok := r.lots[lot.LotID]; !ok {
		return fmt.Errorf("save lot %s: %w", lot.LotID, biddingerrors.ErrLotNotFound)
	}
	r.lots[lot.LotID] = lot
	return nil
}

// GetAuction returns an auction by id
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return a, nil
}

// GetUser returns a user by id
func (r *MemoryRepo) GetUser(_ context.Context, userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, biddingerrors.ErrUserNotFound)
	}
	return u, nil
}

// HasBan reports whether ownerID has banned userID
func (r *MemoryRepo) HasBan(_ context.Context, ownerID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, banned := r.bans[ownerID][userID]
	return banned, nil
}

// GetBidsByLot returns all bids for a lot ordered by last bid time
func (r *MemoryRepo) GetBidsByLot(_ context.Context, lotID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byUser, ok := r.bids[lotID]
	if !ok || len(byUser) == 0 {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	bids := make([]model.Bid, 0, len(byUser))
	for _, b := range byUser {
		bids = append(bids, b)
	}
	sort.Slice(bids, func(i, j int) bool {
		if bids[i].LastBidTime.Equal(bids[j].LastBidTime) {
			return bids[i].UserID < bids[j].UserID
		}
		return bids[i].LastBidTime.Before(bids[j].LastBidTime)
	})
	return bids, nil
}

// GetBid returns the bid a user holds on a lot
func (r *MemoryRepo) GetBid(_ context.Context, lotID, userID string) (model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bids[lotID][userID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid on lot %s by user %s: %w", lotID, userID, biddingerrors.ErrBidNotFound)
	}
	return b, nil
}

// UpsertBid inserts or replaces the single bid row for (lot, user)
func (r *MemoryRepo) UpsertBid(_ context.Context, bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.upsertBid(bid)
}

func (r *MemoryRepo) upsertBid(bid model.Bid) error {
	if _, ok := r.lots[bid.LotID]; !ok {
		return fmt.Errorf("upsert bid for lot %s: %w", bid.LotID, biddingerrors.ErrLotNotFound)
	}

	byUser, ok := r.bids[bid.LotID]
	if !ok {
		byUser = make(map[string]model.Bid)
		r.bids[bid.LotID] = byUser
	}
	if existing, ok := byUser[bid.UserID]; ok {
		bid.BidID = existing.BidID
		byUser[bid.UserID] = bid
		return nil
	}
	byUser[bid.UserID] = bid

	for _, id := range r.userLots[bid.UserID] {
		if id == bid.LotID {
			return nil
		}
	}
	r.userLots[bid.UserID] = append(r.userLots[bid.UserID], bid.LotID)

	return nil
}

// GetLotsByUser returns all lots a user has bid on
func (r *MemoryRepo) GetLotsByUser(_ context.Context, userID string) ([]model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lotIDs, ok := r.userLots[userID]
	if !ok || len(lotIDs) == 0 {
		return nil, fmt.Errorf("get lots for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}

	lots := make([]model.Lot, 0, len(lotIDs))
	for _, id := range lotIDs {
		if lot, exists := r.lots[id]; exists {
			lots = append(lots, lot)
		}
	}
	return lots, nil
}

// AddHistory appends a history entry to its lot
func (r *MemoryRepo) AddHistory(_ context.Context, entry model.LotHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.addHistory(entry)
}

func (r *MemoryRepo) addHistory(entry model.LotHistory) error {
	if _, ok := r.lots[entry.LotID]; !ok {
		return fmt.Errorf("add history for lot %s: %w", entry.LotID, biddingerrors.ErrLotNotFound)
	}
	r.history[entry.LotID] = append(r.history[entry.LotID], entry)
	return nil
}

// GetRecentHistory returns up to limit of the newest entries, oldest first
func (r *MemoryRepo) GetRecentHistory(_ context.Context, lotID string, limit int) ([]model.LotHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.history[lotID]
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return append([]model.LotHistory(nil), entries...), nil
}

// MarkHistorySeen flags every unseen entry of a lot as seen and returns how many changed
func (r *MemoryRepo) MarkHistorySeen(_ context.Context, lotID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markHistorySeen(lotID), nil
}

func (r *MemoryRepo) markHistorySeen(lotID string) int64 {
	var n int64
	entries := r.history[lotID]
	for i := range entries {
		if !entries[i].Seen {
			entries[i].Seen = true
			n++
		}
	}
	return n
}

// ListLotsPendingClose returns lots whose deadline has passed without a recorded close
func (r *MemoryRepo) ListLotsPendingClose(_ context.Context, now time.Time, limit int) ([]model.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lots []model.Lot
	for _, lot := range r.lots {
		if lot.WinnerID != nil || lot.ClosedAt != nil || lot.DateEnd == nil {
			continue
		}
		if lot.DateEnd.Before(now) {
			lots = append(lots, lot)
		}
	}
	sort.Slice(lots, func(i, j int) bool { return lots[i].DateEnd.Before(*lots[j].DateEnd) })
	if limit > 0 && len(lots) > limit {
		lots = lots[:limit]
	}
	return lots, nil
}

// AddLot adds a lot to the repository. Used for seeding and tests.
func (r *MemoryRepo) AddLot(lot model.Lot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lots[lot.LotID] = lot
}

// AddAuction adds an auction to the repository. Used for seeding and tests.
func (r *MemoryRepo) AddAuction(a model.Auction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.auctions[a.AuctionID] = a
}

// AddUser adds a user to the repository. Used for seeding and tests.
func (r *MemoryRepo) AddUser(u model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UserID] = u
}

// AddBan records that ownerID bans userID. Used for seeding and tests.
func (r *MemoryRepo) AddBan(ownerID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bans[ownerID] == nil {
		r.bans[ownerID] = make(map[string]struct{})
	}
	r.bans[ownerID][userID] = struct{}{}
}
