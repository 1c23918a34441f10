package bidding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lot-bidding/internal/auction"
	"lot-bidding/internal/biddingerrors"
	model "lot-bidding/internal/models"
	"lot-bidding/internal/notify"
	"lot-bidding/internal/repository"
	"lot-bidding/utils"
)

const maxChatLength = 1000

// errDiscard rolls back a unit of work that ended in a rejection
var errDiscard = errors.New("discard rejected bid")

// BiddingService runs bids, chat and lot closing against the ledger.
// Every mutation of a lot happens inside that lot's exclusion scope, so
// outcomes and history rows for one lot are produced in FIFO order. The
// scope is the in-process lot lock plus the row lock LockLot takes inside
// the repository transaction, which holds across processes.
type BiddingService struct {
	repo      repository.AuctionDB
	clock     auction.Clock
	gate      auction.Gate
	publisher Publisher
	outbox    notify.Outbox
	now       func() time.Time
	locks     *lotLocks
}

// Option customises a BiddingService
type Option func(*BiddingService)

func WithClock(c auction.Clock) Option { return func(s *BiddingService) { s.clock = c } }

func WithGate(g auction.Gate) Option { return func(s *BiddingService) { s.gate = g } }

func WithPublisher(p Publisher) Option { return func(s *BiddingService) { s.publisher = p } }

func WithOutbox(o notify.Outbox) Option { return func(s *BiddingService) { s.outbox = o } }

// WithNow replaces the wall clock, for tests
func WithNow(now func() time.Time) Option { return func(s *BiddingService) { s.now = now } }

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	clock := auction.NewClock(0, 0)
	s := &BiddingService{
		repo:      repo,
		clock:     clock,
		gate:      auction.NewGate(clock, 0, 0),
		publisher: nopPublisher{},
		now:       func() time.Time { return time.Now().UTC() },
		locks:     newLotLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetPublisher attaches the broadcaster after construction
func (s *BiddingService) SetPublisher(p Publisher) {
	if p == nil {
		p = nopPublisher{}
	}
	s.publisher = p
}

// PlaceBid runs one bid through the permission gate and the bid processor.
// Rejections come back as KindError outcomes; the error return is reserved
// for missing records and storage faults. Nothing is written or broadcast
// unless every write of the bid succeeds.
func (s *BiddingService) PlaceBid(ctx context.Context, lotID, userID string, amount int64) (Outcome, error) {
	if lotID == "" {
		return Outcome{}, fmt.Errorf("service: %w - missing lotID", biddingerrors.ErrInvalidBid)
	}
	if userID == "" {
		return s.reject(ctx, lotID, "", "You must be signed in to bid"), nil
	}
	if amount <= 0 {
		return s.reject(ctx, lotID, userID, "Bid amount must be a positive whole number"), nil
	}

	unlock := s.locks.lock(lotID)
	defer unlock()

	now := s.now()
	var outs []Outcome
	err := s.repo.InTx(ctx, func(tx repository.AuctionDB) error {
		lot, user, subject, err := s.load(ctx, tx, lotID, userID, now)
		if err != nil {
			return err
		}
		if v := s.gate.CanBid(subject); !v.Allowed {
			outs = []Outcome{rejection(lotID, userID, v.Reason, 0, now)}
			return nil
		}

		outs, err = s.processBid(ctx, tx, lot, user, amount, now)
		if err != nil {
			return fmt.Errorf("service: failed to process bid on lot %s by user %s: %w", lotID, userID, err)
		}
		if !outs[0].Accepted() {
			return errDiscard
		}
		return nil
	})
	if err != nil && !errors.Is(err, errDiscard) {
		return Outcome{}, err
	}

	for _, o := range outs {
		s.publisher.Publish(ctx, o)
	}
	if outs[0].OutbidUserID != "" {
		s.queueOutbid(ctx, outs[0])
	}
	return outs[0], nil
}

// processBid applies one bid to the lot's ledger. The first outcome goes
// back to the bidder; all of them are broadcast once the writes commit.
func (s *BiddingService) processBid(ctx context.Context, tx repository.AuctionDB, lot model.Lot, user model.User, amount int64, now time.Time) ([]Outcome, error) {
	bids, err := s.ledger(ctx, tx, lot.LotID)
	if err != nil {
		return nil, err
	}
	end := s.clock.CalculatedEnd(lot, now)
	before := auction.Resolve(lot, bids, end)

	bid, hasExisting := findBid(bids, user.UserID)
	if !hasExisting {
		bid = model.Bid{BidID: utils.GenerateID(), LotID: lot.LotID, UserID: user.UserID}
	}

	if lot.SealedBid {
		bid.Amount = amount
		bid.LastBidTime = now
		bid.WasHighBid = true
		if err := tx.UpsertBid(ctx, bid); err != nil {
			return nil, err
		}
		return []Outcome{{
			Kind:     KindInfo,
			Audience: AudienceBidder,
			LotID:    lot.LotID,
			UserID:   user.UserID,
			Username: user.Username,
			Price:    amount,
			Message:  fmt.Sprintf("Bid of $%d placed. You can change it any time until bidding ends", amount),
			At:       now,
		}}, nil
	}

	if hasExisting && amount <= bid.Amount {
		return []Outcome{rejection(lot.LotID, user.UserID, fmt.Sprintf("Bid more than your proxy bid of $%d", bid.Amount), before.Price, now)}, nil
	}
	if before.HasLeader() && before.HighBidderID != user.UserID && amount <= before.Price {
		return []Outcome{rejection(lot.LotID, user.UserID, fmt.Sprintf("You can't bid less than $%d", before.Price+1), before.Price, now)}, nil
	}
	if !before.HasLeader() && amount < lot.ReservePrice {
		return []Outcome{rejection(lot.LotID, user.UserID, fmt.Sprintf("You can't bid less than $%d", lot.ReservePrice), before.Price, now)}, nil
	}

	buyNow := lot.BuyNowPrice != nil && !before.HasLeader() && amount >= *lot.BuyNowPrice

	bid.Amount = amount
	bid.LastBidTime = now
	if buyNow {
		bid.WasHighBid = true
	}
	if err := tx.UpsertBid(ctx, bid); err != nil {
		return nil, err
	}

	if buyNow {
		out, err := s.sellNow(ctx, tx, lot, user, now)
		if err != nil {
			return nil, err
		}
		return []Outcome{out}, nil
	}

	bids = replaceBid(bids, bid)
	after := auction.Resolve(lot, bids, end)

	out := Outcome{
		Audience:     AudienceEveryone,
		LotID:        lot.LotID,
		UserID:       user.UserID,
		Username:     user.Username,
		HighBidderID: after.HighBidderID,
		Price:        after.Price,
		At:           now,
	}

	var followUp []Outcome
	switch {
	case !before.HasLeader() && after.HighBidderID == user.UserID:
		out.Kind = KindNewHighBidder
		out.Message = fmt.Sprintf("%s has placed the first bid on this lot", user.Username)
	case before.HighBidderID == user.UserID && after.HighBidderID == user.UserID:
		raised := Outcome{
			Kind:         KindInfo,
			Audience:     AudienceBidder,
			LotID:        lot.LotID,
			UserID:       user.UserID,
			Username:     user.Username,
			HighBidderID: after.HighBidderID,
			Price:        after.Price,
			Message:      fmt.Sprintf("You've raised your proxy bid to $%d", amount),
			At:           now,
		}
		if after.Price <= before.Price {
			return []Outcome{raised}, nil
		}
		// raising out of a tie at the old maximum moves the price
		out.Kind = KindNewHighBid
		out.Message = fmt.Sprintf("New high bid: $%d", after.Price)
		followUp = append(followUp, raised)
	case after.Price <= before.Price:
		return []Outcome{rejection(lot.LotID, user.UserID, fmt.Sprintf("You can't bid less than $%d", before.Price+1), before.Price, now)}, nil
	case after.HighBidderID != before.HighBidderID:
		out.Kind = KindNewHighBidder
		out.OutbidUserID = before.HighBidderID
		out.Message = fmt.Sprintf("%s is now the high bidder at $%d", s.displayName(ctx, tx, after.HighBidderID, user), after.Price)
	default:
		out.Kind = KindNewHighBid
		out.Message = fmt.Sprintf("New high bid: $%d", after.Price)
	}

	if err := s.markHighBid(ctx, tx, bids, after.HighBidderID); err != nil {
		return nil, err
	}
	if newEnd, extended := s.clock.ExtendIfNeeded(&lot, now); extended {
		if err := tx.SaveLot(ctx, lot); err != nil {
			return nil, err
		}
		out.EndTime = &newEnd
	}
	out.HistoryID, err = s.appendPriceChange(ctx, tx, lot.LotID, out.Message, out.Price, now)
	if err != nil {
		return nil, err
	}
	return append([]Outcome{out}, followUp...), nil
}

// sellNow closes the lot at its buy-now price
func (s *BiddingService) sellNow(ctx context.Context, tx repository.AuctionDB, lot model.Lot, user model.User, now time.Time) (Outcome, error) {
	price := *lot.BuyNowPrice
	winner := user.UserID
	closed := now
	lot.WinnerID = &winner
	lot.WinningPrice = &price
	lot.DateEnd = &closed
	lot.ClosedAt = &closed
	if err := tx.SaveLot(ctx, lot); err != nil {
		return Outcome{}, err
	}

	msg := fmt.Sprintf("%s bought this lot now for $%d", user.Username, price)
	historyID, err := s.appendPriceChange(ctx, tx, lot.LotID, msg, price, now)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{
		Kind:         KindLotEndWinner,
		Audience:     AudienceEveryone,
		LotID:        lot.LotID,
		UserID:       user.UserID,
		Username:     user.Username,
		HighBidderID: winner,
		Price:        price,
		Message:      msg,
		EndTime:      &closed,
		HistoryID:    historyID,
		At:           now,
	}, nil
}

// PostChat appends a chat message to the lot's history and shares it with the room
func (s *BiddingService) PostChat(ctx context.Context, lotID, userID, text string) (Outcome, error) {
	if lotID == "" {
		return Outcome{}, fmt.Errorf("service: %w - missing lotID", biddingerrors.ErrInvalidBid)
	}
	if userID == "" {
		return s.reject(ctx, lotID, "", "You must be signed in to chat"), nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return s.reject(ctx, lotID, userID, "Message can't be empty"), nil
	}
	if len([]rune(text)) > maxChatLength {
		return s.reject(ctx, lotID, userID, fmt.Sprintf("Messages are limited to %d characters", maxChatLength)), nil
	}

	unlock := s.locks.lock(lotID)
	defer unlock()

	now := s.now()
	var out Outcome
	err := s.repo.InTx(ctx, func(tx repository.AuctionDB) error {
		_, user, subject, err := s.load(ctx, tx, lotID, userID, now)
		if err != nil {
			return err
		}
		if v := s.gate.CanChat(subject); !v.Allowed {
			out = rejection(lotID, userID, v.Reason, 0, now)
			return nil
		}

		author := user.UserID
		entry := model.LotHistory{
			HistoryID: utils.GenerateID(),
			LotID:     lotID,
			UserID:    &author,
			Message:   text,
			Timestamp: now,
		}
		if err := tx.AddHistory(ctx, entry); err != nil {
			return fmt.Errorf("service: failed to record chat on lot %s: %w", lotID, err)
		}

		out = Outcome{
			Kind:      KindChat,
			Audience:  AudienceEveryone,
			LotID:     lotID,
			UserID:    user.UserID,
			Username:  user.Username,
			Message:   text,
			HistoryID: entry.HistoryID,
			At:        now,
		}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	s.publisher.Publish(ctx, out)
	return out, nil
}

// CloseLot closes a lot on behalf of a user, who must be the lot's seller
// or the owner of the auction it belongs to
func (s *BiddingService) CloseLot(ctx context.Context, lotID, userID string) (Outcome, error) {
	if lotID == "" {
		return Outcome{}, fmt.Errorf("service: %w - missing lotID", biddingerrors.ErrInvalidBid)
	}
	if userID == "" {
		return Outcome{}, fmt.Errorf("service: cannot close lot %s: %w", lotID, biddingerrors.ErrUnauthenticated)
	}

	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return Outcome{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	allowed := lot.SellerID == userID
	if !allowed && lot.AuctionID != nil {
		a, err := s.repo.GetAuction(ctx, *lot.AuctionID)
		if err != nil {
			return Outcome{}, fmt.Errorf("service: failed to load auction for lot %s: %w", lotID, err)
		}
		allowed = a.OwnerID == userID
	}
	if !allowed {
		return Outcome{}, fmt.Errorf("service: user %s cannot close lot %s: %w", userID, lotID, biddingerrors.ErrForbidden)
	}
	return s.DeclareWinner(ctx, lotID)
}

// DeclareWinner closes a lot whose deadline has passed. Closing an already
// closed lot is a no-op that reports the recorded result.
func (s *BiddingService) DeclareWinner(ctx context.Context, lotID string) (Outcome, error) {
	if lotID == "" {
		return Outcome{}, fmt.Errorf("service: %w - missing lotID", biddingerrors.ErrInvalidBid)
	}

	unlock := s.locks.lock(lotID)
	defer unlock()

	now := s.now()
	var (
		out     Outcome
		closing bool
	)
	err := s.repo.InTx(ctx, func(tx repository.AuctionDB) error {
		lot, err := tx.LockLot(ctx, lotID)
		if err != nil {
			return fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
		}

		if lot.Sold() || lot.ClosedAt != nil {
			out = Outcome{Kind: KindInfo, Audience: AudienceBidder, LotID: lotID, Message: "Lot is already closed", At: now}
			if lot.Sold() {
				out.HighBidderID = *lot.WinnerID
				out.Price = *lot.WinningPrice
			}
			return nil
		}
		if lot.DateEnd == nil || !s.clock.Ended(lot, now) {
			return fmt.Errorf("service: cannot close lot %s: %w", lotID, biddingerrors.ErrLotNotEnded)
		}

		bids, err := s.ledger(ctx, tx, lotID)
		if err != nil {
			return fmt.Errorf("service: failed to load bids for lot %s: %w", lotID, err)
		}
		end := s.clock.CalculatedEnd(lot, now)
		st := auction.Resolve(lot, bids, end)

		closed := now
		lot.ClosedAt = &closed
		out = Outcome{Audience: AudienceEveryone, LotID: lotID, EndTime: &end, At: now}

		if st.HasLeader() {
			winner, price := st.HighBidderID, st.Price
			lot.WinnerID = &winner
			lot.WinningPrice = &price
			out.Kind = KindLotEndWinner
			out.HighBidderID = winner
			out.Price = price
			out.Message = fmt.Sprintf("Bidding has ended. Sold to %s for $%d", s.displayName(ctx, tx, winner, model.User{}), price)
		} else {
			out.Kind = KindInfo
			out.Price = lot.ReservePrice
			out.Message = "Bidding has ended. This lot did not sell"
		}

		if err := tx.SaveLot(ctx, lot); err != nil {
			return fmt.Errorf("service: failed to close lot %s: %w", lotID, err)
		}
		out.HistoryID, err = s.appendPriceChange(ctx, tx, lotID, out.Message, out.Price, now)
		if err != nil {
			return fmt.Errorf("service: failed to record close of lot %s: %w", lotID, err)
		}
		closing = true
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}
	if closing {
		s.publisher.Publish(ctx, out)
	}
	return out, nil
}

// LotStanding is the public read of a lot's current state
type LotStanding struct {
	LotID         string        `json:"lot_id"`
	State         auction.State `json:"-"`
	StateName     string        `json:"state"`
	Price         int64         `json:"price"`
	HighBidderID  string        `json:"high_bidder_id,omitempty"`
	CalculatedEnd time.Time     `json:"calculated_end"`
	SealedBid     bool          `json:"sealed_bid"`
	BidCount      int           `json:"bid_count"`
}

// CurrentStanding resolves the lot's price and leader. Sealed lots reveal
// neither until they are sold.
func (s *BiddingService) CurrentStanding(ctx context.Context, lotID string) (LotStanding, error) {
	if lotID == "" {
		return LotStanding{}, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrInvalidBid)
	}
	now := s.now()
	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return LotStanding{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	bids, err := s.ledger(ctx, s.repo, lotID)
	if err != nil {
		return LotStanding{}, fmt.Errorf("service: failed to load bids for lot %s: %w", lotID, err)
	}

	end := s.clock.CalculatedEnd(lot, now)
	state := s.clock.StateOf(lot, now)
	st := auction.Resolve(lot, bids, end)
	out := LotStanding{
		LotID:         lotID,
		State:         state,
		StateName:     state.String(),
		Price:         st.Price,
		HighBidderID:  st.HighBidderID,
		CalculatedEnd: end,
		SealedBid:     lot.SealedBid,
		BidCount:      len(bids),
	}
	if lot.Sold() {
		out.HighBidderID = *lot.WinnerID
		out.Price = *lot.WinningPrice
	} else if lot.SealedBid {
		out.HighBidderID = ""
		out.Price = lot.ReservePrice
	}
	return out, nil
}

// GetLotsByUser returns all lots a user has placed bids on
func (s *BiddingService) GetLotsByUser(ctx context.Context, userID string) ([]model.Lot, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}

	lots, err := s.repo.GetLotsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get lots for user %s: %w", userID, err)
	}

	return lots, nil
}

// GetHistory returns the newest limit history rows of a lot, oldest first
func (s *BiddingService) GetHistory(ctx context.Context, lotID string, limit int) ([]model.LotHistory, error) {
	if lotID == "" {
		return nil, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.repo.GetLot(ctx, lotID); err != nil {
		return nil, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	entries, err := s.repo.GetRecentHistory(ctx, lotID, limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get history for lot %s: %w", lotID, err)
	}
	return entries, nil
}

// MarkSeen flags a lot's history as read when the viewer is its seller.
// Other viewers are ignored.
func (s *BiddingService) MarkSeen(ctx context.Context, lotID, userID string) (int64, error) {
	if lotID == "" || userID == "" {
		return 0, nil
	}
	lot, err := s.repo.GetLot(ctx, lotID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	if lot.SellerID != userID {
		return 0, nil
	}
	n, err := s.repo.MarkHistorySeen(ctx, lotID)
	if err != nil {
		return 0, fmt.Errorf("service: failed to mark history seen for lot %s: %w", lotID, err)
	}
	return n, nil
}

// ListLotsPendingClose returns lots past their deadline that still need a close
func (s *BiddingService) ListLotsPendingClose(ctx context.Context, limit int) ([]model.Lot, error) {
	lots, err := s.repo.ListLotsPendingClose(ctx, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list lots pending close: %w", err)
	}
	return lots, nil
}


// load reads everything the permission gate needs. The lot is read with
// LockLot so the caller's unit of work owns it until commit.
func (s *BiddingService) load(ctx context.Context, tx repository.AuctionDB, lotID, userID string, now time.Time) (model.Lot, model.User, auction.Subject, error) {
	lot, err := tx.LockLot(ctx, lotID)
	if err != nil {
		return model.Lot{}, model.User{}, auction.Subject{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, err)
	}
	user, err := tx.GetUser(ctx, userID)
	if err != nil {
		return model.Lot{}, model.User{}, auction.Subject{}, fmt.Errorf("service: failed to load user %s: %w", userID, err)
	}

	subject := auction.Subject{Lot: lot, User: user, Now: now}
	if lot.AuctionID != nil {
		a, err := tx.GetAuction(ctx, *lot.AuctionID)
		if err != nil {
			return model.Lot{}, model.User{}, auction.Subject{}, fmt.Errorf("service: failed to load auction for lot %s: %w", lotID, err)
		}
		subject.Auction = &a
	}

	subject.BannedBySeller, err = tx.HasBan(ctx, lot.SellerID, userID)
	if err != nil {
		return model.Lot{}, model.User{}, auction.Subject{}, fmt.Errorf("service: failed to check bans on lot %s: %w", lotID, err)
	}
	if subject.Auction != nil && subject.Auction.OwnerID != lot.SellerID {
		subject.BannedByOwner, err = tx.HasBan(ctx, subject.Auction.OwnerID, userID)
		if err != nil {
			return model.Lot{}, model.User{}, auction.Subject{}, fmt.Errorf("service: failed to check bans on lot %s: %w", lotID, err)
		}
	}
	return lot, user, subject, nil
}

// ledger loads every bid on a lot, treating an empty ledger as no error
func (s *BiddingService) ledger(ctx context.Context, repo repository.AuctionDB, lotID string) ([]model.Bid, error) {
	bids, err := repo.GetBidsByLot(ctx, lotID)
	if errors.Is(err, biddingerrors.ErrNoBids) {
		return nil, nil
	}
	return bids, err
}

func (s *BiddingService) markHighBid(ctx context.Context, tx repository.AuctionDB, bids []model.Bid, userID string) error {
	b, ok := findBid(bids, userID)
	if !ok || b.WasHighBid {
		return nil
	}
	b.WasHighBid = true
	return tx.UpsertBid(ctx, b)
}

// appendPriceChange records a price-moving event and returns its history id
func (s *BiddingService) appendPriceChange(ctx context.Context, tx repository.AuctionDB, lotID, msg string, price int64, now time.Time) (string, error) {
	p := price
	entry := model.LotHistory{
		HistoryID:    utils.GenerateID(),
		LotID:        lotID,
		Message:      msg,
		Timestamp:    now,
		ChangedPrice: true,
		CurrentPrice: &p,
	}
	if err := tx.AddHistory(ctx, entry); err != nil {
		return "", err
	}
	return entry.HistoryID, nil
}

func (s *BiddingService) queueOutbid(ctx context.Context, out Outcome) {
	if s.outbox == nil {
		return
	}
	err := s.outbox.Enqueue(ctx, notify.OutbidNotice{
		LotID:           out.LotID,
		UserID:          out.OutbidUserID,
		NewHighBidderID: out.HighBidderID,
		Price:           out.Price,
		At:              out.At,
	})
	if err != nil {
		utils.Warn("service: failed to queue outbid notice", map[string]any{
			"lot_id":  out.LotID,
			"user_id": out.OutbidUserID,
			"error":   err.Error(),
		})
	}
}

// displayName returns a username for userID, preferring the already loaded actor
func (s *BiddingService) displayName(ctx context.Context, repo repository.AuctionDB, userID string, actor model.User) string {
	if actor.UserID == userID && actor.Username != "" {
		return actor.Username
	}
	u, err := repo.GetUser(ctx, userID)
	if err != nil || u.Username == "" {
		return userID
	}
	return u.Username
}

// reject publishes a private rejection that happened before any state was read
func (s *BiddingService) reject(ctx context.Context, lotID, userID, reason string) Outcome {
	out := rejection(lotID, userID, reason, 0, s.now())
	s.publisher.Publish(ctx, out)
	return out
}

func rejection(lotID, userID, reason string, price int64, now time.Time) Outcome {
	return Outcome{
		Kind:     KindError,
		Audience: AudienceBidder,
		LotID:    lotID,
		UserID:   userID,
		Price:    price,
		Message:  reason,
		At:       now,
	}
}

func findBid(bids []model.Bid, userID string) (model.Bid, bool) {
	for _, b := range bids {
		if b.UserID == userID {
			return b, true
		}
	}
	return model.Bid{}, false
}

// replaceBid returns a copy of bids with userID's row swapped for bid
func replaceBid(bids []model.Bid, bid model.Bid) []model.Bid {
	out := make([]model.Bid, 0, len(bids)+1)
	replaced := false
	for _, b := range bids {
		if b.UserID == bid.UserID {
			out = append(out, bid)
			replaced = true
			continue
		}
		out = append(out, b)
	}
	if !replaced {
		out = append(out, bid)
	}
	return out
}
