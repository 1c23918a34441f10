package repository

import (
	"context"

	model "lot-bidding/internal/models"
)

// InTx runs fn against a view of the repo that records an undo step for
// every write. An error or panic from fn replays the undo log newest first.
// Transactions on different lots may interleave; the caller serializes
// writers of the same lot.
func (r *MemoryRepo) InTx(ctx context.Context, fn func(tx AuctionDB) error) (err error) {
	tx := &memTx{MemoryRepo: r}
	defer func() {
		if p := recover(); p != nil {
			tx.rollback()
			panic(p)
		}
	}()
	if err = fn(tx); err != nil {
		tx.rollback()
	}
	return err
}

// memTx is the write-tracking view handed to InTx callbacks. Reads go
// straight to the embedded repo.
type memTx struct {
	*MemoryRepo
	undo []func()
}

func (t *memTx) InTx(_ context.Context, fn func(tx AuctionDB) error) error {
	return fn(t)
}

func (t *memTx) rollback() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

func (t *memTx) SaveLot(_ context.Context, lot model.Lot) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, had := t.lots[lot.LotID]
	if err := t.saveLot(lot); err != nil {
		return err
	}
	if had {
		t.undo = append(t.undo, func() { t.lots[lot.LotID] = prev })
	}
	return nil
}

func (t *memTx) UpsertBid(_ context.Context, bid model.Bid) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, hadBid := t.bids[bid.LotID][bid.UserID]
	prevLots, hadLots := t.userLots[bid.UserID]
	prevLots = append([]string(nil), prevLots...)
	if err := t.upsertBid(bid); err != nil {
		return err
	}

	t.undo = append(t.undo, func() {
		if hadBid {
			t.bids[bid.LotID][bid.UserID] = prev
		} else {
			delete(t.bids[bid.LotID], bid.UserID)
		}
		if hadLots {
			t.userLots[bid.UserID] = prevLots
		} else {
			delete(t.userLots, bid.UserID)
		}
	})
	return nil
}

func (t *memTx) AddHistory(_ context.Context, entry model.LotHistory) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(t.history[entry.LotID])
	if err := t.addHistory(entry); err != nil {
		return err
	}
	t.undo = append(t.undo, func() { t.history[entry.LotID] = t.history[entry.LotID][:n] })
	return nil
}

func (t *memTx) MarkHistorySeen(_ context.Context, lotID string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var unseen []int
	for i, e := range t.history[lotID] {
		if !e.Seen {
			unseen = append(unseen, i)
		}
	}
	n := t.markHistorySeen(lotID)
	t.undo = append(t.undo, func() {
		entries := t.history[lotID]
		for _, i := range unseen {
			if i < len(entries) {
				entries[i].Seen = false
			}
		}
	})
	return n, nil
}
