// Package sweep closes lots whose deadline passed without anyone declaring a
// winner. The sweep is idempotent, so overlapping runs on several processes
// are harmless.
package sweep

import (
	"context"
	"errors"

	bidding "lot-bidding/internal/biddingService"
	"lot-bidding/internal/biddingerrors"
	model "lot-bidding/internal/models"
	"lot-bidding/utils"
)

const DefaultBatchSize = 100

// LotCloser is the part of the bidding service the sweep drives
type LotCloser interface {
	ListLotsPendingClose(ctx context.Context, limit int) ([]model.Lot, error)
	DeclareWinner(ctx context.Context, lotID string) (bidding.Outcome, error)
}

type Closer struct {
	svc       LotCloser
	batchSize int
}

func NewCloser(svc LotCloser, batchSize int) *Closer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Closer{svc: svc, batchSize: batchSize}
}

// Run closes one batch of overdue lots and returns how many were closed
func (c *Closer) Run(ctx context.Context) (int, error) {
	lots, err := c.svc.ListLotsPendingClose(ctx, c.batchSize)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, lot := range lots {
		if ctx.Err() != nil {
			return closed, ctx.Err()
		}
		out, err := c.svc.DeclareWinner(ctx, lot.LotID)
		if errors.Is(err, biddingerrors.ErrLotNotEnded) {
			// extended by a late bid since it was listed
			continue
		}
		if err != nil {
			utils.Error("sweep: failed to close lot", map[string]any{
				"lot_id": lot.LotID,
				"error":  err.Error(),
			})
			continue
		}
		closed++
		utils.Info("sweep: lot closed", map[string]any{
			"lot_id":    lot.LotID,
			"outcome":   out.Kind.String(),
			"winner_id": out.HighBidderID,
			"price":     out.Price,
		})
	}
	return closed, nil
}

// Job adapts Run to the cron runner
func (c *Closer) Job(ctx context.Context) {
	if _, err := c.Run(ctx); err != nil {
		utils.Error("sweep: run failed", map[string]any{"error": err.Error()})
	}
}
