package sweep

import (
	"context"

	"github.com/robfig/cron/v3"

	"lot-bidding/utils"
)

type Runner struct {
	cron    *cron.Cron
	baseCtx context.Context
}

func NewRunner(baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		baseCtx: baseCtx,
	}
}

func (r *Runner) Add(spec string, job func(context.Context)) (cron.EntryID, error) {
	return r.cron.AddFunc(spec, func() {
		job(r.baseCtx)
	})
}

func (r *Runner) Start() {
	utils.Info("cron started", map[string]any{"entries": len(r.cron.Entries())})
	r.cron.Start()
}

func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	utils.Info("cron stopped", nil)
}
