package process

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/sproutplan/sproutplan/app/core"
	"github.com/sproutplan/sproutplan/pkg/safe"
)

// Process owns the background schedules that run alongside the HTTP
// service.
type Process struct {
	cron *cron.Cron
	core *core.Core
}

func NewProcess(core *core.Core) *Process {
	return &Process{
		cron: cron.New(),
		core: core,
	}
}

// Start registers the schedules and kicks off the cron loop. Each job
// runs behind a panic guard so a bad run never kills the process.
func (p *Process) Start() {
	if _, err := p.cron.AddFunc("@hourly", func() {
		safe.RunWithComponent(func() {
			p.sweepExpiredTokens(context.Background())
		}, "process.sweepExpiredTokens")
	}); err != nil {
		panic(err)
	}

	p.cron.Start()
	slog.Info("background schedules started")
}

func (p *Process) Stop() {
	<-p.cron.Stop().Done()
}

// sweepExpiredTokens removes session tokens past their expiry. Cache
// entries are left to lapse on their own TTL.
func (p *Process) sweepExpiredTokens(ctx context.Context) {
	deleted, err := p.core.Store().AccessTokenStore().ClearExpired(ctx)
	if err != nil {
		slog.Error("expired token sweep failed", slog.Any("error", err))
		return
	}
	if deleted > 0 {
		slog.Info("expired tokens cleared", slog.Int64("count", deleted))
	}
}
