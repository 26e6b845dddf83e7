package job

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

const DefaultQuotaPollInterval = 60 * time.Second

// QuotaResetter runs the level-triggered quota window check on live sessions.
type QuotaResetter interface {
	CheckResets(ctx context.Context) int
}

// QuotaResetPoller periodically clears elapsed quota windows so idle
// sessions see their counter reset without any user action.
type QuotaResetPoller struct {
	tracer   trace.Tracer
	resetter QuotaResetter
	interval time.Duration
	logger   *log.Logger
}

func NewQuotaResetPoller(tracer trace.Tracer, resetter QuotaResetter, interval time.Duration, logger *log.Logger) *QuotaResetPoller {
	if interval <= 0 {
		interval = DefaultQuotaPollInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &QuotaResetPoller{
		tracer:   tracer,
		resetter: resetter,
		interval: interval,
		logger:   logger,
	}
}

// Start runs the check once, then on every tick. Blocks until ctx is cancelled.
func (p *QuotaResetPoller) Start(ctx context.Context) {
	if p.resetter == nil {
		p.logger.Info("quota reset poller disabled: no session service")
		<-ctx.Done()
		return
	}

	p.logger.Info("quota reset poller starting", "interval", p.interval)
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("quota reset poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *QuotaResetPoller) tick(ctx context.Context) {
	ctx, span := p.tracer.Start(ctx, "quota-reset-poller.tick")
	defer span.End()

	if n := p.resetter.CheckResets(ctx); n > 0 {
		p.logger.Info("quota windows reset", "sessions", n)
	}
}
