package corpussync

import (
	"context"
	"log/slog"
	"time"
)

// Poller reloads the corpus on a fixed interval.
type Poller struct {
	interval time.Duration
	reloader Reloader
	logger   *slog.Logger
}

// NewPoller constructs a poller.
func NewPoller(interval time.Duration, reloader Reloader, logger *slog.Logger) *Poller {
	return &Poller{
		interval: interval,
		reloader: reloader,
		logger:   logger.With("component", "corpussync.poller", "interval", interval.String()),
	}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.reloader.Reload(ctx); err != nil {
				p.logger.Error("corpus refresh failed, keeping previous snapshot", "error", err)
			}
		}
	}
}
