package submissions

import (
	"context"
	"log/slog"
	"time"

	api "MoveDesk/internal/API"
)

// Poller periodically refetches the review queue and feeds a Watcher,
// replacing the dashboard's auto-refresh.
type Poller struct {
	Client   *api.Client
	Watcher  *Watcher
	Filter   api.SubmissionFilter
	Interval time.Duration
	Log      *slog.Logger
}

// Run polls until ctx is done. Fetch failures are logged and the previous
// snapshot stays authoritative until the next successful poll.
func (p *Poller) Run(ctx context.Context) error {
	interval := p.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	log := p.Log
	if log == nil {
		log = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	firstRun := true
	for {
		subs, _, err := p.Client.ListSubmissionsFresh(ctx, p.Filter)
		switch {
		case err != nil:
			log.Warn("submission poll failed", slog.String("error", err.Error()))
		case firstRun:
			p.Watcher.Populate(subs)
			firstRun = false
			log.Info("submission watch started", slog.Int("tracked", len(subs)))
		default:
			p.Watcher.Process(subs)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
