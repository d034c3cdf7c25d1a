// Package scheduler drives the watcher on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhigl/jobscout/internal/watch"
)

// Scheduler owns the watch loop: one immediate cycle, then ticks on an interval.
type Scheduler struct {
	watcher  *watch.Watcher
	interval time.Duration
	logger   *slog.Logger
}

// New creates a scheduler that runs the watcher at the given interval.
func New(watcher *watch.Watcher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		watcher:  watcher,
		interval: interval,
		logger:   logger,
	}
}

// Run starts the watch loop. It returns nil when ctx is cancelled (graceful
// shutdown). Cycle failures are logged, never fatal.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("starting watch loop", "interval", s.interval.String())

	s.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("shutting down watch loop")
			return nil
		case <-time.After(s.interval):
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.watcher.Run(ctx); err != nil {
		s.logger.Error("watch cycle failed", "error", err)
	}
}
