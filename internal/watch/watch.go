// Package watch runs the aggregation pipeline on behalf of a standing search:
// gather → dedup against seen ids → notify → mark seen.
package watch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhigl/jobscout/internal/aggregate"
	"github.com/abhigl/jobscout/internal/model"
)

// Gatherer is the aggregation entry point the watcher depends on.
type Gatherer interface {
	Gather(ctx context.Context, opts aggregate.Options) []model.JobPosting
}

// Watcher owns one watch cycle over the configured sources.
type Watcher struct {
	aggregator Gatherer
	opts       aggregate.Options
	store      model.SeenStore
	notifier   model.Notifier
	logger     *slog.Logger
}

// New creates a watcher wired with all its dependencies.
func New(
	aggregator Gatherer,
	opts aggregate.Options,
	store model.SeenStore,
	notifier model.Notifier,
	logger *slog.Logger,
) *Watcher {
	return &Watcher{
		aggregator: aggregator,
		opts:       opts,
		store:      store,
		notifier:   notifier,
		logger:     logger,
	}
}

// Run executes one cycle: aggregate, drop postings already seen, notify the
// remainder, then mark them seen. Marking happens after notification so a
// failed delivery is retried on the next cycle.
func (w *Watcher) Run(ctx context.Context) error {
	postings := w.aggregator.Gather(ctx, w.opts)

	var fresh []model.JobPosting
	for _, p := range postings {
		p.ID = model.DerivePostingID(p)
		seen, err := w.store.HasSeen(p.ID)
		if err != nil {
			return fmt.Errorf("watch cycle: checking seen status: %w", err)
		}
		if !seen {
			fresh = append(fresh, p)
		}
	}

	if len(fresh) > 0 {
		if err := w.notifier.Notify(fresh); err != nil {
			return fmt.Errorf("watch cycle: notifying: %w", err)
		}
	}

	for _, p := range fresh {
		if err := w.store.MarkSeen(p.ID); err != nil {
			return fmt.Errorf("watch cycle: marking seen: %w", err)
		}
	}

	w.logger.Info("watch cycle complete",
		"fetched", len(postings),
		"new", len(fresh),
	)
	return nil
}
