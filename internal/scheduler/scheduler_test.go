package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abhigl/jobscout/internal/aggregate"
	"github.com/abhigl/jobscout/internal/model"
	"github.com/abhigl/jobscout/internal/watch"
)

type countingGatherer struct {
	calls atomic.Int32
}

func (c *countingGatherer) Gather(_ context.Context, _ aggregate.Options) []model.JobPosting {
	c.calls.Add(1)
	return nil
}

type nopSeenStore struct{}

func (nopSeenStore) HasSeen(string) (bool, error) { return false, nil }
func (nopSeenStore) MarkSeen(string) error        { return nil }
func (nopSeenStore) Cleanup(time.Duration) error  { return nil }

type nopNotifier struct{}

func (nopNotifier) Notify([]model.JobPosting) error { return nil }

func TestSchedulerRunsImmediatelyAndStopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gatherer := &countingGatherer{}
	w := watch.New(gatherer, aggregate.Options{}, nopSeenStore{}, nopNotifier{}, logger)
	s := New(w, time.Hour, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The first cycle runs before any tick.
	deadline := time.After(2 * time.Second)
	for gatherer.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("scheduler never ran the first cycle")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected nil on graceful shutdown, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	if got := gatherer.calls.Load(); got != 1 {
		t.Errorf("expected exactly 1 cycle with an hour-long interval, got %d", got)
	}
}
