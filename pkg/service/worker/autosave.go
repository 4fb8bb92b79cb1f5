package worker

import (
	"context"
	"time"

	"github.com/notework-lab/notework/pkg/utils/logging"
)

// DefaultAutosaveInterval is how often the session is flushed to the store.
const DefaultAutosaveInterval = 30 * time.Second

// Flusher persists the current session state.
type Flusher interface {
	Persist(ctx context.Context) error
}

// AutosaveWorker periodically flushes session state to the store.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - Persistence failures are logged and retried on the next tick
type AutosaveWorker struct {
	flusher  Flusher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewAutosaveWorker creates a worker that flushes via the given Flusher.
func NewAutosaveWorker(flusher Flusher, interval time.Duration) *AutosaveWorker {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &AutosaveWorker{
		flusher:  flusher,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background autosave loop. Does not block.
func (w *AutosaveWorker) Start(ctx context.Context) error {
	logging.Default().Info("autosave worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion. A final
// flush runs before shutdown so the latest state is never lost.
func (w *AutosaveWorker) Stop(ctx context.Context) {
	logging.Default().Info("autosave worker stopping")
	close(w.stopCh)
	<-w.doneCh

	if err := w.flusher.Persist(ctx); err != nil {
		logging.Default().Error("final autosave flush failed",
			"error", err.Error())
	}
	logging.Default().Info("autosave worker stopped")
}

func (w *AutosaveWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.flusher.Persist(ctx); err != nil {
				// Log error but continue worker
				logging.Default().Error("autosave flush failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("autosave worker context cancelled")
			return
		}
	}
}
