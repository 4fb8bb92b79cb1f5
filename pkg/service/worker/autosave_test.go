package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/notework-lab/notework/pkg/service/worker"
)

// mockFlusher is a mock implementation of worker.Flusher for testing
type mockFlusher struct {
	mu         sync.Mutex
	calls      int
	persistErr error
}

func (m *mockFlusher) Persist(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.persistErr
}

func (m *mockFlusher) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func TestAutosaveWorkerFlushesOnInterval(t *testing.T) {
	flusher := &mockFlusher{}
	w := worker.NewAutosaveWorker(flusher, 10*time.Millisecond)

	ctx := context.Background()
	gt.NoError(t, w.Start(ctx))

	time.Sleep(55 * time.Millisecond)
	w.Stop(ctx)

	// At least a few ticks plus the final shutdown flush
	gt.Number(t, flusher.callCount()).Greater(2)
}

func TestAutosaveWorkerStopFlushes(t *testing.T) {
	flusher := &mockFlusher{}
	// Long interval so no tick fires during the test
	w := worker.NewAutosaveWorker(flusher, time.Hour)

	ctx := context.Background()
	gt.NoError(t, w.Start(ctx))
	w.Stop(ctx)

	gt.Number(t, flusher.callCount()).Equal(1)
}

func TestAutosaveWorkerContinuesAfterError(t *testing.T) {
	flusher := &mockFlusher{persistErr: errors.New("disk full")}
	w := worker.NewAutosaveWorker(flusher, 10*time.Millisecond)

	ctx := context.Background()
	gt.NoError(t, w.Start(ctx))

	time.Sleep(35 * time.Millisecond)
	w.Stop(ctx)

	// Errors are swallowed and the loop keeps running
	gt.Number(t, flusher.callCount()).Greater(1)
}

func TestAutosaveWorkerDefaultInterval(t *testing.T) {
	w := worker.NewAutosaveWorker(&mockFlusher{}, 0)
	gt.Value(t, w).NotNil()
}
