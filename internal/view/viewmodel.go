// Package view owns the client-side snapshot of the job collection and
// the refresh protocol that keeps it consistent with the server.
package view

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/affanabid/Hiro/internal/domain"
	"github.com/affanabid/Hiro/internal/metrics"
	"github.com/affanabid/Hiro/internal/remote"
)

// Snapshot is the last successfully fetched full copy of the collection.
// It is a value: readers get either the pre-refresh or the post-refresh
// snapshot, never a mix.
type Snapshot struct {
	Jobs      []domain.JobRecord `json:"jobs"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// ViewModel is the single source of truth the presentation layer reads
// from. It never merges partial updates: every mutation is followed by a
// full re-fetch through NotifyChanged.
type ViewModel struct {
	collection remote.Collection
	logger     *zap.Logger

	mu          sync.RWMutex
	snap        Snapshot
	subscribers map[chan Snapshot]struct{}
}

// New creates a ViewModel with an empty snapshot. Callers populate it
// with one Refresh at startup.
func New(collection remote.Collection, logger *zap.Logger) *ViewModel {
	return &ViewModel{
		collection:  collection,
		logger:      logger,
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Snapshot returns the current snapshot.
func (vm *ViewModel) Snapshot() Snapshot {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.snap
}

// Refresh fetches the full collection and atomically replaces the
// snapshot. On failure the prior snapshot stays untouched: a stale but
// consistent view beats an empty broken one. Concurrent refreshes are
// not coalesced; the last one to complete wins.
func (vm *ViewModel) Refresh(ctx context.Context) error {
	jobs, err := vm.collection.List(ctx)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues(metrics.ResultFailure).Inc()
		vm.logger.Error("Failed to refresh job collection", zap.Error(err))
		return err
	}

	snap := Snapshot{Jobs: jobs, FetchedAt: time.Now().UTC()}

	// Fan out while holding the lock so Unsubscribe can never close a
	// channel between the swap and the send; the sends are non-blocking.
	vm.mu.Lock()
	vm.snap = snap
	for ch := range vm.subscribers {
		select {
		case ch <- snap:
		default:
			// drop if slow
		}
	}
	vm.mu.Unlock()

	metrics.RefreshesTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	metrics.SnapshotJobs.Set(float64(len(jobs)))

	vm.logger.Debug("Snapshot refreshed", zap.Int("jobs", len(jobs)))
	return nil
}

// NotifyChanged is the signal a completed mutation emits. Each signal
// triggers exactly one Refresh; the error is already logged inside
// Refresh and deliberately not propagated, since the caller's mutation
// has succeeded regardless.
func (vm *ViewModel) NotifyChanged(ctx context.Context) {
	_ = vm.Refresh(ctx)
}

// Subscribe returns a channel that receives each new snapshot. Slow
// consumers miss intermediate snapshots rather than blocking a refresh.
func (vm *ViewModel) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 4)
	vm.mu.Lock()
	vm.subscribers[ch] = struct{}{}
	vm.mu.Unlock()
	metrics.StreamClients.Inc()
	return ch
}

// Unsubscribe removes and closes a subscription channel.
func (vm *ViewModel) Unsubscribe(ch chan Snapshot) {
	vm.mu.Lock()
	_, ok := vm.subscribers[ch]
	delete(vm.subscribers, ch)
	vm.mu.Unlock()
	if ok {
		metrics.StreamClients.Dec()
		close(ch)
	}
}
