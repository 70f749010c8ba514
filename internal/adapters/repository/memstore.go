package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/pkg/metrics"
)

// MemStore is the in-memory Store implementation.
//
// Ordering: date ASC, then event label ASC, then result id ASC
// (deterministic). Reads copy the selection out so callers can hold a
// snapshot while writers keep ingesting.
type MemStore struct {
	mu   sync.RWMutex
	byID map[string]model.Result
}

// NewMemStore creates an empty in-memory result store.
func NewMemStore(_ context.Context, opts ...Option) *MemStore {
	s := &MemStore{
		byID: make(map[string]model.Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateStoreResults(0)
	metrics.UpdateStoreEvents(0)
	return s
}

// Upsert inserts or overwrites a result keyed by ResultID.
func (s *MemStore) Upsert(ctx context.Context, r model.Result) (bool, error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds()))
	}()

	if r.ResultID == "" {
		return false, ErrMissingResultID
	}

	s.mu.Lock()
	_, existed := s.byID[r.ResultID]
	s.byID[r.ResultID] = r
	total := len(s.byID)
	events := s.countEventsLocked()
	s.mu.Unlock()

	metrics.UpdateStoreResults(total)
	metrics.UpdateStoreEvents(events)
	return !existed, nil
}

// Has reports whether a result id is already stored.
func (s *MemStore) Has(_ context.Context, resultID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[resultID]
	return ok
}

// All returns a snapshot of every stored result.
func (s *MemStore) All(_ context.Context) []model.Result {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()))
	}()

	s.mu.RLock()
	out := make([]model.Result, 0, len(s.byID))
	for _, r := range s.byID {
		out = append(out, r)
	}
	s.mu.RUnlock()

	sortResults(out)
	return out
}

// ByEvent returns a snapshot of the results for one exact event label.
func (s *MemStore) ByEvent(_ context.Context, eventLabel string) []model.Result {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()))
	}()

	s.mu.RLock()
	var out []model.Result
	for _, r := range s.byID {
		if r.EventLabel == eventLabel {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sortResults(out)
	return out
}

// Events returns the distinct event labels present, sorted.
func (s *MemStore) Events(_ context.Context) []string {
	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, r := range s.byID {
		seen[r.EventLabel] = struct{}{}
	}
	s.mu.RUnlock()

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// Count returns the number of stored results.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

func (s *MemStore) countEventsLocked() int {
	seen := make(map[string]struct{})
	for _, r := range s.byID {
		seen[r.EventLabel] = struct{}{}
	}
	return len(seen)
}

func sortResults(results []model.Result) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.EventLabel != b.EventLabel {
			return a.EventLabel < b.EventLabel
		}
		return a.ResultID < b.ResultID
	})
}
