// internal/service/engagement/store.go

package engagement

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bitescout/internal/domain/engagement"
)

// Store is the in-memory session engagement store. It holds, per brand, a
// time series of follower samples and a running interest-event counter.
// Writes are serialized under one lock so the invalidate-then-recompute
// ordering holds even with a concurrent harvester feed.
type Store struct {
	mu        sync.RWMutex
	brands    map[string]struct{}
	histories map[string][]engagement.FollowerSample
	events    map[string][]engagement.InterestEvent

	handlersMu sync.RWMutex
	handlers   []func(brandID string)
}

// NewStore creates an empty engagement store
func NewStore() *Store {
	return &Store{
		brands:    make(map[string]struct{}),
		histories: make(map[string][]engagement.FollowerSample),
		events:    make(map[string][]engagement.InterestEvent),
	}
}

// RegisterBrand makes a brand id known to the store
func (s *Store) RegisterBrand(brandID string) {
	s.mu.Lock()
	s.brands[brandID] = struct{}{}
	s.mu.Unlock()
}

// RegisterInvalidationHandler registers a callback invoked synchronously
// whenever a brand's engagement data changes
func (s *Store) RegisterInvalidationHandler(handler func(brandID string)) {
	s.handlersMu.Lock()
	s.handlers = append(s.handlers, handler)
	s.handlersMu.Unlock()
}

// RecordFollowerSample upserts a dated follower sample for a brand. One
// sample is kept per (brand, calendar date); a rerun for the same date
// replaces the count.
func (s *Store) RecordFollowerSample(brandID string, date time.Time, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: negative count %d", engagement.ErrInvalidSample, count)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: zero date", engagement.ErrInvalidSample)
	}

	day := truncateToDay(date)

	s.mu.Lock()
	history := s.histories[brandID]
	replaced := false
	for i, sample := range history {
		if sample.Date.Equal(day) {
			history[i].Count = count
			replaced = true
			break
		}
	}
	if !replaced {
		history = append(history, engagement.FollowerSample{BrandID: brandID, Date: day, Count: count})
		sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	}
	s.histories[brandID] = history
	s.mu.Unlock()

	s.invalidate(brandID)
	return nil
}

// RecordInterestEvent appends an interest event and bumps the brand's
// running counter. Repeated genuine clicks all count; there is no
// deduplication.
func (s *Store) RecordInterestEvent(brandID string, occurredAt time.Time) error {
	s.mu.Lock()
	if _, known := s.brands[brandID]; !known {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", engagement.ErrUnknownBrand, brandID)
	}
	s.events[brandID] = append(s.events[brandID], engagement.InterestEvent{
		BrandID:    brandID,
		OccurredAt: occurredAt,
	})
	s.mu.Unlock()

	s.invalidate(brandID)
	return nil
}

// History returns a brand's follower samples, oldest first. An empty
// history is a valid result, not an error.
func (s *Store) History(brandID string) []engagement.FollowerSample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.histories[brandID]
	out := make([]engagement.FollowerSample, len(history))
	copy(out, history)
	return out
}

// InterestCount returns the brand's running interest counter
func (s *Store) InterestCount(brandID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events[brandID])
}

// invalidate notifies registered handlers that a brand's data changed
func (s *Store) invalidate(brandID string) {
	s.handlersMu.RLock()
	handlers := s.handlers
	s.handlersMu.RUnlock()

	for _, handler := range handlers {
		handler(brandID)
	}
}

// truncateToDay normalizes a timestamp to its UTC calendar date
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
