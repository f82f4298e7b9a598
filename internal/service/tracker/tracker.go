// internal/service/tracker/tracker.go

package tracker

import (
	"fmt"
	"time"

	"bitescout/internal/domain/engagement"
)

// Tracker is the single write path by which user-observable interest
// affects ranking
type Tracker struct {
	store engagement.Store
	calc  engagement.Calculator
	now   func() time.Time
}

// NewTracker creates an interaction tracker over the store and calculator
func NewTracker(store engagement.Store, calc engagement.Calculator) *Tracker {
	return &Tracker{
		store: store,
		calc:  calc,
		now:   time.Now,
	}
}

// TrackClick records one interest event for the brand and returns its
// freshly recomputed analytics so the caller can reflect the updated
// score without a full re-fetch. Every call is one event; repeated
// genuine clicks all count.
func (t *Tracker) TrackClick(brandID string) (engagement.Analytics, error) {
	if err := t.store.RecordInterestEvent(brandID, t.now().UTC()); err != nil {
		return engagement.Analytics{}, fmt.Errorf("error recording interest event: %w", err)
	}

	// The store invalidated the cached entry synchronously, so this read
	// reflects the event just recorded.
	return t.calc.Analytics(brandID), nil
}
