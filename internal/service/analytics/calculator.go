// internal/service/analytics/calculator.go

package analytics

import (
	"math"
	"sync"
	"time"

	"bitescout/internal/domain/engagement"
)

// CalculatorConfig contains configuration for the hot-score calculator
type CalculatorConfig struct {
	// GrowthWeight and EngagementWeight blend the two components and
	// should sum to 1
	GrowthWeight     float64
	EngagementWeight float64

	// GrowthWindowDays is how far back the growth baseline looks
	GrowthWindowDays int

	// EngagementReference is the interest-event count at which the
	// engagement component saturates
	EngagementReference float64

	// StaleAfterDays is how old the latest sample may be before the
	// recency penalty starts; past that the multiplier halves every
	// further StaleAfterDays
	StaleAfterDays int
}

// DefaultCalculatorConfig returns the default scoring parameters
func DefaultCalculatorConfig() CalculatorConfig {
	return CalculatorConfig{
		GrowthWeight:        0.6,
		EngagementWeight:    0.4,
		GrowthWindowDays:    30,
		EngagementReference: 50,
		StaleAfterDays:      14,
	}
}

// Calculator computes per-brand hot scores from the engagement store.
// Results are memoized per brand until invalidated by a store write.
type Calculator struct {
	store  engagement.Store
	config CalculatorConfig
	now    func() time.Time

	mu    sync.Mutex
	cache map[string]engagement.Analytics
}

// NewCalculator creates a hot-score calculator over the given store
func NewCalculator(store engagement.Store, config CalculatorConfig) *Calculator {
	return &Calculator{
		store:  store,
		config: config,
		now:    time.Now,
		cache:  make(map[string]engagement.Analytics),
	}
}

// Analytics returns the brand's current analytics, computing and caching
// them if no cached value exists. The function is total: sparse or absent
// history degrades to a low but defined score.
func (c *Calculator) Analytics(brandID string) engagement.Analytics {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.cache[brandID]; ok {
		return cached
	}

	computed := c.compute(brandID)
	c.cache[brandID] = computed
	return computed
}

// Invalidate drops the cached analytics for a brand. The store calls this
// synchronously on every write, so a read after a recorded event always
// reflects that event.
func (c *Calculator) Invalidate(brandID string) {
	c.mu.Lock()
	delete(c.cache, brandID)
	c.mu.Unlock()
}

// compute derives the analytics from the store's current content
func (c *Calculator) compute(brandID string) engagement.Analytics {
	history := c.store.History(brandID)
	interestCount := c.store.InterestCount(brandID)
	now := c.now().UTC()

	growth := c.growthComponent(history)
	engagementScore := c.engagementComponent(interestCount)
	decay := c.recencyDecay(history, now)

	composite := clamp(c.config.GrowthWeight*growth+c.config.EngagementWeight*engagementScore, 0, 1)

	return engagement.Analytics{
		BrandID:       brandID,
		HotScore:      100 * composite * decay,
		Growth:        growth,
		Engagement:    engagementScore,
		RecencyDecay:  decay,
		SampleCount:   len(history),
		InterestCount: interestCount,
		ComputedAt:    now,
	}
}

// growthComponent compares the latest sample against the sample closest
// to the growth window back, clamped to bound outliers
func (c *Calculator) growthComponent(history []engagement.FollowerSample) float64 {
	if len(history) < 2 {
		return 0
	}

	latest := history[len(history)-1]
	target := latest.Date.AddDate(0, 0, -c.config.GrowthWindowDays)

	// Pick the baseline sample nearest the target date; a history shorter
	// than the window falls back to its oldest sample.
	baseline := history[0]
	bestDistance := absDuration(baseline.Date.Sub(target))
	for _, sample := range history[1 : len(history)-1] {
		if d := absDuration(sample.Date.Sub(target)); d < bestDistance {
			baseline = sample
			bestDistance = d
		}
	}

	relative := float64(latest.Count-baseline.Count) / math.Max(float64(baseline.Count), 1)
	return clamp(relative, -1, 3)
}

// engagementComponent normalizes the interest counter against the
// saturation reference
func (c *Calculator) engagementComponent(interestCount int) float64 {
	if c.config.EngagementReference <= 0 {
		return 0
	}
	return clamp(float64(interestCount)/c.config.EngagementReference, 0, 1)
}

// recencyDecay penalizes stale data so abandoned brands drift down even
// without negative growth. A brand with no samples has nothing to be
// stale and keeps full weight.
func (c *Calculator) recencyDecay(history []engagement.FollowerSample, now time.Time) float64 {
	if len(history) == 0 || c.config.StaleAfterDays <= 0 {
		return 1
	}

	latest := history[len(history)-1]
	ageDays := now.Sub(latest.Date).Hours() / 24
	stale := float64(c.config.StaleAfterDays)
	if ageDays <= stale {
		return 1
	}

	// Halve the multiplier for every further staleness window.
	return math.Pow(0.5, (ageDays-stale)/stale)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
