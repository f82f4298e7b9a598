// internal/domain/engagement/model.go

package engagement

import (
	"errors"
	"time"
)

// Common errors
var (
	// ErrInvalidSample marks a follower sample the store refuses to keep
	ErrInvalidSample = errors.New("invalid follower sample")

	// ErrUnknownBrand marks an operation against a brand id that is not
	// in the directory
	ErrUnknownBrand = errors.New("unknown brand")
)

// FollowerSample is one dated follower-count observation for a brand
type FollowerSample struct {
	BrandID string    `json:"brandId"`
	Date    time.Time `json:"date"`
	Count   int       `json:"count"`
}

// InterestEvent records a single user click-through to a brand's website
type InterestEvent struct {
	BrandID    string    `json:"brandId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Analytics holds a brand's derived ranking signal and the components
// that produced it
type Analytics struct {
	BrandID       string    `json:"brandId"`
	HotScore      float64   `json:"hotScore"`
	Growth        float64   `json:"growth"`
	Engagement    float64   `json:"engagement"`
	RecencyDecay  float64   `json:"recencyDecay"`
	SampleCount   int       `json:"sampleCount"`
	InterestCount int       `json:"interestCount"`
	ComputedAt    time.Time `json:"computedAt"`
}

// Store defines the interface for the session engagement store
type Store interface {
	// RegisterBrand makes a brand id known to the store
	RegisterBrand(brandID string)

	// RecordFollowerSample upserts a dated follower sample
	RecordFollowerSample(brandID string, date time.Time, count int) error

	// RecordInterestEvent appends an interest event for a known brand
	RecordInterestEvent(brandID string, occurredAt time.Time) error

	// History returns a brand's follower samples, oldest first
	History(brandID string) []FollowerSample

	// InterestCount returns the brand's running interest counter
	InterestCount(brandID string) int
}

// Calculator defines the interface for the hot-score calculator
type Calculator interface {
	// Analytics returns the brand's current analytics, computing and
	// caching them if needed
	Analytics(brandID string) Analytics

	// Invalidate drops the cached analytics for a brand
	Invalidate(brandID string)
}
