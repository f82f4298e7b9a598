// internal/service/harvest/harvester.go

package harvest

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
)

// BrandLister provides the brands to harvest
type BrandLister interface {
	ListBrands(ctx context.Context) ([]brand.Brand, error)
	UpdateFollowerCount(ctx context.Context, id string, count int) error
}

// SampleUpserter stores harvested follower samples
type SampleUpserter interface {
	UpsertSample(ctx context.Context, sample engagement.FollowerSample) error
}

// ProfileFetcher observes a public profile and returns its follower count
type ProfileFetcher interface {
	FetchFollowerCount(ctx context.Context, handle string) (int, error)
}

// HarvesterConfig contains configuration for the harvester
type HarvesterConfig struct {
	SamplesTopic string
}

// Harvester runs one harvest pass over the brand collection: for each
// brand with an instagram handle it observes the public profile, upserts
// a dated follower sample, refreshes the brand's denormalized count and
// publishes a sample event.
type Harvester struct {
	brands   BrandLister
	samples  SampleUpserter
	fetcher  ProfileFetcher
	eventBus *nats.Conn
	config   HarvesterConfig
	now      func() time.Time
}

// NewHarvester creates a follower-count harvester
func NewHarvester(
	brands BrandLister,
	samples SampleUpserter,
	fetcher ProfileFetcher,
	eventBus *nats.Conn,
	config HarvesterConfig,
) *Harvester {
	return &Harvester{
		brands:   brands,
		samples:  samples,
		fetcher:  fetcher,
		eventBus: eventBus,
		config:   config,
		now:      time.Now,
	}
}

// RunResult summarizes one harvest pass
type RunResult struct {
	Harvested int
	Skipped   int
	Failed    int
}

// Run performs a single harvest pass. Per-brand failures are counted and
// skipped rather than aborting the pass; the sample upsert keys on
// (brand, date) so reruns on the same day are idempotent.
func (h *Harvester) Run(ctx context.Context) (RunResult, error) {
	brands, err := h.brands.ListBrands(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("error listing brands: %w", err)
	}

	today := h.now().UTC().Truncate(24 * time.Hour)

	var result RunResult
	for _, b := range brands {
		if b.InstagramHandle == "" {
			result.Skipped++
			continue
		}

		count, err := h.fetcher.FetchFollowerCount(ctx, b.InstagramHandle)
		if err != nil {
			fmt.Printf("Error fetching followers for %s: %v\n", b.InstagramHandle, err)
			result.Failed++
			continue
		}

		sample := engagement.FollowerSample{BrandID: b.ID, Date: today, Count: count}
		if err := h.samples.UpsertSample(ctx, sample); err != nil {
			fmt.Printf("Error storing sample for %s: %v\n", b.ID, err)
			result.Failed++
			continue
		}

		if err := h.brands.UpdateFollowerCount(ctx, b.ID, count); err != nil {
			fmt.Printf("Error updating follower count for %s: %v\n", b.ID, err)
		}

		if err := h.publishSample(sample); err != nil {
			fmt.Printf("Error publishing sample for %s: %v\n", b.ID, err)
		}

		result.Harvested++
	}

	return result, nil
}

// publishSample announces a new follower sample on the event bus so a
// running API process can fold it into its session store
func (h *Harvester) publishSample(sample engagement.FollowerSample) error {
	if h.eventBus == nil {
		return nil
	}
	payload, err := EncodeSampleEvent(sample)
	if err != nil {
		return fmt.Errorf("error encoding sample event: %w", err)
	}
	if err := h.eventBus.Publish(h.config.SamplesTopic, payload); err != nil {
		return fmt.Errorf("error publishing sample event: %w", err)
	}
	return nil
}
