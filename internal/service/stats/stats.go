// internal/service/stats/stats.go

package stats

import (
	"fmt"
	"math"
	"time"

	"bitescout/internal/domain/brand"
	"bitescout/internal/service/ranking"
)

// HotBrandThreshold is the hot score above which a brand counts as hot
const HotBrandThreshold = 75.0

// CollectionStats summarizes the brand collection for the dashboard
type CollectionStats struct {
	TotalBrands    int     `json:"totalBrands"`
	NewBrands      int     `json:"newBrands"`
	AverageRating  float64 `json:"averageRating"`
	HotBrands      int     `json:"hotBrands"`
	TotalFollowers int     `json:"totalFollowers"`
	FollowersLabel string  `json:"followersLabel"`
}

// Service computes collection statistics
type Service struct {
	now func() time.Time
}

// NewService creates a stats service
func NewService() *Service {
	return &Service{now: time.Now}
}

// Collect derives the dashboard numbers from the brand collection
func (s *Service) Collect(brands []brand.Brand, lookup ranking.AnalyticsLookup) CollectionStats {
	now := s.now().UTC()

	stats := CollectionStats{TotalBrands: len(brands)}

	var ratingSum float64
	for _, b := range brands {
		if b.IsNew(now) {
			stats.NewBrands++
		}
		ratingSum += b.Rating
		stats.TotalFollowers += b.InstagramFollowers

		if lookup != nil && lookup(b.ID).HotScore > HotBrandThreshold {
			stats.HotBrands++
		}
	}

	if len(brands) > 0 {
		// One decimal place, matching the directory display.
		stats.AverageRating = math.Round(ratingSum/float64(len(brands))*10) / 10
	}
	stats.FollowersLabel = FormatCount(stats.TotalFollowers)

	return stats
}

// FormatCount renders a follower count in compact k/M notation
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
