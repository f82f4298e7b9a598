// internal/service/stats/stats_test.go

package stats

import (
	"testing"
	"time"

	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
)

func TestCollect(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	brands := []brand.Brand{
		{ID: "a", Rating: 4.0, InstagramFollowers: 1500, CreatedAt: now.AddDate(0, 0, -5)},
		{ID: "b", Rating: 3.0, InstagramFollowers: 500, CreatedAt: now.AddDate(0, 0, -60)},
		{ID: "c", Rating: 5.0, InstagramFollowers: 2000, CreatedAt: now.AddDate(0, 0, -90)},
	}
	scores := map[string]float64{"a": 80, "b": 40, "c": 76}

	svc := NewService()
	svc.now = func() time.Time { return now }

	got := svc.Collect(brands, func(brandID string) engagement.Analytics {
		return engagement.Analytics{BrandID: brandID, HotScore: scores[brandID]}
	})

	if got.TotalBrands != 3 {
		t.Errorf("expected 3 total brands, got %d", got.TotalBrands)
	}
	if got.NewBrands != 1 {
		t.Errorf("expected 1 new brand, got %d", got.NewBrands)
	}
	if got.AverageRating != 4.0 {
		t.Errorf("expected average rating 4.0, got %.1f", got.AverageRating)
	}
	if got.HotBrands != 2 {
		t.Errorf("expected 2 hot brands (score > 75), got %d", got.HotBrands)
	}
	if got.TotalFollowers != 4000 {
		t.Errorf("expected 4000 total followers, got %d", got.TotalFollowers)
	}
	if got.FollowersLabel != "4k" {
		t.Errorf("expected followers label 4k, got %q", got.FollowersLabel)
	}
}

func TestCollectEmptyCollection(t *testing.T) {
	got := NewService().Collect(nil, nil)

	if got.TotalBrands != 0 || got.AverageRating != 0 || got.HotBrands != 0 {
		t.Errorf("unexpected stats for empty collection: %+v", got)
	}
	if got.FollowersLabel != "0" {
		t.Errorf("expected label 0, got %q", got.FollowersLabel)
	}
}

func TestFormatCount(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1k"},
		{45200, "45k"},
		{1_000_000, "1.0M"},
		{2_450_000, "2.5M"},
	}

	for _, tc := range cases {
		if got := FormatCount(tc.in); got != tc.want {
			t.Errorf("FormatCount(%d): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
