// internal/service/harvest/harvester_test.go

package harvest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
)

func TestParseFollowerCount(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1234", 1234, false},
		{"12,345", 12345, false},
		{"1.2k", 1200, false},
		{"1.2K", 1200, false},
		{"3m", 3000000, false},
		{"3.5M", 3500000, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
		{"-10", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFollowerCount(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestFetchFollowerCountFromProfilePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/maplecrunch/" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `<html><head><meta content="12,345 Followers, 90 Following"></head></html>`)
	}))
	defer srv.Close()

	fetcher := NewHTTPProfileFetcher(srv.URL, "test-agent", 5*time.Second)

	got, err := fetcher.FetchFollowerCount(context.Background(), "@maplecrunch")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 12345 {
		t.Errorf("expected 12345 followers, got %d", got)
	}
}

func TestFetchFollowerCountErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/nocount/":
			fmt.Fprint(w, `<html><head></head></html>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher := NewHTTPProfileFetcher(srv.URL, "", 5*time.Second)

	if _, err := fetcher.FetchFollowerCount(context.Background(), "nocount"); err == nil {
		t.Errorf("expected error when page has no follower count")
	}
	if _, err := fetcher.FetchFollowerCount(context.Background(), "missing"); err == nil {
		t.Errorf("expected error for non-200 profile page")
	}
}

// Fakes for harvester runs

type fakeBrandLister struct {
	brands  []brand.Brand
	updated map[string]int
}

func (f *fakeBrandLister) ListBrands(ctx context.Context) ([]brand.Brand, error) {
	return f.brands, nil
}

func (f *fakeBrandLister) UpdateFollowerCount(ctx context.Context, id string, count int) error {
	if f.updated == nil {
		f.updated = make(map[string]int)
	}
	f.updated[id] = count
	return nil
}

type fakeUpserter struct {
	samples []engagement.FollowerSample
}

func (f *fakeUpserter) UpsertSample(ctx context.Context, sample engagement.FollowerSample) error {
	f.samples = append(f.samples, sample)
	return nil
}

type fakeFetcher struct {
	counts map[string]int
}

func (f *fakeFetcher) FetchFollowerCount(ctx context.Context, handle string) (int, error) {
	count, ok := f.counts[handle]
	if !ok {
		return 0, fmt.Errorf("profile %s unavailable", handle)
	}
	return count, nil
}

func TestHarvesterRun(t *testing.T) {
	lister := &fakeBrandLister{brands: []brand.Brand{
		{ID: "b1", InstagramHandle: "maplecrunch"},
		{ID: "b2", InstagramHandle: ""},        // no handle: skipped
		{ID: "b3", InstagramHandle: "brokenco"}, // fetch fails
	}}
	upserter := &fakeUpserter{}
	fetcher := &fakeFetcher{counts: map[string]int{"maplecrunch": 4200}}

	harvester := NewHarvester(lister, upserter, fetcher, nil, HarvesterConfig{})

	result, err := harvester.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Harvested != 1 || result.Skipped != 1 || result.Failed != 1 {
		t.Errorf("expected 1 harvested / 1 skipped / 1 failed, got %+v", result)
	}
	if len(upserter.samples) != 1 {
		t.Fatalf("expected 1 stored sample, got %d", len(upserter.samples))
	}
	sample := upserter.samples[0]
	if sample.BrandID != "b1" || sample.Count != 4200 {
		t.Errorf("unexpected sample %+v", sample)
	}
	if !sample.Date.Equal(sample.Date.Truncate(24 * time.Hour)) {
		t.Errorf("expected date truncated to a calendar day, got %v", sample.Date)
	}
	if lister.updated["b1"] != 4200 {
		t.Errorf("expected denormalized follower count refreshed, got %v", lister.updated)
	}
}

func TestSampleEventRoundTrip(t *testing.T) {
	in := engagement.FollowerSample{
		BrandID: "b1",
		Date:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		Count:   4200,
	}

	payload, err := EncodeSampleEvent(in)
	if err != nil {
		t.Fatalf("unexpected encode error: %v", err)
	}
	out, err := DecodeSampleEvent(payload)
	if err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if out.BrandID != in.BrandID || out.Count != in.Count || !out.Date.Equal(in.Date) {
		t.Errorf("round trip changed the sample: %+v vs %+v", in, out)
	}

	if _, err := DecodeSampleEvent([]byte("not json")); err == nil {
		t.Errorf("expected error for malformed payload")
	}
}
