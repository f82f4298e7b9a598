// internal/server/handlers/handlers_test.go

package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"bitescout/internal/adapter/storage"
	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
	"bitescout/internal/service/analytics"
	engagementService "bitescout/internal/service/engagement"
	rankingService "bitescout/internal/service/ranking"
	statsService "bitescout/internal/service/stats"
	trackerService "bitescout/internal/service/tracker"
)

// fakeDirectory is an in-memory BrandDirectory
type fakeDirectory struct {
	brands []brand.Brand
}

func (d *fakeDirectory) CreateBrand(ctx context.Context, b brand.Brand) error {
	d.brands = append(d.brands, b)
	return nil
}

func (d *fakeDirectory) GetBrand(ctx context.Context, id string) (*brand.Brand, error) {
	for i := range d.brands {
		if d.brands[i].ID == id {
			return &d.brands[i], nil
		}
	}
	return nil, fmt.Errorf("brand %s: %w", id, storage.ErrNotFound)
}

func (d *fakeDirectory) ListBrands(ctx context.Context) ([]brand.Brand, error) {
	return d.brands, nil
}

// fakePersister is an in-memory SamplePersister
type fakePersister struct {
	samples []engagement.FollowerSample
}

func (p *fakePersister) UpsertSample(ctx context.Context, sample engagement.FollowerSample) error {
	p.samples = append(p.samples, sample)
	return nil
}

func newTestRouter(t *testing.T, brands []brand.Brand) (*chi.Mux, *engagementService.Store) {
	t.Helper()

	directory := &fakeDirectory{brands: brands}
	store := engagementService.NewStore()
	for _, b := range brands {
		store.RegisterBrand(b.ID)
	}
	calc := analytics.NewCalculator(store, analytics.DefaultCalculatorConfig())
	store.RegisterInvalidationHandler(calc.Invalidate)

	brandHandler := NewBrandHandler(directory, store, rankingService.NewPipeline(), calc.Analytics)
	analyticsHandler := NewAnalyticsHandler(store, calc, trackerService.NewTracker(store, calc), directory, &fakePersister{})
	statsHandler := NewStatsHandler(directory, statsService.NewService(), calc.Analytics)

	router := chi.NewRouter()
	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/brands", func(r chi.Router) {
			r.Get("/", brandHandler.ListBrands)
			r.Post("/", brandHandler.CreateBrand)
			r.Get("/{id}", brandHandler.GetBrand)
			r.Get("/{id}/analytics", analyticsHandler.GetAnalytics)
			r.Post("/{id}/click", analyticsHandler.TrackClick)
			r.Get("/{id}/followers", analyticsHandler.GetFollowerHistory)
			r.Post("/{id}/followers", analyticsHandler.RecordSample)
		})
		r.Get("/stats", statsHandler.GetStats)
	})
	return router, store
}

func seedBrands(n int) []brand.Brand {
	brands := make([]brand.Brand, 0, n)
	for i := 0; i < n; i++ {
		brands = append(brands, brand.Brand{
			ID:         fmt.Sprintf("brand-%02d", i),
			Name:       fmt.Sprintf("Brand %02d", i),
			Category:   brand.CategorySnacks,
			PricePoint: brand.PriceMid,
			LaunchYear: 2022,
			Rating:     4.0,
			CreatedAt:  time.Now(),
		})
	}
	return brands
}

func TestListBrandsPaginates(t *testing.T) {
	router, _ := newTestRouter(t, seedBrands(25))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands/?page=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			CurrentPage int `json:"currentPage"`
			TotalPages  int `json:"totalPages"`
			TotalItems  int `json:"totalItems"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}

	if len(resp.Items) != 5 {
		t.Errorf("expected 5 items on page 2 of 25, got %d", len(resp.Items))
	}
	if resp.Pagination.TotalItems != 25 || resp.Pagination.TotalPages != 2 || resp.Pagination.CurrentPage != 2 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
}

func TestListBrandsRejectsMalformedQuery(t *testing.T) {
	router, _ := newTestRouter(t, seedBrands(3))

	for _, query := range []string{"?page=0", "?page=abc", "?min_rating=nope", "?sort_by=virality"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands/"+query, nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %s: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestCreateBrand(t *testing.T) {
	router, store := newTestRouter(t, nil)

	body := `{
		"name": "Maple Crunch",
		"description": "small batch granola",
		"category": "Snacks",
		"pricePoint": "Mid",
		"launchYear": 2024,
		"rating": 4.5,
		"ingredients": ["oats", " maple syrup "]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/", strings.NewReader(body)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created brand.Brand
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if created.ID == "" {
		t.Errorf("expected assigned id")
	}

	// The new brand is immediately trackable.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/"+created.ID+"/click", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 tracking a new brand, got %d", rec.Code)
	}
	if store.InterestCount(created.ID) != 1 {
		t.Errorf("expected 1 interest event recorded")
	}
}

func TestCreateBrandRejectsInvalidSubmission(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	body := `{"name": "", "category": "Snacks", "pricePoint": "Mid", "launchYear": 2024}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/", strings.NewReader(body)))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d", rec.Code)
	}
}

func TestTrackClickUnknownBrandReturns404(t *testing.T) {
	router, store := newTestRouter(t, seedBrands(1))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/ghost/click", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if store.InterestCount("ghost") != 0 {
		t.Errorf("failed click must leave the store unchanged")
	}
}

func TestRecordSampleAndReadHistory(t *testing.T) {
	router, _ := newTestRouter(t, seedBrands(1))

	body := `{"date": "2026-08-01", "count": 1500}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/brand-00/followers", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/brands/brand-00/followers", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var history []engagement.FollowerSample
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if len(history) != 1 || history[0].Count != 1500 {
		t.Errorf("unexpected history %+v", history)
	}
}

func TestRecordSampleRejectsMalformed(t *testing.T) {
	router, _ := newTestRouter(t, seedBrands(1))

	cases := []struct {
		name string
		body string
		want int
	}{
		{"negative count", `{"date": "2026-08-01", "count": -5}`, http.StatusUnprocessableEntity},
		{"bad date", `{"date": "yesterday", "count": 10}`, http.StatusUnprocessableEntity},
		{"not json", `not json`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/brands/brand-00/followers", strings.NewReader(tc.body)))
			if rec.Code != tc.want {
				t.Errorf("expected %d, got %d", tc.want, rec.Code)
			}
		})
	}
}

func TestGetStats(t *testing.T) {
	router, _ := newTestRouter(t, seedBrands(3))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var got statsService.CollectionStats
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected decode error: %v", err)
	}
	if got.TotalBrands != 3 {
		t.Errorf("expected 3 brands in stats, got %d", got.TotalBrands)
	}
}
