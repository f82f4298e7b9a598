// internal/server/handlers/brand.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"bitescout/internal/adapter/storage"
	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/ranking"
	rankingService "bitescout/internal/service/ranking"
)

// BrandDirectory is the durable brand collection the handlers read from
// and write to
type BrandDirectory interface {
	CreateBrand(ctx context.Context, b brand.Brand) error
	GetBrand(ctx context.Context, id string) (*brand.Brand, error)
	ListBrands(ctx context.Context) ([]brand.Brand, error)
}

// BrandRegistrar makes newly created brands known to the session
// engagement store
type BrandRegistrar interface {
	RegisterBrand(brandID string)
}

// BrandHandler handles brand-related HTTP requests
type BrandHandler struct {
	directory BrandDirectory
	registrar BrandRegistrar
	pipeline  *rankingService.Pipeline
	lookup    rankingService.AnalyticsLookup
}

// NewBrandHandler creates a new brand handler
func NewBrandHandler(
	directory BrandDirectory,
	registrar BrandRegistrar,
	pipeline *rankingService.Pipeline,
	lookup rankingService.AnalyticsLookup,
) *BrandHandler {
	return &BrandHandler{
		directory: directory,
		registrar: registrar,
		pipeline:  pipeline,
		lookup:    lookup,
	}
}

// listResponse is the ranked listing payload
type listResponse struct {
	Items      []ranking.RankedBrand  `json:"items"`
	Pagination ranking.PaginationInfo `json:"pagination"`
}

// ListBrands returns the ranked, filtered, paginated brand listing
func (h *BrandHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	state, err := filterStateFromQuery(r)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	brands, err := h.directory.ListBrands(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list brands")
		return
	}

	page, info, err := h.pipeline.Rank(brands, h.lookup, state)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, listResponse{Items: page, Pagination: info})
}

// brandRequest is the brand submission payload
type brandRequest struct {
	Name               string               `json:"name"`
	Description        string               `json:"description"`
	Category           string               `json:"category"`
	PricePoint         string               `json:"pricePoint"`
	LaunchYear         int                  `json:"launchYear"`
	Website            string               `json:"website"`
	LogoURL            string               `json:"logoUrl"`
	Rating             float64              `json:"rating"`
	InstagramHandle    string               `json:"instagramHandle"`
	InstagramFollowers int                  `json:"instagramFollowers"`
	Ingredients        []string             `json:"ingredients"`
	Influencers        []string             `json:"influencers"`
	RetailStores       []string             `json:"retailStores"`
	TargetAudience     brand.TargetAudience `json:"targetAudience"`
}

// CreateBrand accepts a brand submission
func (h *BrandHandler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := brand.New(brand.Brand{
		Name:               req.Name,
		Description:        req.Description,
		Category:           brand.Category(req.Category),
		PricePoint:         brand.PricePoint(req.PricePoint),
		LaunchYear:         req.LaunchYear,
		Website:            req.Website,
		LogoURL:            req.LogoURL,
		Rating:             req.Rating,
		InstagramHandle:    req.InstagramHandle,
		InstagramFollowers: req.InstagramFollowers,
		Ingredients:        req.Ingredients,
		Influencers:        req.Influencers,
		RetailStores:       req.RetailStores,
		TargetAudience:     req.TargetAudience,
	})
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := h.directory.CreateBrand(r.Context(), b); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to create brand")
		return
	}

	h.registrar.RegisterBrand(b.ID)

	respondWithJSON(w, http.StatusCreated, b)
}

// GetBrand returns a specific brand by id
func (h *BrandHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "Missing brand ID")
		return
	}

	b, err := h.directory.GetBrand(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Brand not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get brand")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, b)
}

// filterStateFromQuery builds a FilterState from query parameters,
// falling back to the explicit defaults for absent fields
func filterStateFromQuery(r *http.Request) (ranking.FilterState, error) {
	state := ranking.DefaultFilterState()
	q := r.URL.Query()

	if v := q.Get("search"); v != "" {
		state.Search = v
	}
	if v := q.Get("category"); v != "" {
		state.Category = v
	}
	if v := q.Get("price_point"); v != "" {
		state.PricePoint = v
	}
	if v := q.Get("launch_year"); v != "" {
		state.LaunchYear = v
	}
	if v := q.Get("min_rating"); v != "" {
		minRating, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return ranking.FilterState{}, errors.New("invalid min_rating")
		}
		state.MinRating = minRating
	}
	if v := q.Get("sort_by"); v != "" {
		state.SortBy = ranking.SortKey(v)
	}
	if v := q.Get("sort_order"); v != "" {
		state.SortOrder = ranking.SortOrder(v)
	}
	if v := q.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return ranking.FilterState{}, errors.New("invalid page")
		}
		state.Page = page
	}

	return state, nil
}
