// internal/server/handlers/analytics.go

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"bitescout/internal/adapter/storage"
	"bitescout/internal/domain/engagement"
)

// ClickTracker records interest events and returns fresh analytics
type ClickTracker interface {
	TrackClick(brandID string) (engagement.Analytics, error)
}

// SamplePersister durably stores harvested follower samples
type SamplePersister interface {
	UpsertSample(ctx context.Context, sample engagement.FollowerSample) error
}

// AnalyticsHandler handles engagement and analytics HTTP requests
type AnalyticsHandler struct {
	store     engagement.Store
	calc      engagement.Calculator
	tracker   ClickTracker
	directory BrandDirectory
	persister SamplePersister
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(
	store engagement.Store,
	calc engagement.Calculator,
	tracker ClickTracker,
	directory BrandDirectory,
	persister SamplePersister,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:     store,
		calc:      calc,
		tracker:   tracker,
		directory: directory,
		persister: persister,
	}
}

// GetAnalytics returns a brand's current analytics
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.directory.GetBrand(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Brand not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get brand")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, h.calc.Analytics(id))
}

// TrackClick records one website click-through for a brand and returns
// its freshly recomputed analytics
func (h *AnalyticsHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	analytics, err := h.tracker.TrackClick(id)
	if err != nil {
		if errors.Is(err, engagement.ErrUnknownBrand) {
			respondWithError(w, http.StatusNotFound, "Brand not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to track click")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, analytics)
}

// GetFollowerHistory returns a brand's follower samples, oldest first.
// An empty history is a valid 200 response.
func (h *AnalyticsHandler) GetFollowerHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.directory.GetBrand(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Brand not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get brand")
		}
		return
	}

	history := h.store.History(id)
	if history == nil {
		history = []engagement.FollowerSample{}
	}

	respondWithJSON(w, http.StatusOK, history)
}

// sampleRequest is the harvester-facing sample payload
type sampleRequest struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RecordSample accepts a dated follower sample for a brand. Malformed
// samples are rejected, never stored.
func (h *AnalyticsHandler) RecordSample(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.directory.GetBrand(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "Brand not found")
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to get brand")
		}
		return
	}

	var req sampleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondWithError(w, http.StatusUnprocessableEntity, "Invalid sample date")
		return
	}

	sample := engagement.FollowerSample{BrandID: id, Date: date, Count: req.Count}

	// Session store first: it validates and triggers invalidation.
	if err := h.store.RecordFollowerSample(id, date, req.Count); err != nil {
		if errors.Is(err, engagement.ErrInvalidSample) {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
		} else {
			respondWithError(w, http.StatusInternalServerError, "Failed to record sample")
		}
		return
	}

	if err := h.persister.UpsertSample(r.Context(), sample); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to persist sample")
		return
	}

	respondWithJSON(w, http.StatusOK, h.calc.Analytics(id))
}
