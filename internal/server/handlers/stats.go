// internal/server/handlers/stats.go

package handlers

import (
	"net/http"

	rankingService "bitescout/internal/service/ranking"
	"bitescout/internal/service/stats"
)

// StatsHandler handles collection-statistics HTTP requests
type StatsHandler struct {
	directory BrandDirectory
	service   *stats.Service
	lookup    rankingService.AnalyticsLookup
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(directory BrandDirectory, service *stats.Service, lookup rankingService.AnalyticsLookup) *StatsHandler {
	return &StatsHandler{
		directory: directory,
		service:   service,
		lookup:    lookup,
	}
}

// GetStats returns the directory dashboard numbers
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	brands, err := h.directory.ListBrands(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to list brands")
		return
	}

	respondWithJSON(w, http.StatusOK, h.service.Collect(brands, h.lookup))
}
