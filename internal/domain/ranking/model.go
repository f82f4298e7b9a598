// internal/domain/ranking/model.go

package ranking

import (
	"fmt"

	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
)

// SortKey selects the comparator applied by the ranking pipeline
type SortKey string

const (
	SortByHotScore   SortKey = "hotScore"
	SortByName       SortKey = "name"
	SortByRating     SortKey = "rating"
	SortByLaunchYear SortKey = "launchYear"
	SortByFollowers  SortKey = "followers"
)

// SortOrder selects the sort direction
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// FilterUnset is the sentinel meaning a select filter is not applied
const FilterUnset = "All"

// FilterState is the complete set of query parameters that determine a
// result page. It is transient and session-scoped, never persisted.
type FilterState struct {
	Search     string
	Category   string
	PricePoint string
	MinRating  float64
	LaunchYear string
	SortBy     SortKey
	SortOrder  SortOrder
	Page       int
}

// DefaultFilterState returns the explicit defaults for every field
func DefaultFilterState() FilterState {
	return FilterState{
		Search:     "",
		Category:   FilterUnset,
		PricePoint: FilterUnset,
		MinRating:  0,
		LaunchYear: FilterUnset,
		SortBy:     SortByHotScore,
		SortOrder:  OrderDesc,
		Page:       1,
	}
}

// Validate fails fast on a malformed filter state, before any filtering
// begins
func (f FilterState) Validate() error {
	if f.Page < 1 {
		return fmt.Errorf("page must be >= 1, got %d", f.Page)
	}
	if f.MinRating < 0 || f.MinRating > 5 {
		return fmt.Errorf("min rating %.1f out of range [0,5]", f.MinRating)
	}
	switch f.SortBy {
	case SortByHotScore, SortByName, SortByRating, SortByLaunchYear, SortByFollowers:
	default:
		return fmt.Errorf("unknown sort key %q", f.SortBy)
	}
	switch f.SortOrder {
	case OrderAsc, OrderDesc:
	default:
		return fmt.Errorf("unknown sort order %q", f.SortOrder)
	}
	return nil
}

// WithPage returns a copy of the filter state positioned on the given page
func (f FilterState) WithPage(page int) FilterState {
	f.Page = page
	return f
}

// RankedBrand pairs a brand with its analytics for presentation
type RankedBrand struct {
	Brand     brand.Brand          `json:"brand"`
	Analytics engagement.Analytics `json:"analytics"`
}

// PaginationInfo describes where a page sits in the filtered collection
type PaginationInfo struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}
