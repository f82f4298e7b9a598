// internal/service/ranking/pipeline.go

package ranking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"bitescout/internal/domain/brand"
	"bitescout/internal/domain/engagement"
	"bitescout/internal/domain/ranking"
)

// ItemsPerPage is the fixed page size of the directory listing
const ItemsPerPage = 20

// AnalyticsLookup resolves a brand id to its current analytics
type AnalyticsLookup func(brandID string) engagement.Analytics

// Pipeline applies filter, sort and pagination to the brand collection.
// It is a pure function of its inputs: identical inputs always yield an
// identical page and identical pagination metadata.
type Pipeline struct {
	pageSize int
}

// NewPipeline creates a ranking pipeline with the fixed page size
func NewPipeline() *Pipeline {
	return &Pipeline{pageSize: ItemsPerPage}
}

// Rank produces the exact page of brands a caller should see for the
// given filter state. A page past the last valid page yields an empty
// result set, not an error.
func (p *Pipeline) Rank(
	brands []brand.Brand,
	lookup AnalyticsLookup,
	state ranking.FilterState,
) ([]ranking.RankedBrand, ranking.PaginationInfo, error) {
	if err := state.Validate(); err != nil {
		return nil, ranking.PaginationInfo{}, fmt.Errorf("invalid filter state: %w", err)
	}

	filtered := p.filter(brands, state)

	ranked := make([]ranking.RankedBrand, 0, len(filtered))
	for _, b := range filtered {
		var a engagement.Analytics
		if lookup != nil {
			a = lookup(b.ID)
		}
		ranked = append(ranked, ranking.RankedBrand{Brand: b, Analytics: a})
	}

	p.sort(ranked, state.SortBy, state.SortOrder)

	page, info := p.paginate(ranked, state.Page)
	return page, info, nil
}

// filter keeps brands matching every active predicate; the predicates are
// AND-combined and never touch fields outside the filterable set
func (p *Pipeline) filter(brands []brand.Brand, state ranking.FilterState) []brand.Brand {
	search := strings.ToLower(strings.TrimSpace(state.Search))

	matched := make([]brand.Brand, 0, len(brands))
	for _, b := range brands {
		if search != "" && !matchesSearch(b, search) {
			continue
		}
		if filterSet(state.Category) && string(b.Category) != state.Category {
			continue
		}
		if filterSet(state.PricePoint) && string(b.PricePoint) != state.PricePoint {
			continue
		}
		if b.Rating < state.MinRating {
			continue
		}
		if filterSet(state.LaunchYear) && strconv.Itoa(b.LaunchYear) != state.LaunchYear {
			continue
		}
		matched = append(matched, b)
	}
	return matched
}

// matchesSearch reports a case-insensitive substring match against the
// brand's name, description or any ingredient
func matchesSearch(b brand.Brand, search string) bool {
	if strings.Contains(strings.ToLower(b.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(b.Description), search) {
		return true
	}
	for _, ingredient := range b.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), search) {
			return true
		}
	}
	return false
}

// sort orders the collection by the selected key. Ties are always broken
// by ascending brand id so equal keys still produce a deterministic,
// stable order in either direction.
func (p *Pipeline) sort(items []ranking.RankedBrand, key ranking.SortKey, order ranking.SortOrder) {
	less := comparatorFor(key)
	desc := order == ranking.OrderDesc

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if desc {
			a, b = b, a
		}
		switch {
		case less(a, b):
			return true
		case less(b, a):
			return false
		default:
			return items[i].Brand.ID < items[j].Brand.ID
		}
	})
}

// comparatorFor returns the ascending comparator for a sort key
func comparatorFor(key ranking.SortKey) func(a, b ranking.RankedBrand) bool {
	switch key {
	case ranking.SortByName:
		return func(a, b ranking.RankedBrand) bool {
			return strings.ToLower(a.Brand.Name) < strings.ToLower(b.Brand.Name)
		}
	case ranking.SortByRating:
		return func(a, b ranking.RankedBrand) bool {
			return a.Brand.Rating < b.Brand.Rating
		}
	case ranking.SortByLaunchYear:
		return func(a, b ranking.RankedBrand) bool {
			return a.Brand.LaunchYear < b.Brand.LaunchYear
		}
	case ranking.SortByFollowers:
		return func(a, b ranking.RankedBrand) bool {
			return a.Brand.InstagramFollowers < b.Brand.InstagramFollowers
		}
	default:
		return func(a, b ranking.RankedBrand) bool {
			return a.Analytics.HotScore < b.Analytics.HotScore
		}
	}
}

// paginate slices the sorted collection into the 1-indexed requested page
func (p *Pipeline) paginate(items []ranking.RankedBrand, page int) ([]ranking.RankedBrand, ranking.PaginationInfo) {
	totalItems := len(items)
	totalPages := (totalItems + p.pageSize - 1) / p.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	info := ranking.PaginationInfo{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		ItemsPerPage: p.pageSize,
	}

	start := (page - 1) * p.pageSize
	if start >= totalItems {
		return []ranking.RankedBrand{}, info
	}
	end := start + p.pageSize
	if end > totalItems {
		end = totalItems
	}
	return items[start:end], info
}

func filterSet(value string) bool {
	return value != "" && value != ranking.FilterUnset
}
