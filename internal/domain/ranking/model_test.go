// internal/domain/ranking/model_test.go

package ranking

import "testing"

func TestDefaultFilterState(t *testing.T) {
	state := DefaultFilterState()

	if state.Search != "" || state.Category != FilterUnset || state.PricePoint != FilterUnset {
		t.Errorf("unexpected filter defaults: %+v", state)
	}
	if state.MinRating != 0 || state.LaunchYear != FilterUnset {
		t.Errorf("unexpected filter defaults: %+v", state)
	}
	if state.SortBy != SortByHotScore || state.SortOrder != OrderDesc || state.Page != 1 {
		t.Errorf("unexpected sort/page defaults: %+v", state)
	}
	if err := state.Validate(); err != nil {
		t.Errorf("defaults must validate, got %v", err)
	}
}

func TestFilterStateValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*FilterState)
		wantErr bool
	}{
		{"defaults", func(f *FilterState) {}, false},
		{"page zero", func(f *FilterState) { f.Page = 0 }, true},
		{"negative rating", func(f *FilterState) { f.MinRating = -1 }, true},
		{"rating above five", func(f *FilterState) { f.MinRating = 6 }, true},
		{"bad sort key", func(f *FilterState) { f.SortBy = "virality" }, true},
		{"bad sort order", func(f *FilterState) { f.SortOrder = "up" }, true},
		{"every sort key valid", func(f *FilterState) { f.SortBy = SortByFollowers; f.SortOrder = OrderAsc }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := DefaultFilterState()
			tc.mutate(&state)
			err := state.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestWithPageDoesNotMutateReceiver(t *testing.T) {
	state := DefaultFilterState()
	paged := state.WithPage(4)

	if state.Page != 1 {
		t.Errorf("receiver mutated: page %d", state.Page)
	}
	if paged.Page != 4 {
		t.Errorf("expected page 4, got %d", paged.Page)
	}
}
