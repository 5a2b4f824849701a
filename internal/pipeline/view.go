package pipeline

import "github.com/veriscope/veriscope-api/internal/models"

// ResultView is a stateful view over a case-search result. Changing the view
// mode, confidence filter, search text or sort key resets the page index to
// 1, matching the dashboard table behavior.
type ResultView struct {
	result models.CaseSearchResult
	opts   Options
	page   int
}

// NewResultView creates a view over a search result with default parameters:
// all cases, no confidence floor, sorted by confidence, page 1.
func NewResultView(result models.CaseSearchResult) *ResultView {
	return &ResultView{
		result: result,
		opts: Options{
			ViewMode: ViewAll,
			SortBy:   SortConfidence,
		},
		page: 1,
	}
}

// SetViewMode switches the displayed partition.
func (v *ResultView) SetViewMode(mode ViewMode) {
	if v.opts.ViewMode != mode {
		v.opts.ViewMode = mode
		v.page = 1
	}
}

// SetConfidenceFilter updates the minimum confidence threshold.
func (v *ResultView) SetConfidenceFilter(threshold float64) {
	if v.opts.ConfidenceFilter != threshold {
		v.opts.ConfidenceFilter = threshold
		v.page = 1
	}
}

// SetSearchText updates the free-text filter.
func (v *ResultView) SetSearchText(text string) {
	if v.opts.SearchText != text {
		v.opts.SearchText = text
		v.page = 1
	}
}

// SetSortBy updates the sort key.
func (v *ResultView) SetSortBy(key SortKey) {
	if v.opts.SortBy != key {
		v.opts.SortBy = key
		v.page = 1
	}
}

// SetPage moves to the given page, clamped to the valid range.
func (v *ResultView) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	if total := v.TotalPages(); page > total {
		page = total
	}
	v.page = page
}

// PageIndex returns the current 1-based page index.
func (v *ResultView) PageIndex() int {
	return v.page
}

// Filtered returns the full filtered and sorted result list.
func (v *ResultView) Filtered() []models.CaseRecord {
	return FilterResults(&v.result, v.opts)
}

// Page returns the current page of results, at most PageSize items.
func (v *ResultView) Page() []models.CaseRecord {
	return Paginate(v.Filtered(), v.page, PageSize)
}

// TotalPages returns the number of pages for the current filters, at least 1.
func (v *ResultView) TotalPages() int {
	n := len(v.Filtered())
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}
