package pipeline

import (
	"sort"
	"strings"
	"time"

	"github.com/veriscope/veriscope-api/internal/models"
)

// ViewMode selects which case-array partition is displayed
type ViewMode string

const (
	ViewAll      ViewMode = "all"
	ViewMatches  ViewMode = "matches"
	ViewRejected ViewMode = "rejected"
)

// SortKey selects the result ordering
type SortKey string

const (
	SortConfidence SortKey = "confidence"
	SortDate       SortKey = "date"
	SortRelevance  SortKey = "relevance"
)

// PageSize is the fixed page size for result tables.
const PageSize = 10

// Options holds the filter/sort parameters for one pipeline pass
type Options struct {
	ViewMode         ViewMode `json:"view_mode" form:"view_mode"`
	ConfidenceFilter float64  `json:"confidence_filter" form:"confidence_filter"`
	SearchText       string   `json:"search_text" form:"search_text"`
	SortBy           SortKey  `json:"sort_by" form:"sort_by"`
	Page             int      `json:"page" form:"page"`
}

// FilterResults applies the result pipeline in fixed order: view-mode base
// list, confidence threshold, free-text filter, stable sort. The input
// arrays are never mutated; the returned slice is a fresh copy.
func FilterResults(result *models.CaseSearchResult, opts Options) []models.CaseRecord {
	if result == nil {
		return nil
	}

	var base []models.CaseRecord
	switch opts.ViewMode {
	case ViewMatches:
		base = result.Matches
	case ViewRejected:
		base = result.Rejected
	default:
		base = result.All
	}

	filtered := make([]models.CaseRecord, 0, len(base))
	for _, record := range base {
		if record.ConfidenceOrZero() < opts.ConfidenceFilter {
			continue
		}
		if !matchesSearchText(&record, opts.SearchText) {
			continue
		}
		filtered = append(filtered, record)
	}

	sortRecords(filtered, opts.SortBy)
	return filtered
}

// matchesSearchText is a case-insensitive OR match across id, petitioners,
// respondents, acts, court and evidence.
func matchesSearchText(record *models.CaseRecord, search string) bool {
	search = strings.TrimSpace(strings.ToLower(search))
	if search == "" {
		return true
	}

	fields := []string{record.ID, record.Court}
	fields = append(fields, record.Petitioners...)
	fields = append(fields, record.Respondents...)
	fields = append(fields, record.Acts...)
	fields = append(fields, record.Evidence...)

	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func sortRecords(records []models.CaseRecord, sortBy SortKey) {
	switch sortBy {
	case SortDate:
		sort.SliceStable(records, func(i, j int) bool {
			ti, oki := parseCaseDate(records[i].FilingDate)
			tj, okj := parseCaseDate(records[j].FilingDate)
			if !oki || !okj {
				return false
			}
			return ti.After(tj)
		})
	case SortRelevance:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].RawScore > records[j].RawScore
		})
	default:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ConfidenceOrZero() > records[j].ConfidenceOrZero()
		})
	}
}

func parseCaseDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
