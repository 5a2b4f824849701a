package models

import "encoding/json"

// CaseRecord is a court-case candidate returned by the upstream case-search
// classifier. Confidence and rejection reasons are computed upstream; this
// service only consumes and re-filters them.
type CaseRecord struct {
	ID               string   `json:"id"`
	Petitioners      []string `json:"petitioners"`
	Respondents      []string `json:"respondents"`
	Acts             []string `json:"acts"`
	Sections         []string `json:"sections"`
	FilingDate       string   `json:"filing_date,omitempty"`
	Court            string   `json:"court"`
	Status           string   `json:"status"`
	Confidence       *float64 `json:"confidence,omitempty"`
	Evidence         []string `json:"evidence,omitempty"`
	RejectionReasons []string `json:"rejection_reasons,omitempty"`
	RawScore         float64  `json:"raw_score"`
}

// ConfidenceOrZero treats a missing confidence as 0 for filtering and sorting.
func (c *CaseRecord) ConfidenceOrZero() float64 {
	if c.Confidence == nil {
		return 0
	}
	return *c.Confidence
}

// CaseSearchResult is the upstream classifier response. All, Matches and
// Rejected are three independently supplied arrays; no set-algebra
// relationship between them is assumed.
type CaseSearchResult struct {
	All        []CaseRecord    `json:"all_cases"`
	Matches    []CaseRecord    `json:"matches"`
	Rejected   []CaseRecord    `json:"rejected"`
	Statistics json.RawMessage `json:"statistics,omitempty"`
}

// SearchProfile is the identity payload sent to the case-search API. Its
// serialized form doubles as the dedup fingerprint for redundant searches.
type SearchProfile struct {
	Name         string `json:"name"`
	FatherName   string `json:"father_name,omitempty"`
	Address      string `json:"address,omitempty"`
	State        string `json:"state,omitempty"`
	BusinessName string `json:"business_name,omitempty"`
	YearFrom     int    `json:"year_from,omitempty"`
	YearTo       int    `json:"year_to,omitempty"`
}

// Fingerprint returns the canonical dedup key for a profile.
func (p SearchProfile) Fingerprint() string {
	b, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(b)
}
