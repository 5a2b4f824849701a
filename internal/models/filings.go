package models

import (
	"sort"
	"time"
)

// Filing dates arrive from the registry as dd/mm/yyyy.
const filingDateLayout = "02/01/2006"

func parseFilingDate(s string) (time.Time, bool) {
	t, err := time.Parse(filingDateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func sortFilingsByDateDesc(filings []FilingRecord) {
	sort.SliceStable(filings, func(i, j int) bool {
		ti, oki := parseFilingDate(filings[i].DateOfFiling)
		tj, okj := parseFilingDate(filings[j].DateOfFiling)
		if !oki || !okj {
			return false
		}
		return ti.After(tj)
	})
}
