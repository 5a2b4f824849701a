package scoring

import (
	"testing"

	"github.com/veriscope/veriscope-api/internal/models"
)

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func TestAssessFactors_StrongRecord(t *testing.T) {
	positive, negative := AssessFactors(strongRecord())

	expected := []string{
		"GSTIN is active",
		"Multiple promoters on record",
		"In business for over 3 years",
		"Consistent return filing history",
		"High reported turnover band",
		"Aadhaar validated",
		"Contact details on record",
	}
	for _, want := range expected {
		if !contains(positive, want) {
			t.Errorf("Expected positive factor %q, got %v", want, positive)
		}
	}
	if len(negative) != 0 {
		t.Errorf("Expected no negative factors for strong record, got %v", negative)
	}
}

func TestAssessFactors_WeakRecord(t *testing.T) {
	record := &models.BusinessRecord{
		GSTINStatus:        models.GSTINStatusCancelled,
		AnnualTurnover:     models.SlabUpTo20L,
		DateOfCancellation: "01/04/2024",
	}

	positive, negative := AssessFactors(record)
	if len(positive) != 0 {
		t.Errorf("Expected no positive factors, got %v", positive)
	}

	expected := []string{
		"GSTIN is not active (Cancelled)",
		"Fewer than two promoters on record",
		"Registration date unavailable",
		"No returns filed",
		"Low reported turnover band",
		"Registration cancellation on record",
	}
	for _, want := range expected {
		if !contains(negative, want) {
			t.Errorf("Expected negative factor %q, got %v", want, negative)
		}
	}
}

func TestAssessFactors_UnknownStatus(t *testing.T) {
	_, negative := AssessFactors(&models.BusinessRecord{})
	if !contains(negative, "GSTIN is not active (unknown)") {
		t.Errorf("Expected empty status to read as unknown, got %v", negative)
	}
}

func TestAssessFactors_PartialFilingHistoryIsNeutral(t *testing.T) {
	record := &models.BusinessRecord{
		GSTINStatus:  models.GSTINStatusActive,
		FilingStatus: filings(5, 0),
	}

	positive, negative := AssessFactors(record)
	if contains(positive, "Consistent return filing history") {
		t.Error("Five filings should not count as consistent history")
	}
	if contains(negative, "No returns filed") {
		t.Error("Five filings should not flag as no returns filed")
	}
}

func TestAssessFactors_NilRecord(t *testing.T) {
	positive, negative := AssessFactors(nil)
	if positive != nil || negative != nil {
		t.Errorf("Expected nil factor lists for nil record, got %v / %v", positive, negative)
	}
}
