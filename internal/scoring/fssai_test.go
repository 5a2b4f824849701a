package scoring

import (
	"testing"
	"time"

	"github.com/veriscope/veriscope-api/internal/models"
)

func TestCalculateFSSAIScore_FullCompliance(t *testing.T) {
	engine := NewEngine()
	record := &models.FSSAIRecord{
		LicenseNumber: "10019022001343",
		Status:        models.FSSAIStatusActive,
		LicenseType:   "Central",
		Products:      []string{"Dairy", "Bakery", "Snacks", "Beverages", "Confectionery"},
		ValidUpto:     time.Now().AddDate(2, 0, 0).Format("02/01/2006"),
		ContactEmail:  "fbo@example.in",
	}

	// 40 status + 25 validity + 15 products + 10 central + 10 contact
	if got := engine.CalculateFSSAIScore(record); got != 100 {
		t.Errorf("Expected fully compliant license to score 100, got %d", got)
	}
}

func TestCalculateFSSAIScore_StatusBands(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		status string
		want   int
	}{
		{models.FSSAIStatusActive, 40},
		{models.FSSAIStatusSuspended, 15},
		{models.FSSAIStatusExpired, 0},
		{models.FSSAIStatusCancelled, 0},
		{"", 0},
	}

	for _, tt := range tests {
		record := &models.FSSAIRecord{Status: tt.status}
		if got := engine.CalculateFSSAIScore(record); got != tt.want {
			t.Errorf("Status %q scored %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestCalculateFSSAIScore_ValidityBands(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		name      string
		validUpto string
		want      int
	}{
		{"over a year remaining", time.Now().AddDate(2, 0, 0).Format("02/01/2006"), 25},
		{"expiring soon", time.Now().AddDate(0, 3, 0).Format("02/01/2006"), 15},
		{"already expired", time.Now().AddDate(-1, 0, 0).Format("02/01/2006"), 0},
		{"unparsable", "soon", 0},
		{"empty", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := &models.FSSAIRecord{ValidUpto: tt.validUpto}
			if got := engine.CalculateFSSAIScore(record); got != tt.want {
				t.Errorf("ValidUpto %q scored %d, want %d", tt.validUpto, got, tt.want)
			}
		})
	}
}

func TestCalculateFSSAIScore_ProductAndTypeBands(t *testing.T) {
	engine := NewEngine()

	record := &models.FSSAIRecord{Products: []string{"Dairy"}}
	if got := engine.CalculateFSSAIScore(record); got != 10 {
		t.Errorf("Expected single product to score 10, got %d", got)
	}

	record = &models.FSSAIRecord{LicenseType: "State"}
	if got := engine.CalculateFSSAIScore(record); got != 8 {
		t.Errorf("Expected State license type to score 8, got %d", got)
	}

	record = &models.FSSAIRecord{LicenseType: "Registration", ContactMobile: "9800000000"}
	if got := engine.CalculateFSSAIScore(record); got != 15 {
		t.Errorf("Expected Registration plus contact to score 15, got %d", got)
	}
}

func TestCalculateFSSAIScore_NilRecord(t *testing.T) {
	engine := NewEngine()
	if got := engine.CalculateFSSAIScore(nil); got != 0 {
		t.Errorf("Expected nil record to score 0, got %d", got)
	}
}
