package scoring

import (
	"testing"

	"github.com/veriscope/veriscope-api/internal/models"
)

func TestEstimateTurnoverFromSlab(t *testing.T) {
	tests := []struct {
		slab string
		want int64
	}{
		{models.SlabAbove5Cr, 7500000},
		{models.Slab1To5Cr, 3250000},
		{models.Slab50LTo1Cr, 1000000},
		{models.Slab20To50L, 350000},
		{models.SlabUpTo20L, 100000},
		{"Slab: Rs. 0 to 40 lakhs", 250000},
		{"", 250000},
	}

	for _, tt := range tests {
		if got := EstimateTurnoverFromSlab(tt.slab); got != tt.want {
			t.Errorf("EstimateTurnoverFromSlab(%q) = %d, want %d", tt.slab, got, tt.want)
		}
	}
}

func TestCalculateCreditLimit_MultiplierBands(t *testing.T) {
	const turnover = 1000000

	tests := []struct {
		score int
		want  int64
	}{
		{95, 250000},
		{80, 250000},
		{79, 150000},
		{65, 150000},
		{64, 100000},
		{50, 100000},
		{49, 50000},
		{0, 50000},
	}

	for _, tt := range tests {
		if got := CalculateCreditLimit(tt.score, turnover); got != tt.want {
			t.Errorf("CalculateCreditLimit(%d, %d) = %d, want %d", tt.score, turnover, got, tt.want)
		}
	}
}

func TestCalculateCreditLimit_ZeroTurnover(t *testing.T) {
	if got := CalculateCreditLimit(90, 0); got != 0 {
		t.Errorf("Expected zero turnover to yield zero limit, got %d", got)
	}
}
