package scoring

// Turnover slab estimates in rupees. The registry only reports a banded
// label, so arithmetic goes through this table.
var slabEstimates = map[string]int64{
	"above 5 Cr.":          7500000,
	"1.5 Cr. to 5 Cr.":     3250000,
	"50 Lakhs to 1.5 Cr.":  1000000,
	"20 Lakhs to 50 Lakhs": 350000,
	"up to 20 Lakhs":       100000,
}

// defaultTurnoverEstimate is used for unrecognized slab labels.
const defaultTurnoverEstimate int64 = 250000

// EstimateTurnoverFromSlab maps a turnover slab label to a rupee estimate.
func EstimateTurnoverFromSlab(slab string) int64 {
	if estimate, ok := slabEstimates[slab]; ok {
		return estimate
	}
	return defaultTurnoverEstimate
}

// CalculateCreditLimit applies a score-banded multiplier to the estimated
// turnover to produce a recommended credit limit in rupees.
func CalculateCreditLimit(score int, estimatedTurnover int64) int64 {
	var multiplier float64
	switch {
	case score >= 80:
		multiplier = 0.25
	case score >= 65:
		multiplier = 0.15
	case score >= 50:
		multiplier = 0.10
	default:
		multiplier = 0.05
	}
	return int64(float64(estimatedTurnover) * multiplier)
}
