package scoring

import (
	"time"

	"github.com/veriscope/veriscope-api/internal/models"
)

// CalculateFSSAIScore computes a 0-100 compliance score for a food-business
// license. Same range and risk labels as the trust score, but a simpler
// additive scale since FSSAI records carry far fewer signals.
func (e *Engine) CalculateFSSAIScore(record *models.FSSAIRecord) int {
	if record == nil {
		return 0
	}

	score := 0

	switch record.Status {
	case models.FSSAIStatusActive:
		score += 40
	case models.FSSAIStatusSuspended:
		score += 15
	}

	score += fssaiValidityScore(record.ValidUpto)

	switch n := len(record.Products); {
	case n >= 5:
		score += 15
	case n >= 1:
		score += 10
	}

	switch record.LicenseType {
	case "Central":
		score += 10
	case "State":
		score += 8
	case "Registration":
		score += 5
	}

	if record.ContactEmail != "" || record.ContactMobile != "" {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}

func fssaiValidityScore(validUpto string) int {
	expiry, ok := parseRegistrationDate(validUpto)
	if !ok {
		return 0
	}
	remaining := time.Until(expiry)
	switch {
	case remaining > 365*24*time.Hour:
		return 25
	case remaining > 0:
		return 15
	default:
		return 0
	}
}
