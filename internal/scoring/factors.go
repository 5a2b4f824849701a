package scoring

import (
	"strings"
	"time"

	"github.com/veriscope/veriscope-api/internal/models"
)

// AssessFactors derives the qualitative positive/negative factor lists shown
// on PDF reports. This is a separate rules pass from the weighted scorecard:
// its output is display tags, not a number, and the two are kept independent.
func AssessFactors(record *models.BusinessRecord) (positive, negative []string) {
	if record == nil {
		return nil, nil
	}

	if record.GSTINStatus == models.GSTINStatusActive {
		positive = append(positive, "GSTIN is active")
	} else {
		negative = append(negative, "GSTIN is not active ("+orUnknown(record.GSTINStatus)+")")
	}

	if len(record.Promoters) >= 2 {
		positive = append(positive, "Multiple promoters on record")
	} else {
		negative = append(negative, "Fewer than two promoters on record")
	}

	if registered, ok := parseRegistrationDate(record.DateOfRegistration); ok {
		years := time.Since(registered).Hours() / 24 / 365.25
		if years >= 3 {
			positive = append(positive, "In business for over 3 years")
		} else {
			negative = append(negative, "Recently registered business")
		}
	} else {
		negative = append(negative, "Registration date unavailable")
	}

	if filed := record.FiledCount(); filed >= 12 {
		positive = append(positive, "Consistent return filing history")
	} else if filed == 0 {
		negative = append(negative, "No returns filed")
	}

	switch record.AnnualTurnover {
	case models.SlabAbove5Cr, models.Slab1To5Cr:
		positive = append(positive, "High reported turnover band")
	case models.SlabUpTo20L:
		negative = append(negative, "Low reported turnover band")
	}

	if strings.EqualFold(record.AadhaarValidation, "Yes") {
		positive = append(positive, "Aadhaar validated")
	}

	if record.MobileNumber != "" && record.Email != "" {
		positive = append(positive, "Contact details on record")
	}

	if record.DateOfCancellation != "" {
		negative = append(negative, "Registration cancellation on record")
	}

	return positive, negative
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
