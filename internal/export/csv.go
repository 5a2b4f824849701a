package export

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/veriscope/veriscope-api/internal/models"
)

// BuildCSV serializes a scored business record into a flat CSV with one row
// per filing plus a leading overview block.
func BuildCSV(record *models.BusinessRecord, score models.TrustScoreResult) ([]byte, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	overview := [][]string{
		{"Business Name", record.TradeName},
		{"Legal Name", record.LegalName},
		{"GSTIN", record.GSTIN},
		{"PAN", record.PAN},
		{"Constitution of Business", record.ConstitutionOfBusiness},
		{"Taxpayer Type", record.TaxpayerType},
		{"GSTIN Status", record.GSTINStatus},
		{"Registration Date", record.DateOfRegistration},
		{"Core Business Activity", record.CoreBusinessActivity},
		{"Promoters", strings.Join(record.Promoters, "; ")},
		{"Annual Turnover", record.AnnualTurnover},
		{"Trust Score", fmt.Sprintf("%d%%", score.Score)},
		{"Risk Assessment", score.Label},
		{"Recommended Credit Limit", FormatCurrency(score.CreditLimit)},
	}
	for _, row := range overview {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	if filings := record.AllFilings(); len(filings) > 0 {
		if err := writer.Write([]string{}); err != nil {
			return nil, err
		}
		if err := writer.Write([]string{"Return Type", "Financial Year", "Tax Period", "Date of Filing", "Status", "Mode"}); err != nil {
			return nil, err
		}
		for _, f := range filings {
			row := []string{f.ReturnType, f.FinancialYear, f.TaxPeriod, f.DateOfFiling, f.Status, f.ModeOfFiling}
			if err := writer.Write(row); err != nil {
				return nil, err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return []byte(output.String()), nil
}
