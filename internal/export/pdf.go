package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/scoring"
)

// BuildPDF renders a scored business record into a multi-page PDF report:
// colored header, section blocks, a trust-score badge and the qualitative
// positive/negative factor lists.
func BuildPDF(record *models.BusinessRecord, score models.TrustScoreResult) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Header band
	pdf.SetFillColor(31, 78, 121)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(10, 8)
	pdf.CellFormat(0, 10, "Business Verification Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetX(10)
	pdf.CellFormat(0, 6, record.TradeName, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	writeScoreBadge(pdf, score)

	writeSection(pdf, "Business Details", [][2]string{
		{"Legal Name", record.LegalName},
		{"GSTIN", record.GSTIN},
		{"PAN", record.PAN},
		{"Constitution", record.ConstitutionOfBusiness},
		{"Taxpayer Type", record.TaxpayerType},
		{"GSTIN Status", record.GSTINStatus},
		{"Registered On", record.DateOfRegistration},
		{"Core Activity", record.CoreBusinessActivity},
		{"Annual Turnover", record.AnnualTurnover},
	})

	writeSection(pdf, "Contact & Jurisdiction", [][2]string{
		{"Email", record.Email},
		{"Mobile", record.MobileNumber},
		{"Principal Place", record.PrincipalPlace},
		{"State Jurisdiction", record.StateJurisdiction},
		{"Centre Jurisdiction", record.CentreJurisdiction},
	})

	if len(record.Promoters) > 0 {
		writeList(pdf, "Promoters / Directors", record.Promoters)
	}

	positive, negative := scoring.AssessFactors(record)
	writeFactors(pdf, positive, negative)

	writeFilings(pdf, record)

	return finalizePDF(pdf)
}

// BuildFSSAIPDF renders a scored FSSAI license record.
func BuildFSSAIPDF(record *models.FSSAIRecord, score int, label string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFillColor(27, 94, 32)
	pdf.Rect(0, 0, 210, 28, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.SetXY(10, 8)
	pdf.CellFormat(0, 10, "FSSAI License Verification Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.SetX(10)
	pdf.CellFormat(0, 6, record.BusinessName, "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(36)

	writeScoreBadge(pdf, models.TrustScoreResult{Score: score, Label: label})

	writeSection(pdf, "License Details", [][2]string{
		{"License Number", record.LicenseNumber},
		{"License Type", record.LicenseType},
		{"Category", record.LicenseCategory},
		{"Status", record.Status},
		{"Issued On", record.IssuedOn},
		{"Valid Upto", record.ValidUpto},
		{"Premise", record.PremiseAddress},
		{"State", record.State},
		{"District", record.District},
	})

	if len(record.Products) > 0 {
		writeList(pdf, "Licensed Products", record.Products)
	}

	return finalizePDF(pdf)
}

func writeScoreBadge(pdf *gofpdf.Fpdf, score models.TrustScoreResult) {
	switch {
	case score.Score >= 80:
		pdf.SetFillColor(46, 125, 50)
	case score.Score >= 65:
		pdf.SetFillColor(249, 168, 37)
	default:
		pdf.SetFillColor(198, 40, 40)
	}

	y := pdf.GetY()
	pdf.Rect(10, y, 60, 22, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 20)
	pdf.SetXY(10, y+3)
	pdf.CellFormat(60, 9, fmt.Sprintf("%d / 100", score.Score), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetX(10)
	pdf.CellFormat(60, 6, score.Label, "", 1, "C", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	if score.CreditLimit > 0 {
		pdf.SetFont("Arial", "", 10)
		pdf.SetXY(76, y+6)
		pdf.CellFormat(0, 6, "Recommended Credit Limit: "+FormatCurrency(score.CreditLimit), "", 1, "L", false, 0, "")
	}
	pdf.SetY(y + 28)
}

func writeSection(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	writeSectionHeader(pdf, title)
	pdf.SetFont("Arial", "", 10)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(55, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, row[1], "", "L", false)
	}
	pdf.Ln(3)
}

func writeList(pdf *gofpdf.Fpdf, title string, items []string) {
	writeSectionHeader(pdf, title)
	pdf.SetFont("Arial", "", 10)
	for _, item := range items {
		pdf.CellFormat(0, 6, "- "+item, "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func writeFactors(pdf *gofpdf.Fpdf, positive, negative []string) {
	writeSectionHeader(pdf, "Assessment Factors")
	pdf.SetFont("Arial", "", 10)

	pdf.SetTextColor(46, 125, 50)
	for _, factor := range positive {
		pdf.CellFormat(0, 6, "+ "+factor, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(198, 40, 40)
	for _, factor := range negative {
		pdf.CellFormat(0, 6, "- "+factor, "", 1, "L", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)
}

func writeFilings(pdf *gofpdf.Fpdf, record *models.BusinessRecord) {
	filings := record.AllFilings()
	if len(filings) == 0 {
		return
	}

	writeSectionHeader(pdf, "Return Filing Status")

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(235, 238, 242)
	widths := []float64{28, 26, 30, 30, 26, 26}
	headers := []string{"Return", "FY", "Period", "Filed On", "Status", "Mode"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, group := range record.GroupFilingsByReturnType() {
		for _, f := range group {
			cells := []string{f.ReturnType, f.FinancialYear, f.TaxPeriod, f.DateOfFiling, f.Status, f.ModeOfFiling}
			for i, cell := range cells {
				pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}
}

func writeSectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(31, 78, 121)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func finalizePDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
