package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/scoring"
)

// Sheet names for the business verification workbook, one per logical
// section of the record.
const (
	sheetOverview     = "Overview"
	sheetPromoters    = "Promoters"
	sheetFinancial    = "Financial"
	sheetContact      = "Contact"
	sheetJurisdiction = "Jurisdiction"
	sheetRisk         = "Risk Assessment"
	sheetFilings      = "Filing Status"
)

// BuildWorkbook serializes a scored business record into an XLSX workbook
// with an overview sheet plus one sheet per section. No partial output: any
// failure discards the in-memory file and returns the error.
func BuildWorkbook(record *models.BusinessRecord, info *models.CompanyInfo, score models.TrustScoreResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetOverview)

	overview := [][]interface{}{
		{"Business Name", record.TradeName},
		{"Legal Name", record.LegalName},
		{"GSTIN", record.GSTIN},
		{"PAN", record.PAN},
		{"Constitution of Business", record.ConstitutionOfBusiness},
		{"Taxpayer Type", record.TaxpayerType},
		{"GSTIN Status", record.GSTINStatus},
		{"Registration Date", record.DateOfRegistration},
		{"Core Business Activity", record.CoreBusinessActivity},
		{"Trust Score", fmt.Sprintf("%d%%", score.Score)},
		{"Risk Assessment", score.Label},
		{"Recommended Credit Limit", FormatCurrency(score.CreditLimit)},
	}
	if err := writeKeyValueSheet(f, sheetOverview, overview); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetPromoters); err != nil {
		return nil, err
	}
	f.SetCellValue(sheetPromoters, "A1", "Promoter / Director")
	for i, promoter := range record.Promoters {
		f.SetCellValue(sheetPromoters, fmt.Sprintf("A%d", i+2), promoter)
	}

	financial := [][]interface{}{
		{"Annual Turnover (band)", record.AnnualTurnover},
		{"Estimated Turnover", FormatCurrency(scoring.EstimateTurnoverFromSlab(record.AnnualTurnover))},
	}
	if info != nil {
		financial = append(financial,
			[]interface{}{"CIN", info.CIN},
			[]interface{}{"Paid-up Capital", FormatCurrency(info.PaidUpCapital)},
			[]interface{}{"Authorized Capital", FormatCurrency(info.AuthorizedCapital)},
			[]interface{}{"Company Status", info.Status},
		)
	}
	if err := writeSectionSheet(f, sheetFinancial, financial); err != nil {
		return nil, err
	}

	contact := [][]interface{}{
		{"Email", record.Email},
		{"Mobile", record.MobileNumber},
		{"Principal Place", record.PrincipalPlace},
	}
	if err := writeSectionSheet(f, sheetContact, contact); err != nil {
		return nil, err
	}

	jurisdiction := [][]interface{}{
		{"State Jurisdiction", record.StateJurisdiction},
		{"Centre Jurisdiction", record.CentreJurisdiction},
	}
	if err := writeSectionSheet(f, sheetJurisdiction, jurisdiction); err != nil {
		return nil, err
	}

	risk := [][]interface{}{
		{"Trust Score", fmt.Sprintf("%d%%", score.Score)},
		{"Risk Label", score.Label},
		{"Recommended Credit Limit", FormatCurrency(score.CreditLimit)},
	}
	if err := writeSectionSheet(f, sheetRisk, risk); err != nil {
		return nil, err
	}

	if err := writeFilingSheet(f, record); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// BuildFSSAIWorkbook serializes a scored FSSAI license record. The layout
// mirrors the business workbook with the sections FSSAI records carry.
func BuildFSSAIWorkbook(record *models.FSSAIRecord, score int, label string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetOverview)

	overview := [][]interface{}{
		{"Business Name", record.BusinessName},
		{"License Number", record.LicenseNumber},
		{"License Type", record.LicenseType},
		{"License Category", record.LicenseCategory},
		{"Status", record.Status},
		{"Issued On", record.IssuedOn},
		{"Valid Upto", record.ValidUpto},
		{"Compliance Score", fmt.Sprintf("%d%%", score)},
		{"Risk Assessment", label},
	}
	if err := writeKeyValueSheet(f, sheetOverview, overview); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet("Products"); err != nil {
		return nil, err
	}
	f.SetCellValue("Products", "A1", "Licensed Product")
	for i, product := range record.Products {
		f.SetCellValue("Products", fmt.Sprintf("A%d", i+2), product)
	}

	contact := [][]interface{}{
		{"Premise Address", record.PremiseAddress},
		{"State", record.State},
		{"District", record.District},
		{"Email", record.ContactEmail},
		{"Mobile", record.ContactMobile},
	}
	if err := writeSectionSheet(f, sheetContact, contact); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeKeyValueSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	for i, row := range rows {
		keyCell := fmt.Sprintf("A%d", i+1)
		f.SetCellValue(sheet, keyCell, row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1])
		f.SetCellStyle(sheet, keyCell, keyCell, style)
	}
	return nil
}

func writeSectionSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	return writeKeyValueSheet(f, sheet, rows)
}

func writeFilingSheet(f *excelize.File, record *models.BusinessRecord) error {
	if _, err := f.NewSheet(sheetFilings); err != nil {
		return err
	}

	headers := []string{"Return Type", "Financial Year", "Tax Period", "Date of Filing", "Status", "Mode"}
	for i, header := range headers {
		f.SetCellValue(sheetFilings, fmt.Sprintf("%c1", 'A'+i), header)
	}

	row := 2
	for _, group := range record.GroupFilingsByReturnType() {
		for _, filing := range group {
			f.SetCellValue(sheetFilings, fmt.Sprintf("A%d", row), filing.ReturnType)
			f.SetCellValue(sheetFilings, fmt.Sprintf("B%d", row), filing.FinancialYear)
			f.SetCellValue(sheetFilings, fmt.Sprintf("C%d", row), filing.TaxPeriod)
			f.SetCellValue(sheetFilings, fmt.Sprintf("D%d", row), filing.DateOfFiling)
			f.SetCellValue(sheetFilings, fmt.Sprintf("E%d", row), filing.Status)
			f.SetCellValue(sheetFilings, fmt.Sprintf("F%d", row), filing.ModeOfFiling)
			row++
		}
	}
	return nil
}
