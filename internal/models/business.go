package models

// BusinessRecord represents a GST-registered business as returned by the
// upstream verification API
type BusinessRecord struct {
	GSTIN                  string            `json:"gstin"`
	PAN                    string            `json:"pan"`
	CIN                    string            `json:"cin,omitempty"`
	LegalName              string            `json:"legal_name"`
	TradeName              string            `json:"trade_name"`
	GSTINStatus            string            `json:"gstin_status"`
	ConstitutionOfBusiness string            `json:"constitution_of_business"`
	TaxpayerType           string            `json:"taxpayer_type"`
	NatureOfBusiness       []string          `json:"nature_of_business"`
	CoreBusinessActivity   string            `json:"core_business_activity"`
	Promoters              []string          `json:"promoters"`
	AnnualTurnover         string            `json:"annual_turnover"`
	AadhaarValidation      string            `json:"aadhaar_validation"`
	FieldVisitConducted    string            `json:"field_visit_conducted"`
	MobileNumber           string            `json:"mobile_number"`
	Email                  string            `json:"email"`
	DateOfRegistration     string            `json:"date_of_registration"`
	DateOfCancellation     string            `json:"date_of_cancellation,omitempty"`
	PrincipalPlace         string            `json:"principal_place"`
	AdditionalPlaces       []string          `json:"additional_places,omitempty"`
	StateJurisdiction      string            `json:"state_jurisdiction"`
	CentreJurisdiction     string            `json:"centre_jurisdiction"`
	FilingStatus           [][]FilingRecord  `json:"filing_status"`
	FilingFrequency        map[string]string `json:"filing_frequency,omitempty"`
}

// FilingRecord is a single GST return filing entry. Immutable once received.
type FilingRecord struct {
	ReturnType    string `json:"return_type"`
	FinancialYear string `json:"financial_year"`
	TaxPeriod     string `json:"tax_period"`
	DateOfFiling  string `json:"date_of_filing"`
	Status        string `json:"status"`
	ModeOfFiling  string `json:"mode_of_filing"`
}

// GSTIN status values seen from the registry
const (
	GSTINStatusActive      = "Active"
	GSTINStatusCancelled   = "Cancelled"
	GSTINStatusSuspended   = "Suspended"
	GSTINStatusProvisional = "Provisional"
)

// Turnover slab labels. The registry reports turnover as a banded string,
// never a raw number.
const (
	SlabAbove5Cr = "above 5 Cr."
	Slab1To5Cr   = "1.5 Cr. to 5 Cr."
	Slab50LTo1Cr = "50 Lakhs to 1.5 Cr."
	Slab20To50L  = "20 Lakhs to 50 Lakhs"
	SlabUpTo20L  = "up to 20 Lakhs"
)

// AllFilings flattens the grouped filing table into a single list.
func (b *BusinessRecord) AllFilings() []FilingRecord {
	var out []FilingRecord
	for _, group := range b.FilingStatus {
		out = append(out, group...)
	}
	return out
}

// FiledCount returns the number of returns with status "Filed".
func (b *BusinessRecord) FiledCount() int {
	count := 0
	for _, f := range b.AllFilings() {
		if f.Status == "Filed" {
			count++
		}
	}
	return count
}

// GroupFilingsByReturnType regroups filings by return type for display,
// each group sorted descending by date of filing.
func (b *BusinessRecord) GroupFilingsByReturnType() map[string][]FilingRecord {
	groups := make(map[string][]FilingRecord)
	for _, f := range b.AllFilings() {
		groups[f.ReturnType] = append(groups[f.ReturnType], f)
	}
	for rt := range groups {
		sortFilingsByDateDesc(groups[rt])
	}
	return groups
}

// CompanyInfo is the auxiliary registry record (MCA/CIN lookup) used by the
// financial-data scoring category when available.
type CompanyInfo struct {
	CIN               string   `json:"cin"`
	CompanyName       string   `json:"company_name"`
	Status            string   `json:"status"`
	CompanyClass      string   `json:"company_class"`
	PaidUpCapital     int64    `json:"paid_up_capital"`
	AuthorizedCapital int64    `json:"authorized_capital"`
	IncorporationDate string   `json:"incorporation_date"`
	RegisteredAddress string   `json:"registered_address"`
	Directors         []string `json:"directors"`
	Email             string   `json:"email"`
}

// TrustScoreResult is computed fresh on every request and never persisted.
type TrustScoreResult struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	CreditLimit int64  `json:"credit_limit"`
}
