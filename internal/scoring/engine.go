package scoring

import (
	"math"
	"strings"
	"time"

	"github.com/veriscope/veriscope-api/internal/models"
)

// Engine computes weighted trust scores for business records
type Engine struct{}

// NewEngine creates a new scoring engine instance
func NewEngine() *Engine {
	return &Engine{}
}

// CategoryScore holds one weighted category of the trust scorecard
type CategoryScore struct {
	Score  float64 `json:"score"`
	Weight int     `json:"weight"`
	Detail string  `json:"detail,omitempty"`
}

// Breakdown maps category names to their sub-scores
type Breakdown map[string]CategoryScore

// Category weights. Sub-scores run 0-10 on category-specific scales; the
// final score normalizes against Σweights × 10.
var categoryWeights = map[string]int{
	"gstinStatus":         10,
	"filingCompliance":    20,
	"annualTurnover":      15,
	"businessStructure":   10,
	"promoters":           10,
	"verification":        10,
	"businessNature":      10,
	"companyAge":          5,
	"financialData":       5,
	"jurisdictionClarity": 5,
}

// Risk labels derived from the final score
const (
	LabelLowRisk      = "Low Risk"
	LabelModerateRisk = "Moderate Risk"
	LabelHighRisk     = "High Risk"
)

// RiskLabel maps a 0-100 score to its display label.
func RiskLabel(score int) string {
	switch {
	case score >= 80:
		return LabelLowRisk
	case score >= 65:
		return LabelModerateRisk
	default:
		return LabelHighRisk
	}
}

// CalculateTrustScore computes the 0-100 trust score for a business record.
// companyInfo is optional; when absent the financial-data category defaults
// to a neutral mid-score. Missing or malformed fields degrade to their
// category defaults, never to an error.
func (e *Engine) CalculateTrustScore(record *models.BusinessRecord, info *models.CompanyInfo) int {
	score, _ := e.ScoreWithBreakdown(record, info)
	return score
}

// ScoreWithBreakdown computes the trust score along with the per-category
// breakdown used by the dashboard's score drill-down.
func (e *Engine) ScoreWithBreakdown(record *models.BusinessRecord, info *models.CompanyInfo) (int, Breakdown) {
	if record == nil {
		record = &models.BusinessRecord{}
	}

	breakdown := Breakdown{
		"gstinStatus":         {Score: e.scoreGSTINStatus(record), Weight: categoryWeights["gstinStatus"], Detail: record.GSTINStatus},
		"filingCompliance":    {Score: e.scoreFilingCompliance(record), Weight: categoryWeights["filingCompliance"]},
		"annualTurnover":      {Score: e.scoreAnnualTurnover(record), Weight: categoryWeights["annualTurnover"], Detail: record.AnnualTurnover},
		"businessStructure":   {Score: e.scoreBusinessStructure(record), Weight: categoryWeights["businessStructure"], Detail: record.ConstitutionOfBusiness},
		"promoters":           {Score: e.scorePromoters(record), Weight: categoryWeights["promoters"]},
		"verification":        {Score: e.scoreVerification(record), Weight: categoryWeights["verification"]},
		"businessNature":      {Score: e.scoreBusinessNature(record), Weight: categoryWeights["businessNature"], Detail: record.CoreBusinessActivity},
		"companyAge":          {Score: e.scoreCompanyAge(record), Weight: categoryWeights["companyAge"], Detail: record.DateOfRegistration},
		"financialData":       {Score: e.scoreFinancialData(info), Weight: categoryWeights["financialData"]},
		"jurisdictionClarity": {Score: e.scoreJurisdiction(record), Weight: categoryWeights["jurisdictionClarity"]},
	}

	var weighted, totalWeight float64
	for _, cat := range breakdown {
		weighted += cat.Score * float64(cat.Weight)
		totalWeight += float64(cat.Weight)
	}

	score := int(math.Round(weighted / (totalWeight * 10) * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, breakdown
}

// Result computes the full trust-score result including the derived risk
// label and recommended credit limit.
func (e *Engine) Result(record *models.BusinessRecord, info *models.CompanyInfo) models.TrustScoreResult {
	score := e.CalculateTrustScore(record, info)
	turnover := EstimateTurnoverFromSlab(record.AnnualTurnover)
	return models.TrustScoreResult{
		Score:       score,
		Label:       RiskLabel(score),
		CreditLimit: CalculateCreditLimit(score, turnover),
	}
}

func (e *Engine) scoreGSTINStatus(record *models.BusinessRecord) float64 {
	switch record.GSTINStatus {
	case models.GSTINStatusActive:
		return 10
	case models.GSTINStatusProvisional:
		return 5
	case models.GSTINStatusSuspended:
		return 3
	default:
		return 0
	}
}

// scoreFilingCompliance halves the count of filed returns, capped at 20, so
// twenty filed returns reach the full sub-score of 10.
func (e *Engine) scoreFilingCompliance(record *models.BusinessRecord) float64 {
	filed := record.FiledCount()
	if filed > 20 {
		filed = 20
	}
	return float64(filed) / 2
}

func (e *Engine) scoreAnnualTurnover(record *models.BusinessRecord) float64 {
	switch record.AnnualTurnover {
	case models.SlabAbove5Cr:
		return 10
	case models.Slab1To5Cr:
		return 8
	case models.Slab50LTo1Cr:
		return 6
	case models.Slab20To50L:
		return 4
	case models.SlabUpTo20L:
		return 2
	default:
		return 0
	}
}

var structureScores = []struct {
	keyword string
	score   float64
}{
	{"private limited", 10},
	{"public limited", 9},
	{"limited liability", 8},
	{"partnership", 6},
	{"proprietor", 4},
	{"hindu undivided", 4},
}

func (e *Engine) scoreBusinessStructure(record *models.BusinessRecord) float64 {
	constitution := strings.ToLower(record.ConstitutionOfBusiness)
	for _, s := range structureScores {
		if strings.Contains(constitution, s.keyword) {
			return s.score
		}
	}
	return 0
}

func (e *Engine) scorePromoters(record *models.BusinessRecord) float64 {
	switch n := len(record.Promoters); {
	case n >= 3:
		return 10
	case n == 2:
		return 7
	case n == 1:
		return 5
	default:
		return 0
	}
}

func (e *Engine) scoreVerification(record *models.BusinessRecord) float64 {
	switch {
	case strings.EqualFold(record.AadhaarValidation, "Yes"):
		return 10
	case strings.EqualFold(record.FieldVisitConducted, "Yes"):
		return 7
	case record.MobileNumber != "" && record.Email != "":
		return 5
	case record.AadhaarValidation == "" && record.FieldVisitConducted == "":
		// Verification fields omitted by the registry score neutral, not zero.
		return 5
	default:
		return 0
	}
}

var natureScores = []struct {
	keyword string
	score   float64
}{
	{"manufactur", 10},
	{"export", 9},
	{"import", 9},
	{"service", 8},
	{"wholesale", 7},
	{"trad", 7},
	{"retail", 6},
	{"works contract", 6},
	{"supplier", 5},
}

func (e *Engine) scoreBusinessNature(record *models.BusinessRecord) float64 {
	combined := strings.ToLower(record.CoreBusinessActivity + " " + strings.Join(record.NatureOfBusiness, " "))
	if strings.TrimSpace(combined) == "" {
		// Nature of business not reported; neutral.
		return 5
	}
	best := float64(0)
	for _, n := range natureScores {
		if strings.Contains(combined, n.keyword) && n.score > best {
			best = n.score
		}
	}
	return best
}

// scoreCompanyAge brackets the years since registration. Missing or
// unparsable dates fall into the lowest bracket.
func (e *Engine) scoreCompanyAge(record *models.BusinessRecord) float64 {
	registered, ok := parseRegistrationDate(record.DateOfRegistration)
	if !ok {
		return 0
	}
	years := time.Since(registered).Hours() / 24 / 365.25
	switch {
	case years >= 10:
		return 10
	case years >= 5:
		return 8
	case years >= 3:
		return 5
	case years >= 1:
		return 3
	default:
		return 0
	}
}

func (e *Engine) scoreFinancialData(info *models.CompanyInfo) float64 {
	if info == nil {
		return 5
	}
	switch {
	case info.PaidUpCapital >= 10000000:
		return 10
	case info.PaidUpCapital >= 1000000:
		return 7
	case info.PaidUpCapital > 0:
		return 4
	default:
		return 0
	}
}

func (e *Engine) scoreJurisdiction(record *models.BusinessRecord) float64 {
	state := strings.TrimSpace(record.StateJurisdiction) != ""
	centre := strings.TrimSpace(record.CentreJurisdiction) != ""
	switch {
	case state && centre:
		return 10
	case state || centre:
		return 7
	default:
		// Jurisdiction fields omitted by the registry score neutral.
		return 5
	}
}

// Registration dates arrive as dd/mm/yyyy from the GST registry; some
// upstream responses use ISO dates instead.
func parseRegistrationDate(s string) (time.Time, bool) {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
