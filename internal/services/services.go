package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/pipeline"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/verify"
	"github.com/veriscope/veriscope-api/pkg/config"
)

// Services contains all application services
type Services struct {
	Auth         AuthService
	Verification VerificationService
	Case         CaseService
	Export       ExportService
	Admin        AdminService
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(email, password string) (*models.LoginResponse, error)
	Register(req *models.RegisterRequest) (*models.LoginResponse, error)
	ValidateToken(token string) (*models.User, error)
	RefreshToken(token string) (*models.LoginResponse, error)
}

// BusinessVerification is the full dashboard payload for a GSTIN lookup
type BusinessVerification struct {
	Record          *models.BusinessRecord  `json:"record"`
	CompanyInfo     *models.CompanyInfo     `json:"company_info,omitempty"`
	Score           models.TrustScoreResult `json:"score"`
	PositiveFactors []string                `json:"positive_factors"`
	NegativeFactors []string                `json:"negative_factors"`
}

// FSSAIVerification is the dashboard payload for a food-license lookup
type FSSAIVerification struct {
	Record *models.FSSAIRecord `json:"record"`
	Score  int                 `json:"score"`
	Label  string              `json:"label"`
}

// VerificationService defines the interface for registry lookups and scoring
type VerificationService interface {
	VerifyBusiness(ctx context.Context, userID uuid.UUID, gstin, cin string) (*BusinessVerification, error)
	VerifyIdentity(ctx context.Context, userID uuid.UUID, pan string) (*models.IdentityRecord, error)
	VerifyFSSAI(ctx context.Context, userID uuid.UUID, licenseNumber string) (*FSSAIVerification, error)
	SearchNews(ctx context.Context, userID uuid.UUID, query string) ([]models.NewsArticle, error)
	History(userID uuid.UUID, limit, offset int) ([]repository.SearchHistory, error)
}

// CaseService defines the interface for court-case search and result views
type CaseService interface {
	Search(ctx context.Context, userID uuid.UUID, profile models.SearchProfile) (*models.CaseSearchResult, error)
	View(result *models.CaseSearchResult, opts pipeline.Options) *CasePage
}

// CasePage is one page of filtered court-case results
type CasePage struct {
	Records    []models.CaseRecord `json:"records"`
	Page       int                 `json:"page"`
	TotalPages int                 `json:"total_pages"`
	Total      int                 `json:"total"`
}

// ExportService defines the interface for report generation and delivery
type ExportService interface {
	BusinessReport(format string, v *BusinessVerification) (*Report, error)
	FSSAIReport(format string, v *FSSAIVerification) (*Report, error)
	EmailReport(ctx context.Context, recipient, subject string, report *Report) error
}

// Report is a generated export artifact
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
}

// UsageAnalytics is the admin dashboard's API usage summary
type UsageAnalytics struct {
	Total      int                    `json:"total"`
	ByDay      []repository.UsageStat `json:"by_day"`
	ByEndpoint []repository.UsageStat `json:"by_endpoint"`
	ByDomain   []repository.UsageStat `json:"by_domain"`
}

// ChartSeries is one labeled value series for the dashboard charts
type ChartSeries struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// DashboardStats backs the dashboard landing-page charts
type DashboardStats struct {
	TotalRequests    int         `json:"total_requests"`
	RequestsByDay    ChartSeries `json:"requests_by_day"`
	SearchesByDomain ChartSeries `json:"searches_by_domain"`
}

// AdminService defines the interface for user, permission and analytics management
type AdminService interface {
	CreateUser(req *models.CreateUserRequest) (*models.User, error)
	ListUsers() ([]models.User, error)
	GetUser(id uuid.UUID) (*models.User, error)
	UpdateUser(id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error)
	DeleteUser(id uuid.UUID) error
	Permissions(userID uuid.UUID) ([]models.Permission, error)
	SetPermission(userID uuid.UUID, resource models.Resource, actions []models.Action) (*models.Permission, error)
	RemovePermission(userID uuid.UUID, resource models.Resource) error
	Authorize(userID uuid.UUID, resource models.Resource, action models.Action) error
	Analytics(from, to time.Time) (*UsageAnalytics, error)
	DashboardStats() (*DashboardStats, error)
}

// NewServices creates a new Services instance with all dependencies
func NewServices(db *sql.DB, cfg *config.Config, client *verify.Client, m *metrics.Metrics, log *zap.Logger) *Services {
	repos := repository.NewRepositories(db)

	return &Services{
		Auth:         newAuthService(repos, cfg),
		Verification: newVerificationService(repos, client, m, log),
		Case:         newCaseService(repos, client, log),
		Export:       newExportService(cfg, m, log),
		Admin:        newAdminService(repos, log),
	}
}
