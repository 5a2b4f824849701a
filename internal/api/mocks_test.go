package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/veriscope/veriscope-api/internal/auth"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/pipeline"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/services"
)

// Function-backed service stubs. Unset functions return zero values.

type stubAuthService struct {
	loginFn    func(email, password string) (*models.LoginResponse, error)
	registerFn func(req *models.RegisterRequest) (*models.LoginResponse, error)
	validateFn func(token string) (*models.User, error)
	refreshFn  func(token string) (*models.LoginResponse, error)
}

func (s *stubAuthService) Login(email, password string) (*models.LoginResponse, error) {
	return s.loginFn(email, password)
}

func (s *stubAuthService) Register(req *models.RegisterRequest) (*models.LoginResponse, error) {
	return s.registerFn(req)
}

func (s *stubAuthService) ValidateToken(token string) (*models.User, error) {
	return s.validateFn(token)
}

func (s *stubAuthService) RefreshToken(token string) (*models.LoginResponse, error) {
	return s.refreshFn(token)
}

type stubVerificationService struct {
	verifyBusinessFn func(ctx context.Context, userID uuid.UUID, gstin, cin string) (*services.BusinessVerification, error)
	verifyIdentityFn func(ctx context.Context, userID uuid.UUID, pan string) (*models.IdentityRecord, error)
	verifyFSSAIFn    func(ctx context.Context, userID uuid.UUID, license string) (*services.FSSAIVerification, error)
	searchNewsFn     func(ctx context.Context, userID uuid.UUID, query string) ([]models.NewsArticle, error)
	historyFn        func(userID uuid.UUID, limit, offset int) ([]repository.SearchHistory, error)
}

func (s *stubVerificationService) VerifyBusiness(ctx context.Context, userID uuid.UUID, gstin, cin string) (*services.BusinessVerification, error) {
	return s.verifyBusinessFn(ctx, userID, gstin, cin)
}

func (s *stubVerificationService) VerifyIdentity(ctx context.Context, userID uuid.UUID, pan string) (*models.IdentityRecord, error) {
	return s.verifyIdentityFn(ctx, userID, pan)
}

func (s *stubVerificationService) VerifyFSSAI(ctx context.Context, userID uuid.UUID, license string) (*services.FSSAIVerification, error) {
	return s.verifyFSSAIFn(ctx, userID, license)
}

func (s *stubVerificationService) SearchNews(ctx context.Context, userID uuid.UUID, query string) ([]models.NewsArticle, error) {
	return s.searchNewsFn(ctx, userID, query)
}

func (s *stubVerificationService) History(userID uuid.UUID, limit, offset int) ([]repository.SearchHistory, error) {
	return s.historyFn(userID, limit, offset)
}

type stubCaseService struct {
	searchFn func(ctx context.Context, userID uuid.UUID, profile models.SearchProfile) (*models.CaseSearchResult, error)
	viewFn   func(result *models.CaseSearchResult, opts pipeline.Options) *services.CasePage
}

func (s *stubCaseService) Search(ctx context.Context, userID uuid.UUID, profile models.SearchProfile) (*models.CaseSearchResult, error) {
	return s.searchFn(ctx, userID, profile)
}

func (s *stubCaseService) View(result *models.CaseSearchResult, opts pipeline.Options) *services.CasePage {
	return s.viewFn(result, opts)
}

type stubAdminService struct {
	authorizeFn     func(userID uuid.UUID, resource models.Resource, action models.Action) error
	analyticsFn     func(from, to time.Time) (*services.UsageAnalytics, error)
	setPermissionFn func(userID uuid.UUID, resource models.Resource, actions []models.Action) (*models.Permission, error)
	statsFn         func() (*services.DashboardStats, error)
}

func (s *stubAdminService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	return nil, nil
}

func (s *stubAdminService) ListUsers() ([]models.User, error) { return nil, nil }

func (s *stubAdminService) GetUser(id uuid.UUID) (*models.User, error) { return nil, nil }

func (s *stubAdminService) UpdateUser(id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	return nil, nil
}

func (s *stubAdminService) DeleteUser(id uuid.UUID) error { return nil }

func (s *stubAdminService) Permissions(userID uuid.UUID) ([]models.Permission, error) {
	return nil, nil
}

func (s *stubAdminService) SetPermission(userID uuid.UUID, resource models.Resource, actions []models.Action) (*models.Permission, error) {
	if s.setPermissionFn != nil {
		return s.setPermissionFn(userID, resource, actions)
	}
	return nil, nil
}

func (s *stubAdminService) RemovePermission(userID uuid.UUID, resource models.Resource) error {
	return nil
}

func (s *stubAdminService) Authorize(userID uuid.UUID, resource models.Resource, action models.Action) error {
	if s.authorizeFn != nil {
		return s.authorizeFn(userID, resource, action)
	}
	return nil
}

func (s *stubAdminService) Analytics(from, to time.Time) (*services.UsageAnalytics, error) {
	if s.analyticsFn != nil {
		return s.analyticsFn(from, to)
	}
	return &services.UsageAnalytics{}, nil
}

func (s *stubAdminService) DashboardStats() (*services.DashboardStats, error) {
	if s.statsFn != nil {
		return s.statsFn()
	}
	return &services.DashboardStats{}, nil
}

// authenticatedAs injects the identity the JWT middleware would have set.
func authenticatedAs(userID uuid.UUID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(auth.UserIDKey, userID)
		c.Set(auth.UserRoleKey, role)
		c.Next()
	}
}
