package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/auth"
	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/repository"
)

// adminServiceImpl implements AdminService
type adminServiceImpl struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// newAdminService creates a new admin service implementation
func newAdminService(repos *repository.Repositories, log *zap.Logger) AdminService {
	return &adminServiceImpl{
		repos:  repos,
		logger: log,
	}
}

// CreateUser creates a new staff account
func (s *adminServiceImpl) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	existing, err := s.repos.User.GetByEmail(req.Email)
	if err == nil && existing != nil {
		return nil, apperrors.Conflict(fmt.Sprintf("user with email %s already exists", req.Email), nil)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, apperrors.ValidationError(err.Error(), nil)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return nil, apperrors.ValidationError(fmt.Sprintf("invalid role: %s", role), nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError("failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         string(role),
	}

	if err := s.repos.User.Create(user); err != nil {
		return nil, apperrors.DatabaseError("failed to create user", err)
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))

	return sanitize(user), nil
}

// ListUsers returns all staff accounts
func (s *adminServiceImpl) ListUsers() ([]models.User, error) {
	users, err := s.repos.User.List()
	if err != nil {
		return nil, apperrors.DatabaseError("failed to list users", err)
	}

	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetUser returns a single staff account
func (s *adminServiceImpl) GetUser(id uuid.UUID) (*models.User, error) {
	user, err := s.repos.User.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found", err)
		}
		return nil, apperrors.DatabaseError("failed to get user", err)
	}
	return sanitize(user), nil
}

// UpdateUser applies a partial update to a staff account
func (s *adminServiceImpl) UpdateUser(id uuid.UUID, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repos.User.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found", err)
		}
		return nil, apperrors.DatabaseError("failed to get user", err)
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Role != "" {
		if req.Role != models.RoleUser && req.Role != models.RoleAdmin && req.Role != models.RoleSuperAdmin {
			return nil, apperrors.ValidationError(fmt.Sprintf("invalid role: %s", req.Role), nil)
		}
		user.Role = string(req.Role)
	}

	if err := s.repos.User.Update(user); err != nil {
		return nil, apperrors.DatabaseError("failed to update user", err)
	}

	// Promotion to superadmin makes explicit permission rows meaningless
	if user.IsSuperAdmin() {
		if err := s.repos.Permission.DeleteByUser(user.ID); err != nil {
			s.logger.Warn("failed to clear permissions after promotion", zap.Error(err))
		}
	}

	return sanitize(user), nil
}

// DeleteUser removes a staff account and its permission rows atomically
func (s *adminServiceImpl) DeleteUser(id uuid.UUID) error {
	err := s.repos.Tx.WithTransaction(func(repos *repository.Repositories) error {
		if err := repos.Permission.DeleteByUser(id); err != nil {
			return err
		}
		return repos.User.Delete(id)
	})

	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("user not found", err)
		}
		return apperrors.DatabaseError("failed to delete user", err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

// Permissions returns the explicit permission rows for a user. Superadmins
// have none; their access is implicit.
func (s *adminServiceImpl) Permissions(userID uuid.UUID) ([]models.Permission, error) {
	perms, err := s.repos.Permission.GetByUser(userID)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to get permissions", err)
	}
	return perms, nil
}

// SetPermission replaces the action set for a user/resource pair. An empty
// action set removes the row entirely.
func (s *adminServiceImpl) SetPermission(userID uuid.UUID, resource models.Resource, actions []models.Action) (*models.Permission, error) {
	if !models.ValidResource(resource) {
		return nil, apperrors.ValidationError(fmt.Sprintf("invalid resource: %s", resource), nil)
	}
	for _, a := range actions {
		if !models.ValidAction(a) {
			return nil, apperrors.ValidationError(fmt.Sprintf("invalid action: %s", a), nil)
		}
	}

	user, err := s.repos.User.GetByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("user not found", err)
		}
		return nil, apperrors.DatabaseError("failed to get user", err)
	}

	// Superadmins hold every permission implicitly, explicit rows are
	// never created for them
	if user.IsSuperAdmin() {
		return nil, apperrors.InvalidInput("superadmin permissions cannot be modified", nil)
	}

	if len(actions) == 0 {
		if err := s.repos.Permission.Delete(userID, resource); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.DatabaseError("failed to clear permission", err)
		}
		return &models.Permission{UserID: userID, Resource: resource, Actions: []models.Action{}}, nil
	}

	perm := &models.Permission{
		UserID:   userID,
		Resource: resource,
		Actions:  actions,
	}
	if err := s.repos.Permission.Upsert(perm); err != nil {
		return nil, apperrors.DatabaseError("failed to save permission", err)
	}

	return perm, nil
}

// RemovePermission deletes the permission row for a user/resource pair
func (s *adminServiceImpl) RemovePermission(userID uuid.UUID, resource models.Resource) error {
	if !models.ValidResource(resource) {
		return apperrors.ValidationError(fmt.Sprintf("invalid resource: %s", resource), nil)
	}

	if err := s.repos.Permission.Delete(userID, resource); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("permission not found", err)
		}
		return apperrors.DatabaseError("failed to delete permission", err)
	}
	return nil
}

// Authorize checks whether the user may perform the action on the resource.
// Superadmins pass every check without touching the permissions table.
func (s *adminServiceImpl) Authorize(userID uuid.UUID, resource models.Resource, action models.Action) error {
	user, err := s.repos.User.GetByID(userID)
	if err != nil {
		return apperrors.Unauthorized("user not found", err)
	}

	if user.IsSuperAdmin() {
		return nil
	}

	perms, err := s.repos.Permission.GetByUser(userID)
	if err != nil {
		return apperrors.DatabaseError("failed to get permissions", err)
	}

	for i := range perms {
		if perms[i].Resource == resource && perms[i].Allows(action) {
			return nil
		}
	}

	return apperrors.Forbidden(fmt.Sprintf("missing %s permission on %s", action, resource), nil)
}

// Analytics aggregates API usage for the admin dashboard
func (s *adminServiceImpl) Analytics(from, to time.Time) (*UsageAnalytics, error) {
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(0, 0, -30)
	}

	byDay, err := s.repos.Usage.CountsByDay(from, to)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to aggregate usage by day", err)
	}

	byEndpoint, err := s.repos.Usage.CountsByEndpoint(from, to)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to aggregate usage by endpoint", err)
	}

	byDomain, err := s.repos.History.CountsByDomain(from, to)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to aggregate searches by domain", err)
	}

	total, err := s.repos.Usage.TotalSince(from)
	if err != nil {
		return nil, apperrors.DatabaseError("failed to count usage", err)
	}

	return &UsageAnalytics{
		Total:      total,
		ByDay:      byDay,
		ByEndpoint: byEndpoint,
		ByDomain:   byDomain,
	}, nil
}

// DashboardStats shapes the last 30 days of usage into the chart series the
// dashboard landing page renders.
func (s *adminServiceImpl) DashboardStats() (*DashboardStats, error) {
	analytics, err := s.Analytics(time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalRequests:    analytics.Total,
		RequestsByDay:    toChartSeries(analytics.ByDay),
		SearchesByDomain: toChartSeries(analytics.ByDomain),
	}, nil
}

func toChartSeries(stats []repository.UsageStat) ChartSeries {
	series := ChartSeries{
		Labels: make([]string, 0, len(stats)),
		Values: make([]int, 0, len(stats)),
	}
	for _, stat := range stats {
		series.Labels = append(series.Labels, stat.Key)
		series.Values = append(series.Values, stat.Count)
	}
	return series
}
