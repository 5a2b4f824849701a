package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/veriscope/veriscope-api/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	List() ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uuid.UUID) error
}

// PermissionRepository defines the interface for permission data access
type PermissionRepository interface {
	GetByUser(userID uuid.UUID) ([]models.Permission, error)
	Upsert(permission *models.Permission) error
	Delete(userID uuid.UUID, resource models.Resource) error
	DeleteByUser(userID uuid.UUID) error
}

// UsageRepository defines the interface for API usage log access
type UsageRepository interface {
	Record(log *UsageLog) error
	CountsByDay(from, to time.Time) ([]UsageStat, error)
	CountsByEndpoint(from, to time.Time) ([]UsageStat, error)
	TotalSince(t time.Time) (int, error)
}

// HistoryRepository defines the interface for search history access
type HistoryRepository interface {
	Record(entry *SearchHistory) error
	ListByUser(userID uuid.UUID, limit, offset int) ([]SearchHistory, error)
	CountsByDomain(from, to time.Time) ([]UsageStat, error)
}

// TransactionManager defines the interface for database transaction management
type TransactionManager interface {
	WithTransaction(fn func(repos *Repositories) error) error
}

// Repositories groups all repository interfaces
type Repositories struct {
	User       UserRepository
	Permission PermissionRepository
	Usage      UsageRepository
	History    HistoryRepository
	Tx         TransactionManager
}
