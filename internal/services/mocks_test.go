package services

import (
	"time"

	"github.com/google/uuid"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/repository"
)

// In-memory repository fakes. Only the methods a test exercises need
// useful behavior; everything else returns zero values.

type mockUserRepo struct {
	users map[uuid.UUID]*models.User

	updateCalls int
	deleteCalls int
}

func newMockUserRepo(users ...*models.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepo) GetByID(id uuid.UUID) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) List() ([]models.User, error) {
	var out []models.User
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (m *mockUserRepo) Create(user *models.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Update(user *models.User) error {
	m.updateCalls++
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(id uuid.UUID) error {
	m.deleteCalls++
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type mockPermissionRepo struct {
	perms map[uuid.UUID][]models.Permission

	upsertCalls       int
	deleteCalls       int
	deleteByUserCalls int
}

func newMockPermissionRepo() *mockPermissionRepo {
	return &mockPermissionRepo{perms: make(map[uuid.UUID][]models.Permission)}
}

func (m *mockPermissionRepo) GetByUser(userID uuid.UUID) ([]models.Permission, error) {
	return m.perms[userID], nil
}

func (m *mockPermissionRepo) Upsert(perm *models.Permission) error {
	m.upsertCalls++
	existing := m.perms[perm.UserID]
	for i := range existing {
		if existing[i].Resource == perm.Resource {
			existing[i].Actions = perm.Actions
			return nil
		}
	}
	m.perms[perm.UserID] = append(existing, *perm)
	return nil
}

func (m *mockPermissionRepo) Delete(userID uuid.UUID, resource models.Resource) error {
	m.deleteCalls++
	existing := m.perms[userID]
	for i := range existing {
		if existing[i].Resource == resource {
			m.perms[userID] = append(existing[:i], existing[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockPermissionRepo) DeleteByUser(userID uuid.UUID) error {
	m.deleteByUserCalls++
	delete(m.perms, userID)
	return nil
}

type mockUsageRepo struct {
	logs       []repository.UsageLog
	byDay      []repository.UsageStat
	byEndpoint []repository.UsageStat
	total      int
}

func (m *mockUsageRepo) Record(log *repository.UsageLog) error {
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockUsageRepo) CountsByDay(from, to time.Time) ([]repository.UsageStat, error) {
	return m.byDay, nil
}

func (m *mockUsageRepo) CountsByEndpoint(from, to time.Time) ([]repository.UsageStat, error) {
	return m.byEndpoint, nil
}

func (m *mockUsageRepo) TotalSince(t time.Time) (int, error) {
	return m.total, nil
}

type mockHistoryRepo struct {
	entries  []repository.SearchHistory
	byDomain []repository.UsageStat
}

func (m *mockHistoryRepo) Record(entry *repository.SearchHistory) error {
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) ListByUser(userID uuid.UUID, limit, offset int) ([]repository.SearchHistory, error) {
	var out []repository.SearchHistory
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockHistoryRepo) CountsByDomain(from, to time.Time) ([]repository.UsageStat, error) {
	return m.byDomain, nil
}

// mockTxManager runs the transaction body against the same repositories.
type mockTxManager struct {
	repos *repository.Repositories
}

func (m *mockTxManager) WithTransaction(fn func(*repository.Repositories) error) error {
	return fn(m.repos)
}

func testRepos(users ...*models.User) (*repository.Repositories, *mockUserRepo, *mockPermissionRepo, *mockHistoryRepo, *mockUsageRepo) {
	userRepo := newMockUserRepo(users...)
	permRepo := newMockPermissionRepo()
	historyRepo := &mockHistoryRepo{}
	usageRepo := &mockUsageRepo{}

	repos := &repository.Repositories{
		User:       userRepo,
		Permission: permRepo,
		Usage:      usageRepo,
		History:    historyRepo,
	}
	repos.Tx = &mockTxManager{repos: repos}
	return repos, userRepo, permRepo, historyRepo, usageRepo
}
