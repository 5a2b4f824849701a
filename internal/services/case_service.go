package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/pipeline"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/verify"
)

// caseServiceImpl implements CaseService
type caseServiceImpl struct {
	repos  *repository.Repositories
	client *verify.Client
	logger *zap.Logger

	// Last completed search per user, keyed by the profile fingerprint.
	// A repeated search with an identical profile is served from here
	// instead of hitting the upstream service again. Two concurrent
	// searches by the same user race on the slot and the later writer
	// wins; the stale entry is simply overwritten on the next search.
	mu      sync.Mutex
	results map[uuid.UUID]cachedSearch
}

type cachedSearch struct {
	fingerprint string
	result      *models.CaseSearchResult
}

// newCaseService creates a new case service implementation
func newCaseService(repos *repository.Repositories, client *verify.Client, log *zap.Logger) CaseService {
	return &caseServiceImpl{
		repos:   repos,
		client:  client,
		logger:  log,
		results: make(map[uuid.UUID]cachedSearch),
	}
}

// Search runs the court-case search for an identity profile. Identical
// back-to-back searches are deduplicated per user.
func (s *caseServiceImpl) Search(ctx context.Context, userID uuid.UUID, profile models.SearchProfile) (*models.CaseSearchResult, error) {
	fingerprint := profile.Fingerprint()

	s.mu.Lock()
	if cached, ok := s.results[userID]; ok && cached.fingerprint == fingerprint {
		s.mu.Unlock()
		s.logger.Debug("case search served from last result",
			zap.String("user_id", userID.String()))
		return cached.result, nil
	}
	s.mu.Unlock()

	result, err := s.client.SearchCases(ctx, profile)
	if err != nil {
		return nil, apperrors.UpstreamError("case search failed", err)
	}

	s.mu.Lock()
	s.results[userID] = cachedSearch{fingerprint: fingerprint, result: result}
	s.mu.Unlock()

	s.recordHistory(userID, profile)

	return result, nil
}

// View applies the result pipeline and returns the requested page
func (s *caseServiceImpl) View(result *models.CaseSearchResult, opts pipeline.Options) *CasePage {
	filtered := pipeline.FilterResults(result, opts)

	page := opts.Page
	if page < 1 {
		page = 1
	}

	totalPages := (len(filtered) + pipeline.PageSize - 1) / pipeline.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return &CasePage{
		Records:    pipeline.Paginate(filtered, page, pipeline.PageSize),
		Page:       page,
		TotalPages: totalPages,
		Total:      len(filtered),
	}
}

func (s *caseServiceImpl) recordHistory(userID uuid.UUID, profile models.SearchProfile) {
	entry := &repository.SearchHistory{
		UserID: userID,
		Domain: string(models.ResourceCourtCases),
		Query:  profile.Name,
	}
	if err := s.repos.History.Record(entry); err != nil {
		s.logger.Warn("failed to record case search history", zap.Error(err))
	}
}
