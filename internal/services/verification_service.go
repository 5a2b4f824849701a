package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/metrics"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/scoring"
	"github.com/veriscope/veriscope-api/internal/verify"
)

// verificationServiceImpl implements VerificationService
type verificationServiceImpl struct {
	repos   *repository.Repositories
	client  *verify.Client
	engine  *scoring.Engine
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// newVerificationService creates a new verification service implementation
func newVerificationService(repos *repository.Repositories, client *verify.Client, m *metrics.Metrics, log *zap.Logger) VerificationService {
	return &verificationServiceImpl{
		repos:   repos,
		client:  client,
		engine:  scoring.NewEngine(),
		metrics: m,
		logger:  log,
	}
}

// VerifyBusiness looks up a GSTIN, optionally enriches it with the company
// master record for the given CIN, and computes the trust score. A failed
// CIN lookup does not fail the verification, the financial category simply
// scores without company data.
func (s *verificationServiceImpl) VerifyBusiness(ctx context.Context, userID uuid.UUID, gstin, cin string) (*BusinessVerification, error) {
	record, err := s.client.LookupGSTIN(ctx, gstin)
	if err != nil {
		return nil, s.upstreamError("business", "gstin lookup failed", err)
	}

	var info *models.CompanyInfo
	if cin != "" {
		info, err = s.client.LookupCIN(ctx, cin)
		if err != nil {
			s.logger.Warn("cin lookup failed, scoring without company data",
				zap.String("cin", cin), zap.Error(err))
			info = nil
		}
	}

	score := s.engine.Result(record, info)
	positive, negative := scoring.AssessFactors(record)

	s.metrics.ObserveLookup("business", "ok")
	s.metrics.ObserveTrustScore(score.Score)
	s.recordHistory(userID, string(models.ResourceBusiness), gstin)

	return &BusinessVerification{
		Record:          record,
		CompanyInfo:     info,
		Score:           score,
		PositiveFactors: positive,
		NegativeFactors: negative,
	}, nil
}

// VerifyIdentity looks up a personal identity profile by PAN
func (s *verificationServiceImpl) VerifyIdentity(ctx context.Context, userID uuid.UUID, pan string) (*models.IdentityRecord, error) {
	record, err := s.client.LookupPAN(ctx, pan)
	if err != nil {
		return nil, s.upstreamError("identity", "pan lookup failed", err)
	}

	s.metrics.ObserveLookup("identity", "ok")
	s.recordHistory(userID, string(models.ResourceIdentity), pan)

	return record, nil
}

// VerifyFSSAI looks up a food-business license and scores it
func (s *verificationServiceImpl) VerifyFSSAI(ctx context.Context, userID uuid.UUID, licenseNumber string) (*FSSAIVerification, error) {
	record, err := s.client.LookupFSSAI(ctx, licenseNumber)
	if err != nil {
		return nil, s.upstreamError("fssai", "fssai lookup failed", err)
	}

	score := s.engine.CalculateFSSAIScore(record)

	s.metrics.ObserveLookup("fssai", "ok")
	s.recordHistory(userID, string(models.ResourceFSSAI), licenseNumber)

	return &FSSAIVerification{
		Record: record,
		Score:  score,
		Label:  scoring.RiskLabel(score),
	}, nil
}

// SearchNews runs a news search for the given business name
func (s *verificationServiceImpl) SearchNews(ctx context.Context, userID uuid.UUID, query string) ([]models.NewsArticle, error) {
	articles, err := s.client.SearchNews(ctx, query)
	if err != nil {
		return nil, s.upstreamError("news", "news search failed", err)
	}

	s.metrics.ObserveLookup("news", "ok")
	s.recordHistory(userID, string(models.ResourceNews), query)

	return articles, nil
}

// History returns a page of the user's past lookups
func (s *verificationServiceImpl) History(userID uuid.UUID, limit, offset int) ([]repository.SearchHistory, error) {
	return s.repos.History.ListByUser(userID, limit, offset)
}

// recordHistory stores the lookup for the user's history view. History is
// best effort, a failed insert never fails the lookup itself.
func (s *verificationServiceImpl) recordHistory(userID uuid.UUID, domain, query string) {
	entry := &repository.SearchHistory{
		UserID: userID,
		Domain: domain,
		Query:  query,
	}
	if err := s.repos.History.Record(entry); err != nil {
		s.logger.Warn("failed to record search history",
			zap.String("domain", domain), zap.Error(err))
	}
}

func (s *verificationServiceImpl) upstreamError(domain, message string, err error) error {
	if errors.Is(err, verify.ErrNotFound) {
		s.metrics.ObserveLookup(domain, "not_found")
		return apperrors.NotFound("no record found for the given identifier", err)
	}
	s.metrics.ObserveLookup(domain, "error")
	s.metrics.ObserveUpstreamFailure(domain)
	return apperrors.UpstreamError(message, err)
}
