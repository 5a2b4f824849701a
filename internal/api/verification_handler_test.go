package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/veriscope/veriscope-api/internal/errors"
	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/repository"
	"github.com/veriscope/veriscope-api/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestVerifyBusinessEndpoint(t *testing.T) {
	userID := uuid.New()
	var gotGSTIN, gotCIN string
	var gotUser uuid.UUID

	svc := &stubVerificationService{
		verifyBusinessFn: func(ctx context.Context, uid uuid.UUID, gstin, cin string) (*services.BusinessVerification, error) {
			gotUser, gotGSTIN, gotCIN = uid, gstin, cin
			return &services.BusinessVerification{
				Record: &models.BusinessRecord{GSTIN: gstin, TradeName: "Sharma Traders"},
				Score:  models.TrustScoreResult{Score: 82, Label: "Low Risk", CreditLimit: 487500},
			}, nil
		},
	}

	r := gin.New()
	r.Use(authenticatedAs(userID, "user"))
	handler := NewVerificationHandler(svc)
	r.GET("/verify/business/:gstin", handler.VerifyBusiness)

	req := httptest.NewRequest(http.MethodGet, "/verify/business/29ABCDE1234F1Z5?cin=U51909KA2012PTC112233", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotGSTIN != "29ABCDE1234F1Z5" || gotCIN != "U51909KA2012PTC112233" {
		t.Errorf("Service called with gstin=%q cin=%q", gotGSTIN, gotCIN)
	}
	if gotUser != userID {
		t.Errorf("Service called with user %s, want %s", gotUser, userID)
	}

	var body struct {
		Score models.TrustScoreResult `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if body.Score.Score != 82 || body.Score.Label != "Low Risk" {
		t.Errorf("Unexpected score payload: %+v", body.Score)
	}
}

func TestVerifyBusinessEndpoint_NotFound(t *testing.T) {
	svc := &stubVerificationService{
		verifyBusinessFn: func(ctx context.Context, uid uuid.UUID, gstin, cin string) (*services.BusinessVerification, error) {
			return nil, apperrors.NotFound("no record found for the given identifier", nil)
		},
	}

	r := gin.New()
	r.Use(authenticatedAs(uuid.New(), "user"))
	r.GET("/verify/business/:gstin", NewVerificationHandler(svc).VerifyBusiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/business/29ZZZZZ9999Z9Z9", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}

	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["code"] != apperrors.ErrCodeNotFound {
		t.Errorf("Expected NOT_FOUND code, got %q", body["code"])
	}
}

func TestVerifyBusinessEndpoint_UpstreamError(t *testing.T) {
	svc := &stubVerificationService{
		verifyBusinessFn: func(ctx context.Context, uid uuid.UUID, gstin, cin string) (*services.BusinessVerification, error) {
			return nil, apperrors.UpstreamError("gstin lookup failed", nil)
		},
	}

	r := gin.New()
	r.Use(authenticatedAs(uuid.New(), "user"))
	r.GET("/verify/business/:gstin", NewVerificationHandler(svc).VerifyBusiness)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/business/29ABCDE1234F1Z5", nil))

	if w.Code != http.StatusBadGateway {
		t.Errorf("Expected 502, got %d", w.Code)
	}
}

func TestSearchNewsEndpoint_RequiresQuery(t *testing.T) {
	svc := &stubVerificationService{
		searchNewsFn: func(ctx context.Context, uid uuid.UUID, query string) ([]models.NewsArticle, error) {
			return []models.NewsArticle{{Title: "Sharma Traders fined"}}, nil
		},
	}

	r := gin.New()
	r.Use(authenticatedAs(uuid.New(), "user"))
	r.GET("/verify/news", NewVerificationHandler(svc).SearchNews)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/news", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without q, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/verify/news?q=Sharma+Traders", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var body struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Count != 1 {
		t.Errorf("Expected count 1, got %d", body.Count)
	}
}

func TestHistoryEndpoint_Paging(t *testing.T) {
	var gotLimit, gotOffset int
	svc := &stubVerificationService{
		historyFn: func(uid uuid.UUID, limit, offset int) ([]repository.SearchHistory, error) {
			gotLimit, gotOffset = limit, offset
			return []repository.SearchHistory{{Domain: "business", Query: "29ABCDE1234F1Z5"}}, nil
		},
	}

	r := gin.New()
	r.Use(authenticatedAs(uuid.New(), "user"))
	r.GET("/history", NewVerificationHandler(svc).History)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?limit=10&offset=20", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if gotLimit != 10 || gotOffset != 20 {
		t.Errorf("Expected limit=10 offset=20, got limit=%d offset=%d", gotLimit, gotOffset)
	}

	// Defaults apply when the parameters are absent.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))
	if gotLimit != 50 || gotOffset != 0 {
		t.Errorf("Expected default limit=50 offset=0, got limit=%d offset=%d", gotLimit, gotOffset)
	}
}
