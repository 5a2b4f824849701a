package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/models"
	"github.com/veriscope/veriscope-api/internal/pipeline"
	"github.com/veriscope/veriscope-api/internal/verify"
)

func testCaseService(t *testing.T) (CaseService, *mockHistoryRepo, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{
			"all_cases": [
				{"id": "KA/2021/001", "confidence": 0.9, "raw_score": 8.0},
				{"id": "KA/2019/442", "confidence": 0.4, "raw_score": 3.0}
			],
			"matches": [{"id": "KA/2021/001", "confidence": 0.9}],
			"rejected": [{"id": "KA/2019/442", "confidence": 0.4}]
		}`))
	}))
	t.Cleanup(server.Close)

	repos, _, _, historyRepo, _ := testRepos()
	client := verify.NewClient(server.URL, "test-key", nil, zap.NewNop())
	return newCaseService(repos, client, zap.NewNop()), historyRepo, &calls
}

func TestCaseSearch_DeduplicatesIdenticalProfiles(t *testing.T) {
	svc, _, calls := testCaseService(t)
	userID := uuid.New()
	profile := models.SearchProfile{Name: "Ramesh Kumar", State: "Karnataka"}

	first, err := svc.Search(context.Background(), userID, profile)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	second, err := svc.Search(context.Background(), userID, profile)
	if err != nil {
		t.Fatalf("Repeated search failed: %v", err)
	}

	if atomic.LoadInt32(calls) != 1 {
		t.Errorf("Expected one upstream call for identical profiles, got %d", atomic.LoadInt32(calls))
	}
	if first != second {
		t.Error("Expected the cached result instance to be returned")
	}
}

func TestCaseSearch_ChangedProfileHitsUpstream(t *testing.T) {
	svc, _, calls := testCaseService(t)
	userID := uuid.New()

	if _, err := svc.Search(context.Background(), userID, models.SearchProfile{Name: "Ramesh Kumar"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Search(context.Background(), userID, models.SearchProfile{Name: "Ramesh Kumar", YearFrom: 2015}); err != nil {
		t.Fatal(err)
	}

	if atomic.LoadInt32(calls) != 2 {
		t.Errorf("Expected two upstream calls for differing profiles, got %d", atomic.LoadInt32(calls))
	}
}

func TestCaseSearch_PerUserDedup(t *testing.T) {
	svc, _, calls := testCaseService(t)
	profile := models.SearchProfile{Name: "Ramesh Kumar"}

	if _, err := svc.Search(context.Background(), uuid.New(), profile); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Search(context.Background(), uuid.New(), profile); err != nil {
		t.Fatal(err)
	}

	// Dedup is per user, a second user repeats the upstream call.
	if atomic.LoadInt32(calls) != 2 {
		t.Errorf("Expected two upstream calls for two users, got %d", atomic.LoadInt32(calls))
	}
}

func TestCaseSearch_RecordsHistoryOncePerFreshSearch(t *testing.T) {
	svc, historyRepo, _ := testCaseService(t)
	userID := uuid.New()
	profile := models.SearchProfile{Name: "Ramesh Kumar"}

	for i := 0; i < 3; i++ {
		if _, err := svc.Search(context.Background(), userID, profile); err != nil {
			t.Fatal(err)
		}
	}

	if len(historyRepo.entries) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(historyRepo.entries))
	}
	entry := historyRepo.entries[0]
	if entry.Domain != string(models.ResourceCourtCases) {
		t.Errorf("Expected courtcases domain, got %s", entry.Domain)
	}
	if entry.Query != "Ramesh Kumar" {
		t.Errorf("Expected query to be the profile name, got %q", entry.Query)
	}
}

func TestCaseSearch_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	repos, _, _, historyRepo, _ := testRepos()
	client := verify.NewClient(server.URL, "test-key", nil, zap.NewNop())
	svc := newCaseService(repos, client, zap.NewNop())

	if _, err := svc.Search(context.Background(), uuid.New(), models.SearchProfile{Name: "Ramesh Kumar"}); err == nil {
		t.Fatal("Expected error for upstream failure")
	}
	if len(historyRepo.entries) != 0 {
		t.Error("Failed searches must not be recorded in history")
	}
}

func TestCaseView_Pagination(t *testing.T) {
	all := make([]models.CaseRecord, 25)
	for i := range all {
		conf := float64(25-i) / 25
		all[i] = models.CaseRecord{ID: uuid.NewString(), Confidence: &conf}
	}
	result := &models.CaseSearchResult{All: all}

	repos, _, _, _, _ := testRepos()
	svc := newCaseService(repos, nil, zap.NewNop())

	page := svc.View(result, pipeline.Options{Page: 3})
	if page.Page != 3 {
		t.Errorf("Expected page 3, got %d", page.Page)
	}
	if page.TotalPages != 3 {
		t.Errorf("Expected 3 total pages, got %d", page.TotalPages)
	}
	if page.Total != 25 {
		t.Errorf("Expected 25 total cases, got %d", page.Total)
	}
	if len(page.Records) != 5 {
		t.Errorf("Expected 5 cases on last page, got %d", len(page.Records))
	}

	// Out-of-range pages clamp instead of erroring.
	page = svc.View(result, pipeline.Options{Page: 99})
	if page.Page != 3 {
		t.Errorf("Expected page clamped to 3, got %d", page.Page)
	}
	page = svc.View(result, pipeline.Options{Page: 0})
	if page.Page != 1 {
		t.Errorf("Expected page defaulted to 1, got %d", page.Page)
	}
}

func TestCaseView_FilterShrinksPageCount(t *testing.T) {
	conf := 0.9
	low := 0.2
	result := &models.CaseSearchResult{All: []models.CaseRecord{
		{ID: "a", Confidence: &conf},
		{ID: "b", Confidence: &low},
		{ID: "c", Confidence: &low},
	}}

	repos, _, _, _, _ := testRepos()
	svc := newCaseService(repos, nil, zap.NewNop())

	page := svc.View(result, pipeline.Options{ConfidenceFilter: 0.5, Page: 1})
	if page.Total != 1 {
		t.Errorf("Expected 1 case above threshold, got %d", page.Total)
	}
	if len(page.Records) != 1 || page.Records[0].ID != "a" {
		t.Errorf("Unexpected page records: %+v", page.Records)
	}
}
