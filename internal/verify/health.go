package verify

import (
	"strings"
	"sync"
	"time"
)

// HealthMonitor tracks upstream registry call outcomes and failure rates
type HealthMonitor struct {
	mu                   sync.RWMutex
	totalRequests        int64
	successfulRequests   int64
	failedRequests       int64
	consecutiveFailures  int64
	lastFailureTime      time.Time
	lastSuccessTime      time.Time
	recentFailures       []FailureRecord
	maxRecentFailures    int
	failureThreshold     float64
	consecutiveThreshold int64
}

// FailureRecord represents a single failed registry call
type FailureRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	Identifier string    `json:"identifier"`
	Error      string    `json:"error"`
	Path       string    `json:"path,omitempty"`
}

// HealthStatus represents the current health of the upstream connection
type HealthStatus struct {
	IsHealthy           bool            `json:"is_healthy"`
	TotalRequests       int64           `json:"total_requests"`
	SuccessfulRequests  int64           `json:"successful_requests"`
	FailedRequests      int64           `json:"failed_requests"`
	SuccessRate         float64         `json:"success_rate"`
	ConsecutiveFailures int64           `json:"consecutive_failures"`
	LastFailureTime     *time.Time      `json:"last_failure_time,omitempty"`
	LastSuccessTime     *time.Time      `json:"last_success_time,omitempty"`
	RecentFailures      []FailureRecord `json:"recent_failures"`
	HealthIssues        []string        `json:"health_issues"`
}

// NewHealthMonitor creates a new upstream health monitor
func NewHealthMonitor() *HealthMonitor {
	return &HealthMonitor{
		maxRecentFailures:    50,
		failureThreshold:     0.2, // unhealthy above 20% failures
		consecutiveThreshold: 5,
		recentFailures:       make([]FailureRecord, 0, 50),
	}
}

// RecordSuccess records a successful registry call
func (h *HealthMonitor) RecordSuccess() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests++
	h.successfulRequests++
	h.consecutiveFailures = 0
	h.lastSuccessTime = time.Now()
}

// RecordFailure records a failed registry call
func (h *HealthMonitor) RecordFailure(identifier, errorMsg, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests++
	h.failedRequests++
	h.consecutiveFailures++
	h.lastFailureTime = time.Now()

	h.recentFailures = append(h.recentFailures, FailureRecord{
		Timestamp:  time.Now(),
		Identifier: identifier,
		Error:      errorMsg,
		Path:       path,
	})
	if len(h.recentFailures) > h.maxRecentFailures {
		h.recentFailures = h.recentFailures[1:]
	}
}

// GetHealthStatus returns the current health status
func (h *HealthMonitor) GetHealthStatus() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := HealthStatus{
		TotalRequests:       h.totalRequests,
		SuccessfulRequests:  h.successfulRequests,
		FailedRequests:      h.failedRequests,
		ConsecutiveFailures: h.consecutiveFailures,
		RecentFailures:      make([]FailureRecord, len(h.recentFailures)),
		HealthIssues:        []string{},
	}

	copy(status.RecentFailures, h.recentFailures)

	if h.totalRequests > 0 {
		status.SuccessRate = float64(h.successfulRequests) / float64(h.totalRequests)
	} else {
		status.SuccessRate = 1.0
	}

	if !h.lastFailureTime.IsZero() {
		status.LastFailureTime = &h.lastFailureTime
	}
	if !h.lastSuccessTime.IsZero() {
		status.LastSuccessTime = &h.lastSuccessTime
	}

	status.IsHealthy = true

	if h.totalRequests >= 10 && status.SuccessRate < (1.0-h.failureThreshold) {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues,
			"High upstream failure rate (>20%)")
	}

	if h.consecutiveFailures >= h.consecutiveThreshold {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues,
			"Multiple consecutive upstream failures")
	}

	if !h.lastSuccessTime.IsZero() && time.Since(h.lastSuccessTime) > time.Hour {
		status.IsHealthy = false
		status.HealthIssues = append(status.HealthIssues,
			"No successful registry call in the last hour")
	}

	h.analyzeFailurePatterns(&status)

	return status
}

// analyzeFailurePatterns flags dominant error categories in recent failures
func (h *HealthMonitor) analyzeFailurePatterns(status *HealthStatus) {
	if len(h.recentFailures) < 3 {
		return
	}

	errorCounts := make(map[string]int)
	for _, failure := range h.recentFailures {
		errorCounts[categorizeError(failure.Error)]++
	}

	totalRecent := len(h.recentFailures)
	for errorType, count := range errorCounts {
		if float64(count)/float64(totalRecent) > 0.5 {
			switch errorType {
			case "timeout":
				status.HealthIssues = append(status.HealthIssues,
					"Frequent registry timeouts")
			case "rate_limit":
				status.HealthIssues = append(status.HealthIssues,
					"Registry rate limiting detected")
			case "authentication":
				status.HealthIssues = append(status.HealthIssues,
					"Registry authentication errors, check the API key")
			case "network":
				status.HealthIssues = append(status.HealthIssues,
					"Network connectivity issues reaching the registry")
			}
		}
	}
}

// categorizeError categorizes an error message into a type
func categorizeError(errorMsg string) string {
	errorMsg = strings.ToLower(errorMsg)

	if strings.Contains(errorMsg, "timeout") || strings.Contains(errorMsg, "deadline") {
		return "timeout"
	}
	if strings.Contains(errorMsg, "rate limit") || strings.Contains(errorMsg, "429") {
		return "rate_limit"
	}
	if strings.Contains(errorMsg, "unauthorized") || strings.Contains(errorMsg, "401") || strings.Contains(errorMsg, "403") {
		return "authentication"
	}
	if strings.Contains(errorMsg, "network") || strings.Contains(errorMsg, "connection") || strings.Contains(errorMsg, "dns") {
		return "network"
	}

	return "other"
}

// Reset clears all health monitoring data
func (h *HealthMonitor) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.totalRequests = 0
	h.successfulRequests = 0
	h.failedRequests = 0
	h.consecutiveFailures = 0
	h.lastFailureTime = time.Time{}
	h.lastSuccessTime = time.Time{}
	h.recentFailures = h.recentFailures[:0]
}

// IsHealthy returns true if the upstream connection is operating normally
func (h *HealthMonitor) IsHealthy() bool {
	return h.GetHealthStatus().IsHealthy
}

// FailureRate returns the failure fraction over all recorded calls
func (h *HealthMonitor) FailureRate() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.totalRequests == 0 {
		return 0.0
	}

	return float64(h.failedRequests) / float64(h.totalRequests)
}
