package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound indicates the upstream registry has no record for the queried
// identifier.
var ErrNotFound = errors.New("record not found")

// Client talks to the upstream verification provider. All lookups are plain
// request/response; there is no retry policy, failures surface to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	cache      *Cache
	health     *HealthMonitor
	logger     *zap.Logger
}

// NewClient creates a verification API client. cache may be nil, in which
// case every lookup hits the upstream service.
func NewClient(baseURL, apiKey string, cache *Cache, logger *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache:  cache,
		health: NewHealthMonitor(),
		logger: logger,
	}
}

// Health returns the upstream connection health monitor.
func (c *Client) Health() *HealthMonitor {
	return c.health
}

// getJSON performs a cached GET against the verification API and decodes the
// response into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	if payload, ok := c.cache.Get(ctx, fullURL); ok {
		return json.Unmarshal(payload, out)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.health.RecordFailure(path, err.Error(), fullURL)
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// A miss is a valid upstream answer, not a failure
		c.health.RecordSuccess()
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.health.RecordFailure(path, fmt.Sprintf("status %d", resp.StatusCode), fullURL)
		return fmt.Errorf("verification API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.health.RecordSuccess()
	c.cache.Set(ctx, fullURL, body)
	return nil
}

// postJSON performs an uncached POST with a JSON body. Used for the
// case-search API, whose results are deduplicated at the service layer by
// profile fingerprint rather than cached here.
func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.health.RecordFailure(path, err.Error(), c.baseURL+path)
		return fmt.Errorf("verification request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.health.RecordFailure(path, fmt.Sprintf("status %d", resp.StatusCode), c.baseURL+path)
		return fmt.Errorf("verification API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.health.RecordSuccess()
	return nil
}
