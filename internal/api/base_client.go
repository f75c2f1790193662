package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

const (
	// MaxConcurrentRequests limits concurrent requests to one upstream platform
	MaxConcurrentRequests = 5
	// DefaultTimeout bounds one Fetch, all of its upstream calls included
	DefaultTimeout = 5 * time.Second
	// DefaultPageSize is the number of items requested per page
	DefaultPageSize = 100
	// UserAgent identifies outbound calls
	UserAgent = "brand-dashboard"

	maxErrorBody = 512
)

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BaseClient contains common fields and functionality for all platform clients.
type BaseClient struct {
	Platform   domain.Platform
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient HTTPClient
	Semaphore  chan struct{} // Limits concurrent requests
}

// NewBaseClient creates a new base client with rate limiting.
func NewBaseClient(platform domain.Platform, config ClientConfig, httpClient HTTPClient) *BaseClient {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &BaseClient{
		Platform:   platform,
		BaseURL:    config.BaseURL,
		Token:      config.Token,
		Timeout:    timeout,
		HTTPClient: httpClient,
		Semaphore:  make(chan struct{}, MaxConcurrentRequests),
	}
}

// HasToken reports whether credentials are configured.
func (c *BaseClient) HasToken() bool {
	return c.Token != ""
}

// WithTimeout derives the context bounding one Fetch.
func (c *BaseClient) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, c.Timeout)
}

// Do performs req under the semaphore and decodes a 2xx JSON body into result.
// All errors are returned as *Failure.
func (c *BaseClient) Do(ctx context.Context, req *http.Request, result interface{}) error {
	select {
	case c.Semaphore <- struct{}{}:
		defer func() { <-c.Semaphore }()
	case <-ctx.Done():
		return AsFailure(c.Platform, ctx.Err())
	}

	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.HTTPClient.Do(req.WithContext(ctx))
	if err != nil {
		return AsFailure(c.Platform, fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Failure{
			Kind:       FailureHTTP,
			Platform:   c.Platform,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		// A body cut short by the deadline is a timeout, not a bad payload.
		if ctx.Err() != nil {
			return AsFailure(c.Platform, ctx.Err())
		}
		return NewMalformed(c.Platform, "failed to decode response: %w", err)
	}

	return nil
}
