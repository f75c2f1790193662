package api

import (
	"context"
	"time"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

// Payload is a raw upstream response body for one platform.
// It lives for a single request and is never persisted.
type Payload interface {
	Platform() domain.Platform
}

// Fetcher defines the interface for platform clients.
// Consumers depend on this interface, not on concrete implementations.
type Fetcher interface {
	// Platform returns the platform served by this client.
	Platform() domain.Platform

	// Fetch retrieves the raw upstream payload for username.
	// Every non-nil error is an *Failure.
	Fetch(ctx context.Context, username string) (Payload, error)
}

// ClientConfig holds common configuration for API clients.
type ClientConfig struct {
	BaseURL string
	Token   string // optional; empty means unauthenticated calls
	Timeout time.Duration
}
