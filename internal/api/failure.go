package api

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

// FailureKind classifies why an upstream call did not produce a payload.
type FailureKind string

const (
	FailureTimeout   FailureKind = "upstream_timeout"
	FailureHTTP      FailureKind = "upstream_http_error"
	FailureMalformed FailureKind = "upstream_malformed_payload"
)

// Failure is the typed error returned by every Fetcher.
type Failure struct {
	Kind       FailureKind
	Platform   domain.Platform
	StatusCode int // set for FailureHTTP
	Err        error
}

func (f *Failure) Error() string {
	if f.Kind == FailureHTTP {
		return fmt.Sprintf("%s: %s (status %d): %v", f.Platform, f.Kind, f.StatusCode, f.Err)
	}
	return fmt.Sprintf("%s: %s: %v", f.Platform, f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// RateLimited reports whether the upstream refused the call for quota reasons.
func (f *Failure) RateLimited() bool {
	return f.Kind == FailureHTTP && (f.StatusCode == 403 || f.StatusCode == 429)
}

// NewMalformed builds a malformed-payload failure.
func NewMalformed(platform domain.Platform, format string, args ...interface{}) *Failure {
	return &Failure{Kind: FailureMalformed, Platform: platform, Err: fmt.Errorf(format, args...)}
}

// AsFailure converts any error into a *Failure for platform.
// Existing failures pass through; context and network timeouts become FailureTimeout;
// anything else is treated as an HTTP-level failure without a status code.
func AsFailure(platform domain.Platform, err error) *Failure {
	if err == nil {
		return nil
	}

	var f *Failure
	if errors.As(err, &f) {
		return f
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Failure{Kind: FailureTimeout, Platform: platform, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Kind: FailureTimeout, Platform: platform, Err: err}
	}

	return &Failure{Kind: FailureHTTP, Platform: platform, Err: err}
}
