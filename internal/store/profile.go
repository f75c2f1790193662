package store

import (
	"context"
	"errors"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

var (
	// ErrProfileNotFound means no profile exists for the user id.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrBindingNotFound means the profile has no account on the requested platform.
	ErrBindingNotFound = errors.New("binding not found")
)

// ProfileLookup resolves platform accounts from stored profiles.
// Implementations only read; bindings are owned by the profile store.
type ProfileLookup interface {
	ResolveBinding(ctx context.Context, userID string, platform domain.Platform) (domain.PlatformBinding, error)
}
