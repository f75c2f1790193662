package store

import (
	"context"
	"strings"
	"sync"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

// MemoryProfileStore is a map-backed ProfileLookup for development and tests.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]map[domain.Platform]string // user id -> platform -> username
}

// NewMemoryProfileStore creates a store seeded with profiles.
// Platform names that do not parse are skipped.
func NewMemoryProfileStore(profiles map[string]map[string]string) *MemoryProfileStore {
	s := &MemoryProfileStore{profiles: make(map[string]map[domain.Platform]string)}
	for userID, bindings := range profiles {
		s.profiles[userID] = make(map[domain.Platform]string)
		for name, username := range bindings {
			if p, ok := domain.ParsePlatform(name); ok {
				s.profiles[userID][p] = username
			}
		}
	}
	return s
}

// Put stores or replaces one binding, creating the profile if needed.
func (s *MemoryProfileStore) Put(userID string, platform domain.Platform, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profiles[userID] == nil {
		s.profiles[userID] = make(map[domain.Platform]string)
	}
	s.profiles[userID][platform] = username
}

// ResolveBinding implements ProfileLookup.
func (s *MemoryProfileStore) ResolveBinding(_ context.Context, userID string, platform domain.Platform) (domain.PlatformBinding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bindings, ok := s.profiles[userID]
	if !ok {
		return domain.PlatformBinding{}, ErrProfileNotFound
	}

	username := strings.TrimSpace(bindings[platform])
	if username == "" {
		return domain.PlatformBinding{}, ErrBindingNotFound
	}

	return domain.PlatformBinding{Name: platform, Username: username}, nil
}
