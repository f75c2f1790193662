package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/cache"
	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/logger"
	"github.com/vilaca/brand-dashboard/internal/metrics"
	"github.com/vilaca/brand-dashboard/internal/store"
)

var (
	// ErrUnsupportedPlatform means no client is registered for the platform.
	ErrUnsupportedPlatform = errors.New("platform not supported")
	// ErrInvalidUsername means the username is blank.
	ErrInvalidUsername = errors.New("username is required")
	// ErrInternal wraps faults that are neither upstream failures nor missing data.
	ErrInternal = errors.New("internal error")
)

// Normalizer shapes raw payloads into stats records.
type Normalizer interface {
	Normalize(payload api.Payload) (domain.Stats, error)
}

// Synthesizer produces deterministic substitute records.
type Synthesizer interface {
	Synthesize(platform domain.Platform, username string) (domain.Stats, error)
}

// StatsServiceConfig holds the collaborators of a StatsService.
type StatsServiceConfig struct {
	Normalizer  Normalizer
	Synthesizer Synthesizer
	Profiles    store.ProfileLookup
	Cache       cache.Cache // optional
	CacheTTL    time.Duration
}

// StatsService resolves platform stats for a username or an authenticated profile.
// Upstream failures never reach callers: they are logged and replaced by a
// synthesized record. There is exactly one upstream attempt per lookup.
type StatsService struct {
	fetchers    map[domain.Platform]api.Fetcher
	mu          sync.RWMutex
	normalizer  Normalizer
	synthesizer Synthesizer
	profiles    store.ProfileLookup
	cache       cache.Cache
	cacheTTL    time.Duration
	inflight    singleflight.Group
}

// NewStatsService creates a new stats service.
func NewStatsService(cfg StatsServiceConfig) *StatsService {
	return &StatsService{
		fetchers:    make(map[domain.Platform]api.Fetcher),
		normalizer:  cfg.Normalizer,
		synthesizer: cfg.Synthesizer,
		profiles:    cfg.Profiles,
		cache:       cfg.Cache,
		cacheTTL:    cfg.CacheTTL,
	}
}

// RegisterFetcher registers the client of one platform.
// New platforms are added without modifying the service.
func (s *StatsService) RegisterFetcher(f api.Fetcher) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchers[f.Platform()] = f
}

// Platforms returns the registered platforms.
func (s *StatsService) Platforms() []domain.Platform {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Platform, 0, len(s.fetchers))
	for _, p := range domain.Platforms {
		if _, ok := s.fetchers[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *StatsService) fetcher(platform domain.Platform) (api.Fetcher, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.fetchers[platform]
	return f, ok
}

// GetByUsername returns stats for username on platform.
// The returned error is non-nil only for ErrUnsupportedPlatform, ErrInvalidUsername
// and ErrInternal; in every other case the envelope is successful, with live data
// when the upstream call worked and synthesized data otherwise.
func (s *StatsService) GetByUsername(ctx context.Context, platform domain.Platform, username string) (domain.Envelope, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return domain.Fail(ErrInvalidUsername.Error()), ErrInvalidUsername
	}

	f, ok := s.fetcher(platform)
	if !ok {
		msg := fmt.Sprintf("%s: %s", ErrUnsupportedPlatform, platform)
		return domain.Fail(msg), fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}

	log := logger.From(ctx).With(
		zap.String("platform", string(platform)),
		zap.String("username", username),
	)
	key := cacheKey(platform, username)

	if stats, ok := s.fromCache(ctx, log, platform, key); ok {
		metrics.RecordCacheHit(string(platform))
		metrics.RecordStats(string(platform), string(stats.Source()))
		return domain.OK(stats), nil
	}

	// The shared call outlives any single caller; the client timeout still bounds it.
	start := time.Now()
	ch := s.inflight.DoChan(key, func() (interface{}, error) {
		fetchCtx := context.WithoutCancel(ctx)
		payload, err := f.Fetch(fetchCtx, username)
		if err != nil {
			return nil, err
		}
		stats, err := s.normalizer.Normalize(payload)
		if err != nil {
			return nil, err
		}
		s.toCache(fetchCtx, log, key, stats)
		return stats, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		res = singleflight.Result{Err: api.AsFailure(platform, ctx.Err())}
	}
	err := res.Err

	if err == nil {
		stats := res.Val.(domain.Stats)
		metrics.RecordUpstream(string(platform), metrics.OutcomeSuccess, time.Since(start))
		metrics.RecordStats(string(platform), string(stats.Source()))
		return domain.OK(stats), nil
	}

	failure := api.AsFailure(platform, err)
	metrics.RecordUpstream(string(platform), string(failure.Kind), time.Since(start))
	log.Warn("upstream fetch failed, serving synthesized stats",
		zap.String("kind", string(failure.Kind)),
		zap.Int("status", failure.StatusCode),
		zap.Bool("rate_limited", failure.RateLimited()),
		zap.Error(failure.Err),
	)

	stats, err := s.synthesizer.Synthesize(platform, username)
	if err != nil {
		log.Error("synthesis failed", zap.Error(err))
		return domain.Fail(ErrInternal.Error()), fmt.Errorf("%w: %v", ErrInternal, err)
	}
	metrics.RecordStats(string(platform), string(stats.Source()))

	return domain.OK(stats), nil
}

// GetByProfile resolves the platform username bound to userID and returns its
// stats. A missing profile or binding yields an unsuccessful envelope together with
// store.ErrProfileNotFound or store.ErrBindingNotFound; no synthesis happens since
// there is no username to synthesize from.
func (s *StatsService) GetByProfile(ctx context.Context, platform domain.Platform, userID string) (domain.Envelope, error) {
	if _, ok := s.fetcher(platform); !ok {
		msg := fmt.Sprintf("%s: %s", ErrUnsupportedPlatform, platform)
		return domain.Fail(msg), fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	if s.profiles == nil {
		return domain.Fail(ErrInternal.Error()), fmt.Errorf("%w: no profile store configured", ErrInternal)
	}

	binding, err := s.profiles.ResolveBinding(ctx, userID, platform)
	switch {
	case errors.Is(err, store.ErrProfileNotFound):
		return domain.Fail(store.ErrProfileNotFound.Error()), err
	case errors.Is(err, store.ErrBindingNotFound):
		return domain.Fail(fmt.Sprintf("%s %s", platform, store.ErrBindingNotFound)), err
	case err != nil:
		logger.From(ctx).Error("profile lookup failed",
			zap.String("platform", string(platform)),
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return domain.Fail(ErrInternal.Error()), fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return s.GetByUsername(ctx, platform, binding.Username)
}

func (s *StatsService) fromCache(ctx context.Context, log *zap.Logger, platform domain.Platform, key string) (domain.Stats, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			log.Warn("cache read failed", zap.Error(err))
		}
		return nil, false
	}

	stats, ok := domain.NewStats(platform)
	if !ok {
		return nil, false
	}
	if err := json.Unmarshal(data, stats); err != nil {
		log.Warn("discarding unreadable cache entry", zap.Error(err))
		return nil, false
	}
	return stats, true
}

// toCache stores live records only; synthesized ones are cheap to rebuild.
func (s *StatsService) toCache(ctx context.Context, log *zap.Logger, key string, stats domain.Stats) {
	if s.cache == nil || stats.Source() != domain.SourceLive {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		log.Warn("cache encode failed", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		log.Warn("cache write failed", zap.Error(err))
	}
}

func cacheKey(platform domain.Platform, username string) string {
	return fmt.Sprintf("stats:%s:%s", platform, strings.ToLower(username))
}
