// Package cache stores serialized stats records between requests.
//
// Backends:
//   - memory: in-process, go-cache
//   - redis: shared between replicas
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Cache is a TTL key/value store.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// Kinds accepted by New.
const (
	KindMemory = "memory"
	KindRedis  = "redis"
	KindNone   = "none"
)

// Config selects and configures a backend.
type Config struct {
	Kind       string
	DefaultTTL time.Duration
	RedisAddr  string
	RedisDB    int
	Prefix     string
}

// New opens the configured backend. KindNone yields a nil Cache.
func New(ctx context.Context, cfg Config) (Cache, error) {
	switch strings.ToLower(cfg.Kind) {
	case KindNone:
		return nil, nil
	case KindRedis:
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.Prefix)
	case KindMemory, "":
		return NewMemory(cfg.DefaultTTL), nil
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}
