package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

const resolveBindingSQL = `
SELECT b.username
FROM profiles p
LEFT JOIN platform_bindings b ON b.user_id = p.user_id AND b.platform = $2
WHERE p.user_id = $1`

// PostgresConfig configures the connection pool.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// PostgresProfileStore is a ProfileLookup backed by PostgreSQL.
type PostgresProfileStore struct {
	pool *pgxpool.Pool
}

// NewPostgresProfileStore opens a pool and verifies connectivity.
func NewPostgresProfileStore(ctx context.Context, cfg PostgresConfig) (*PostgresProfileStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	} else {
		poolCfg.MaxConns = 10
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresProfileStore{pool: pool}, nil
}

// ResolveBinding implements ProfileLookup.
func (s *PostgresProfileStore) ResolveBinding(ctx context.Context, userID string, platform domain.Platform) (domain.PlatformBinding, error) {
	var username *string
	err := s.pool.QueryRow(ctx, resolveBindingSQL, userID, string(platform)).Scan(&username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PlatformBinding{}, ErrProfileNotFound
		}
		return domain.PlatformBinding{}, fmt.Errorf("resolving %s binding: %w", platform, err)
	}

	if username == nil || strings.TrimSpace(*username) == "" {
		return domain.PlatformBinding{}, ErrBindingNotFound
	}

	return domain.PlatformBinding{Name: platform, Username: strings.TrimSpace(*username)}, nil
}

// Close releases the pool.
func (s *PostgresProfileStore) Close() {
	s.pool.Close()
}
