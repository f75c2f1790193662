package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vilaca/brand-dashboard/internal/domain"
)

// Runs against a live database; set TEST_DATABASE_URL to enable.
func TestPostgresProfileStore_ResolveBinding(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	s, err := NewPostgresProfileStore(ctx, PostgresConfig{DSN: dsn, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	migration, err := os.ReadFile("../../migrations/0001_profiles.sql")
	require.NoError(t, err)
	_, err = s.pool.Exec(ctx, string(migration))
	require.NoError(t, err)

	_, err = s.pool.Exec(ctx, `
		INSERT INTO profiles (user_id) VALUES ('pg-user-1'), ('pg-user-2') ON CONFLICT DO NOTHING;
		INSERT INTO platform_bindings (user_id, platform, username) VALUES ('pg-user-1', 'github', 'octocat')
		ON CONFLICT (user_id, platform) DO UPDATE SET username = EXCLUDED.username;`)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = s.pool.Exec(context.Background(), `DELETE FROM profiles WHERE user_id IN ('pg-user-1', 'pg-user-2')`)
	})

	b, err := s.ResolveBinding(ctx, "pg-user-1", domain.PlatformGitHub)
	require.NoError(t, err)
	assert.Equal(t, "octocat", b.Username)

	_, err = s.ResolveBinding(ctx, "pg-user-1", domain.PlatformLeetCode)
	assert.ErrorIs(t, err, ErrBindingNotFound)

	_, err = s.ResolveBinding(ctx, "pg-user-2", domain.PlatformGitHub)
	assert.ErrorIs(t, err, ErrBindingNotFound)

	_, err = s.ResolveBinding(ctx, "pg-missing", domain.PlatformGitHub)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
