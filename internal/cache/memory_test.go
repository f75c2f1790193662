package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_GetSet(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })

	// Act
	_, missErr := c.Get(ctx, "k")
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	got, err := c.Get(ctx, "k")

	// Assert
	assert.ErrorIs(t, missErr, ErrNotFound)
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemory_Expiry(t *testing.T) {
	// Arrange
	ctx := context.Background()
	c := NewMemory(time.Minute)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 10*time.Millisecond))

	// Act
	time.Sleep(30 * time.Millisecond)
	_, err := c.Get(ctx, "k")

	// Assert
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew(t *testing.T) {
	ctx := context.Background()

	none, err := New(ctx, Config{Kind: KindNone})
	require.NoError(t, err)
	assert.Nil(t, none)

	mem, err := New(ctx, Config{Kind: "Memory", DefaultTTL: time.Minute})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, mem)

	_, err = New(ctx, Config{Kind: "memcached"})
	assert.Error(t, err)
}
