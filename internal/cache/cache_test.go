package cache

import (
	"context"
	"testing"

	"github.com/anapaulaelz/final-practicum-project/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDashboardCacheDisabled(t *testing.T) {
	c, err := NewDashboardCache(config.CacheConfig{Enabled: false})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.SetLatest(ctx, "run-1", []byte("{}")))
	_, ok, err := c.GetLatest(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestBuildRedisOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := buildRedisOptions(config.CacheConfig{})
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:6379", opts.Addr)
	})

	t.Run("host and port", func(t *testing.T) {
		opts, err := buildRedisOptions(config.CacheConfig{RedisHost: "redis", RedisPort: "6380", RedisPassword: "pw", RedisDB: 2})
		require.NoError(t, err)
		assert.Equal(t, "redis:6380", opts.Addr)
		assert.Equal(t, "pw", opts.Password)
		assert.Equal(t, 2, opts.DB)
	})

	t.Run("url wins", func(t *testing.T) {
		opts, err := buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@cache:6390/3", RedisHost: "ignored"})
		require.NoError(t, err)
		assert.Equal(t, "cache:6390", opts.Addr)
		assert.Equal(t, 3, opts.DB)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := buildRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
		assert.Error(t, err)
	})
}

func TestDashboardKeys(t *testing.T) {
	assert.Equal(t, "inventory:dashboard:latest", LatestDashboardKey)
	assert.Equal(t, "inventory:dashboard:run:abc", RunDashboardKey("abc"))
}
