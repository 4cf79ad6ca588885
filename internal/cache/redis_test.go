package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oggyb/swipe-discovery/internal/cache"
	"github.com/oggyb/swipe-discovery/internal/config"
)

func setupCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()
	c := cache.NewRedisCache(cfg)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestFollowerCount(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	_, ok, err := c.GetFollowerCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetFollowerCount(ctx, 7, 42, time.Hour))
	n, ok, err := c.GetFollowerCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)
	assert.Equal(t, time.Hour, mr.TTL("followers:count:7"))

	require.NoError(t, c.InvalidateFollowerCounts(ctx, 7, 8))
	_, ok, err = c.GetFollowerCount(ctx, 7, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowerCount_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	require.NoError(t, mr.Set("followers:count:9", "garbage"))
	_, ok, err := c.GetFollowerCount(ctx, 9, time.Hour)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, mr.Exists("followers:count:9"))
}

func TestCooldown(t *testing.T) {
	ctx := context.Background()
	c, mr := setupCache(t)

	until, err := c.CooldownUntil(ctx, "lookup")
	require.NoError(t, err)
	assert.True(t, until.IsZero())

	want := time.Now().Add(time.Minute).Truncate(time.Millisecond)
	require.NoError(t, c.SetCooldownUntil(ctx, "lookup", want))
	got, err := c.CooldownUntil(ctx, "lookup")
	require.NoError(t, err)
	assert.True(t, want.Equal(got))
	assert.Greater(t, mr.TTL("catalog:cooldown:lookup"), time.Duration(0))

	require.NoError(t, c.SetCooldownUntil(ctx, "lookup", time.Now().Add(-time.Second)))
	assert.False(t, mr.Exists("catalog:cooldown:lookup"))
}
