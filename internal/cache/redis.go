package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oggyb/swipe-discovery/internal/config"
)

type RedisCache struct {
	Client *redis.Client
}

// NewRedisCache initializes Redis client from config.
// Only Addr is mandatory, Password/DB are optional.
func NewRedisCache(cfg *config.Config) *RedisCache {
	opts := &redis.Options{
		Addr: cfg.Redis.Addr,
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	if cfg.Redis.DB != 0 {
		opts.DB = cfg.Redis.DB
	}
	return &RedisCache{Client: redis.NewClient(opts)}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.Client.Close()
}

// KeyForFollowerCount is the cache key of a user's follower count.
func (c *RedisCache) KeyForFollowerCount(userID uint64) string {
	return fmt.Sprintf("followers:count:%d", userID)
}

// GetFollowerCount returns the cached count. ok is false on a miss.
// A hit refreshes the TTL since the user is active.
func (c *RedisCache) GetFollowerCount(ctx context.Context, userID uint64, ttl time.Duration) (int64, bool, error) {
	key := c.KeyForFollowerCount(userID)
	val, err := c.Client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	} else if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// corrupt entry, treat as miss
		_ = c.Client.Del(ctx, key).Err()
		return 0, false, nil
	}
	_ = c.Client.Expire(ctx, key, ttl).Err()
	return n, true, nil
}

func (c *RedisCache) SetFollowerCount(ctx context.Context, userID uint64, count int64, ttl time.Duration) error {
	return c.Client.Set(ctx, c.KeyForFollowerCount(userID), count, ttl).Err()
}

// InvalidateFollowerCounts drops cached counts after follow edges changed.
func (c *RedisCache) InvalidateFollowerCounts(ctx context.Context, userIDs ...uint64) error {
	if len(userIDs) == 0 {
		return nil
	}
	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = c.KeyForFollowerCount(id)
	}
	return c.Client.Del(ctx, keys...).Err()
}

func keyForCooldown(endpoint string) string {
	return "catalog:cooldown:" + endpoint
}

// CooldownUntil returns when the endpoint's cooldown ends; zero if none.
func (c *RedisCache) CooldownUntil(ctx context.Context, endpoint string) (time.Time, error) {
	val, err := c.Client.Get(ctx, keyForCooldown(endpoint)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	} else if err != nil {
		return time.Time{}, err
	}
	ms, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, nil
	}
	return time.UnixMilli(ms).UTC(), nil
}

// SetCooldownUntil records a cooldown shared by every instance. The key
// expires with the cooldown, so stale entries never linger.
func (c *RedisCache) SetCooldownUntil(ctx context.Context, endpoint string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return c.Client.Del(ctx, keyForCooldown(endpoint)).Err()
	}
	return c.Client.Set(ctx, keyForCooldown(endpoint), until.UnixMilli(), ttl).Err()
}
