package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/oggyb/swipe-discovery/internal/cache"
)

// Cooldown is the back-off window for one provider endpoint.
type Cooldown struct {
	Until time.Time
}

func (c Cooldown) Active(now time.Time) bool { return now.Before(c.Until) }

func (c Cooldown) Remaining(now time.Time) time.Duration {
	if !c.Active(now) {
		return 0
	}
	return c.Until.Sub(now)
}

// CooldownStore owns cooldown state. MemoryCooldowns keeps it per process;
// RedisCooldowns shares it between every instance.
type CooldownStore interface {
	Load(ctx context.Context, endpoint string) (Cooldown, error)
	Save(ctx context.Context, endpoint string, c Cooldown) error
}

type MemoryCooldowns struct {
	mu sync.Mutex
	m  map[string]Cooldown
}

func NewMemoryCooldowns() *MemoryCooldowns {
	return &MemoryCooldowns{m: make(map[string]Cooldown)}
}

func (s *MemoryCooldowns) Load(_ context.Context, endpoint string) (Cooldown, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[endpoint], nil
}

func (s *MemoryCooldowns) Save(_ context.Context, endpoint string, c Cooldown) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[endpoint] = c
	return nil
}

type RedisCooldowns struct {
	cache *cache.RedisCache
}

func NewRedisCooldowns(c *cache.RedisCache) *RedisCooldowns {
	return &RedisCooldowns{cache: c}
}

func (s *RedisCooldowns) Load(ctx context.Context, endpoint string) (Cooldown, error) {
	until, err := s.cache.CooldownUntil(ctx, endpoint)
	return Cooldown{Until: until}, err
}

func (s *RedisCooldowns) Save(ctx context.Context, endpoint string, c Cooldown) error {
	return s.cache.SetCooldownUntil(ctx, endpoint, c.Until)
}
