package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/oggyb/swipe-discovery/internal/metrics"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

type GuardedConfig struct {
	// Endpoint names the breaker and keys the cooldown.
	Endpoint        string
	RatePerSec      float64
	Burst           int
	DefaultCooldown time.Duration
}

// Guarded wraps a Lookup with an explicit cooldown, a client-side rate
// limit and a circuit breaker, checked in that order.
type Guarded struct {
	inner     Lookup
	endpoint  string
	cooldowns CooldownStore
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[Metadata]
	fallback  time.Duration
	log       *slog.Logger
	now       func() time.Time
}

func NewGuarded(inner Lookup, cooldowns CooldownStore, cfg GuardedConfig, log *slog.Logger) *Guarded {
	if cfg.Endpoint == "" {
		cfg.Endpoint = "catalog-lookup"
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}

	g := &Guarded{
		inner:     inner,
		endpoint:  cfg.Endpoint,
		cooldowns: cooldowns,
		limiter:   rate.NewLimiter(limit, cfg.Burst),
		fallback:  cfg.DefaultCooldown,
		log:       log,
		now:       time.Now,
	}

	metrics.CatalogBreakerState.WithLabelValues(cfg.Endpoint).Set(0)
	g.cb = gobreaker.NewCircuitBreaker[Metadata](gobreaker.Settings{
		Name:        cfg.Endpoint,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		// Opens at 60% failures once there are at least 10 requests.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		// Missing items are answers, not provider failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("catalog breaker state change", "endpoint", name, "from", from.String(), "to", to.String())
			metrics.CatalogBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})
	return g
}

func (g *Guarded) Lookup(ctx context.Context, mediaType swipe.MediaType, mediaID string) (Metadata, error) {
	cd, err := g.cooldowns.Load(ctx, g.endpoint)
	if err != nil {
		// a broken cooldown store must not take lookups down with it
		g.log.Warn("catalog cooldown load failed", "endpoint", g.endpoint, "err", err)
	} else if cd.Active(g.now()) {
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "cooling_down").Inc()
		return Metadata{}, ErrCoolingDown
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return Metadata{}, err
	}

	md, err := g.cb.Execute(func() (Metadata, error) {
		return g.inner.Lookup(ctx, mediaType, mediaID)
	})

	var limited *RateLimitedError
	switch {
	case err == nil:
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "success").Inc()
		return md, nil
	case errors.Is(err, ErrNotFound):
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "not_found").Inc()
		return Metadata{}, err
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "rejected").Inc()
		return Metadata{}, ErrUnavailable
	case errors.As(err, &limited):
		g.startCooldown(ctx, limited.RetryAfter)
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "cooling_down").Inc()
		return Metadata{}, ErrCoolingDown
	default:
		metrics.CatalogLookups.WithLabelValues(g.endpoint, "failure").Inc()
		return Metadata{}, err
	}
}

func (g *Guarded) startCooldown(ctx context.Context, retryAfter time.Duration) {
	if retryAfter <= 0 {
		retryAfter = g.fallback
	}
	until := g.now().Add(retryAfter)
	if err := g.cooldowns.Save(ctx, g.endpoint, Cooldown{Until: until}); err != nil {
		g.log.Warn("catalog cooldown save failed", "endpoint", g.endpoint, "err", err)
		return
	}
	g.log.Info("catalog cooling down", "endpoint", g.endpoint, "until", until)
}

// State exposes the breaker state for health reporting.
func (g *Guarded) State() gobreaker.State { return g.cb.State() }

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
