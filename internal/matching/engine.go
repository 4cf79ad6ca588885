// Package matching is the swipe discovery and matching engine. It selects
// profile and music candidates, records swipes with their follow and
// invitation side effects, and evaluates reciprocity for chat gating.
//
// The engine holds no state between calls. Everything durable lives behind
// Store; every exported method validates its input before touching it.
package matching

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oggyb/swipe-discovery/internal/catalog"
	svcErr "github.com/oggyb/swipe-discovery/internal/errors"
	"github.com/oggyb/swipe-discovery/internal/logger"
	"github.com/oggyb/swipe-discovery/internal/swipe"
)

const (
	DefaultPoolSize          = 120
	DefaultFollowersPageSize = 5
	DefaultEnrichLimit       = 40
)

// Engine wires the discovery components over one Store.
type Engine struct {
	store       Store
	catalog     catalog.Lookup
	log         *slog.Logger
	now         func() time.Time
	poolSize    int
	pageSize    int
	enrichLimit int
}

type Option func(*Engine)

// WithClock overrides the time source used for ages and timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCatalog enables metadata enrichment of music candidates.
func WithCatalog(c catalog.Lookup) Option {
	return func(e *Engine) { e.catalog = c }
}

// WithPoolSize sets how many users are over-fetched per profile batch.
func WithPoolSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.poolSize = n
		}
	}
}

func WithFollowersPageSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.pageSize = n
		}
	}
}

// WithEnrichLimit caps catalog lookups per music batch.
func WithEnrichLimit(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.enrichLimit = n
		}
	}
}

func New(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		catalog:     catalog.Noop{},
		log:         logger.L(),
		now:         time.Now,
		poolSize:    DefaultPoolSize,
		pageSize:    DefaultFollowersPageSize,
		enrichLimit: DefaultEnrichLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// loadUser fetches a user, mapping a missing row to NotFound.
func (e *Engine) loadUser(ctx context.Context, users UserDirectory, id uint64, what string) (swipe.Profile, error) {
	p, err := users.GetUser(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return swipe.Profile{}, svcErr.NotFound(what + " not found")
	}
	if err != nil {
		e.log.Error("load user failed", "user_id", id, "err", err)
		return swipe.Profile{}, svcErr.Transient("load user", err)
	}
	return p, nil
}

func requireID(id uint64, field string) error {
	if id == 0 {
		return svcErr.Validationf("%s is required", field)
	}
	return nil
}

func requirePair(a, b uint64, fieldA, fieldB string) error {
	if err := requireID(a, fieldA); err != nil {
		return err
	}
	if err := requireID(b, fieldB); err != nil {
		return err
	}
	if a == b {
		return svcErr.Validationf("%s and %s must differ", fieldA, fieldB)
	}
	return nil
}

// clampLimit applies the default for zero and clamps everything else.
func clampLimit(limit, def, lo, hi int) int {
	switch {
	case limit <= 0:
		return def
	case limit < lo:
		return lo
	case limit > hi:
		return hi
	}
	return limit
}
