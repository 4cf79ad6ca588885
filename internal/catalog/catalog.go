// Package catalog is the boundary to the external music catalog. The engine
// only depends on Lookup; Guarded adds the resilience the provider needs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oggyb/swipe-discovery/internal/swipe"
)

var (
	ErrNotFound = errors.New("catalog: item not found")
	// ErrCoolingDown means the provider asked us to back off and the
	// cooldown has not elapsed yet.
	ErrCoolingDown = errors.New("catalog: endpoint cooling down")
	// ErrUnavailable means the circuit breaker is rejecting calls.
	ErrUnavailable = errors.New("catalog: provider unavailable")
)

// Metadata describes one media item.
type Metadata struct {
	MediaType swipe.MediaType `json:"type"`
	MediaID   string          `json:"id"`
	Title     string          `json:"title"`
	Artist    string          `json:"artist"`
	ImageURL  string          `json:"image_url"`
}

type Lookup interface {
	Lookup(ctx context.Context, mediaType swipe.MediaType, mediaID string) (Metadata, error)
}

// RateLimitedError is returned when the provider answers 429.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("catalog: rate limited, retry after %s", e.RetryAfter)
}

// Noop is used when no provider is configured.
type Noop struct{}

func (Noop) Lookup(context.Context, swipe.MediaType, string) (Metadata, error) {
	return Metadata{}, ErrNotFound
}
