// Package metrics declares the Prometheus collectors for the discovery
// engine. Collectors register with the default registry on init; the admin
// listener in internal/server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SwipesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_swipes_recorded_total",
			Help: "Swipe actions appended to the log",
		},
		[]string{"kind", "direction"}, // kind: profile|music
	)

	SwipesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_swipes_rejected_total",
			Help: "Swipe attempts rejected before any write",
		},
		[]string{"kind", "reason"}, // reason: validation|policy|not_found
	)

	InvitationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_invitations_created_total",
			Help: "Chat invitations created from liked profile swipes",
		},
	)

	CandidatesServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_candidates_served_total",
			Help: "Candidates returned to clients",
		},
		[]string{"kind"},
	)

	CandidatesFiltered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_candidates_filtered_total",
			Help: "Pool entries dropped by the profile filter",
		},
		[]string{"reason"},
	)

	FollowerCountCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_follower_count_cache_total",
			Help: "Follower count cache lookups",
		},
		[]string{"result"}, // hit|miss|error
	)

	CatalogLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "discovery_catalog_lookups_total",
			Help: "Catalog metadata lookups by outcome",
		},
		[]string{"endpoint", "result"}, // success|not_found|cooling_down|rejected|failure
	)

	CatalogBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "discovery_catalog_breaker_state",
			Help: "Catalog circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"endpoint"},
	)
)

// RPCDuration is observed by the server's unary interceptor.
var RPCDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "discovery_rpc_duration_seconds",
		Help:    "Unary RPC latency by method and status code",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "code"},
)
