// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "videotube"

var (
	// Toggles counts effective toggles by edge kind and resulting state.
	Toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggles_total",
		Help:      "Relationship toggles by edge kind and resulting state.",
	}, []string{"edge", "state"})

	// ToggleConflicts counts inserts that lost a race to a concurrent duplicate.
	ToggleConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toggle_conflicts_total",
		Help:      "Toggle inserts resolved by the unique index.",
	}, []string{"edge"})

	// JoinDrops counts rows dropped by inner joins because the referenced record is missing.
	JoinDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compose_join_drops_total",
		Help:      "Rows dropped by inner joins.",
	}, []string{"join"})

	StatsCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_requests_total",
		Help:      "Channel stats cache lookups by result.",
	}, []string{"result"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler exposes the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
