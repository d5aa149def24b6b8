// Package observability holds prometheus instrumentation for the core.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DiscoveryQueriesTotal counts nearby-dealer searches.
	DiscoveryQueriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "supplylink",
		Name:      "discovery_queries_total",
		Help:      "Total number of nearby-dealer queries",
	})

	// DiscoveryQueryDuration observes end-to-end search latency.
	DiscoveryQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "supplylink",
		Name:      "discovery_query_duration_seconds",
		Help:      "Nearby-dealer query latency distribution",
		Buckets:   prometheus.DefBuckets,
	})

	// ConnectionTransitionsTotal counts registry transitions by resulting state.
	ConnectionTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "supplylink",
			Name:      "connection_transitions_total",
			Help:      "Total number of connection state transitions",
		},
		[]string{"state"},
	)

	// ConnectionConflictsTotal counts rejected transitions (invariant or CAS conflicts).
	ConnectionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "supplylink",
		Name:      "connection_conflicts_total",
		Help:      "Total number of connection requests or transitions rejected due to conflicts",
	})
)
