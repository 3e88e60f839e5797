package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RevenueMetrics holds all Prometheus metrics for the summary service.
type RevenueMetrics struct {
	RequestsTotal       *prometheus.CounterVec
	CacheHits           prometheus.Counter
	CacheMisses         prometheus.Counter
	CacheReadErrors     prometheus.Counter
	CacheWriteErrors    prometheus.Counter
	TimezoneFallbacks   prometheus.Counter
	IntegrityFaults     prometheus.Counter
	InvalidatedEntries  prometheus.Counter
	IdentityCacheHits   prometheus.Counter
	IdentityCacheMisses prometheus.Counter
}

// NewRevenueMetrics initializes and registers the Prometheus metrics.
func NewRevenueMetrics() *RevenueMetrics {
	return &RevenueMetrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total number of summary requests by outcome.",
		}, []string{"status"}), // status: ok, invalid_property, no_tenant, internal_error
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Total number of summary cache hits.",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Total number of summary cache misses.",
		}),
		CacheReadErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "cache",
			Name:      "read_errors_total",
			Help:      "Total number of cache reads that failed and degraded to direct aggregation.",
		}),
		CacheWriteErrors: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "cache",
			Name:      "write_errors_total",
			Help:      "Total number of cache writes that failed after a fresh aggregation.",
		}),
		TimezoneFallbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "period",
			Name:      "timezone_fallbacks_total",
			Help:      "Total number of period resolutions that fell back to UTC.",
		}),
		IntegrityFaults: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "api",
			Name:      "integrity_faults_total",
			Help:      "Total number of tenant-mismatch integrity faults.",
		}),
		InvalidatedEntries: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "cache",
			Name:      "invalidated_entries_total",
			Help:      "Total number of cache entries removed by tenant invalidation.",
		}),
		IdentityCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "auth",
			Name:      "identity_cache_hits_total",
			Help:      "Total number of API key identity cache hits.",
		}),
		IdentityCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "revenue_summary",
			Subsystem: "auth",
			Name:      "identity_cache_misses_total",
			Help:      "Total number of API key identity cache misses.",
		}),
	}
}
