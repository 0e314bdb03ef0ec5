package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	PostingsCreated  prometheus.Counter
	PostingsReplayed prometheus.Counter
	PostingsReversed prometheus.Counter
	PostingErrors    *prometheus.CounterVec
	PostingDuration  prometheus.Histogram
	PostingWarnings  *prometheus.CounterVec

	// Resolution metrics
	ResolutionCacheHits   prometheus.Counter
	ResolutionCacheMisses prometheus.Counter

	// Database metrics
	DBQueries  *prometheus.CounterVec
	DBDuration *prometheus.HistogramVec
	DBErrors   *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		PostingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaledger_postings_created_total",
			Help: "Total number of journal entries created from invoices",
		}),
		PostingsReplayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaledger_postings_replayed_total",
			Help: "Total number of idempotent posting replays",
		}),
		PostingsReversed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaledger_postings_reversed_total",
			Help: "Total number of reversal entries created",
		}),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaledger_posting_errors_total",
				Help: "Total number of posting errors by type",
			},
			[]string{"error_type"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "contaledger_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		PostingWarnings: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaledger_posting_warnings_total",
				Help: "Total posting warnings by code",
			},
			[]string{"code"},
		),

		ResolutionCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaledger_resolution_cache_hits_total",
			Help: "Total account resolution cache hits",
		}),
		ResolutionCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "contaledger_resolution_cache_misses_total",
			Help: "Total account resolution cache misses",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "contaledger_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contaledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
