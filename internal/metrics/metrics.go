// Package metrics defines Prometheus metrics for meli-product-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mpt"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Pipeline metrics.
var (
	PipelineRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pipeline_runs_total",
		Help:      "Total number of enrichment pipeline runs by outcome.",
	}, []string{"outcome"})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of enrichment pipeline runs in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	PipelineProgress = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "pipeline_progress_ratio",
		Help:      "Completed fraction of the in-flight enrichment run (0 to 1).",
	})

	EnrichedItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enriched_items_total",
		Help:      "Total number of products enriched.",
	})

	MalformedItemsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "malformed_items_total",
		Help:      "Total number of catalog entries excluded as malformed.",
	})

	SubqueryFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subquery_failures_total",
		Help:      "Total number of degraded enrichment sub-queries by kind.",
	}, []string{"kind"})
)

// MercadoLibre API metrics.
var (
	MeliAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meli_api_calls_total",
		Help:      "Total cumulative MercadoLibre API calls.",
	})

	MeliDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "meli_daily_usage",
		Help:      "Current daily MercadoLibre API call count within the rolling 24-hour window.",
	})

	MeliDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "meli_daily_limit_hits_total",
		Help:      "Total number of times the daily MercadoLibre API limit was reached.",
	})

	TokenExchangesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_exchanges_total",
		Help:      "Total number of OAuth credential exchanges performed.",
	})
)

// Summary metrics.
var (
	SummaryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "summary_duration_seconds",
		Help:      "Duration of summary generation streams in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SummaryFragmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "summary_fragments_total",
		Help:      "Total number of summary text fragments streamed to callers.",
	})
)

// Notification metrics.
var (
	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
