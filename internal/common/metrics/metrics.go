// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AnalysisCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "niche_analysis_cache_requests_total",
			Help: "Analysis cache lookups by outcome",
		},
		[]string{"result"},
	)

	CatalogSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "niche_catalog_size",
			Help: "Number of micro-niches in the most recently loaded catalog",
		},
		[]string{"source"},
	)

	TopCompositeScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "niche_top_composite_score",
			Help:    "Composite score of the first-ranked niche per analysis",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
