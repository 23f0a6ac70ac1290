// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
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

	// Matching domain metrics.

	CompatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pathmatch_compatibility_score",
			Help:    "Distribution of computed mentor compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11), // 0..100
		},
	)

	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pathmatch_matches_created_total",
			Help: "Total number of match records created",
		},
	)

	MatchQuality = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pathmatch_match_quality_total",
			Help: "Compatibility results by quality label",
		},
		[]string{"quality"},
	)
)
