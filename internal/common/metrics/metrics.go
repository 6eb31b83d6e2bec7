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

	QuoteVerdicts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_quote_verdicts_total",
			Help: "Installer quotes evaluated, by fairness bucket",
		},
		[]string{"bucket"},
	)

	ComplianceChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_compliance_checks_total",
			Help: "Content compliance checks, by status",
		},
		[]string{"status"},
	)

	LocationFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "solar_location_fallbacks_total",
			Help: "Location resolutions that fell back to a coarser tier",
		},
		[]string{"tier"},
	)

	ComplianceSessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "solar_compliance_sessions_evicted_total",
			Help: "Compliance sessions dropped after going idle",
		},
	)

	RecommendedSystemSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "solar_recommended_system_kw",
			Help:    "Recommended system size in kW",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 7, 8, 10, 15},
		},
	)
)
