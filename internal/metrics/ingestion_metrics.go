// Package metrics defines ingestion-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Ingestion counter vectors
var (
	SyncRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "sync_runs_total",
		Help:      "Total number of historical sync runs by source and status",
	}, []string{"source", "status"})

	SourceRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "source_requests_total",
		Help:      "Total number of data source requests by source and outcome",
	}, []string{"source", "outcome"})

	ValidationFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "validation_failures_total",
		Help:      "Total number of validation failures by entity and reason",
	}, []string{"entity", "reason"})
)

// Ingestion histogram vectors
var (
	SyncDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "sync_duration_seconds",
		Help:      "Duration of historical sync runs by source",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	}, []string{"source"})
)

// RecordSyncRun records a historical sync run.
// status should be one of: "success", "failure", "partial"
func RecordSyncRun(source, status string) {
	SyncRunsTotal.WithLabelValues(source, status).Inc()
}

// RecordSourceRequest records a data source request.
// outcome should be one of: "success", "error", "rate_limited"
func RecordSourceRequest(source, outcome string) {
	SourceRequestsTotal.WithLabelValues(source, outcome).Inc()
}

// RecordValidationFailure records a validation failure.
func RecordValidationFailure(entity, reason string) {
	ValidationFailuresTotal.WithLabelValues(entity, reason).Inc()
}

// RecordSyncDuration records a historical sync duration.
func RecordSyncDuration(source string, durationSeconds float64) {
	SyncDuration.WithLabelValues(source).Observe(durationSeconds)
}
