// Package metrics provides centralized Prometheus metrics registry for the analysis engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	GamesIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "games_ingested_total",
		Help:      "Total number of historical games ingested",
	})
	GameLogsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "game_logs_ingested_total",
		Help:      "Total number of player game log entries ingested",
	})
	RowsRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "rows_rejected_total",
		Help:      "Total number of rows rejected by validation",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "cache_hits_total",
		Help:      "Total number of report cache hits",
	})
	CacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "cache_misses_total",
		Help:      "Total number of report cache misses",
	})
)

// Gauge metrics
var (
	GamesStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "games_stored",
		Help:      "Number of historical games currently stored",
	})
	GameLogsStored = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "game_logs_stored",
		Help:      "Number of player game log entries currently stored",
	})
	LastSyncUnixTime = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "last_sync_unix_time",
		Help:      "Unix timestamp of the last completed historical sync",
	})
)

// Histogram metrics
var (
	ReportGenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "report_generation_duration_seconds",
		Help:      "Duration of analysis report generation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	IngestionBatchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "ingestion_batch_duration_seconds",
		Help:      "Duration of ingestion batches in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(GamesIngestedTotal)
		registry.MustRegister(GameLogsIngestedTotal)
		registry.MustRegister(RowsRejectedTotal)
		registry.MustRegister(CacheHitsTotal)
		registry.MustRegister(CacheMissesTotal)

		// Register gauge metrics
		registry.MustRegister(GamesStored)
		registry.MustRegister(GameLogsStored)
		registry.MustRegister(LastSyncUnixTime)

		// Register histogram metrics
		registry.MustRegister(ReportGenerationDuration)
		registry.MustRegister(IngestionBatchDuration)

		// Register analysis metrics
		registry.MustRegister(ReportsGeneratedTotal)
		registry.MustRegister(BestBetCount)
		registry.MustRegister(SimulationOverProbability)
		registry.MustRegister(SquaresGamesAnalyzed)

		// Register ingestion metrics
		registry.MustRegister(SyncRunsTotal)
		registry.MustRegister(SourceRequestsTotal)
		registry.MustRegister(ValidationFailuresTotal)
		registry.MustRegister(SyncDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordGameIngested records a stored game row.
func RecordGameIngested() {
	GamesIngestedTotal.Inc()
}

// RecordGameLogIngested records a stored game log row.
func RecordGameLogIngested() {
	GameLogsIngestedTotal.Inc()
}

// RecordRowRejected records a row rejected by validation.
func RecordRowRejected() {
	RowsRejectedTotal.Inc()
}

// RecordCacheHit records a report cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a report cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// UpdateGamesStored updates the stored games gauge.
func UpdateGamesStored(count float64) {
	GamesStored.Set(count)
}

// UpdateGameLogsStored updates the stored game logs gauge.
func UpdateGameLogsStored(count float64) {
	GameLogsStored.Set(count)
}

// UpdateLastSyncTime updates the last sync timestamp gauge.
func UpdateLastSyncTime(unixTime float64) {
	LastSyncUnixTime.Set(unixTime)
}

// RecordReportGeneration records report generation duration.
func RecordReportGeneration(durationSeconds float64) {
	ReportGenerationDuration.Observe(durationSeconds)
}

// RecordIngestionBatch records ingestion batch duration.
func RecordIngestionBatch(durationSeconds float64) {
	IngestionBatchDuration.Observe(durationSeconds)
}
