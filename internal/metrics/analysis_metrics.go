// Package metrics defines analysis-specific metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Analysis counter vectors
var (
	ReportsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gridiron_edge",
		Name:      "reports_generated_total",
		Help:      "Total number of analysis reports by type and status",
	}, []string{"report_type", "status"})
)

// Analysis histogram vectors
var (
	BestBetCount = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "best_bet_count",
		Help:      "Number of best bets selected per report by type",
		Buckets:   prometheus.LinearBuckets(0, 1, 11),
	}, []string{"report_type"})

	SimulationOverProbability = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gridiron_edge",
		Name:      "simulation_over_probability",
		Help:      "Simulated over probabilities by stat category",
		Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
	}, []string{"category"})
)

// Analysis gauge vectors
var (
	SquaresGamesAnalyzed = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "gridiron_edge",
		Name:      "squares_games_analyzed",
		Help:      "Games feeding the most recent squares analysis for each filter",
	}, []string{"filter"})
)

// RecordReportGenerated records an analysis report event.
// report_type should be one of: "squares", "player", "game_props"
// status should be one of: "success", "error"
func RecordReportGenerated(reportType, status string) {
	ReportsGeneratedTotal.WithLabelValues(reportType, status).Inc()
}

// RecordBestBetCount records how many best bets a report selected.
func RecordBestBetCount(reportType string, count float64) {
	BestBetCount.WithLabelValues(reportType).Observe(count)
}

// RecordSimulationProbability records a simulated over probability.
func RecordSimulationProbability(category string, probability float64) {
	SimulationOverProbability.WithLabelValues(category).Observe(probability)
}

// UpdateSquaresGamesAnalyzed updates the analyzed game count for a filter.
func UpdateSquaresGamesAnalyzed(filter string, count float64) {
	SquaresGamesAnalyzed.WithLabelValues(filter).Set(count)
}
