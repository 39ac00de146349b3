// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for analysis runs.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogSquaresRun logs a completed squares analysis.
func (al *AnalysisLogger) LogSquaresRun(filter string, gamesAnalyzed, stages int, boostWinner, boostLoser bool, durationMs float64) {
	al.WithFields(logrus.Fields{
		"filter":         filter,
		"games_analyzed": gamesAnalyzed,
		"stages":         stages,
		"boost_winner":   boostWinner,
		"boost_loser":    boostLoser,
		"duration_ms":    durationMs,
	}).Info("Squares analysis completed")
}

// LogPlayerRun logs a completed player prop analysis.
func (al *AnalysisLogger) LogPlayerRun(player, position string, games, categories, bestBets int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"player":      player,
		"position":    position,
		"games":       games,
		"categories":  categories,
		"best_bets":   bestBets,
		"duration_ms": durationMs,
	}).Info("Player prop analysis completed")
}

// LogGamePropsRun logs a completed game-level prop analysis.
func (al *AnalysisLogger) LogGamePropsRun(gamesAnalyzed, totalLines, rounds int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"games_analyzed": gamesAnalyzed,
		"total_lines":    totalLines,
		"rounds":         rounds,
		"duration_ms":    durationMs,
	}).Info("Game prop analysis completed")
}

// LogSimulationRun logs a Monte Carlo simulation result.
func (al *AnalysisLogger) LogSimulationRun(player string, category string, line float64, iterations int, overProbability float64, recommendation string) {
	al.WithFields(logrus.Fields{
		"player":           player,
		"category":         category,
		"line":             line,
		"iterations":       iterations,
		"over_probability": overProbability,
		"recommendation":   recommendation,
	}).Info("Prop simulation completed")
}

// LogCacheAccess logs a report cache lookup.
func (al *AnalysisLogger) LogCacheAccess(key string, hit bool) {
	al.WithFields(logrus.Fields{
		"cache_key": key,
		"cache_hit": hit,
	}).Debug("Report cache access")
}

// LogSkippedSection logs a report section skipped for lack of data.
func (al *AnalysisLogger) LogSkippedSection(section, reason string) {
	al.WithFields(logrus.Fields{
		"section": section,
		"reason":  reason,
	}).Warn("Report section skipped")
}

// LogAnalysisError logs an analysis failure.
func (al *AnalysisLogger) LogAnalysisError(operation, reason string) {
	al.WithFields(logrus.Fields{
		"operation":    operation,
		"error_reason": reason,
	}).Error("Analysis failed")
}
