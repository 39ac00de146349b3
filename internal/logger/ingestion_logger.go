// Package logger provides ingestion-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// IngestionLogger provides dedicated logging for data ingestion.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogSyncStart logs the start of a historical sync.
func (il *IngestionLogger) LogSyncStart(source string, batchSize int) {
	il.WithFields(logrus.Fields{
		"source":     source,
		"batch_size": batchSize,
	}).Info("Historical sync started")
}

// LogBatchResult logs one ingested batch.
func (il *IngestionLogger) LogBatchResult(source, entity string, fetched, stored, rejected int, durationMs float64) {
	il.WithFields(logrus.Fields{
		"source":      source,
		"entity":      entity,
		"fetched":     fetched,
		"stored":      stored,
		"rejected":    rejected,
		"duration_ms": durationMs,
	}).Info("Batch ingested")
}

// LogValidationFailure logs a rejected row.
func (il *IngestionLogger) LogValidationFailure(source, entity, reason string, season int) {
	il.WithFields(logrus.Fields{
		"source": source,
		"entity": entity,
		"reason": reason,
		"season": season,
	}).Warn("Row rejected by validation")
}

// LogSyncComplete logs a finished historical sync.
func (il *IngestionLogger) LogSyncComplete(source string, games, gameLogs int, durationSeconds float64) {
	il.WithFields(logrus.Fields{
		"source":           source,
		"games":            games,
		"game_logs":        gameLogs,
		"duration_seconds": durationSeconds,
	}).Info("Historical sync completed")
}

// LogSourceError logs a data source failure.
func (il *IngestionLogger) LogSourceError(source, reason string) {
	il.WithFields(logrus.Fields{
		"source":       source,
		"error_reason": reason,
	}).Error("Data source request failed")
}
