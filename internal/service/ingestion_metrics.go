package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionMetrics tracks statistics for one sync run. The sync goroutine
// owns the counters; concurrent readers go through String, Totals, or
// HadFailures. Prometheus exposition lives in internal/metrics.
type IngestionMetrics struct {
	mu               sync.RWMutex
	StartTime        time.Time
	Duration         time.Duration
	FetchedGames     int
	StoredGames      int
	FetchedLogRows   int
	StoredLogEntries int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{
		StartTime: time.Now(),
	}
}

// Reset clears all counters and restarts the clock
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StartTime = time.Now()
	m.Duration = 0
	m.FetchedGames = 0
	m.StoredGames = 0
	m.FetchedLogRows = 0
	m.StoredLogEntries = 0
	m.Duplicates = 0
	m.ValidationErrors = 0
	m.Errors = 0
}

// AddFetchedGames records raw game rows received from a source
func (m *IngestionMetrics) AddFetchedGames(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchedGames += n
}

// AddFetchedLogRows records raw game log rows received from a source
func (m *IngestionMetrics) AddFetchedLogRows(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchedLogRows += n
}

// RecordGames records games written to storage
func (m *IngestionMetrics) RecordGames(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredGames += n
}

// RecordLogEntries records game log entries written to storage
func (m *IngestionMetrics) RecordLogEntries(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StoredLogEntries += n
}

// RecordDuplicate increments the duplicate count
func (m *IngestionMetrics) RecordDuplicate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duplicates++
}

// RecordValidationError increments the validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ValidationErrors++
}

// RecordError increments the error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors++
}

// Finish stamps the run duration
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Duration = time.Since(m.StartTime)
}

// Totals returns stored games and log entries under the read lock
func (m *IngestionMetrics) Totals() (games, logEntries int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.StoredGames, m.StoredLogEntries
}

// HadFailures reports whether any row was rejected or errored
func (m *IngestionMetrics) HadFailures() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Errors > 0 || m.ValidationErrors > 0
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	storeRate := float64(0)
	if m.FetchedGames > 0 {
		storeRate = float64(m.StoredGames) / float64(m.FetchedGames) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Games=%d/%d (%.1f%%), LogEntries=%d of %d rows, Duplicates=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		m.StoredGames,
		m.FetchedGames,
		storeRate,
		m.StoredLogEntries,
		m.FetchedLogRows,
		m.Duplicates,
		m.ValidationErrors,
		m.Errors,
		m.Duration,
	)
}
