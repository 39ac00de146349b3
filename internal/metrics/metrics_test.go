package metrics

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistry(t *testing.T) {
	// Initialize the registry
	InitRegistry()
	registry := GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)
}

func TestRecordIngestionCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordGameIngested()
		RecordGameLogIngested()
		RecordRowRejected()
	})
}

func TestRecordCacheCounters(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordCacheHit()
		RecordCacheMiss()
	})
}

func TestUpdateStoredGauges(t *testing.T) {
	InitRegistry()

	tests := []struct {
		name  string
		count float64
	}{
		{
			name:  "normal count",
			count: 58,
		},
		{
			name:  "zero count",
			count: 0,
		},
		{
			name:  "large count",
			count: 250000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				UpdateGamesStored(tt.count)
				UpdateGameLogsStored(tt.count)
			})
		})
	}
}

func TestRecordDurations(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordReportGeneration(0.25)
		RecordIngestionBatch(2.5)
		UpdateLastSyncTime(1700000000)
	})
}

func TestMetricsHandler(t *testing.T) {
	InitRegistry()

	handler := Handler()
	assert.NotNil(t, handler)
	assert.Implements(t, (*http.Handler)(nil), handler)
}

func TestAnalysisMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordReportGenerated("squares", "success")
	})

	assert.NotPanics(t, func() {
		RecordBestBetCount("player", 3)
	})

	assert.NotPanics(t, func() {
		RecordSimulationProbability("passing_yards", 0.58)
	})

	assert.NotPanics(t, func() {
		UpdateSquaresGamesAnalyzed("superbowl", 58)
	})
}

func TestIngestionMetrics(t *testing.T) {
	InitRegistry()

	assert.NotPanics(t, func() {
		RecordSyncRun("stats_feed", "success")
	})

	assert.NotPanics(t, func() {
		RecordSourceRequest("stats_feed", "success")
	})

	assert.NotPanics(t, func() {
		RecordValidationFailure("games", "negative_score")
	})

	assert.NotPanics(t, func() {
		RecordSyncDuration("stats_feed", 42.7)
	})
}

func BenchmarkRecordGameIngested(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordGameIngested()
	}
}

func BenchmarkRecordReportGenerated(b *testing.B) {
	InitRegistry()

	for i := 0; i < b.N; i++ {
		RecordReportGenerated("squares", "success")
	}
}
