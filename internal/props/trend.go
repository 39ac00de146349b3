package props

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// AnalyzeTrend compares the average over the most recent window of games
// with the average over the window immediately before it. Entries must be
// in chronological order; fewer than two full windows of recorded values
// reports insufficient data rather than guessing from a partial window.
func AnalyzeTrend(log models.PlayerGameLog, category models.StatCategory, cfg Config) (models.TrendResult, error) {
	if err := cfg.Validate(); err != nil {
		return models.TrendResult{}, err
	}

	values := log.Values(category)
	window := cfg.TrendWindow
	if len(values) < 2*window {
		return models.TrendResult{}, fmt.Errorf("trend for %s needs %d games, have %d: %w",
			category, 2*window, len(values), models.ErrInsufficientData)
	}

	recent := values[len(values)-window:]
	previous := values[len(values)-2*window : len(values)-window]

	result := models.TrendResult{
		Category:    category,
		Window:      window,
		RecentAvg:   stat.Mean(recent, nil),
		PreviousAvg: stat.Mean(previous, nil),
	}
	result.Direction = classifyTrend(result.RecentAvg, result.PreviousAvg, cfg.TrendThreshold)
	return result, nil
}

// classifyTrend applies the relative-change threshold. A zero previous
// average has no defined relative change, so any recent production counts
// as improving and none as stable.
func classifyTrend(recent, previous, threshold float64) models.TrendDirection {
	if previous == 0 {
		if recent > 0 {
			return models.TrendImproving
		}
		return models.TrendStable
	}

	change := (recent - previous) / previous
	switch {
	case change > threshold:
		return models.TrendImproving
	case change < -threshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}
