package props

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// CombinedRate blends a season hit rate with a positional historical rate
// using the season weight. A nil history falls back to the season rate
// alone.
func CombinedRate(season float64, history *float64, seasonWeight float64) float64 {
	if history == nil {
		return season
	}
	return season*seasonWeight + *history*(1-seasonWeight)
}

// Combine builds the prediction for one line from the player's season entry
// and, when available, the pooled positional entry at the same line. A
// prediction is validated only when historical data exists and its over
// rate clears the validation threshold.
func Combine(season models.HitRateEntry, history *models.HitRateEntry, cfg Config) models.CombinedPrediction {
	pred := models.CombinedPrediction{
		Line:       season.Line,
		SeasonRate: season.HitRateOver,
	}
	if history != nil {
		rate := history.HitRateOver
		pred.HistoryRate = &rate
		pred.SBValidated = rate >= cfg.ValidationThreshold
	}
	pred.CombinedRate = CombinedRate(pred.SeasonRate, pred.HistoryRate, cfg.SeasonWeight)
	return pred
}

// PositionHitRates pools every recorded game of every reference player at
// the position and counts the candidate lines against the pooled values.
// This is the historical side of the benchmark blend.
func PositionHitRates(reference []models.PlayerGameLog, position models.Position, category models.StatCategory, lines []float64) ([]models.HitRateEntry, error) {
	pooled := pooledLog(reference, position)
	values := pooled.Values(category)
	if len(values) == 0 {
		return nil, fmt.Errorf("no %s reference games carry %s: %w", position, category, models.ErrInsufficientData)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("at least one line is required: %w", models.ErrInvalidConfiguration)
	}

	entries := make([]models.HitRateEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, rateEntry(values, line))
	}
	return entries, nil
}

// PositionBenchmarks summarizes the pooled positional reference games per
// category, giving the historical baseline a player is measured against.
func PositionBenchmarks(reference []models.PlayerGameLog, position models.Position, categories []models.StatCategory) (models.StatSummary, error) {
	pooled := pooledLog(reference, position)
	if len(pooled.Entries) == 0 {
		return nil, fmt.Errorf("no reference games at %s: %w", position, models.ErrInsufficientData)
	}
	return Summarize(pooled, categories), nil
}

// pooledLog flattens all reference logs at one position into a single log.
func pooledLog(reference []models.PlayerGameLog, position models.Position) models.PlayerGameLog {
	pooled := models.PlayerGameLog{Position: position}
	for i := range reference {
		if reference[i].Position != position {
			continue
		}
		pooled.Entries = append(pooled.Entries, reference[i].Entries...)
	}
	return pooled
}
