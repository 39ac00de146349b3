package props

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// HitRates counts overs and unders for one stat category against each
// candidate line. Games where the category was not recorded are excluded
// before counting, so every entry shares the same total. A value landing
// exactly on an integer line counts as an under, which keeps
// over + under == total for every line.
func HitRates(log models.PlayerGameLog, category models.StatCategory, lines []float64) ([]models.HitRateEntry, error) {
	values := log.Values(category)
	if len(values) == 0 {
		return nil, fmt.Errorf("player %s has no %s values: %w", log.PlayerName, category, models.ErrInsufficientData)
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

// rateEntry counts one line against a non-empty value set.
func rateEntry(values []float64, line float64) models.HitRateEntry {
	entry := models.HitRateEntry{Line: line, Total: len(values)}
	for _, v := range values {
		if v > line {
			entry.OverCount++
		} else {
			entry.UnderCount++
		}
	}
	entry.HitRateOver = float64(entry.OverCount) / float64(entry.Total)
	entry.HitRateUnder = float64(entry.UnderCount) / float64(entry.Total)
	return entry
}
