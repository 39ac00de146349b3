package props

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// defensiveTDLine prices the defensive-touchdown prop as a 0.5 over/under.
const defensiveTDLine = 0.5

// DefaultTotalLines returns the candidate total-points lines for game-level
// props.
func DefaultTotalLines() []float64 {
	lines := make([]float64, 0, 11)
	for line := 37.5; line <= 57.5; line += 2 {
		lines = append(lines, line)
	}
	return lines
}

// TotalPointsHitRates counts combined final scores against each candidate
// total line. Games missing either final score are excluded.
func TotalPointsHitRates(games []models.GameRecord, lines []float64) ([]models.HitRateEntry, error) {
	totals := finalTotals(games)
	if len(totals) == 0 {
		return nil, fmt.Errorf("no games carry final scores: %w", models.ErrInsufficientData)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("at least one line is required: %w", models.ErrInvalidConfiguration)
	}

	entries := make([]models.HitRateEntry, 0, len(lines))
	for _, line := range lines {
		entries = append(entries, rateEntry(totals, line))
	}
	return entries, nil
}

// MarginBucketRates buckets decided games by victory margin. The buckets
// partition every margin of one point or more, so the rates sum to one.
func MarginBucketRates(games []models.GameRecord) ([]models.MarginBucketRate, error) {
	buckets := []models.MarginBucketRate{
		{Label: "1-6", Low: 1, High: 6},
		{Label: "7-12", Low: 7, High: 12},
		{Label: "13-18", Low: 13, High: 18},
		{Label: "19+", Low: 19, High: 0},
	}

	total := 0
	for i := range games {
		margin, ok := games[i].Margin()
		if !ok || margin < 1 {
			continue
		}
		total++
		for b := range buckets {
			if margin >= buckets[b].Low && (buckets[b].High == 0 || margin <= buckets[b].High) {
				buckets[b].Count++
				break
			}
		}
	}
	if total == 0 {
		return nil, fmt.Errorf("no decided games with final scores: %w", models.ErrInsufficientData)
	}

	for b := range buckets {
		buckets[b].Total = total
		buckets[b].Rate = float64(buckets[b].Count) / float64(total)
	}
	return buckets, nil
}

// DefensiveTDRate reports how often at least one defensive touchdown was
// scored, expressed as an over/under entry on the 0.5 line.
func DefensiveTDRate(games []models.GameRecord) (models.HitRateEntry, error) {
	if len(games) == 0 {
		return models.HitRateEntry{}, fmt.Errorf("no games to analyze: %w", models.ErrInsufficientData)
	}

	values := make([]float64, 0, len(games))
	for i := range games {
		if games[i].DefensiveTD {
			values = append(values, 1)
		} else {
			values = append(values, 0)
		}
	}
	return rateEntry(values, defensiveTDLine), nil
}

// RoundBreakdown computes the over rate of one total line for each game
// type present in the data, in bracket order.
func RoundBreakdown(games []models.GameRecord, line float64) ([]models.RoundRate, error) {
	totalsByRound := make(map[models.GameType][]float64)
	for i := range games {
		total, ok := games[i].TotalPoints()
		if !ok {
			continue
		}
		totalsByRound[games[i].GameType] = append(totalsByRound[games[i].GameType], float64(total))
	}
	if len(totalsByRound) == 0 {
		return nil, fmt.Errorf("no games carry final scores: %w", models.ErrInsufficientData)
	}

	rounds := make([]models.RoundRate, 0, len(totalsByRound))
	for _, gt := range models.AllGameTypes() {
		totals := totalsByRound[gt]
		if len(totals) == 0 {
			continue
		}
		entry := rateEntry(totals, line)
		rounds = append(rounds, models.RoundRate{
			GameType: gt,
			Line:     line,
			Over:     entry.OverCount,
			Total:    entry.Total,
			Rate:     entry.HitRateOver,
		})
	}
	return rounds, nil
}

// finalTotals collects combined final scores from the games that have them.
func finalTotals(games []models.GameRecord) []float64 {
	totals := make([]float64, 0, len(games))
	for i := range games {
		total, ok := games[i].TotalPoints()
		if !ok {
			continue
		}
		totals = append(totals, float64(total))
	}
	return totals
}
