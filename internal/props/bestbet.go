package props

import (
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Confidence tier bands for safe-over reporting.
const (
	tierEliteFloor  = 0.85
	tierStrongFloor = 0.75
	tierGoodFloor   = 0.65
)

// SelectBestBets keeps candidates whose rate meets the threshold and orders
// them by rate descending, then line, category, and player ascending so
// equal rates rank identically across runs.
func SelectBestBets(candidates []models.BetCandidate, threshold float64) []models.BetCandidate {
	selected := make([]models.BetCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Rate >= threshold {
			selected = append(selected, c)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Rate != selected[j].Rate {
			return selected[i].Rate > selected[j].Rate
		}
		if selected[i].Line != selected[j].Line {
			return selected[i].Line < selected[j].Line
		}
		if selected[i].Category != selected[j].Category {
			return selected[i].Category < selected[j].Category
		}
		return selected[i].Player < selected[j].Player
	})
	return selected
}

// ClassifyTier buckets a hit rate into the confidence bands used by the
// safe-over reports.
func ClassifyTier(rate float64) models.ConfidenceTier {
	switch {
	case rate >= tierEliteFloor:
		return models.TierElite
	case rate >= tierStrongFloor:
		return models.TierStrong
	case rate >= tierGoodFloor:
		return models.TierGood
	default:
		return models.TierNone
	}
}
