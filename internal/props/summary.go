package props

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// Summarize computes descriptive statistics per category over the games
// where the category was recorded. Categories a player never logged are
// omitted from the summary rather than reported as zeros.
func Summarize(log models.PlayerGameLog, categories []models.StatCategory) models.StatSummary {
	summary := make(models.StatSummary, len(categories))
	for _, cat := range categories {
		values := log.Values(cat)
		if len(values) == 0 {
			continue
		}
		summary[cat] = models.CategoryStats{
			Avg:    stat.Mean(values, nil),
			Median: median(values),
			High:   floats.Max(values),
			Low:    floats.Min(values),
			Games:  len(values),
		}
	}
	return summary
}

// median averages the two middle values for even-sized inputs. The input
// slice is left unmodified.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
