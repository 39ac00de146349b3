package squares

import (
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// RankSquares flattens a matrix into the full 100-cell ranking: probability
// descending, ties broken by (winnerDigit, loserDigit) ascending. The order
// is total, so repeated runs on equal matrices produce identical output.
func RankSquares(m models.ProbabilityMatrix) []models.RankedSquare {
	ranked := make([]models.RankedSquare, 0, 100)
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			ranked = append(ranked, models.RankedSquare{
				WinnerDigit: i,
				LoserDigit:  j,
				Probability: m.Cells[i][j],
			})
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		if ranked[a].Probability != ranked[b].Probability {
			return ranked[a].Probability > ranked[b].Probability
		}
		if ranked[a].WinnerDigit != ranked[b].WinnerDigit {
			return ranked[a].WinnerDigit < ranked[b].WinnerDigit
		}
		return ranked[a].LoserDigit < ranked[b].LoserDigit
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

// TopSquares returns the k highest-probability squares, best first.
func TopSquares(m models.ProbabilityMatrix, k int) []models.RankedSquare {
	ranked := RankSquares(m)
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// BottomSquares returns the k lowest-probability squares, worst first.
func BottomSquares(m models.ProbabilityMatrix, k int) []models.RankedSquare {
	ranked := RankSquares(m)
	if k < 0 {
		k = 0
	}
	if k > len(ranked) {
		k = len(ranked)
	}

	bottom := make([]models.RankedSquare, 0, k)
	for i := len(ranked) - 1; i >= len(ranked)-k; i-- {
		bottom = append(bottom, ranked[i])
	}
	return bottom
}
