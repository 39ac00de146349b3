package squares

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// BuildMatrix forms the joint square distribution as the outer product of
// the winner and loser digit marginals, scaled so all 100 cells sum to 1.
// Joint pair frequencies are deliberately not used here: per-pair samples
// are too sparse to estimate, so the product of independent marginals is
// the model.
func BuildMatrix(table models.DigitFrequencyTable) (models.ProbabilityMatrix, error) {
	winnerTotal := table.WinnerTotal()
	loserTotal := table.LoserTotal()
	if winnerTotal <= 0 || loserTotal <= 0 {
		return models.ProbabilityMatrix{}, fmt.Errorf("stage %s: %w", table.Stage, models.ErrEmptyDistribution)
	}

	winner := mat.NewVecDense(10, append([]float64{}, table.Winner[:]...))
	loser := mat.NewVecDense(10, append([]float64{}, table.Loser[:]...))

	outer := mat.NewDense(10, 10, nil)
	outer.Outer(1/(winnerTotal*loserTotal), winner, loser)

	matrix := models.ProbabilityMatrix{Stage: table.Stage}
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			matrix.Cells[i][j] = outer.At(i, j)
		}
	}
	return matrix, nil
}

// BuildJointMatrix estimates the square distribution from observed
// (winnerDigit, loserDigit) pairs instead of independent marginals. Pair
// samples are far sparser than marginals, so this estimator is noisier
// than BuildMatrix and suits only larger datasets.
func BuildJointMatrix(weighted []models.WeightedGame, stage models.Stage) (models.ProbabilityMatrix, error) {
	matrix := models.ProbabilityMatrix{Stage: stage}
	var total float64
	for i := range weighted {
		winner, loser, ok := weighted[i].Game.ScoresAt(stage)
		if !ok {
			continue
		}
		w := float64(weighted[i].Weight)
		matrix.Cells[winner%10][loser%10] += w
		total += w
	}

	if total <= 0 {
		return models.ProbabilityMatrix{}, fmt.Errorf("stage %s: %w", stage, models.ErrEmptyDistribution)
	}

	for i := range matrix.Cells {
		for j := range matrix.Cells[i] {
			matrix.Cells[i][j] /= total
		}
	}
	return matrix, nil
}
