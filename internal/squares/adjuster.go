package squares

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// AdjustForTeams scales the matrix for teams whose scoring style favors the
// configured digit set (field-goal-heavy teams land on 0/3/6/7). Boosted
// digits on a flagged side are multiplied by BoostFactor; the remaining
// digits on that side by PenaltyFactor (1.0 leaves them unchanged). All
// multiplications are applied first and the matrix is re-normalized once,
// so boosting both sides is commutative.
func AdjustForTeams(m models.ProbabilityMatrix, boostWinner, boostLoser bool, cfg Config) (models.ProbabilityMatrix, error) {
	if err := cfg.Validate(); err != nil {
		return models.ProbabilityMatrix{}, err
	}
	if !boostWinner && !boostLoser {
		return m, nil
	}

	boost := digitSet(cfg.BoostDigits)
	adjusted := m
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			factor := 1.0
			if boostWinner {
				if boost[i] {
					factor *= cfg.BoostFactor
				} else {
					factor *= cfg.PenaltyFactor
				}
			}
			if boostLoser {
				if boost[j] {
					factor *= cfg.BoostFactor
				} else {
					factor *= cfg.PenaltyFactor
				}
			}
			adjusted.Cells[i][j] = m.Cells[i][j] * factor
		}
	}

	total := adjusted.Sum()
	if total <= 0 {
		return models.ProbabilityMatrix{}, fmt.Errorf("stage %s after adjustment: %w", m.Stage, models.ErrEmptyDistribution)
	}
	for i := range adjusted.Cells {
		for j := range adjusted.Cells[i] {
			adjusted.Cells[i][j] /= total
		}
	}
	return adjusted, nil
}

func digitSet(digits []int) [10]bool {
	var set [10]bool
	for _, d := range digits {
		if d >= 0 && d <= 9 {
			set[d] = true
		}
	}
	return set
}
