package squares

import (
	"github.com/yourusername/gridiron-edge/internal/models"
)

// DigitFrequencies tallies weighted last-digit counts for one stage of the
// given games. A record missing the stage on either side is skipped, not an
// error. The tally is strictly additive; normalization happens in the
// matrix builder.
func DigitFrequencies(weighted []models.WeightedGame, stage models.Stage) models.DigitFrequencyTable {
	table := models.DigitFrequencyTable{Stage: stage}
	for i := range weighted {
		winner, loser, ok := weighted[i].Game.ScoresAt(stage)
		if !ok {
			continue
		}
		w := float64(weighted[i].Weight)
		table.Winner[winner%10] += w
		table.Loser[loser%10] += w
	}
	return table
}
