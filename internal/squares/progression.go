package squares

import (
	"fmt"
	"sort"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// StagePairs returns the consecutive stage transitions a progression
// normally spans.
func StagePairs() [][2]models.Stage {
	return [][2]models.Stage{
		{models.StageQ1, models.StageQ2},
		{models.StageQ2, models.StageQ3},
		{models.StageQ3, models.StageQ4},
		{models.StageQ4, models.StageFinal},
	}
}

// BuildProgression estimates the conditional distribution of the square at
// stage `to` given the square at stage `from`, over weighted games carrying
// both stages. Rows exist only for observed prior squares; each row is
// normalized to sum to 1.
func BuildProgression(weighted []models.WeightedGame, from, to models.Stage) (models.Progression, error) {
	if from == to {
		return models.Progression{}, fmt.Errorf("progression stages must differ: %w", models.ErrInvalidConfiguration)
	}

	counts := make(map[string]map[string]float64)
	rowTotals := make(map[string]float64)
	for i := range weighted {
		fromWinner, fromLoser, ok := weighted[i].Game.ScoresAt(from)
		if !ok {
			continue
		}
		toWinner, toLoser, ok := weighted[i].Game.ScoresAt(to)
		if !ok {
			continue
		}

		w := float64(weighted[i].Weight)
		fromKey := models.SquareKey(fromWinner%10, fromLoser%10)
		toKey := models.SquareKey(toWinner%10, toLoser%10)
		if counts[fromKey] == nil {
			counts[fromKey] = make(map[string]float64)
		}
		counts[fromKey][toKey] += w
		rowTotals[fromKey] += w
	}

	if len(counts) == 0 {
		return models.Progression{}, fmt.Errorf("no games carry both %s and %s: %w", from, to, models.ErrInsufficientData)
	}

	rows := make(map[string]map[string]float64, len(counts))
	for fromKey, row := range counts {
		normalized := make(map[string]float64, len(row))
		for toKey, count := range row {
			normalized[toKey] = count / rowTotals[fromKey]
		}
		rows[fromKey] = normalized
	}

	return models.Progression{From: from, To: to, Rows: rows}, nil
}

// MostLikelyNext returns the k most probable next squares given the current
// square, probability descending with the usual digit tie-break. Nil when
// the square was never observed at the prior stage.
func MostLikelyNext(prog models.Progression, winnerDigit, loserDigit, k int) []models.RankedSquare {
	row, ok := prog.Rows[models.SquareKey(winnerDigit, loserDigit)]
	if !ok {
		return nil
	}

	next := make([]models.RankedSquare, 0, len(row))
	for key, p := range row {
		w, l, err := parseSquareKey(key)
		if err != nil {
			continue
		}
		next = append(next, models.RankedSquare{WinnerDigit: w, LoserDigit: l, Probability: p})
	}

	sort.SliceStable(next, func(a, b int) bool {
		if next[a].Probability != next[b].Probability {
			return next[a].Probability > next[b].Probability
		}
		if next[a].WinnerDigit != next[b].WinnerDigit {
			return next[a].WinnerDigit < next[b].WinnerDigit
		}
		return next[a].LoserDigit < next[b].LoserDigit
	})

	if k < 0 {
		k = 0
	}
	if k > len(next) {
		k = len(next)
	}
	next = next[:k]
	for i := range next {
		next[i].Rank = i + 1
	}
	return next
}

func parseSquareKey(key string) (int, int, error) {
	var w, l int
	if _, err := fmt.Sscanf(key, "%d-%d", &w, &l); err != nil {
		return 0, 0, err
	}
	return w, l, nil
}
