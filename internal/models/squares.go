package models

import "fmt"

// DigitFrequencyTable holds weighted last-digit counts for one stage,
// winner and loser sides separate. Fixed-size arrays keep all ten digits
// present even at zero count.
type DigitFrequencyTable struct {
	Stage  Stage       `json:"stage"`
	Winner [10]float64 `json:"winner"`
	Loser  [10]float64 `json:"loser"`
}

// WinnerTotal returns the sum of the winner-side digit counts.
func (t *DigitFrequencyTable) WinnerTotal() float64 {
	var sum float64
	for _, v := range t.Winner {
		sum += v
	}
	return sum
}

// LoserTotal returns the sum of the loser-side digit counts.
func (t *DigitFrequencyTable) LoserTotal() float64 {
	var sum float64
	for _, v := range t.Loser {
		sum += v
	}
	return sum
}

// ProbabilityMatrix is a normalized 10x10 joint distribution over
// (winnerDigit, loserDigit) squares for one stage. Cells sum to 1 within
// floating-point tolerance whenever construction succeeded.
type ProbabilityMatrix struct {
	Stage Stage           `json:"stage"`
	Cells [10][10]float64 `json:"cells"`
}

// Sum returns the total probability mass across all 100 cells.
func (m *ProbabilityMatrix) Sum() float64 {
	var sum float64
	for i := range m.Cells {
		for j := range m.Cells[i] {
			sum += m.Cells[i][j]
		}
	}
	return sum
}

// RankedSquare is one cell of a probability matrix with its position in the
// total order: probability descending, ties broken by (winnerDigit,
// loserDigit) ascending. Rank is 1-based.
type RankedSquare struct {
	WinnerDigit int     `json:"winner_digit"`
	LoserDigit  int     `json:"loser_digit"`
	Probability float64 `json:"probability"`
	Rank        int     `json:"rank"`
}

// SquareKey renders a (winnerDigit, loserDigit) pair as the canonical "w-l"
// key used by progression tables.
func SquareKey(winnerDigit, loserDigit int) string {
	return fmt.Sprintf("%d-%d", winnerDigit, loserDigit)
}

// Progression is a conditional distribution between two stages: for each
// observed square at From, the probability of each square at To. Rows are
// keyed by SquareKey and each row sums to 1 over its observed next squares.
type Progression struct {
	From Stage                         `json:"from"`
	To   Stage                         `json:"to"`
	Rows map[string]map[string]float64 `json:"rows"`
}
