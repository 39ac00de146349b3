package squares

import (
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

func boostedMass(m models.ProbabilityMatrix, digits []int, winnerSide bool) float64 {
	set := digitSet(digits)
	var mass float64
	for i := 0; i < 10; i++ {
		for j := 0; j < 10; j++ {
			if (winnerSide && set[i]) || (!winnerSide && set[j]) {
				mass += m.Cells[i][j]
			}
		}
	}
	return mass
}

func TestAdjustBoostsWinnerDigits(t *testing.T) {
	cfg := DefaultConfig()
	m := uniformMatrix(models.StageFinal)

	adjusted, err := AdjustForTeams(m, true, false, cfg)
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}

	if !almostEqual(adjusted.Sum(), 1.0, 1e-9) {
		t.Fatalf("adjusted matrix sums to %v, want 1.0", adjusted.Sum())
	}

	before := boostedMass(m, cfg.BoostDigits, true)
	after := boostedMass(adjusted, cfg.BoostDigits, true)
	if after <= before {
		t.Fatalf("boosted mass should increase: before %v after %v", before, after)
	}
}

func TestAdjustBothSidesCommutes(t *testing.T) {
	cfg := DefaultConfig()
	m := uniformMatrix(models.StageQ2)
	m.Cells[3][3] = 0.02
	m.Cells[5][5] = 0.0

	both, err := AdjustForTeams(m, true, true, cfg)
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}
	if !almostEqual(both.Sum(), 1.0, 1e-9) {
		t.Fatalf("adjusted matrix sums to %v, want 1.0", both.Sum())
	}

	// a doubly boosted cell gains factor^2 before normalization, so its
	// ratio against a singly boosted cell must equal the boost factor
	single := both.Cells[3][1] // winner digit boosted, loser digit not
	double := both.Cells[3][7] // both digits boosted
	if !almostEqual(double/single, cfg.BoostFactor, 1e-9) {
		t.Fatalf("double/single ratio = %v, want %v", double/single, cfg.BoostFactor)
	}
}

func TestAdjustNoFlagsReturnsInput(t *testing.T) {
	m := uniformMatrix(models.StageQ3)
	adjusted, err := AdjustForTeams(m, false, false, DefaultConfig())
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}
	if adjusted.Cells != m.Cells {
		t.Fatalf("no-op adjustment should return the input matrix")
	}
}

func TestAdjustLeavesUnboostedRatiosIntact(t *testing.T) {
	cfg := DefaultConfig() // penalty factor 1.0
	m := uniformMatrix(models.StageQ1)
	m.Cells[1][1] = 0.02
	m.Cells[2][2] = 0.04

	adjusted, err := AdjustForTeams(m, true, false, cfg)
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}

	// digits 1 and 2 are outside the boost set on both sides; their ratio
	// must survive boosting plus renormalization
	ratio := adjusted.Cells[2][2] / adjusted.Cells[1][1]
	if !almostEqual(ratio, 2.0, 1e-9) {
		t.Fatalf("unboosted cell ratio = %v, want 2.0", ratio)
	}
}

func TestAdjustLegacyPenalty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PenaltyFactor = 0.7

	m := uniformMatrix(models.StageFinal)
	adjusted, err := AdjustForTeams(m, true, false, cfg)
	if err != nil {
		t.Fatalf("adjustment failed: %v", err)
	}
	if !almostEqual(adjusted.Sum(), 1.0, 1e-9) {
		t.Fatalf("adjusted matrix sums to %v, want 1.0", adjusted.Sum())
	}

	// boosted vs penalized cells keep the boost/penalty ratio
	ratio := adjusted.Cells[0][0] / adjusted.Cells[1][0]
	if !almostEqual(ratio, cfg.BoostFactor/cfg.PenaltyFactor, 1e-9) {
		t.Fatalf("boost/penalty ratio = %v, want %v", ratio, cfg.BoostFactor/cfg.PenaltyFactor)
	}
}
