package props

import (
	"errors"
	"testing"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// finalGame builds a game record carrying only final scores.
func finalGame(gt models.GameType, winner, loser int, defensiveTD bool) models.GameRecord {
	return models.GameRecord{
		Season:       2024,
		GameType:     gt,
		Winner:       "Home",
		Loser:        "Away",
		WinnerScores: map[models.Stage]int{models.StageFinal: winner},
		LoserScores:  map[models.Stage]int{models.StageFinal: loser},
		DefensiveTD:  defensiveTD,
	}
}

func TestTotalPointsHitRates(t *testing.T) {
	games := []models.GameRecord{
		finalGame(models.GameTypeSuperBowl, 24, 21, false), // 45
		finalGame(models.GameTypeSuperBowl, 28, 24, false), // 52
		finalGame(models.GameTypeSuperBowl, 20, 18, false), // 38
	}

	entries, err := TotalPointsHitRates(games, []float64{44.5})
	if err != nil {
		t.Fatalf("TotalPointsHitRates failed: %v", err)
	}
	entry := entries[0]

	if entry.Total != 3 || entry.OverCount != 2 {
		t.Fatalf("counts = %d over of %d, want 2 of 3", entry.OverCount, entry.Total)
	}
	if !almostEqual(entry.HitRateOver, 2.0/3.0) {
		t.Errorf("over rate = %v, want 2/3", entry.HitRateOver)
	}
}

func TestTotalPointsHitRatesSkipsGamesWithoutFinals(t *testing.T) {
	partial := models.GameRecord{
		Season:       2024,
		GameType:     models.GameTypeSuperBowl,
		WinnerScores: map[models.Stage]int{models.StageQ1: 7},
		LoserScores:  map[models.Stage]int{models.StageQ1: 3},
	}
	games := []models.GameRecord{
		finalGame(models.GameTypeSuperBowl, 30, 20, false),
		partial,
	}

	entries, err := TotalPointsHitRates(games, []float64{44.5})
	if err != nil {
		t.Fatalf("TotalPointsHitRates failed: %v", err)
	}
	if entries[0].Total != 1 {
		t.Errorf("total = %d, want 1 (partial game excluded)", entries[0].Total)
	}

	if _, err := TotalPointsHitRates([]models.GameRecord{partial}, []float64{44.5}); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData with no finals, got %v", err)
	}
}

func TestMarginBucketRatesPartition(t *testing.T) {
	games := []models.GameRecord{
		finalGame(models.GameTypeSuperBowl, 24, 21, false), // margin 3
		finalGame(models.GameTypeSuperBowl, 27, 21, false), // margin 6, top of first bucket
		finalGame(models.GameTypeSuperBowl, 28, 21, false), // margin 7, bottom of second
		finalGame(models.GameTypeSuperBowl, 31, 21, false), // margin 10
		finalGame(models.GameTypeSuperBowl, 35, 21, false), // margin 14
		finalGame(models.GameTypeSuperBowl, 46, 21, false), // margin 25
	}

	buckets, err := MarginBucketRates(games)
	if err != nil {
		t.Fatalf("MarginBucketRates failed: %v", err)
	}
	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}

	wantCounts := []int{2, 2, 1, 1}
	rateSum := 0.0
	countSum := 0
	for i, b := range buckets {
		if b.Count != wantCounts[i] {
			t.Errorf("bucket %s count = %d, want %d", b.Label, b.Count, wantCounts[i])
		}
		if b.Total != 6 {
			t.Errorf("bucket %s total = %d, want 6", b.Label, b.Total)
		}
		rateSum += b.Rate
		countSum += b.Count
	}
	if countSum != 6 {
		t.Errorf("bucket counts sum to %d, want 6 (buckets must partition)", countSum)
	}
	if !almostEqual(rateSum, 1) {
		t.Errorf("bucket rates sum to %v, want 1", rateSum)
	}
}

func TestDefensiveTDRate(t *testing.T) {
	games := []models.GameRecord{
		finalGame(models.GameTypeSuperBowl, 24, 21, true),
		finalGame(models.GameTypeSuperBowl, 28, 24, false),
		finalGame(models.GameTypeSuperBowl, 20, 18, false),
	}

	entry, err := DefensiveTDRate(games)
	if err != nil {
		t.Fatalf("DefensiveTDRate failed: %v", err)
	}
	if entry.Line != 0.5 {
		t.Errorf("line = %v, want 0.5", entry.Line)
	}
	if !almostEqual(entry.HitRateOver, 1.0/3.0) {
		t.Errorf("over rate = %v, want 1/3", entry.HitRateOver)
	}

	if _, err := DefensiveTDRate(nil); !errors.Is(err, models.ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData for no games, got %v", err)
	}
}

func TestRoundBreakdownOrderedByRound(t *testing.T) {
	games := []models.GameRecord{
		finalGame(models.GameTypeSuperBowl, 30, 20, false),  // 50
		finalGame(models.GameTypeSuperBowl, 23, 17, false),  // 40
		finalGame(models.GameTypeDivisional, 34, 26, false), // 60
	}

	rounds, err := RoundBreakdown(games, 44.5)
	if err != nil {
		t.Fatalf("RoundBreakdown failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}

	if rounds[0].GameType != models.GameTypeDivisional {
		t.Errorf("first round = %s, want divisional (bracket order)", rounds[0].GameType)
	}
	if rounds[0].Over != 1 || rounds[0].Total != 1 {
		t.Errorf("divisional = %d/%d, want 1/1", rounds[0].Over, rounds[0].Total)
	}
	if rounds[1].GameType != models.GameTypeSuperBowl {
		t.Errorf("second round = %s, want superbowl", rounds[1].GameType)
	}
	if rounds[1].Over != 1 || rounds[1].Total != 2 {
		t.Errorf("superbowl = %d/%d, want 1/2", rounds[1].Over, rounds[1].Total)
	}
}

func TestDefaultTotalLines(t *testing.T) {
	lines := DefaultTotalLines()
	if len(lines) != 11 {
		t.Fatalf("expected 11 candidate totals, got %d", len(lines))
	}
	if lines[0] != 37.5 || lines[len(lines)-1] != 57.5 {
		t.Errorf("range = %v..%v, want 37.5..57.5", lines[0], lines[len(lines)-1])
	}
}
