package analysis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/squares"
)

func testConfig() *config.Config {
	return &config.Config{
		Squares: config.SquaresConfig{
			RecentWindowYears: 5,
			MiddleWindowYears: 15,
			RecentWeight:      3,
			MiddleWeight:      2,
			BaselineWeight:    1,
			BoostDigits:       []int{0, 3, 6, 7},
			BoostFactor:       1.3,
			PenaltyFactor:     1.0,
			TopSquares:        10,
		},
		Props: config.PropsConfig{
			TrendWindow:         5,
			TrendThreshold:      0.05,
			SeasonWeight:        0.7,
			ValidationThreshold: 0.6,
			PlayerBetThreshold:  0.65,
			GameBetThreshold:    0.60,
		},
		Simulation: config.SimulationConfig{
			Iterations:        2000,
			RecentWindow:      5,
			RecentBlend:       0.7,
			VarianceInflation: 1.1,
			MinGames:          3,
			Seed:              7,
			StrongThreshold:   0.60,
			LeanThreshold:     0.55,
		},
		Cache: config.CacheConfig{
			TTLSeconds:             60,
			CleanupIntervalSeconds: 120,
		},
		Features: config.FeaturesConfig{
			TeamBoostsEnabled:   true,
			ProgressionsEnabled: true,
			SimulationsEnabled:  true,
			GamePropsEnabled:    true,
		},
	}
}

func newTestAnalyzer(t *testing.T, cfg *config.Config) *Analyzer {
	t.Helper()
	analyzer, err := NewAnalyzer(cfg, nil)
	require.NoError(t, err)
	return analyzer
}

func stageScores(q1, q2, q3, final int) map[models.Stage]int {
	return map[models.Stage]int{
		models.StageQ1:    q1,
		models.StageQ2:    q2,
		models.StageQ3:    q3,
		models.StageQ4:    final,
		models.StageFinal: final,
	}
}

func analysisGame(season int, gameType models.GameType, winner, loser [4]int, defensiveTD bool) models.GameRecord {
	return models.GameRecord{
		ID:           uuid.New(),
		Season:       season,
		GameType:     gameType,
		Winner:       "AAA",
		Loser:        "BBB",
		WinnerScores: stageScores(winner[0], winner[1], winner[2], winner[3]),
		LoserScores:  stageScores(loser[0], loser[1], loser[2], loser[3]),
		DefensiveTD:  defensiveTD,
	}
}

// historicalGames spans several rounds and seasons: three Super Bowls, both
// championships, a divisional game, and a regular-season game.
func historicalGames() []models.GameRecord {
	return []models.GameRecord{
		analysisGame(2023, models.GameTypeSuperBowl, [4]int{7, 14, 21, 31}, [4]int{3, 10, 13, 20}, false),
		analysisGame(2022, models.GameTypeSuperBowl, [4]int{10, 17, 24, 27}, [4]int{7, 10, 17, 24}, true),
		analysisGame(2021, models.GameTypeSuperBowl, [4]int{3, 13, 20, 23}, [4]int{0, 7, 10, 20}, false),
		analysisGame(2023, models.GameTypeAFCChampionship, [4]int{7, 10, 17, 24}, [4]int{0, 10, 10, 17}, false),
		analysisGame(2023, models.GameTypeNFCChampionship, [4]int{14, 21, 28, 34}, [4]int{7, 7, 14, 31}, true),
		analysisGame(2022, models.GameTypeDivisional, [4]int{3, 6, 13, 17}, [4]int{0, 3, 10, 14}, false),
		analysisGame(2023, models.GameTypeRegular, [4]int{7, 14, 17, 20}, [4]int{3, 6, 13, 17}, false),
	}
}

func quarterbackLog(name string, yards []float64) models.PlayerGameLog {
	entries := make([]models.GameLogEntry, 0, len(yards))
	for i, y := range yards {
		entries = append(entries, models.GameLogEntry{
			Season:   2023,
			Week:     i + 1,
			GameType: models.GameTypeRegular,
			Stats: map[models.StatCategory]float64{
				models.StatPassingYards:  y,
				models.StatPassingTDs:    2,
				models.StatInterceptions: 1,
				models.StatRushingYards:  20,
			},
		})
	}
	return models.PlayerGameLog{PlayerName: name, Position: models.PositionQB, Entries: entries}
}

func seasonYards() []float64 {
	return []float64{310, 280, 255, 290, 301, 265, 240, 320, 275, 285, 295, 250, 330, 270, 260, 300, 315}
}

func referenceLogs() []models.PlayerGameLog {
	return []models.PlayerGameLog{
		quarterbackLog("Historical QB", []float64{320, 350, 280, 310, 265, 290, 305, 330, 295, 285}),
	}
}

func TestNewAnalyzerValidation(t *testing.T) {
	_, err := NewAnalyzer(nil, nil)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	cfg := testConfig()
	cfg.Squares.RecentWeight = 0
	_, err = NewAnalyzer(cfg, nil)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	cfg = testConfig()
	cfg.Simulation.LeanThreshold = 0.3
	_, err = NewAnalyzer(cfg, nil)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func TestSquaresReportPipeline(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	report, err := analyzer.SquaresReport(historicalGames(), SquaresOptions{Filter: squares.FilterSuperBowl})
	require.NoError(t, err)

	assert.Equal(t, "superbowl", report.Filter)
	assert.Equal(t, ModelMarginal, report.Model)
	assert.Equal(t, 3, report.GamesAnalyzed)
	require.Len(t, report.Stages, 5)

	for _, stage := range report.Stages {
		assert.InDelta(t, 1.0, stage.Matrix.Sum(), 1e-9)
		assert.Len(t, stage.Ranked, 100)
		assert.Len(t, stage.Top, 10)
		assert.Len(t, stage.Bottom, 10)
		assert.Equal(t, 1, stage.Top[0].Rank)
	}

	require.Len(t, report.Progressions, 4)
	for _, prog := range report.Progressions {
		for key, row := range prog.Rows {
			sum := 0.0
			for _, p := range row {
				sum += p
			}
			assert.InDeltaf(t, 1.0, sum, 1e-9, "row %s", key)
		}
	}
}

func TestSquaresReportCached(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	games := historicalGames()

	first, err := analyzer.SquaresReport(games, SquaresOptions{})
	require.NoError(t, err)
	second, err := analyzer.SquaresReport(games, SquaresOptions{})
	require.NoError(t, err)

	assert.Same(t, first, second)

	hits, misses, _ := analyzer.Cache().Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	analyzer.Cache().Clear()
	third, err := analyzer.SquaresReport(games, SquaresOptions{})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestSquaresReportJointModel(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	report, err := analyzer.SquaresReport(historicalGames(), SquaresOptions{Model: ModelJoint})
	require.NoError(t, err)

	assert.Equal(t, ModelJoint, report.Model)
	for _, stage := range report.Stages {
		assert.InDelta(t, 1.0, stage.Matrix.Sum(), 1e-9)
	}
}

func TestSquaresReportUnknownModel(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	_, err := analyzer.SquaresReport(historicalGames(), SquaresOptions{Model: "bayesian"})
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func TestSquaresReportNoGames(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	_, err := analyzer.SquaresReport(nil, SquaresOptions{})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestSquaresBoostFeatureDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Features.TeamBoostsEnabled = false
	disabled := newTestAnalyzer(t, cfg)
	plain := newTestAnalyzer(t, testConfig())

	games := historicalGames()
	boosted, err := disabled.SquaresReport(games, SquaresOptions{BoostWinner: true})
	require.NoError(t, err)
	baseline, err := plain.SquaresReport(games, SquaresOptions{})
	require.NoError(t, err)

	// The request is recorded but the matrix stays unadjusted.
	assert.True(t, boosted.BoostWinner)
	for i := range boosted.Stages {
		assert.Equal(t, baseline.Stages[i].Matrix, boosted.Stages[i].Matrix)
	}
}

func TestSquaresBoostApplied(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	plain := newTestAnalyzer(t, testConfig())

	games := historicalGames()
	boosted, err := analyzer.SquaresReport(games, SquaresOptions{BoostWinner: true})
	require.NoError(t, err)
	baseline, err := plain.SquaresReport(games, SquaresOptions{})
	require.NoError(t, err)

	assert.NotEqual(t, baseline.Stages[0].Matrix, boosted.Stages[0].Matrix)
	for _, stage := range boosted.Stages {
		assert.InDelta(t, 1.0, stage.Matrix.Sum(), 1e-9)
	}
}

func TestPlayerReport(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	log := quarterbackLog("Test QB", seasonYards())

	report, err := analyzer.PlayerReport(log, referenceLogs(), PlayerOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Test QB", report.Player)
	assert.Equal(t, models.PositionQB, report.Position)
	assert.Equal(t, 17, report.Games)

	passing, ok := report.Summary.Get(models.StatPassingYards)
	require.True(t, ok)
	assert.Equal(t, 17, passing.Games)
	assert.InDelta(t, 240, passing.Low, 1e-9)
	assert.InDelta(t, 330, passing.High, 1e-9)

	entries := report.HitRates[models.StatPassingYards]
	require.Len(t, entries, 3)
	assert.InDelta(t, 16.0/17.0, entries[0].HitRateOver, 1e-9)
	assert.InDelta(t, 11.0/17.0, entries[1].HitRateOver, 1e-9)

	require.NotEmpty(t, report.Trends)
	for _, trend := range report.Trends {
		assert.Equal(t, 5, trend.Window)
	}

	predictions := report.Combined[models.StatPassingYards]
	require.Len(t, predictions, 3)
	// 0.7 season weight: 0.7*(11/17) + 0.3*(9/10) on the middle line.
	assert.InDelta(t, 0.7*(11.0/17.0)+0.3*0.9, predictions[1].CombinedRate, 1e-9)
	assert.True(t, predictions[1].SBValidated)

	require.NotEmpty(t, report.BestBets)
	for i := 1; i < len(report.BestBets); i++ {
		assert.GreaterOrEqual(t, report.BestBets[i-1].Rate, report.BestBets[i].Rate)
	}
	for _, bet := range report.BestBets {
		assert.GreaterOrEqual(t, bet.Rate, 0.65)
		assert.Equal(t, models.BetSourceCombined, bet.Source)
		assert.Equal(t, "Test QB", bet.Player)
	}
	assert.Empty(t, report.Simulations)
}

func TestPlayerReportNoReference(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	log := quarterbackLog("Test QB", seasonYards())

	report, err := analyzer.PlayerReport(log, nil, PlayerOptions{})
	require.NoError(t, err)

	assert.Empty(t, report.Combined)
	for _, bet := range report.BestBets {
		assert.Equal(t, models.BetSourceSeason, bet.Source)
		assert.False(t, bet.SBValidated)
	}
}

func TestPlayerReportCustomLines(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	log := quarterbackLog("Test QB", seasonYards())

	report, err := analyzer.PlayerReport(log, nil, PlayerOptions{
		Lines: map[models.StatCategory][]float64{
			models.StatPassingYards: {224.5},
		},
	})
	require.NoError(t, err)

	require.Len(t, report.HitRates, 1)
	entries := report.HitRates[models.StatPassingYards]
	require.Len(t, entries, 1)
	assert.InDelta(t, 224.5, entries[0].Line, 1e-9)
	assert.InDelta(t, 1.0, entries[0].HitRateOver, 1e-9)
}

func TestPlayerReportSimulations(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	log := quarterbackLog("Test QB", seasonYards())

	report, err := analyzer.PlayerReport(log, nil, PlayerOptions{Simulate: true})
	require.NoError(t, err)

	// QB default ladders: 3 passing yard lines, 2 TD lines, 2 interception
	// lines, 2 rushing yard lines.
	require.Len(t, report.Simulations, 9)
	for _, sim := range report.Simulations {
		assert.Equal(t, 2000, sim.Iterations)
		assert.InDelta(t, 1.0, sim.OverProbability+sim.UnderProbability, 1e-9)
	}

	// An identically configured analyzer reproduces the same draws.
	again := newTestAnalyzer(t, testConfig())
	repeat, err := again.PlayerReport(quarterbackLog("Test QB", seasonYards()), nil, PlayerOptions{Simulate: true})
	require.NoError(t, err)
	assert.Equal(t, report.Simulations, repeat.Simulations)
}

func TestPlayerReportSimulationsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Features.SimulationsEnabled = false
	analyzer := newTestAnalyzer(t, cfg)

	report, err := analyzer.PlayerReport(quarterbackLog("Test QB", seasonYards()), nil, PlayerOptions{Simulate: true})
	require.NoError(t, err)
	assert.Empty(t, report.Simulations)
}

func TestPlayerReportEmptyLog(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	_, err := analyzer.PlayerReport(models.PlayerGameLog{PlayerName: "Nobody", Position: models.PositionQB}, nil, PlayerOptions{})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}

func TestPlayerReportUnknownPosition(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	log := models.PlayerGameLog{
		PlayerName: "Punter",
		Position:   models.Position("P"),
		Entries:    []models.GameLogEntry{{Season: 2023, Week: 1, Stats: map[models.StatCategory]float64{"punts": 4}}},
	}

	_, err := analyzer.PlayerReport(log, nil, PlayerOptions{})
	assert.ErrorIs(t, err, models.ErrUnknownPosition)
}

func TestGamePropsReport(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())

	report, err := analyzer.GamePropsReport(historicalGames(), GamePropsOptions{})
	require.NoError(t, err)

	assert.Equal(t, 7, report.GamesAnalyzed)
	require.Len(t, report.TotalPoints, 11)
	// Totals 51, 51, 43, 41, 65, 31, 37: five clear 37.5.
	assert.InDelta(t, 5.0/7.0, report.TotalPoints[0].HitRateOver, 1e-9)

	require.Len(t, report.Margins, 4)
	rateSum := 0.0
	for _, bucket := range report.Margins {
		rateSum += bucket.Rate
	}
	assert.InDelta(t, 1.0, rateSum, 1e-9)
	assert.Equal(t, 5, report.Margins[0].Count)
	assert.Equal(t, 2, report.Margins[1].Count)

	assert.InDelta(t, 2.0/7.0, report.DefensiveTD.HitRateOver, 1e-9)

	require.Len(t, report.Rounds, 5)
	assert.Equal(t, models.GameTypeRegular, report.Rounds[0].GameType)
	assert.Equal(t, models.GameTypeSuperBowl, report.Rounds[4].GameType)
	assert.InDelta(t, 47.5, report.Rounds[0].Line, 1e-9)

	// Only the 37.5 and 39.5 totals clear the 0.60 game threshold.
	require.Len(t, report.BestBets, 2)
	assert.InDelta(t, 37.5, report.BestBets[0].Line, 1e-9)
	assert.InDelta(t, 39.5, report.BestBets[1].Line, 1e-9)
	for _, bet := range report.BestBets {
		assert.Equal(t, models.BetSourceGame, bet.Source)
		assert.Equal(t, models.CategoryTotalPoints, bet.Category)
	}
}

func TestGamePropsReportDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Features.GamePropsEnabled = false
	analyzer := newTestAnalyzer(t, cfg)

	_, err := analyzer.GamePropsReport(historicalGames(), GamePropsOptions{})
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func TestGamePropsReportNoFinals(t *testing.T) {
	analyzer := newTestAnalyzer(t, testConfig())
	games := []models.GameRecord{{
		ID:       uuid.New(),
		Season:   2023,
		GameType: models.GameTypeRegular,
		WinnerScores: map[models.Stage]int{
			models.StageQ1: 7,
		},
		LoserScores: map[models.Stage]int{
			models.StageQ1: 0,
		},
	}}

	_, err := analyzer.GamePropsReport(games, GamePropsOptions{})
	assert.ErrorIs(t, err, models.ErrInsufficientData)
}
