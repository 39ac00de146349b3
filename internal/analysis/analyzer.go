package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/props"
	"github.com/yourusername/gridiron-edge/internal/squares"
)

// Matrix models selectable per squares run. The marginal model multiplies
// independent digit marginals; the joint model counts observed digit pairs.
const (
	ModelMarginal = "marginal"
	ModelJoint    = "joint"
)

// Analyzer orchestrates analysis runs over in-memory datasets. Engine calls
// stay pure; the analyzer adds caching, logging, and metrics around them.
type Analyzer struct {
	squaresCfg squares.Config
	propsCfg   props.Config
	simCfg     props.SimulationConfig
	features   config.FeaturesConfig
	log        *logger.AnalysisLogger
	cache      *ReportCache
}

// NewAnalyzer creates a new analyzer from app config
func NewAnalyzer(cfg *config.Config, baseLogger *logrus.Logger) (*Analyzer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required: %w", models.ErrInvalidConfiguration)
	}
	if baseLogger == nil {
		baseLogger = logrus.New()
	}

	squaresCfg, err := squares.FromConfig(&cfg.Squares)
	if err != nil {
		return nil, fmt.Errorf("squares config: %w", err)
	}
	propsCfg, err := props.FromConfig(&cfg.Props)
	if err != nil {
		return nil, fmt.Errorf("props config: %w", err)
	}
	simCfg, err := props.SimulationFromConfig(&cfg.Simulation)
	if err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	cleanup := time.Duration(cfg.Cache.CleanupIntervalSeconds) * time.Second

	return &Analyzer{
		squaresCfg: squaresCfg,
		propsCfg:   propsCfg,
		simCfg:     simCfg,
		features:   cfg.Features,
		log:        logger.NewAnalysisLogger(baseLogger),
		cache:      NewReportCache(ttl, cleanup),
	}, nil
}

// Cache returns the report cache
func (a *Analyzer) Cache() *ReportCache {
	return a.cache
}

// SquaresOptions selects how one squares run is computed.
type SquaresOptions struct {
	Filter      squares.GameFilter
	Model       string
	BoostWinner bool
	BoostLoser  bool
}

type squaresKeyInputs struct {
	Options  SquaresOptions
	Config   squares.Config
	Features config.FeaturesConfig
}

// SquaresReport runs the digit pipeline over a game history: filter, recency
// weighting, per-stage frequencies and matrices, optional team boosts,
// rankings, and stage-to-stage progressions.
func (a *Analyzer) SquaresReport(games []models.GameRecord, opts SquaresOptions) (*models.SquaresReport, error) {
	start := time.Now()
	if opts.Filter == "" {
		opts.Filter = squares.FilterAll
	}
	if opts.Model == "" {
		opts.Model = ModelMarginal
	}
	if opts.Model != ModelMarginal && opts.Model != ModelJoint {
		return nil, a.fail(reportSquares, fmt.Errorf("unknown matrix model %q: %w", opts.Model, models.ErrInvalidConfiguration))
	}

	key := CacheKey{
		Report:  reportSquares,
		Dataset: digest(games),
		Options: digest(squaresKeyInputs{Options: opts, Config: a.squaresCfg, Features: a.features}),
	}
	if cached := a.cache.GetSquares(key); cached != nil {
		a.log.LogCacheAccess(key.String(), true)
		return cached, nil
	}
	a.log.LogCacheAccess(key.String(), false)

	filtered, err := squares.FilterGames(games, opts.Filter)
	if err != nil {
		return nil, a.fail(reportSquares, err)
	}
	weighted, err := squares.WeightGames(filtered, a.squaresCfg)
	if err != nil {
		return nil, a.fail(reportSquares, err)
	}

	report := &models.SquaresReport{
		GeneratedAt:   time.Now().UTC(),
		Filter:        string(opts.Filter),
		Model:         opts.Model,
		GamesAnalyzed: len(filtered),
		BoostWinner:   opts.BoostWinner,
		BoostLoser:    opts.BoostLoser,
	}

	for _, stage := range models.AllStages() {
		stageAnalysis, err := a.analyzeStage(weighted, stage, opts)
		if err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				a.log.LogSkippedSection(string(stage), err.Error())
				continue
			}
			return nil, a.fail(reportSquares, err)
		}
		report.Stages = append(report.Stages, *stageAnalysis)
	}
	if len(report.Stages) == 0 {
		return nil, a.fail(reportSquares, fmt.Errorf("no stage carries scores: %w", models.ErrInsufficientData))
	}

	if a.features.ProgressionsEnabled {
		for _, pair := range squares.StagePairs() {
			prog, err := squares.BuildProgression(weighted, pair[0], pair[1])
			if err != nil {
				if errors.Is(err, models.ErrInsufficientData) {
					a.log.LogSkippedSection(fmt.Sprintf("progression %s to %s", pair[0], pair[1]), err.Error())
					continue
				}
				return nil, a.fail(reportSquares, err)
			}
			report.Progressions = append(report.Progressions, prog)
		}
	}

	a.cache.Set(key, report)
	duration := time.Since(start)
	a.log.LogSquaresRun(string(opts.Filter), len(filtered), len(report.Stages), opts.BoostWinner, opts.BoostLoser, durationMs(duration))
	metrics.RecordReportGenerated(reportSquares, "success")
	metrics.RecordReportGeneration(duration.Seconds())
	metrics.UpdateSquaresGamesAnalyzed(string(opts.Filter), float64(len(filtered)))
	return report, nil
}

func (a *Analyzer) analyzeStage(weighted []models.WeightedGame, stage models.Stage, opts SquaresOptions) (*models.StageAnalysis, error) {
	freq := squares.DigitFrequencies(weighted, stage)

	var (
		matrix models.ProbabilityMatrix
		err    error
	)
	if opts.Model == ModelJoint {
		matrix, err = squares.BuildJointMatrix(weighted, stage)
	} else {
		matrix, err = squares.BuildMatrix(freq)
	}
	if err != nil {
		return nil, err
	}

	if a.features.TeamBoostsEnabled && (opts.BoostWinner || opts.BoostLoser) {
		matrix, err = squares.AdjustForTeams(matrix, opts.BoostWinner, opts.BoostLoser, a.squaresCfg)
		if err != nil {
			return nil, err
		}
	}

	return &models.StageAnalysis{
		Stage:       stage,
		Frequencies: freq,
		Matrix:      matrix,
		Ranked:      squares.RankSquares(matrix),
		Top:         squares.TopSquares(matrix, a.squaresCfg.TopSquares),
		Bottom:      squares.BottomSquares(matrix, a.squaresCfg.TopSquares),
	}, nil
}

// PlayerOptions selects how one player prop run is computed.
type PlayerOptions struct {
	// Lines overrides the per-position default line ladders when non-nil.
	Lines map[models.StatCategory][]float64
	// Simulate adds Monte Carlo projections when simulations are enabled.
	Simulate bool
}

type playerKeyInputs struct {
	Options    PlayerOptions
	Props      props.Config
	Simulation props.SimulationConfig
	Features   config.FeaturesConfig
}

type playerDataset struct {
	Log       models.PlayerGameLog
	Reference []models.PlayerGameLog
}

// PlayerReport analyzes one player's game log: summary statistics, hit rates
// against candidate lines, trend classification, predictions combined with
// positional history from the reference logs, and best bets.
func (a *Analyzer) PlayerReport(log models.PlayerGameLog, reference []models.PlayerGameLog, opts PlayerOptions) (*models.PlayerReport, error) {
	start := time.Now()
	if len(log.Entries) == 0 {
		return nil, a.fail(reportPlayer, fmt.Errorf("no games for player %s: %w", log.PlayerName, models.ErrInsufficientData))
	}

	categories, err := props.DefaultCategories(log.Position)
	if err != nil {
		return nil, a.fail(reportPlayer, err)
	}
	lines := opts.Lines
	if lines == nil {
		if lines, err = props.DefaultLines(log.Position); err != nil {
			return nil, a.fail(reportPlayer, err)
		}
	}

	key := CacheKey{
		Report:  reportPlayer,
		Dataset: digest(playerDataset{Log: log, Reference: reference}),
		Options: digest(playerKeyInputs{Options: opts, Props: a.propsCfg, Simulation: a.simCfg, Features: a.features}),
	}
	if cached := a.cache.GetPlayer(key); cached != nil {
		a.log.LogCacheAccess(key.String(), true)
		return cached, nil
	}
	a.log.LogCacheAccess(key.String(), false)

	simulate := opts.Simulate
	if simulate && !a.features.SimulationsEnabled {
		a.log.LogSkippedSection("simulations", "disabled by configuration")
		simulate = false
	}

	report := &models.PlayerReport{
		GeneratedAt: time.Now().UTC(),
		Player:      log.PlayerName,
		Position:    log.Position,
		Games:       len(log.Entries),
		Summary:     props.Summarize(log, categories),
		HitRates:    make(map[models.StatCategory][]models.HitRateEntry),
	}

	combined := make(map[models.StatCategory][]models.CombinedPrediction)
	candidates := make([]models.BetCandidate, 0)
	for _, category := range categories {
		categoryLines := lines[category]
		if len(categoryLines) == 0 {
			continue
		}

		season, err := props.HitRates(log, category, categoryLines)
		if err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				a.log.LogSkippedSection(string(category), err.Error())
				continue
			}
			return nil, a.fail(reportPlayer, err)
		}
		report.HitRates[category] = season

		trend, err := props.AnalyzeTrend(log, category, a.propsCfg)
		if err == nil {
			report.Trends = append(report.Trends, trend)
		} else if !errors.Is(err, models.ErrInsufficientData) {
			return nil, a.fail(reportPlayer, err)
		}

		history, err := a.positionHistory(reference, log.Position, category, categoryLines)
		if err != nil {
			return nil, a.fail(reportPlayer, err)
		}

		predictions, categoryCandidates := playerCandidates(log, category, season, history, a.propsCfg)
		if len(predictions) > 0 {
			combined[category] = predictions
		}
		candidates = append(candidates, categoryCandidates...)

		if simulate {
			if err := a.simulateCategory(report, log, category, categoryLines); err != nil {
				return nil, a.fail(reportPlayer, err)
			}
		}
	}
	if len(report.HitRates) == 0 {
		return nil, a.fail(reportPlayer, fmt.Errorf("no category carries values for %s: %w", log.PlayerName, models.ErrInsufficientData))
	}
	if len(combined) > 0 {
		report.Combined = combined
	}

	report.BestBets = props.SelectBestBets(candidates, a.propsCfg.PlayerBetThreshold)

	a.cache.Set(key, report)
	duration := time.Since(start)
	a.log.LogPlayerRun(log.PlayerName, string(log.Position), len(log.Entries), len(report.HitRates), len(report.BestBets), durationMs(duration))
	metrics.RecordReportGenerated(reportPlayer, "success")
	metrics.RecordReportGeneration(duration.Seconds())
	metrics.RecordBestBetCount(reportPlayer, float64(len(report.BestBets)))
	return report, nil
}

// positionHistory pools the reference logs at the player's position. A
// category nobody at the position recorded is a normal no-history case,
// not an error.
func (a *Analyzer) positionHistory(reference []models.PlayerGameLog, position models.Position, category models.StatCategory, lines []float64) ([]models.HitRateEntry, error) {
	if len(reference) == 0 {
		return nil, nil
	}
	history, err := props.PositionHitRates(reference, position, category, lines)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientData) {
			return nil, nil
		}
		return nil, err
	}
	return history, nil
}

// playerCandidates builds one bet candidate per line, rated by the combined
// prediction when positional history exists and by the season rate otherwise.
func playerCandidates(log models.PlayerGameLog, category models.StatCategory, season, history []models.HitRateEntry, cfg props.Config) ([]models.CombinedPrediction, []models.BetCandidate) {
	predictions := make([]models.CombinedPrediction, 0, len(season))
	candidates := make([]models.BetCandidate, 0, len(season))
	for i := range season {
		var historyEntry *models.HitRateEntry
		if i < len(history) {
			historyEntry = &history[i]
		}

		candidate := models.BetCandidate{
			Player:   log.PlayerName,
			Position: log.Position,
			Category: category,
			Line:     season[i].Line,
			Total:    season[i].Total,
		}
		if historyEntry != nil {
			prediction := props.Combine(season[i], historyEntry, cfg)
			predictions = append(predictions, prediction)
			candidate.Rate = prediction.CombinedRate
			candidate.Source = models.BetSourceCombined
			candidate.SBValidated = prediction.SBValidated
		} else {
			candidate.Rate = season[i].HitRateOver
			candidate.Source = models.BetSourceSeason
		}
		candidate.Tier = props.ClassifyTier(candidate.Rate)
		candidates = append(candidates, candidate)
	}
	return predictions, candidates
}

func (a *Analyzer) simulateCategory(report *models.PlayerReport, log models.PlayerGameLog, category models.StatCategory, lines []float64) error {
	values := log.Values(category)
	for _, line := range lines {
		sim, err := props.Simulate(values, category, line, a.simCfg)
		if err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				// Every line shares the same values, so one failure covers all.
				a.log.LogSkippedSection(fmt.Sprintf("simulation %s", category), err.Error())
				return nil
			}
			return err
		}
		report.Simulations = append(report.Simulations, sim)
		a.log.LogSimulationRun(log.PlayerName, string(category), line, sim.Iterations, sim.OverProbability, string(sim.Recommendation))
		metrics.RecordSimulationProbability(string(category), sim.OverProbability)
	}
	return nil
}

// GamePropsOptions selects the candidate lines for a game prop run.
type GamePropsOptions struct {
	// TotalLines overrides the default total-points ladder when non-nil.
	TotalLines []float64
	// RoundLine is the total line for the per-round breakdown; zero picks
	// the middle of the ladder.
	RoundLine float64
}

type gamePropsKeyInputs struct {
	Options  GamePropsOptions
	Props    props.Config
	Features config.FeaturesConfig
}

// GamePropsReport analyzes game-level props over a historical dataset:
// total-points hit rates, margin buckets, defensive touchdowns, and the
// per-round breakdown.
func (a *Analyzer) GamePropsReport(games []models.GameRecord, opts GamePropsOptions) (*models.GamePropsReport, error) {
	start := time.Now()
	if !a.features.GamePropsEnabled {
		return nil, a.fail(reportGameProps, fmt.Errorf("game props are disabled: %w", models.ErrInvalidConfiguration))
	}

	lines := opts.TotalLines
	if lines == nil {
		lines = props.DefaultTotalLines()
	}
	roundLine := opts.RoundLine
	if roundLine == 0 && len(lines) > 0 {
		roundLine = lines[len(lines)/2]
	}

	key := CacheKey{
		Report:  reportGameProps,
		Dataset: digest(games),
		Options: digest(gamePropsKeyInputs{Options: opts, Props: a.propsCfg, Features: a.features}),
	}
	if cached := a.cache.GetGameProps(key); cached != nil {
		a.log.LogCacheAccess(key.String(), true)
		return cached, nil
	}
	a.log.LogCacheAccess(key.String(), false)

	totals, err := props.TotalPointsHitRates(games, lines)
	if err != nil {
		return nil, a.fail(reportGameProps, err)
	}

	report := &models.GamePropsReport{
		GeneratedAt:   time.Now().UTC(),
		GamesAnalyzed: len(games),
		TotalPoints:   totals,
	}

	candidates := make([]models.BetCandidate, 0, len(totals)+1)
	for _, entry := range totals {
		candidates = append(candidates, gameCandidate(models.CategoryTotalPoints, entry))
	}

	margins, err := props.MarginBucketRates(games)
	if err == nil {
		report.Margins = margins
	} else if errors.Is(err, models.ErrInsufficientData) {
		a.log.LogSkippedSection("margins", err.Error())
	} else {
		return nil, a.fail(reportGameProps, err)
	}

	defensive, err := props.DefensiveTDRate(games)
	if err == nil {
		report.DefensiveTD = defensive
		candidates = append(candidates, gameCandidate(models.CategoryDefensiveTD, defensive))
	} else if errors.Is(err, models.ErrInsufficientData) {
		a.log.LogSkippedSection("defensive_td", err.Error())
	} else {
		return nil, a.fail(reportGameProps, err)
	}

	rounds, err := props.RoundBreakdown(games, roundLine)
	if err == nil {
		report.Rounds = rounds
	} else if errors.Is(err, models.ErrInsufficientData) {
		a.log.LogSkippedSection("rounds", err.Error())
	} else {
		return nil, a.fail(reportGameProps, err)
	}

	report.BestBets = props.SelectBestBets(candidates, a.propsCfg.GameBetThreshold)

	a.cache.Set(key, report)
	duration := time.Since(start)
	a.log.LogGamePropsRun(len(games), len(lines), len(report.Rounds), durationMs(duration))
	metrics.RecordReportGenerated(reportGameProps, "success")
	metrics.RecordReportGeneration(duration.Seconds())
	metrics.RecordBestBetCount(reportGameProps, float64(len(report.BestBets)))
	return report, nil
}

func gameCandidate(category models.StatCategory, entry models.HitRateEntry) models.BetCandidate {
	return models.BetCandidate{
		Category: category,
		Line:     entry.Line,
		Rate:     entry.HitRateOver,
		Total:    entry.Total,
		Source:   models.BetSourceGame,
		Tier:     props.ClassifyTier(entry.HitRateOver),
	}
}

func (a *Analyzer) fail(report string, err error) error {
	a.log.LogAnalysisError(report, err.Error())
	metrics.RecordReportGenerated(report, "error")
	return err
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
