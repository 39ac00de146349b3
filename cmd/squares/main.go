// Package main provides the entry point for the squares analysis CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/analysis"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/service"
	"github.com/yourusername/gridiron-edge/internal/squares"
)

func main() {
	var (
		configPath  = flag.String("config", "config/config.yaml", "Path to config file")
		source      = flag.String("source", "fixtures", "Game source: db, fixtures, file")
		fixtureDir  = flag.String("file", "", "Fixture directory for -source file")
		fromSeason  = flag.Int("from-season", 1966, "First season to include")
		toSeason    = flag.Int("to-season", 0, "Last season to include (0 = current year)")
		stageName   = flag.String("stage", "", "Restrict output to one stage: q1, q2, q3, q4, final")
		filterName  = flag.String("filter", "", "Game filter override: all, superbowl, championship, afc, nfc, playoff")
		model       = flag.String("model", analysis.ModelMarginal, "Probability model: marginal, joint")
		boostWinner = flag.Bool("boost-winner", false, "Apply team digit boosts to the winner side")
		boostLoser  = flag.Bool("boost-loser", false, "Apply team digit boosts to the loser side")
		top         = flag.Int("top", 0, "Override the number of top squares per stage")
		format      = flag.String("format", "console", "Output format: console, json, csv")
		output      = flag.String("output", "./output/squares_report.json", "Output path for json and csv formats")
	)
	flag.Parse()

	logger := newLogger()
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, logger)
	if *top > 0 {
		cfg.Squares.TopSquares = *top
	}

	analyzer, err := analysis.NewAnalyzer(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to create analyzer: %v", err)
	}

	games := loadGames(ctx, cfg, *source, *fixtureDir, *fromSeason, resolveToSeason(*toSeason), logger)

	opts := analysis.SquaresOptions{
		Model:       *model,
		BoostWinner: *boostWinner,
		BoostLoser:  *boostLoser,
	}
	// The -filter flag wins over the configured default; both empty means all.
	name := *filterName
	if name == "" {
		name = cfg.Squares.DefaultFilter
	}
	if name != "" {
		filter, err := squares.ParseGameFilter(name)
		if err != nil {
			logger.Fatalf("Invalid filter: %v", err)
		}
		opts.Filter = filter
	}

	logger.WithFields(logrus.Fields{
		"source": *source,
		"games":  len(games),
		"model":  opts.Model,
	}).Info("Starting squares analysis")

	report, err := analyzer.SquaresReport(games, opts)
	if err != nil {
		logger.Fatalf("Squares analysis failed: %v", err)
	}

	if *stageName != "" {
		trimToStage(report, *stageName, logger)
	}

	render(report, *format, *output, logger)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return logger
}

func loadConfigWithSecrets(path string, logger *logrus.Logger) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logger.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logger.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func resolveToSeason(toSeason int) int {
	if toSeason > 0 {
		return toSeason
	}
	return time.Now().Year()
}

func loadGames(ctx context.Context, cfg *config.Config, source, fixtureDir string, fromSeason, toSeason int, logger *logrus.Logger) []models.GameRecord {
	switch source {
	case "db":
		return loadGamesFromDB(ctx, cfg, fromSeason, toSeason, logger)
	case "fixtures":
		dir := fixturesDirFromConfig(cfg)
		if dir == "" {
			logger.Fatalf("No local_file source with a path configured; use -source file with -file instead")
		}
		return loadGamesFromDir(ctx, dir, fromSeason, toSeason, logger)
	case "file":
		if fixtureDir == "" {
			logger.Fatalf("-file is required with -source file")
		}
		return loadGamesFromDir(ctx, fixtureDir, fromSeason, toSeason, logger)
	default:
		logger.Fatalf("Unsupported source: %s", source)
		return nil
	}
}

func loadGamesFromDB(ctx context.Context, cfg *config.Config, fromSeason, toSeason int, logger *logrus.Logger) []models.GameRecord {
	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		logger.Fatalf("Failed to initialize repositories: %v", err)
	}

	games, err := repos.Game.GetBySeasonRange(ctx, fromSeason, toSeason)
	if err != nil {
		logger.Fatalf("Failed to load games: %v", err)
	}
	return dereferenceGames(games)
}

func loadGamesFromDir(ctx context.Context, dir string, fromSeason, toSeason int, logger *logrus.Logger) []models.GameRecord {
	fixtureSource := datasource.NewLocalFileSource(dir, true, logger)
	raw, err := fixtureSource.FetchGames(ctx, fromSeason, toSeason)
	if err != nil {
		logger.Fatalf("Failed to read fixtures: %v", err)
	}

	normalizer := service.NewDataNormalizer(logger)
	validator := service.NewDataValidator(logger)

	games := make([]models.GameRecord, 0, len(raw))
	skipped := 0
	for i := range raw {
		game, err := normalizer.NormalizeGame(&raw[i])
		if err != nil {
			skipped++
			logger.WithError(err).Warn("Skipping fixture game")
			continue
		}
		if errs := validator.ValidateGame(game); len(errs) > 0 {
			skipped++
			logger.WithField("errors", errs).Warn("Skipping invalid fixture game")
			continue
		}
		games = append(games, *game)
	}
	if skipped > 0 {
		logger.Warnf("Skipped %d of %d fixture games", skipped, len(raw))
	}
	return games
}

func fixturesDirFromConfig(cfg *config.Config) string {
	for _, src := range cfg.Datasource.Sources {
		if src.Name == "local_file" && src.Path != "" {
			return src.Path
		}
	}
	return ""
}

func dereferenceGames(games []*models.GameRecord) []models.GameRecord {
	result := make([]models.GameRecord, 0, len(games))
	for _, game := range games {
		if game != nil {
			result = append(result, *game)
		}
	}
	return result
}

// trimToStage reduces the report to a single stage, keeping only the
// progressions that involve it.
func trimToStage(report *models.SquaresReport, stageName string, logger *logrus.Logger) {
	stage, err := models.ParseStage(stageName)
	if err != nil {
		logger.Fatalf("Invalid stage: %v", err)
	}
	analysisForStage, ok := report.StageByName(stage)
	if !ok {
		logger.Fatalf("Stage %s is not present in the report", stage)
	}
	report.Stages = []models.StageAnalysis{*analysisForStage}

	kept := make([]models.Progression, 0, len(report.Progressions))
	for _, progression := range report.Progressions {
		if progression.From == stage || progression.To == stage {
			kept = append(kept, progression)
		}
	}
	report.Progressions = kept
}

func render(report *models.SquaresReport, format, output string, logger *logrus.Logger) {
	switch format {
	case "console":
		fmt.Println(analysis.GenerateSquaresConsoleReport(report))
	case "json":
		if err := analysis.GenerateJSONExport(report, output); err != nil {
			logger.Fatalf("Failed to write JSON report: %v", err)
		}
		logger.WithField("path", output).Info("JSON report written")
	case "csv":
		if err := analysis.GenerateSquaresCSVExport(report, output); err != nil {
			logger.Fatalf("Failed to write CSV report: %v", err)
		}
		logger.WithField("path", output).Info("CSV report written")
	default:
		logger.Fatalf("Unsupported format: %s", format)
	}
}
