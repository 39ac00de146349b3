package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/gridiron-edge/internal/analysis"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/props"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	fromSeason int
	toSeason   int
	format     string
	output     string
	simulate   bool
	roundLine  float64
	limit      int

	logger   *logrus.Logger
	cfg      *config.Config
	db       *database.DB
	repos    *repository.Repositories
	analyzer *analysis.Analyzer
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().IntVar(&fromSeason, "from-season", 1966, "First season to include")
	rootCmd.PersistentFlags().IntVar(&toSeason, "to-season", 0, "Last season to include (0 = current year)")

	playerCmd.Flags().BoolVar(&simulate, "simulate", false, "Add Monte Carlo projections")
	playerCmd.Flags().StringVar(&format, "format", "console", "Output format: console, json, csv")
	playerCmd.Flags().StringVar(&output, "output", "./output/player_report.json", "Output path for json and csv formats")

	gameCmd.Flags().Float64Var(&roundLine, "line", 0, "Total-points line for the per-round breakdown (0 = ladder middle)")
	gameCmd.Flags().StringVar(&format, "format", "console", "Output format: console, json, csv")
	gameCmd.Flags().StringVar(&output, "output", "./output/game_props_report.json", "Output path for json and csv formats")

	bestBetsCmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of bets to show")

	rootCmd.AddCommand(playerCmd, benchCmd, gameCmd, bestBetsCmd)
}

var rootCmd = &cobra.Command{
	Use:     "props",
	Short:   "Analyze player and game prop betting lines",
	Long:    `Computes hit rates, trends, combined predictions, and best bets from stored game logs and game records.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if db != nil {
			db.Close()
		}
	},
}

var playerCmd = &cobra.Command{
	Use:   "player [name]",
	Short: "Analyze one player's prop lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlayer(args[0])
	},
}

var benchCmd = &cobra.Command{
	Use:   "bench [position]",
	Short: "Show positional benchmark statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(args[0])
	},
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Analyze game-level props over the stored history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame()
	},
}

var bestBetsCmd = &cobra.Command{
	Use:   "best-bets",
	Short: "Rank the safest over bets across all players and game props",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBestBets()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return err
		}
	}

	return config.Validate(cfg)
}

func setupDependencies(ctx context.Context) error {
	// Reports go to stdout; keep log noise down
	logger = logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	analyzer, err = analysis.NewAnalyzer(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	return nil
}

func seasonRange() (int, int) {
	to := toSeason
	if to <= 0 {
		to = time.Now().Year()
	}
	return fromSeason, to
}

func runPlayer(name string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	playerLog, err := repos.GameLog.GetByPlayer(ctx, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("no game log stored for %q", name)
		}
		return fmt.Errorf("failed to load game log for %q: %w", name, err)
	}

	reference, err := loadReferenceLogs(ctx, playerLog.Position)
	if err != nil {
		return err
	}

	report, err := analyzer.PlayerReport(*playerLog, reference, analysis.PlayerOptions{Simulate: simulate})
	if err != nil {
		return fmt.Errorf("player analysis failed: %w", err)
	}

	switch format {
	case "console":
		fmt.Println(analysis.GeneratePlayerConsoleReport(report))
		return nil
	case "json":
		return analysis.GenerateJSONExport(report, output)
	case "csv":
		return analysis.GeneratePlayerCSVExport(report, output)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func runBench(positionName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	position, err := models.ParsePosition(positionName)
	if err != nil {
		return err
	}

	reference, err := loadReferenceLogs(ctx, position)
	if err != nil {
		return err
	}

	categories, err := props.DefaultCategories(position)
	if err != nil {
		return err
	}

	from, to := seasonRange()
	summary, err := props.PositionBenchmarks(reference, position, categories)
	if err != nil {
		if errors.Is(err, models.ErrInsufficientData) {
			return fmt.Errorf("no %s game logs stored in seasons %d-%d", position, from, to)
		}
		return err
	}

	lines, err := props.DefaultLines(position)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("  Positional Benchmarks: %s  (%d players, %d-%d)", position, len(reference), from, to)
	fmt.Println("\n╔════════════════════════════════════════════════════════════════╗")
	fmt.Printf("║%-64s║\n", header)
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")

	fmt.Printf("\n%-18s %8s %8s %8s %8s %7s\n", "Category", "Avg", "Median", "High", "Low", "Games")
	for _, category := range categories {
		stats, ok := summary.Get(category)
		if !ok {
			continue
		}
		fmt.Printf("%-18s %8.1f %8.1f %8.1f %8.1f %7d\n",
			category, stats.Avg, stats.Median, stats.High, stats.Low, stats.Games)
	}

	for _, category := range categories {
		ladder := lines[category]
		if len(ladder) == 0 {
			continue
		}
		rates, err := props.PositionHitRates(reference, position, category, ladder)
		if err != nil {
			continue
		}
		fmt.Printf("\nOver rates for %s:\n", category)
		for _, entry := range rates {
			fmt.Printf("  %6.1f+  %5.1f%%  (%d/%d)\n",
				entry.Line, entry.HitRateOver*100, entry.OverCount, entry.Total)
		}
	}
	fmt.Println()

	return nil
}

func runGame() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	games, err := loadGames(ctx)
	if err != nil {
		return err
	}

	report, err := analyzer.GamePropsReport(games, analysis.GamePropsOptions{RoundLine: roundLine})
	if err != nil {
		return fmt.Errorf("game props analysis failed: %w", err)
	}

	switch format {
	case "console":
		fmt.Println(analysis.GenerateGamePropsConsoleReport(report))
		return nil
	case "json":
		return analysis.GenerateJSONExport(report, output)
	case "csv":
		return analysis.GenerateGamePropsCSVExport(report, output)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func runBestBets() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	candidates := make([]models.BetCandidate, 0, 64)

	names, err := repos.GameLog.GetPlayerNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list players: %w", err)
	}

	referenceByPosition := make(map[models.Position][]models.PlayerGameLog)
	analyzed := 0
	for _, name := range names {
		playerLog, err := repos.GameLog.GetByPlayer(ctx, name)
		if err != nil {
			logger.WithError(err).Warnf("Skipping player %s", name)
			continue
		}

		reference, ok := referenceByPosition[playerLog.Position]
		if !ok {
			reference, err = loadReferenceLogs(ctx, playerLog.Position)
			if err != nil {
				return err
			}
			referenceByPosition[playerLog.Position] = reference
		}

		report, err := analyzer.PlayerReport(*playerLog, reference, analysis.PlayerOptions{})
		if err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				continue
			}
			return fmt.Errorf("player analysis failed for %s: %w", name, err)
		}
		candidates = append(candidates, report.BestBets...)
		analyzed++
	}

	games, err := loadGames(ctx)
	if err != nil {
		return err
	}
	if len(games) > 0 {
		gameReport, err := analyzer.GamePropsReport(games, analysis.GamePropsOptions{})
		if err != nil && !errors.Is(err, models.ErrInsufficientData) {
			return fmt.Errorf("game props analysis failed: %w", err)
		}
		if gameReport != nil {
			candidates = append(candidates, gameReport.BestBets...)
		}
	}

	// Each report already applied its own threshold; zero keeps them all
	// and re-sorts the merged list deterministically.
	ranked := props.SelectBestBets(candidates, 0)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	fmt.Println("\n╔════════════════════════════════════════════════════════════════╗")
	fmt.Println("║                    Best Bets Across the Board                  ║")
	fmt.Println("╚════════════════════════════════════════════════════════════════╝")
	fmt.Printf("\nPlayers analyzed: %d   Games analyzed: %d\n\n", analyzed, len(games))

	if len(ranked) == 0 {
		fmt.Println("No bets met the configured thresholds.")
		return nil
	}

	fmt.Printf("%-4s %-24s %-14s %7s %7s %9s %-8s %s\n",
		"#", "Player/Prop", "Category", "Line", "Rate", "FairOdds", "Tier", "Validated")
	for i, bet := range ranked {
		label := bet.Player
		if label == "" {
			label = "game"
		}
		fmt.Printf("%-4d %-24s %-14s %7.1f %6.1f%% %9s %-8s %v\n",
			i+1, label, bet.Category, bet.Line, bet.Rate*100, fairOdds(bet.Rate), bet.Tier, bet.SBValidated)
	}
	fmt.Println()

	return nil
}

func fairOdds(rate float64) string {
	odds, err := props.FairAmericanOdds(rate)
	if err != nil {
		return "-"
	}
	return fmt.Sprintf("%+d", odds)
}

func loadReferenceLogs(ctx context.Context, position models.Position) ([]models.PlayerGameLog, error) {
	from, to := seasonRange()
	logs, err := repos.GameLog.GetByPosition(ctx, position, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s reference logs: %w", position, err)
	}
	result := make([]models.PlayerGameLog, 0, len(logs))
	for _, l := range logs {
		if l != nil {
			result = append(result, *l)
		}
	}
	return result, nil
}

func loadGames(ctx context.Context) ([]models.GameRecord, error) {
	from, to := seasonRange()
	games, err := repos.Game.GetBySeasonRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	result := make([]models.GameRecord, 0, len(games))
	for _, g := range games {
		if g != nil {
			result = append(result, *g)
		}
	}
	return result, nil
}
