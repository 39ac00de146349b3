// Package main provides the entry point for the data ingestion service.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/analysis"
	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/health"
	"github.com/yourusername/gridiron-edge/internal/logger"
	appmetrics "github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
	"github.com/yourusername/gridiron-edge/internal/scheduler"
	"github.com/yourusername/gridiron-edge/internal/service"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

const firstSuperBowlSeason = 1966

func main() {
	var (
		cfg    *config.Config
		err    error
		appLog *logrus.Logger
		db     *database.DB
	)

	// Load configuration
	configPath := os.Getenv("GRIDIRON_EDGE_CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err = config.LoadWithDefaults(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if err := config.ValidateEnvironment(cfg); err != nil {
		log.Fatalf("Invalid configuration for environment: %v", err)
	}

	// Set up logging
	appLog = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"version":     Version,
	}).Info("Gridiron Edge Data Ingestion Service starting")

	appmetrics.InitRegistry()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err = database.Initialize(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	// Initialize repositories
	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Initialize data sources
	httpClient := datasource.NewRateLimitedHTTPClient(datasource.DefaultHTTPClientConfig(), appLog)
	factory := datasource.NewFactory(appLog)
	sources, err := factory.NewDataSources(cfg.Datasource, httpClient)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize data sources")
	}

	// Initialize ingestion service
	ingestionSvc := service.NewIngestionService(
		sources,
		repos.Game,
		repos.GameLog,
		service.NewDataValidator(appLog),
		service.NewDataNormalizer(appLog),
		logger.NewIngestionLogger(appLog),
		resolveBatchSize(cfg),
	)

	// Initialize the analyzer used by the report refresh job
	analyzer, err := analysis.NewAnalyzer(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to create analyzer")
	}

	// Schedule recurring jobs
	sched := scheduler.NewScheduler(ingestionSvc, appLog)
	if err := sched.ScheduleHistoricalSync(cfg.Datasource.Schedule.HistoricalSync, syncFromSeason(cfg)); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule historical sync")
	}
	if err := sched.ScheduleReportRefresh(cfg.Datasource.Schedule.ReportRefresh, refreshReports(analyzer, repos, appLog)); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule report refresh")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}

	// Start the health check server
	healthServer := health.NewServer(health.Config{
		ServiceName: "data-ingestion",
		Version:     Version,
		Commit:      GitCommit,
		Logger:      appLog,
		DB:          db,
		LastSync:    sched.LastSuccessfulSync,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Start the Prometheus metrics server
	if cfg.Metrics.Enabled {
		startMetricsServer(ctx, cfg, appLog)
	}

	healthServer.SetReady(true)

	appLog.WithFields(logrus.Fields{
		"sources":         len(sources),
		"historical_sync": cfg.Datasource.Schedule.HistoricalSync,
		"report_refresh":  cfg.Datasource.Schedule.ReportRefresh,
		"next_run":        sched.GetNextRun().Format(time.RFC3339),
	}).Info("Ingestion service is running")

	// First boot against an empty database runs one sync immediately
	// rather than waiting for the overnight schedule.
	go runInitialSyncIfEmpty(ctx, ingestionSvc, repos, cfg, appLog)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	// Graceful shutdown
	appLog.Info("Initiating graceful shutdown...")

	healthServer.SetReady(false)
	cancel()

	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Error during scheduler shutdown")
	}

	// Give the HTTP servers time to drain
	time.Sleep(2 * time.Second)

	appLog.Info("Gridiron Edge Data Ingestion Service shut down successfully")
}

// resolveBatchSize picks the largest configured source batch size, falling
// back to the service default when none is set.
func resolveBatchSize(cfg *config.Config) int {
	size := 0
	for _, src := range cfg.Datasource.Sources {
		if src.BatchSize > size {
			size = src.BatchSize
		}
	}
	return size
}

func syncFromSeason(cfg *config.Config) int {
	if cfg.Datasource.Schedule.SyncFromSeason > 0 {
		return cfg.Datasource.Schedule.SyncFromSeason
	}
	return firstSuperBowlSeason
}

// refreshReports clears the report cache and rebuilds the default squares
// report so the first request after a sync is served warm.
func refreshReports(analyzer *analysis.Analyzer, repos *repository.Repositories, appLog *logrus.Logger) scheduler.RefreshFunc {
	return func(ctx context.Context) error {
		analyzer.Cache().Clear()

		games, err := repos.Game.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to load games for report refresh: %w", err)
		}
		if len(games) == 0 {
			appLog.Warn("No games stored; skipping report warm-up")
			return nil
		}

		records := make([]models.GameRecord, 0, len(games))
		for _, game := range games {
			if game != nil {
				records = append(records, *game)
			}
		}

		report, err := analyzer.SquaresReport(records, analysis.SquaresOptions{})
		if err != nil {
			if errors.Is(err, models.ErrInsufficientData) {
				appLog.WithError(err).Warn("Not enough games for report warm-up")
				return nil
			}
			return err
		}

		appLog.WithField("games_analyzed", report.GamesAnalyzed).Info("Squares report rebuilt")
		return nil
	}
}

func runInitialSyncIfEmpty(ctx context.Context, ingestionSvc *service.IngestionService, repos *repository.Repositories, cfg *config.Config, appLog *logrus.Logger) {
	count, err := repos.Game.Count(ctx)
	if err != nil {
		appLog.WithError(err).Warn("Failed to check stored game count; skipping initial sync")
		return
	}
	if count > 0 {
		return
	}

	appLog.Info("Empty database detected; running initial sync")
	syncCtx, cancel := context.WithTimeout(ctx, 2*time.Hour)
	defer cancel()

	if err := ingestionSvc.IngestAllSources(syncCtx, syncFromSeason(cfg), time.Now().Year()); err != nil {
		appLog.WithError(err).Error("Initial sync failed")
		return
	}
	appLog.Infof("Initial sync completed: %s", ingestionSvc.GetMetrics().String())
}

// startMetricsServer exposes the Prometheus registry over HTTP for the
// scrape target configured in deployment.
func startMetricsServer(ctx context.Context, cfg *config.Config, appLog *logrus.Logger) {
	path := cfg.Metrics.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, appmetrics.Handler())

	server := &http.Server{
		Addr:         cfg.GetMetricsAddress(),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"address": server.Addr,
			"path":    path,
		}).Info("Metrics server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Metrics server shutdown error")
		}
	}()
}
