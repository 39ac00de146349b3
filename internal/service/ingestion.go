package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	appmetrics "github.com/yourusername/gridiron-edge/internal/metrics"
	"github.com/yourusername/gridiron-edge/internal/models"
	"github.com/yourusername/gridiron-edge/internal/repository"
)

// IngestionService handles the data ingestion workflow: fetch raw rows from
// a source, normalize, validate, dedupe against stored records, persist.
// One sync handles games first, then player game logs.
type IngestionService struct {
	sources     []datasource.DataSource
	gameRepo    repository.GameRepository
	gameLogRepo repository.PlayerGameLogRepository
	validator   *DataValidator
	normalizer  *DataNormalizer
	metrics     *IngestionMetrics
	logger      *logger.IngestionLogger
	batchSize   int
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(
	sources []datasource.DataSource,
	gameRepo repository.GameRepository,
	gameLogRepo repository.PlayerGameLogRepository,
	validator *DataValidator,
	normalizer *DataNormalizer,
	ingestionLogger *logger.IngestionLogger,
	batchSize int,
) *IngestionService {
	if batchSize <= 0 {
		batchSize = 100
	}
	if ingestionLogger == nil {
		ingestionLogger = logger.NewIngestionLogger(logrus.New())
	}

	return &IngestionService{
		sources:     sources,
		gameRepo:    gameRepo,
		gameLogRepo: gameLogRepo,
		validator:   validator,
		normalizer:  normalizer,
		metrics:     NewIngestionMetrics(),
		logger:      ingestionLogger,
		batchSize:   batchSize,
	}
}

// IngestHistoricalData fetches and ingests historical games and player game
// logs for the inclusive season range from a specific source. Rejected rows
// are counted and skipped; only a failed fetch aborts the sync.
func (s *IngestionService) IngestHistoricalData(ctx context.Context, sourceName string, fromSeason, toSeason int) (*IngestionMetrics, error) {
	s.metrics.Reset()
	start := time.Now()

	s.logger.LogSyncStart(sourceName, s.batchSize)

	var source datasource.DataSource
	for _, src := range s.sources {
		if src.Name() == sourceName {
			source = src
			break
		}
	}
	if source == nil {
		return nil, fmt.Errorf("data source not found: %s", sourceName)
	}

	rawGames, err := source.FetchGames(ctx, fromSeason, toSeason)
	if err != nil {
		s.metrics.RecordError()
		s.metrics.Finish()
		s.logger.LogSourceError(sourceName, err.Error())
		appmetrics.RecordSourceRequest(sourceName, sourceOutcome(err))
		appmetrics.RecordSyncRun(sourceName, "failure")
		return s.metrics, fmt.Errorf("failed to fetch games: %w", err)
	}
	appmetrics.RecordSourceRequest(sourceName, "success")
	s.metrics.AddFetchedGames(len(rawGames))

	for i := 0; i < len(rawGames); i += s.batchSize {
		end := i + s.batchSize
		if end > len(rawGames) {
			end = len(rawGames)
		}

		batchStart := time.Now()
		stored, rejected := s.processGameBatch(ctx, sourceName, rawGames[i:end])
		elapsed := time.Since(batchStart)

		appmetrics.RecordIngestionBatch(elapsed.Seconds())
		s.logger.LogBatchResult(sourceName, "game", end-i, stored, rejected, float64(elapsed.Milliseconds()))
	}

	rawLogs, err := source.FetchGameLogs(ctx, fromSeason, toSeason)
	if err != nil {
		s.metrics.RecordError()
		s.metrics.Finish()
		s.logger.LogSourceError(sourceName, err.Error())
		appmetrics.RecordSourceRequest(sourceName, sourceOutcome(err))
		appmetrics.RecordSyncRun(sourceName, "partial")
		return s.metrics, fmt.Errorf("failed to fetch game logs: %w", err)
	}
	appmetrics.RecordSourceRequest(sourceName, "success")
	s.metrics.AddFetchedLogRows(len(rawLogs))

	playerLogs := s.collectGameLogs(sourceName, rawLogs)
	for i := 0; i < len(playerLogs); i += s.batchSize {
		end := i + s.batchSize
		if end > len(playerLogs) {
			end = len(playerLogs)
		}

		batchStart := time.Now()
		stored, rejected := s.processLogBatch(ctx, sourceName, playerLogs[i:end])
		elapsed := time.Since(batchStart)

		appmetrics.RecordIngestionBatch(elapsed.Seconds())
		s.logger.LogBatchResult(sourceName, "game_log", end-i, stored, rejected, float64(elapsed.Milliseconds()))
	}

	s.updateStorageGauges(ctx)
	s.metrics.Finish()

	status := "success"
	if s.metrics.HadFailures() {
		status = "partial"
	}

	duration := time.Since(start)
	appmetrics.RecordSyncDuration(sourceName, duration.Seconds())
	appmetrics.UpdateLastSyncTime(float64(time.Now().Unix()))
	appmetrics.RecordSyncRun(sourceName, status)

	games, logEntries := s.metrics.Totals()
	s.logger.LogSyncComplete(sourceName, games, logEntries, duration.Seconds())

	return s.metrics, nil
}

// IngestAllSources runs a historical sync against every enabled source.
// Sources fail independently; the joined error reports every failure.
func (s *IngestionService) IngestAllSources(ctx context.Context, fromSeason, toSeason int) error {
	var errs []error
	for _, src := range s.sources {
		if !src.IsEnabled() {
			continue
		}
		if _, err := s.IngestHistoricalData(ctx, src.Name(), fromSeason, toSeason); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// processGameBatch normalizes, validates, and persists one batch of raw
// games. Games new to storage go through a single batch insert; games whose
// natural key already exists are updated in place when the data changed.
func (s *IngestionService) processGameBatch(ctx context.Context, sourceName string, batch []datasource.GameData) (stored, rejected int) {
	fresh := make([]*models.GameRecord, 0, len(batch))

	for i := range batch {
		raw := &batch[i]

		game, err := s.normalizer.NormalizeGame(raw)
		if err != nil {
			s.rejectRow(sourceName, "game", "normalize", err.Error(), raw.Season)
			rejected++
			continue
		}

		if reasons := s.validator.ValidateGame(game); len(reasons) > 0 {
			s.rejectRow(sourceName, "game", "validate", strings.Join(reasons, "; "), game.Season)
			rejected++
			continue
		}

		existing, err := s.gameRepo.GetBySeasonAndTeams(ctx, game.Season, game.Winner, game.Loser)
		switch {
		case err == nil && gamesEqual(existing, game):
			s.metrics.RecordDuplicate()
		case err == nil:
			game.ID = existing.ID
			if err := s.gameRepo.Update(ctx, game); err != nil {
				s.recordRowError(err, "Failed to update game", raw.SourceID)
				continue
			}
			stored++
			s.metrics.RecordGames(1)
			appmetrics.RecordGameIngested()
		case errors.Is(err, models.ErrNotFound):
			fresh = append(fresh, game)
		default:
			s.recordRowError(err, "Failed to look up existing game", raw.SourceID)
		}
	}

	if len(fresh) > 0 {
		if err := s.gameRepo.CreateBatch(ctx, fresh); err != nil {
			s.recordRowError(err, "Failed to insert game batch", "")
			return stored, rejected
		}
		stored += len(fresh)
		s.metrics.RecordGames(len(fresh))
		appmetrics.GamesIngestedTotal.Add(float64(len(fresh)))
	}

	return stored, rejected
}

// collectGameLogs normalizes raw log rows and groups them into one log per
// player with entries in season and week order. Rows that fail
// normalization are counted and dropped here; whole-log validation happens
// at store time.
func (s *IngestionService) collectGameLogs(sourceName string, rows []datasource.GameLogData) []*models.PlayerGameLog {
	grouped := make(map[string]*models.PlayerGameLog, len(rows))
	order := make([]string, 0, len(rows))

	for i := range rows {
		playerLog, err := s.normalizer.NormalizeGameLog(&rows[i])
		if err != nil {
			s.rejectRow(sourceName, "game_log", "normalize", err.Error(), rows[i].Season)
			continue
		}

		existing, ok := grouped[playerLog.PlayerName]
		if !ok {
			grouped[playerLog.PlayerName] = playerLog
			order = append(order, playerLog.PlayerName)
			continue
		}
		if existing.Position != playerLog.Position {
			s.rejectRow(sourceName, "game_log", "conflict",
				fmt.Sprintf("position conflict for %s: %s vs %s", playerLog.PlayerName, existing.Position, playerLog.Position),
				rows[i].Season)
			continue
		}
		existing.Entries = append(existing.Entries, playerLog.Entries...)
	}

	playerLogs := make([]*models.PlayerGameLog, 0, len(order))
	for _, name := range order {
		playerLog := grouped[name]
		sort.SliceStable(playerLog.Entries, func(a, b int) bool {
			if playerLog.Entries[a].Season != playerLog.Entries[b].Season {
				return playerLog.Entries[a].Season < playerLog.Entries[b].Season
			}
			return playerLog.Entries[a].Week < playerLog.Entries[b].Week
		})
		playerLogs = append(playerLogs, playerLog)
	}

	return playerLogs
}

// processLogBatch validates and persists one batch of grouped player logs.
// ReplaceLog swaps a player's whole history, so reruns are idempotent.
func (s *IngestionService) processLogBatch(ctx context.Context, sourceName string, batch []*models.PlayerGameLog) (stored, rejected int) {
	for _, playerLog := range batch {
		if reasons := s.validator.ValidateGameLog(playerLog); len(reasons) > 0 {
			s.rejectRow(sourceName, "game_log", "validate", strings.Join(reasons, "; "), firstSeason(playerLog))
			rejected++
			continue
		}

		if err := s.gameLogRepo.ReplaceLog(ctx, playerLog); err != nil {
			s.recordRowError(err, "Failed to store game log", playerLog.PlayerName)
			continue
		}

		stored++
		s.metrics.RecordLogEntries(len(playerLog.Entries))
		appmetrics.GameLogsIngestedTotal.Add(float64(len(playerLog.Entries)))
	}

	return stored, rejected
}

// rejectRow records one dropped row in the tracker, Prometheus, and the
// log. label keys the Prometheus reason and must stay low-cardinality;
// detail is free text for the log line only.
func (s *IngestionService) rejectRow(sourceName, entity, label, detail string, season int) {
	s.metrics.RecordValidationError()
	appmetrics.RecordRowRejected()
	appmetrics.RecordValidationFailure(entity, label)
	s.logger.LogValidationFailure(sourceName, entity, detail, season)
}

// recordRowError records a storage failure for a single row
func (s *IngestionService) recordRowError(err error, msg, rowID string) {
	s.metrics.RecordError()
	entry := s.logger.WithError(err)
	if rowID != "" {
		entry = entry.WithField("row_id", rowID)
	}
	entry.Warn(msg)
}

// updateStorageGauges refreshes the stored-row gauges from repository
// counts. Gauge staleness is tolerable, so count failures only log.
func (s *IngestionService) updateStorageGauges(ctx context.Context) {
	if count, err := s.gameRepo.Count(ctx); err == nil {
		appmetrics.UpdateGamesStored(float64(count))
	} else {
		s.logger.WithError(err).Warn("Failed to count stored games")
	}

	if count, err := s.gameLogRepo.Count(ctx); err == nil {
		appmetrics.UpdateGameLogsStored(float64(count))
	} else {
		s.logger.WithError(err).Warn("Failed to count stored game logs")
	}
}

// GetMetrics returns the current ingestion metrics tracker
func (s *IngestionService) GetMetrics() *IngestionMetrics {
	return s.metrics
}

// ResetMetrics resets the ingestion metrics tracker
func (s *IngestionService) ResetMetrics() {
	s.metrics.Reset()
}

// sourceOutcome maps a fetch error onto the bounded Prometheus outcome set
func sourceOutcome(err error) string {
	var dsErr datasource.DataSourceError
	if errors.As(err, &dsErr) && dsErr.Code == datasource.ErrCodeRateLimitExceeded {
		return "rate_limited"
	}
	return "error"
}

// gamesEqual reports whether a stored game already carries the same data as
// a freshly normalized one, ignoring the record ID.
func gamesEqual(a, b *models.GameRecord) bool {
	if a.Season != b.Season || a.GameType != b.GameType ||
		a.Winner != b.Winner || a.Loser != b.Loser ||
		a.DefensiveTD != b.DefensiveTD {
		return false
	}
	if !maps.Equal(a.WinnerScores, b.WinnerScores) || !maps.Equal(a.LoserScores, b.LoserScores) {
		return false
	}
	if (a.OverUnderLine == nil) != (b.OverUnderLine == nil) {
		return false
	}
	return a.OverUnderLine == nil || *a.OverUnderLine == *b.OverUnderLine
}

func firstSeason(playerLog *models.PlayerGameLog) int {
	if len(playerLog.Entries) == 0 {
		return 0
	}
	return playerLog.Entries[0].Season
}
