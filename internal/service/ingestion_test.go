package service

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/datasource"
	"github.com/yourusername/gridiron-edge/internal/logger"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// fakeSource serves canned rows so the ingestion workflow can run without a
// network or a database.
type fakeSource struct {
	name     string
	enabled  bool
	games    []datasource.GameData
	gameLogs []datasource.GameLogData
	gamesErr error
	logsErr  error
}

func (f *fakeSource) FetchGames(ctx context.Context, fromSeason, toSeason int) ([]datasource.GameData, error) {
	if f.gamesErr != nil {
		return nil, f.gamesErr
	}
	return f.games, nil
}

func (f *fakeSource) FetchGameLogs(ctx context.Context, fromSeason, toSeason int) ([]datasource.GameLogData, error) {
	if f.logsErr != nil {
		return nil, f.logsErr
	}
	return f.gameLogs, nil
}

func (f *fakeSource) Name() string    { return f.name }
func (f *fakeSource) IsEnabled() bool { return f.enabled }

func gameKey(season int, winner, loser string) string {
	return fmt.Sprintf("%d|%s|%s", season, winner, loser)
}

// fakeGameRepo is an in-memory GameRepository keyed by natural key.
type fakeGameRepo struct {
	games        map[string]*models.GameRecord
	batchInserts int
	updates      int
}

func newFakeGameRepo() *fakeGameRepo {
	return &fakeGameRepo{games: make(map[string]*models.GameRecord)}
}

func (r *fakeGameRepo) Create(ctx context.Context, game *models.GameRecord) error {
	r.games[gameKey(game.Season, game.Winner, game.Loser)] = game
	return nil
}

func (r *fakeGameRepo) CreateBatch(ctx context.Context, games []*models.GameRecord) error {
	r.batchInserts++
	for _, game := range games {
		r.games[gameKey(game.Season, game.Winner, game.Loser)] = game
	}
	return nil
}

func (r *fakeGameRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error) {
	for _, game := range r.games {
		if game.ID == id {
			return game, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeGameRepo) GetAll(ctx context.Context) ([]*models.GameRecord, error) {
	all := make([]*models.GameRecord, 0, len(r.games))
	for _, game := range r.games {
		all = append(all, game)
	}
	return all, nil
}

func (r *fakeGameRepo) GetBySeasonRange(ctx context.Context, fromSeason, toSeason int) ([]*models.GameRecord, error) {
	var matched []*models.GameRecord
	for _, game := range r.games {
		if game.Season >= fromSeason && game.Season <= toSeason {
			matched = append(matched, game)
		}
	}
	return matched, nil
}

func (r *fakeGameRepo) GetByGameType(ctx context.Context, gameType models.GameType) ([]*models.GameRecord, error) {
	var matched []*models.GameRecord
	for _, game := range r.games {
		if game.GameType == gameType {
			matched = append(matched, game)
		}
	}
	return matched, nil
}

func (r *fakeGameRepo) GetBySeasonAndTeams(ctx context.Context, season int, winner, loser string) (*models.GameRecord, error) {
	game, ok := r.games[gameKey(season, winner, loser)]
	if !ok {
		return nil, models.ErrNotFound
	}
	return game, nil
}

func (r *fakeGameRepo) Update(ctx context.Context, game *models.GameRecord) error {
	for key, existing := range r.games {
		if existing.ID == game.ID {
			r.games[key] = game
			r.updates++
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeGameRepo) Delete(ctx context.Context, id uuid.UUID) error {
	for key, existing := range r.games {
		if existing.ID == id {
			delete(r.games, key)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *fakeGameRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.games)), nil
}

// fakeLogRepo is an in-memory PlayerGameLogRepository keyed by player name.
type fakeLogRepo struct {
	logs     map[string]*models.PlayerGameLog
	replaces int
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{logs: make(map[string]*models.PlayerGameLog)}
}

func (r *fakeLogRepo) InsertBatch(ctx context.Context, logs []*models.PlayerGameLog) error {
	for _, playerLog := range logs {
		r.logs[playerLog.PlayerName] = playerLog
	}
	return nil
}

func (r *fakeLogRepo) ReplaceLog(ctx context.Context, playerLog *models.PlayerGameLog) error {
	r.replaces++
	if len(playerLog.Entries) == 0 {
		delete(r.logs, playerLog.PlayerName)
		return nil
	}
	r.logs[playerLog.PlayerName] = playerLog
	return nil
}

func (r *fakeLogRepo) GetByPlayer(ctx context.Context, playerName string) (*models.PlayerGameLog, error) {
	playerLog, ok := r.logs[playerName]
	if !ok {
		return nil, models.ErrNotFound
	}
	return playerLog, nil
}

func (r *fakeLogRepo) GetByPosition(ctx context.Context, position models.Position, fromSeason, toSeason int) ([]*models.PlayerGameLog, error) {
	var matched []*models.PlayerGameLog
	for _, playerLog := range r.logs {
		if playerLog.Position == position {
			matched = append(matched, playerLog)
		}
	}
	return matched, nil
}

func (r *fakeLogRepo) GetPlayerNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(r.logs))
	for name := range r.logs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *fakeLogRepo) DeleteByPlayer(ctx context.Context, playerName string) error {
	if _, ok := r.logs[playerName]; !ok {
		return models.ErrNotFound
	}
	delete(r.logs, playerName)
	return nil
}

func (r *fakeLogRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	for _, playerLog := range r.logs {
		total += int64(len(playerLog.Entries))
	}
	return total, nil
}

func newTestIngestion(sources ...datasource.DataSource) (*IngestionService, *fakeGameRepo, *fakeLogRepo) {
	gameRepo := newFakeGameRepo()
	logRepo := newFakeLogRepo()
	log := discardLogger()

	svc := NewIngestionService(
		sources,
		gameRepo,
		logRepo,
		NewDataValidator(log),
		NewDataNormalizer(log),
		logger.NewIngestionLogger(log),
		2, // small batches so one sync spans several
	)
	return svc, gameRepo, logRepo
}

func testSource() *fakeSource {
	return &fakeSource{
		name:    "stats_feed",
		enabled: true,
		games: []datasource.GameData{
			{
				SourceID: "g1", Season: 2020, GameType: "regular",
				Winner: "Chiefs", Loser: "Texans",
				WinnerScores: map[string]int{"final": 34},
				LoserScores:  map[string]int{"final": 20},
			},
			{
				SourceID: "g2", Season: 2021, GameType: "superbowl",
				Winner: "Rams", Loser: "Bengals",
				WinnerScores: map[string]int{"final": 23},
				LoserScores:  map[string]int{"final": 20},
				OverUnder:    ptr("48 1/2"),
			},
			{
				SourceID: "g3", Season: 2022, GameType: "SB",
				Winner: "Kansas City Chiefs", Loser: "Philadelphia Eagles",
				WinnerScores: map[string]int{"q1": 7, "q2": 14, "q3": 21, "q4": 38, "final": 38},
				LoserScores:  map[string]int{"q1": 7, "q2": 24, "q3": 27, "q4": 35, "final": 35},
			},
			{
				// negative final score, rejected by validation
				SourceID: "g4", Season: 2022, GameType: "regular",
				Winner: "Bills", Loser: "Jets",
				WinnerScores: map[string]int{"final": -1},
				LoserScores:  map[string]int{"final": 0},
			},
		},
		gameLogs: []datasource.GameLogData{
			// weeks arrive out of order to exercise the chronological sort
			{SourceID: "l1", PlayerName: "Patrick Mahomes", Position: "QB", Season: 2023, Week: 3,
				GameType: "regular", Stats: map[string]float64{"passing_yards": 272}},
			{SourceID: "l2", PlayerName: "Patrick Mahomes", Position: "QB", Season: 2023, Week: 1,
				GameType: "regular", Stats: map[string]float64{"passing_yards": 226}},
			{SourceID: "l3", PlayerName: "Travis Kelce", Position: "TE", Season: 2023, Week: 1,
				GameType: "regular", Stats: map[string]float64{"receptions": 7}},
			{
				// linebacker logs are outside the supported positions
				SourceID: "l4", PlayerName: "Fred Warner", Position: "LB", Season: 2023, Week: 1,
				GameType: "regular", Stats: map[string]float64{"tackles": 10},
			},
		},
	}
}

// TestIngestHistoricalData tests the full sync workflow against fakes
func TestIngestHistoricalData(t *testing.T) {
	source := testSource()
	svc, gameRepo, logRepo := newTestIngestion(source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.NoError(t, err)

	assert.Equal(t, 4, metrics.FetchedGames)
	assert.Equal(t, 3, metrics.StoredGames)
	assert.Equal(t, 4, metrics.FetchedLogRows)
	assert.Equal(t, 3, metrics.StoredLogEntries)
	assert.Equal(t, 2, metrics.ValidationErrors) // one game, one log row
	assert.Equal(t, 0, metrics.Errors)
	assert.Equal(t, 0, metrics.Duplicates)

	count, err := gameRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	// team names were canonicalized before the natural key was built
	stored, err := gameRepo.GetBySeasonAndTeams(context.Background(), 2022, "Chiefs", "Eagles")
	require.NoError(t, err)
	assert.Equal(t, models.GameTypeSuperBowl, stored.GameType)
	assert.Equal(t, GameID(2022, "Chiefs", "Eagles"), stored.ID)

	require.Len(t, logRepo.logs, 2)
	mahomes, err := logRepo.GetByPlayer(context.Background(), "Patrick Mahomes")
	require.NoError(t, err)
	require.Len(t, mahomes.Entries, 2)
	assert.Equal(t, 1, mahomes.Entries[0].Week)
	assert.Equal(t, 3, mahomes.Entries[1].Week)

	// four raw games at batch size two means two batch inserts
	assert.Equal(t, 2, gameRepo.batchInserts)
	assert.Equal(t, 0, gameRepo.updates)
}

// TestIngestHistoricalDataDeduplicates tests that a rerun stores nothing new
func TestIngestHistoricalDataDeduplicates(t *testing.T) {
	source := testSource()
	svc, gameRepo, logRepo := newTestIngestion(source)

	_, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.NoError(t, err)
	firstInserts := gameRepo.batchInserts

	metrics, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.NoError(t, err)

	assert.Equal(t, 3, metrics.Duplicates)
	assert.Equal(t, 0, metrics.StoredGames)
	assert.Equal(t, firstInserts, gameRepo.batchInserts)
	assert.Equal(t, 0, gameRepo.updates)

	// log replacement is idempotent and runs every sync
	assert.Equal(t, 3, metrics.StoredLogEntries)
	assert.Equal(t, 4, logRepo.replaces)

	count, err := gameRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

// TestIngestHistoricalDataUpdatesChangedGame tests in-place update when a
// stored game's data changed at the source
func TestIngestHistoricalDataUpdatesChangedGame(t *testing.T) {
	source := testSource()
	svc, gameRepo, _ := newTestIngestion(source)

	_, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.NoError(t, err)

	original, err := gameRepo.GetBySeasonAndTeams(context.Background(), 2021, "Rams", "Bengals")
	require.NoError(t, err)
	originalID := original.ID

	// provider revised the closing line
	source.games[1].OverUnder = ptr("50")

	metrics, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.StoredGames)
	assert.Equal(t, 2, metrics.Duplicates)
	assert.Equal(t, 1, gameRepo.updates)

	updated, err := gameRepo.GetBySeasonAndTeams(context.Background(), 2021, "Rams", "Bengals")
	require.NoError(t, err)
	assert.Equal(t, originalID, updated.ID)
	require.NotNil(t, updated.OverUnderLine)
	assert.InDelta(t, 50.0, *updated.OverUnderLine, 1e-9)
}

// TestIngestHistoricalDataSourceNotFound tests the unknown source error
func TestIngestHistoricalDataSourceNotFound(t *testing.T) {
	svc, _, _ := newTestIngestion(testSource())

	_, err := svc.IngestHistoricalData(context.Background(), "nonexistent", 2020, 2023)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data source not found")
}

// TestIngestHistoricalDataFetchFailure tests that a failed fetch aborts the
// sync and is counted
func TestIngestHistoricalDataFetchFailure(t *testing.T) {
	source := testSource()
	source.gamesErr = datasource.NewDataSourceError("stats_feed", datasource.ErrCodeRateLimitExceeded, "throttled", nil)
	svc, gameRepo, _ := newTestIngestion(source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.Error(t, err)
	assert.Equal(t, 1, metrics.Errors)
	assert.Equal(t, 0, metrics.StoredGames)

	count, err := gameRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

// TestIngestHistoricalDataLogFetchFailure tests the partial sync path where
// games land but the log fetch fails
func TestIngestHistoricalDataLogFetchFailure(t *testing.T) {
	source := testSource()
	source.logsErr = datasource.NewDataSourceError("stats_feed", datasource.ErrCodeServerError, "boom", nil)
	svc, gameRepo, logRepo := newTestIngestion(source)

	metrics, err := svc.IngestHistoricalData(context.Background(), "stats_feed", 2020, 2023)
	require.Error(t, err)
	assert.Equal(t, 3, metrics.StoredGames)
	assert.Equal(t, 1, metrics.Errors)

	count, err := gameRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.Empty(t, logRepo.logs)
}

// TestIngestAllSources tests that disabled sources are skipped and failures
// from one source do not hide another's
func TestIngestAllSources(t *testing.T) {
	enabled := testSource()
	disabled := &fakeSource{
		name:    "local_file",
		enabled: false,
		games: []datasource.GameData{{
			SourceID: "d1", Season: 2019, GameType: "regular",
			Winner: "Patriots", Loser: "Dolphins",
			WinnerScores: map[string]int{"final": 43},
			LoserScores:  map[string]int{"final": 0},
		}},
	}

	svc, gameRepo, _ := newTestIngestion(enabled, disabled)

	err := svc.IngestAllSources(context.Background(), 2019, 2023)
	require.NoError(t, err)

	_, err = gameRepo.GetBySeasonAndTeams(context.Background(), 2019, "Patriots", "Dolphins")
	assert.ErrorIs(t, err, models.ErrNotFound)

	count, err := gameRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	enabled.gamesErr = datasource.NewDataSourceError("stats_feed", datasource.ErrCodeServerError, "boom", nil)
	err = svc.IngestAllSources(context.Background(), 2019, 2023)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stats_feed")
}
