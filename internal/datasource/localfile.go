package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Fixture file names expected inside the configured directory.
const (
	gamesFixtureFile    = "games.json"
	gameLogsFixtureFile = "game_logs.json"
)

// LocalFileSource implements DataSource over JSON fixture files on disk. It
// backs offline development and the CLI tools, which read exported feeds
// without a network dependency.
type LocalFileSource struct {
	dir     string
	enabled bool
	logger  *logrus.Logger
}

// NewLocalFileSource creates a data source reading fixtures from dir
func NewLocalFileSource(dir string, enabled bool, logger *logrus.Logger) *LocalFileSource {
	if logger == nil {
		logger = logrus.New()
	}
	return &LocalFileSource{
		dir:     dir,
		enabled: enabled,
		logger:  logger,
	}
}

// FetchGames reads games from the fixture directory for the season range
func (s *LocalFileSource) FetchGames(ctx context.Context, fromSeason, toSeason int) ([]GameData, error) {
	if !s.enabled {
		return nil, NewDataSourceError("local_file", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var games []GameData
	if err := s.readFixture(gamesFixtureFile, &games); err != nil {
		return nil, err
	}

	filtered := make([]GameData, 0, len(games))
	for _, game := range games {
		if game.Season >= fromSeason && game.Season <= toSeason {
			filtered = append(filtered, game)
		}
	}

	s.logger.Debugf("Read %d games (%d in season range) from %s", len(games), len(filtered), s.dir)
	return filtered, nil
}

// FetchGameLogs reads player game log entries from the fixture directory for
// the season range
func (s *LocalFileSource) FetchGameLogs(ctx context.Context, fromSeason, toSeason int) ([]GameLogData, error) {
	if !s.enabled {
		return nil, NewDataSourceError("local_file", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var logs []GameLogData
	if err := s.readFixture(gameLogsFixtureFile, &logs); err != nil {
		return nil, err
	}

	filtered := make([]GameLogData, 0, len(logs))
	for _, log := range logs {
		if log.Season >= fromSeason && log.Season <= toSeason {
			filtered = append(filtered, log)
		}
	}

	s.logger.Debugf("Read %d game log entries (%d in season range) from %s", len(logs), len(filtered), s.dir)
	return filtered, nil
}

// Name returns the data source name
func (s *LocalFileSource) Name() string {
	return "local_file"
}

// IsEnabled returns whether this data source is enabled
func (s *LocalFileSource) IsEnabled() bool {
	return s.enabled
}

// readFixture decodes one fixture file into out
func (s *LocalFileSource) readFixture(name string, out interface{}) error {
	path := filepath.Join(s.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewDataSourceError("local_file", ErrCodeNotFound, fmt.Sprintf("fixture file not found: %s", path), err)
		}
		return NewDataSourceError("local_file", ErrCodeUnknown, fmt.Sprintf("failed to read fixture file: %s", path), err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return NewDataSourceError("local_file", ErrCodeInvalidData, fmt.Sprintf("failed to parse fixture file: %s", path), err)
	}

	return nil
}
