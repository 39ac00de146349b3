package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// StatsFeedClient implements DataSource for the hosted stats feed API
type StatsFeedClient struct {
	httpClient *RateLimitedHTTPClient
	baseURL    string
	apiKey     string
	enabled    bool
	logger     *logrus.Logger
}

// statsFeedGame is a game payload in the feed's wire format. Scorelines are
// cumulative scores in stage order: q1, q2, q3, q4, final.
type statsFeedGame struct {
	ID              string  `json:"id"`
	Season          int     `json:"season"`
	Round           string  `json:"round"`
	Winner          string  `json:"winner"`
	Loser           string  `json:"loser"`
	WinnerScoreline []int   `json:"winnerScoreline"`
	LoserScoreline  []int   `json:"loserScoreline"`
	OverUnder       *string `json:"overUnder"`
	DefensiveTD     *bool   `json:"defensiveTouchdown"`
}

// statsFeedGameLog is a player game log entry in the feed's wire format
type statsFeedGameLog struct {
	ID       string             `json:"id"`
	Player   string             `json:"playerName"`
	Position string             `json:"position"`
	Season   int                `json:"season"`
	Week     int                `json:"week"`
	Round    string             `json:"round"`
	Stats    map[string]float64 `json:"stats"`
}

// scorelineStages maps scoreline array positions onto stage labels.
var scorelineStages = []string{"q1", "q2", "q3", "q4", "final"}

// NewStatsFeedClient creates a new stats feed API client
func NewStatsFeedClient(httpClient *RateLimitedHTTPClient, baseURL, apiKey string, enabled bool, logger *logrus.Logger) *StatsFeedClient {
	if logger == nil {
		logger = logrus.New()
	}
	return &StatsFeedClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		enabled:    enabled,
		logger:     logger,
	}
}

// FetchGames retrieves historical games for the given season range
func (c *StatsFeedClient) FetchGames(ctx context.Context, fromSeason, toSeason int) ([]GameData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("stats_feed", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/games?from=%d&to=%d", c.baseURL, fromSeason, toSeason)

	body, err := c.getJSON(ctx, url, "failed to fetch games")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var feedGames []statsFeedGame
	if err := json.NewDecoder(body).Decode(&feedGames); err != nil {
		return nil, NewDataSourceError("stats_feed", ErrCodeInvalidData, "failed to parse games response", err)
	}

	games := make([]GameData, 0, len(feedGames))
	for i := range feedGames {
		game, err := c.convertGame(&feedGames[i])
		if err != nil {
			c.logger.Warnf("Failed to convert game %s: %v", feedGames[i].ID, err)
			continue
		}
		games = append(games, *game)
	}

	return games, nil
}

// FetchGameLogs retrieves player game log entries for the given season range
func (c *StatsFeedClient) FetchGameLogs(ctx context.Context, fromSeason, toSeason int) ([]GameLogData, error) {
	if !c.enabled {
		return nil, NewDataSourceError("stats_feed", ErrCodeNetworkError, dataSourceDisabledMsg, nil)
	}

	url := fmt.Sprintf("%s/player-logs?from=%d&to=%d", c.baseURL, fromSeason, toSeason)

	body, err := c.getJSON(ctx, url, "failed to fetch game logs")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var feedLogs []statsFeedGameLog
	if err := json.NewDecoder(body).Decode(&feedLogs); err != nil {
		return nil, NewDataSourceError("stats_feed", ErrCodeInvalidData, "failed to parse game logs response", err)
	}

	logs := make([]GameLogData, 0, len(feedLogs))
	for i := range feedLogs {
		log, err := c.convertGameLog(&feedLogs[i])
		if err != nil {
			c.logger.Warnf("Failed to convert game log %s: %v", feedLogs[i].ID, err)
			continue
		}
		logs = append(logs, *log)
	}

	return logs, nil
}

// Name returns the data source name
func (c *StatsFeedClient) Name() string {
	return "stats_feed"
}

// IsEnabled returns whether this data source is enabled
func (c *StatsFeedClient) IsEnabled() bool {
	return c.enabled
}

// getJSON issues an authenticated GET and maps HTTP failures to source errors
func (c *StatsFeedClient) getJSON(ctx context.Context, url, failureMsg string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, NewDataSourceError("stats_feed", ErrCodeNetworkError, "failed to create request", err)
	}

	// Add authentication header
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, NewDataSourceError("stats_feed", ErrCodeNetworkError, failureMsg, err)
	}

	// Handle authentication errors
	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, NewDataSourceError("stats_feed", ErrCodeAuthenticationFailed, "invalid API key", nil)
	}

	// Handle rate limiting
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		return nil, NewDataSourceError("stats_feed", ErrCodeRateLimitExceeded, "rate limit exceeded", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, NewDataSourceError("stats_feed", ErrCodeServerError,
			fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(body)), nil)
	}

	return resp.Body, nil
}

// convertGame converts the feed's game format to GameData
func (c *StatsFeedClient) convertGame(g *statsFeedGame) (*GameData, error) {
	if g.Winner == "" || g.Loser == "" {
		return nil, fmt.Errorf("game %s is missing team names", g.ID)
	}
	if len(g.WinnerScoreline) == 0 || len(g.LoserScoreline) == 0 {
		return nil, fmt.Errorf("game %s has no scoreline", g.ID)
	}

	return &GameData{
		SourceID:     g.ID,
		Season:       g.Season,
		GameType:     g.Round,
		Winner:       g.Winner,
		Loser:        g.Loser,
		WinnerScores: scorelineToStages(g.WinnerScoreline),
		LoserScores:  scorelineToStages(g.LoserScoreline),
		OverUnder:    g.OverUnder,
		DefensiveTD:  g.DefensiveTD,
		CreatedAt:    time.Now(),
	}, nil
}

// convertGameLog converts the feed's game log format to GameLogData
func (c *StatsFeedClient) convertGameLog(l *statsFeedGameLog) (*GameLogData, error) {
	if l.Player == "" {
		return nil, fmt.Errorf("game log %s is missing a player name", l.ID)
	}
	if len(l.Stats) == 0 {
		return nil, fmt.Errorf("game log %s has no stats", l.ID)
	}

	return &GameLogData{
		SourceID:   l.ID,
		PlayerName: l.Player,
		Position:   l.Position,
		Season:     l.Season,
		Week:       l.Week,
		GameType:   l.Round,
		Stats:      l.Stats,
		CreatedAt:  time.Now(),
	}, nil
}

// scorelineToStages maps a cumulative scoreline onto stage labels. Entries
// past the known stages are ignored.
func scorelineToStages(line []int) map[string]int {
	scores := make(map[string]int, len(line))
	for i, points := range line {
		if i >= len(scorelineStages) {
			break
		}
		scores[scorelineStages[i]] = points
	}
	return scores
}
