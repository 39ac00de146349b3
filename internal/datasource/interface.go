package datasource

import (
	"context"
	"errors"
	"time"
)

const dataSourceDisabledMsg = "data source disabled"

// DataSource defines the interface for fetching historical stats from external providers
type DataSource interface {
	// FetchGames retrieves historical games for seasons in the inclusive range
	FetchGames(ctx context.Context, fromSeason, toSeason int) ([]GameData, error)

	// FetchGameLogs retrieves player game logs for seasons in the inclusive range
	FetchGameLogs(ctx context.Context, fromSeason, toSeason int) ([]GameLogData, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// GameData represents a raw historical game from any data source. Fields keep
// the provider's spelling; the normalizer maps them onto model types.
type GameData struct {
	SourceID     string         `json:"source_id"`      // Provider's unique game ID
	Season       int            `json:"season"`         // Season year
	GameType     string         `json:"game_type"`      // Round label (e.g. "superbowl", "SB")
	Winner       string         `json:"winner"`         // Winning team name
	Loser        string         `json:"loser"`          // Losing team name
	WinnerScores map[string]int `json:"winner_scores"`  // Cumulative winner score per stage label
	LoserScores  map[string]int `json:"loser_scores"`   // Cumulative loser score per stage label
	OverUnder    *string        `json:"over_under"`     // Closing total as text (e.g. "45 1/2")
	DefensiveTD  *bool          `json:"defensive_td"`   // Whether a defensive TD was scored
	CreatedAt    time.Time      `json:"created_at"`     // When data was fetched
}

// GameLogData represents one raw player game log entry from any data source
type GameLogData struct {
	SourceID   string             `json:"source_id"`   // Provider's unique entry ID
	PlayerName string             `json:"player_name"` // Player's display name
	Position   string             `json:"position"`    // Position label (e.g. "QB")
	Season     int                `json:"season"`      // Season year
	Week       int                `json:"week"`        // Week number within the season
	GameType   string             `json:"game_type"`   // Round label
	Stats      map[string]float64 `json:"stats"`       // Stat label to value
	CreatedAt  time.Time          `json:"created_at"`  // When data was fetched
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrCodeAuthenticationFailed = "authentication_failed"
	ErrCodeNotFound             = "not_found"
	ErrCodeInvalidData          = "invalid_data"
	ErrCodeNetworkError         = "network_error"
	ErrCodeServerError          = "server_error"
	ErrCodeUnknown              = "unknown"
)

// Error constructors
var (
	ErrRateLimitExceeded    = errors.New("rate limit exceeded")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrNotFound             = errors.New("data not found")
	ErrInvalidData          = errors.New("invalid data format")
	ErrNetworkError         = errors.New("network error")
	ErrServerError          = errors.New("server error")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
