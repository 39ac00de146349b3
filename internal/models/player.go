package models

import (
	"fmt"
	"strings"
)

// Position is a player's role, always supplied by the data provider. The
// engine never infers position from stat shapes.
type Position string

const (
	PositionQB Position = "QB"
	PositionRB Position = "RB"
	PositionWR Position = "WR"
	PositionTE Position = "TE"
	PositionK  Position = "K"
)

// AllPositions returns every supported position.
func AllPositions() []Position {
	return []Position{PositionQB, PositionRB, PositionWR, PositionTE, PositionK}
}

// ParsePosition converts a string to a Position, accepting any casing.
func ParsePosition(s string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllPositions() {
		if pos == known {
			return pos, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPosition, s)
}

// StatCategory names one box-score stat tracked in game logs.
type StatCategory string

const (
	StatPassingYards   StatCategory = "passing_yards"
	StatPassingTDs     StatCategory = "passing_tds"
	StatInterceptions  StatCategory = "interceptions"
	StatRushingYards   StatCategory = "rushing_yards"
	StatRushingTDs     StatCategory = "rushing_tds"
	StatReceptions     StatCategory = "receptions"
	StatReceivingYards StatCategory = "receiving_yards"
	StatReceivingTDs   StatCategory = "receiving_tds"
	StatFieldGoals     StatCategory = "field_goals"
	StatExtraPoints    StatCategory = "extra_points"
)

// GameLogEntry is one game's stat line. A category absent from Stats means
// the stat was not recorded for that game, never an implicit zero.
type GameLogEntry struct {
	Season   int                      `db:"season" json:"season" validate:"required,gte=1960"`
	Week     int                      `db:"week" json:"week" validate:"gte=0"`
	GameType GameType                 `db:"game_type" json:"game_type"`
	Stats    map[StatCategory]float64 `db:"stats" json:"stats"`
}

// Value returns the stat value for a category and whether it is present.
func (e *GameLogEntry) Value(cat StatCategory) (float64, bool) {
	v, ok := e.Stats[cat]
	return v, ok
}

// PlayerGameLog is one player's chronologically ordered game log. Engine
// calls treat it as read-only.
type PlayerGameLog struct {
	PlayerName string         `json:"player_name"`
	Position   Position       `json:"position"`
	Entries    []GameLogEntry `json:"entries"`
}

// Values returns, in log order, every present value of a category.
func (l *PlayerGameLog) Values(cat StatCategory) []float64 {
	values := make([]float64, 0, len(l.Entries))
	for i := range l.Entries {
		if v, ok := l.Entries[i].Value(cat); ok {
			values = append(values, v)
		}
	}
	return values
}

// CategoryStats are descriptive statistics for one category over the games
// where it was present.
type CategoryStats struct {
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Games  int     `json:"games"`
}

// StatSummary maps categories to their descriptive statistics. A category
// with no recorded values is absent from the map; Get makes the no-data
// case explicit.
type StatSummary map[StatCategory]CategoryStats

// Get returns the stats for a category and whether any data existed.
func (s StatSummary) Get(cat StatCategory) (CategoryStats, bool) {
	stats, ok := s[cat]
	return stats, ok
}
