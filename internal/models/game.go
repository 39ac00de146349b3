package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Stage identifies which running score of a game a digit analysis applies
// to: the cumulative score at the end of each quarter, or the final score.
type Stage string

const (
	StageQ1    Stage = "q1"
	StageQ2    Stage = "q2"
	StageQ3    Stage = "q3"
	StageQ4    Stage = "q4"
	StageFinal Stage = "final"
)

// AllStages returns every stage in game order.
func AllStages() []Stage {
	return []Stage{StageQ1, StageQ2, StageQ3, StageQ4, StageFinal}
}

// ParseStage converts a string to a Stage, accepting any casing.
func ParseStage(s string) (Stage, error) {
	stage := Stage(strings.ToLower(strings.TrimSpace(s)))
	switch stage {
	case StageQ1, StageQ2, StageQ3, StageQ4, StageFinal:
		return stage, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStage, s)
}

// GameType classifies a historical game by round.
type GameType string

const (
	GameTypeRegular         GameType = "regular"
	GameTypeWildCard        GameType = "wildcard"
	GameTypeDivisional      GameType = "divisional"
	GameTypeAFCChampionship GameType = "afc_championship"
	GameTypeNFCChampionship GameType = "nfc_championship"
	GameTypeSuperBowl       GameType = "superbowl"
)

// AllGameTypes returns every game type in postseason order.
func AllGameTypes() []GameType {
	return []GameType{
		GameTypeRegular,
		GameTypeWildCard,
		GameTypeDivisional,
		GameTypeAFCChampionship,
		GameTypeNFCChampionship,
		GameTypeSuperBowl,
	}
}

// ParseGameType converts a string to a GameType, accepting any casing.
func ParseGameType(s string) (GameType, error) {
	gt := GameType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AllGameTypes() {
		if gt == known {
			return gt, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownGameType, s)
}

// IsPlayoff reports whether the game type is a postseason round.
func (g GameType) IsPlayoff() bool {
	return g != GameTypeRegular && g != ""
}

// IsChampionship reports whether the game type is a conference championship.
func (g GameType) IsChampionship() bool {
	return g == GameTypeAFCChampionship || g == GameTypeNFCChampionship
}

// GameRecord is one historical game with cumulative scores per stage.
// A stage absent from either score map is unknown for that game and is
// excluded from that stage's computations only; the record itself stays in
// play for every stage it does carry.
type GameRecord struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	Season        int           `db:"season" json:"season" validate:"required,gte=1960"`
	GameType      GameType      `db:"game_type" json:"game_type"`
	Winner        string        `db:"winner" json:"winner"`
	Loser         string        `db:"loser" json:"loser"`
	WinnerScores  map[Stage]int `db:"winner_scores" json:"winner_scores"`
	LoserScores   map[Stage]int `db:"loser_scores" json:"loser_scores"`
	OverUnderLine *float64      `db:"over_under_line" json:"over_under_line,omitempty"`
	DefensiveTD   bool          `db:"defensive_td" json:"defensive_td"`
}

// ScoresAt returns both cumulative scores at a stage. ok is false when
// either side is missing the stage.
func (g *GameRecord) ScoresAt(stage Stage) (winner, loser int, ok bool) {
	w, wok := g.WinnerScores[stage]
	l, lok := g.LoserScores[stage]
	if !wok || !lok {
		return 0, 0, false
	}
	return w, l, true
}

// TotalPoints returns the combined final score. ok is false when either
// final score is missing.
func (g *GameRecord) TotalPoints() (int, bool) {
	w, l, ok := g.ScoresAt(StageFinal)
	if !ok {
		return 0, false
	}
	return w + l, true
}

// Margin returns the winner's margin of victory at the final score. ok is
// false when either final score is missing.
func (g *GameRecord) Margin() (int, bool) {
	w, l, ok := g.ScoresAt(StageFinal)
	if !ok {
		return 0, false
	}
	return w - l, true
}

// WeightedGame pairs a game with its recency weight. The weight is assigned
// once by the recency weighter and never mutated; a weight w contributes w
// unit observations to downstream frequency counts.
type WeightedGame struct {
	Game   GameRecord `json:"game"`
	Weight int        `json:"weight"`
}
