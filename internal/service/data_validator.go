package service

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const (
	// minSeason is the earliest season the engine accepts. Score records
	// before the merger era are too sparse to weight meaningfully.
	minSeason = 1960

	// maxWeek leaves headroom past the longest postseason week numbering.
	maxWeek = 25
)

// DataValidator validates normalized games and player game logs
type DataValidator struct {
	logger *logrus.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *logrus.Logger) *DataValidator {
	if logger == nil {
		logger = logrus.New()
	}
	return &DataValidator{logger: logger}
}

// ValidateGame validates a game record for required fields and score
// consistency. An empty result means the game is ingestible. A stage missing
// from the score maps is sparse data, not an error.
func (v *DataValidator) ValidateGame(game *models.GameRecord) []string {
	var errors []string

	if game.Winner == "" {
		errors = append(errors, "winner is required")
	}
	if game.Loser == "" {
		errors = append(errors, "loser is required")
	}
	if game.Winner != "" && game.Winner == game.Loser {
		errors = append(errors, fmt.Sprintf("winner and loser are the same team: %s", game.Winner))
	}

	if game.Season < minSeason {
		errors = append(errors, fmt.Sprintf("season must be %d or later, got %d", minSeason, game.Season))
	}
	if game.Season > time.Now().Year()+1 {
		errors = append(errors, fmt.Sprintf("season %d is in the future", game.Season))
	}

	if game.GameType == "" {
		errors = append(errors, "game_type is required")
	} else if _, err := models.ParseGameType(string(game.GameType)); err != nil {
		errors = append(errors, fmt.Sprintf("unknown game_type %q", game.GameType))
	}

	errors = append(errors, validateStageScores("winner", game.WinnerScores)...)
	errors = append(errors, validateStageScores("loser", game.LoserScores)...)

	if w, l, ok := game.ScoresAt(models.StageFinal); ok && w < l {
		errors = append(errors, fmt.Sprintf("winner final score %d is below loser final score %d", w, l))
	}

	if game.OverUnderLine != nil && *game.OverUnderLine <= 0 {
		errors = append(errors, fmt.Sprintf("over/under line must be positive, got %g", *game.OverUnderLine))
	}

	return errors
}

// validateStageScores checks one side's cumulative scores: known stages,
// non-negative points, totals that never decrease across recorded stages.
func validateStageScores(side string, scores map[models.Stage]int) []string {
	var errors []string

	for stage, points := range scores {
		if _, err := models.ParseStage(string(stage)); err != nil {
			errors = append(errors, fmt.Sprintf("%s scores carry unknown stage %q", side, stage))
		}
		if points < 0 {
			errors = append(errors, fmt.Sprintf("%s score at %s is negative: %d", side, stage, points))
		}
	}

	// Cumulative totals may skip stages; whenever two recorded stages both
	// exist the later one must not be smaller.
	previous := -1
	previousStage := models.Stage("")
	for _, stage := range models.AllStages() {
		points, ok := scores[stage]
		if !ok {
			continue
		}
		if previous >= 0 && points < previous {
			errors = append(errors, fmt.Sprintf("%s score decreases from %d at %s to %d at %s",
				side, previous, previousStage, points, stage))
		}
		previous = points
		previousStage = stage
	}

	return errors
}

// ValidateGameLog validates a player game log and all of its entries
func (v *DataValidator) ValidateGameLog(log *models.PlayerGameLog) []string {
	var errors []string

	if log.PlayerName == "" {
		errors = append(errors, "player name is required")
	}

	if _, err := models.ParsePosition(string(log.Position)); err != nil {
		errors = append(errors, fmt.Sprintf("unknown position %q", log.Position))
	}

	if len(log.Entries) == 0 {
		errors = append(errors, "game log has no entries")
	}

	for i := range log.Entries {
		errors = append(errors, validateLogEntry(i, &log.Entries[i])...)
	}

	for i := 1; i < len(log.Entries); i++ {
		prev, cur := log.Entries[i-1], log.Entries[i]
		if cur.Season < prev.Season || (cur.Season == prev.Season && cur.Week < prev.Week) {
			errors = append(errors, fmt.Sprintf("entries out of chronological order at index %d", i))
		}
	}

	return errors
}

// validateLogEntry checks a single game's stat line
func validateLogEntry(index int, entry *models.GameLogEntry) []string {
	var errors []string

	if entry.Season < minSeason {
		errors = append(errors, fmt.Sprintf("entry %d: season must be %d or later, got %d", index, minSeason, entry.Season))
	}

	if entry.Week < 0 || entry.Week > maxWeek {
		errors = append(errors, fmt.Sprintf("entry %d: week out of range (0-%d), got %d", index, maxWeek, entry.Week))
	}

	if entry.GameType != "" {
		if _, err := models.ParseGameType(string(entry.GameType)); err != nil {
			errors = append(errors, fmt.Sprintf("entry %d: unknown game_type %q", index, entry.GameType))
		}
	}

	if len(entry.Stats) == 0 {
		errors = append(errors, fmt.Sprintf("entry %d: no stats recorded", index))
	}

	// Negative stat values are legitimate (negative rushing yards), but a
	// non-finite value would poison every average downstream.
	for cat, value := range entry.Stats {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			errors = append(errors, fmt.Sprintf("entry %d: stat %s is not finite", index, cat))
		}
	}

	return errors
}

// IsValidTeamName checks if a team name is in expected format
func (v *DataValidator) IsValidTeamName(team string) bool {
	return len(team) > 0 && len(team) < 50
}

// IsValidSeason checks if a season falls inside the supported range
func (v *DataValidator) IsValidSeason(season int) bool {
	return season >= minSeason && season <= time.Now().Year()+1
}

// IsValidWeek checks if a week number is plausible for one season
func (v *DataValidator) IsValidWeek(week int) bool {
	return week >= 0 && week <= maxWeek
}
