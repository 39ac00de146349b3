package service

import (
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const (
	expectedErrorsMsg = "expected validation errors"
	errorContainsMsg  = "expected error containing %q, got %v"
	testPlayerName    = "Patrick Mahomes"
)

func discardLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestValidator() *DataValidator {
	return NewDataValidator(discardLogger())
}

// validGame returns a fully populated game that passes validation.
func validGame() *models.GameRecord {
	line := 49.5
	return &models.GameRecord{
		ID:       GameID(2022, "Chiefs", "Eagles"),
		Season:   2022,
		GameType: models.GameTypeSuperBowl,
		Winner:   "Chiefs",
		Loser:    "Eagles",
		WinnerScores: map[models.Stage]int{
			models.StageQ1:    7,
			models.StageQ2:    14,
			models.StageQ3:    21,
			models.StageQ4:    38,
			models.StageFinal: 38,
		},
		LoserScores: map[models.Stage]int{
			models.StageQ1:    7,
			models.StageQ2:    24,
			models.StageQ3:    27,
			models.StageQ4:    35,
			models.StageFinal: 35,
		},
		OverUnderLine: &line,
	}
}

// TestGameValidation tests game record validation rules
func TestGameValidation(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name        string
		mutate      func(*models.GameRecord)
		expectValid bool
		shouldHave  string // error message substring to check
	}{
		{
			name:        "Valid game",
			mutate:      func(g *models.GameRecord) {},
			expectValid: true,
		},
		{
			name: "Missing winner",
			mutate: func(g *models.GameRecord) {
				g.Winner = ""
			},
			expectValid: false,
			shouldHave:  "winner is required",
		},
		{
			name: "Missing loser",
			mutate: func(g *models.GameRecord) {
				g.Loser = ""
			},
			expectValid: false,
			shouldHave:  "loser is required",
		},
		{
			name: "Winner and loser identical",
			mutate: func(g *models.GameRecord) {
				g.Loser = g.Winner
			},
			expectValid: false,
			shouldHave:  "same team",
		},
		{
			name: "Season before supported range",
			mutate: func(g *models.GameRecord) {
				g.Season = 1950
			},
			expectValid: false,
			shouldHave:  "season must be 1960 or later",
		},
		{
			name: "Season in the future",
			mutate: func(g *models.GameRecord) {
				g.Season = time.Now().Year() + 5
			},
			expectValid: false,
			shouldHave:  "is in the future",
		},
		{
			name: "Missing game type",
			mutate: func(g *models.GameRecord) {
				g.GameType = ""
			},
			expectValid: false,
			shouldHave:  "game_type is required",
		},
		{
			name: "Unknown game type",
			mutate: func(g *models.GameRecord) {
				g.GameType = models.GameType("exhibition")
			},
			expectValid: false,
			shouldHave:  "unknown game_type",
		},
		{
			name: "Negative score",
			mutate: func(g *models.GameRecord) {
				g.LoserScores[models.StageQ1] = -3
			},
			expectValid: false,
			shouldHave:  "is negative",
		},
		{
			name: "Cumulative score decreases",
			mutate: func(g *models.GameRecord) {
				g.WinnerScores[models.StageQ3] = 10
			},
			expectValid: false,
			shouldHave:  "score decreases",
		},
		{
			name: "Winner below loser at final",
			mutate: func(g *models.GameRecord) {
				g.WinnerScores[models.StageQ4] = 31
				g.WinnerScores[models.StageFinal] = 31
			},
			expectValid: false,
			shouldHave:  "below loser final score",
		},
		{
			name: "Unknown stage key",
			mutate: func(g *models.GameRecord) {
				g.WinnerScores[models.Stage("q7")] = 3
			},
			expectValid: false,
			shouldHave:  "unknown stage",
		},
		{
			name: "Non-positive closing line",
			mutate: func(g *models.GameRecord) {
				g.OverUnderLine = ptr(-4.5)
			},
			expectValid: false,
			shouldHave:  "must be positive",
		},
		{
			name: "Missing closing line is fine",
			mutate: func(g *models.GameRecord) {
				g.OverUnderLine = nil
			},
			expectValid: true,
		},
		{
			name: "Sparse stages are fine",
			mutate: func(g *models.GameRecord) {
				g.WinnerScores = map[models.Stage]int{models.StageFinal: 38}
				g.LoserScores = map[models.Stage]int{models.StageFinal: 35}
			},
			expectValid: true,
		},
		{
			name: "Skipped stage still checked for monotonicity",
			mutate: func(g *models.GameRecord) {
				delete(g.WinnerScores, models.StageQ2)
				g.WinnerScores[models.StageQ3] = 3 // below the 7 at q1
			},
			expectValid: false,
			shouldHave:  "score decreases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			game := validGame()
			tt.mutate(game)
			errors := validator.ValidateGame(game)
			assertValidationErrors(t, errors, tt.expectValid, tt.shouldHave)
		})
	}
}

// validGameLog returns a three-game quarterback log that passes validation.
func validGameLog() *models.PlayerGameLog {
	return &models.PlayerGameLog{
		PlayerName: testPlayerName,
		Position:   models.PositionQB,
		Entries: []models.GameLogEntry{
			{
				Season:   2023,
				Week:     1,
				GameType: models.GameTypeRegular,
				Stats:    map[models.StatCategory]float64{models.StatPassingYards: 226, models.StatPassingTDs: 2},
			},
			{
				Season:   2023,
				Week:     2,
				GameType: models.GameTypeRegular,
				Stats:    map[models.StatCategory]float64{models.StatPassingYards: 305, models.StatPassingTDs: 2},
			},
			{
				Season:   2023,
				Week:     3,
				GameType: models.GameTypeRegular,
				Stats:    map[models.StatCategory]float64{models.StatPassingYards: 272, models.StatInterceptions: 1},
			},
		},
	}
}

// TestGameLogValidation tests player game log validation rules
func TestGameLogValidation(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name        string
		mutate      func(*models.PlayerGameLog)
		expectValid bool
		shouldHave  string
	}{
		{
			name:        "Valid game log",
			mutate:      func(l *models.PlayerGameLog) {},
			expectValid: true,
		},
		{
			name: "Missing player name",
			mutate: func(l *models.PlayerGameLog) {
				l.PlayerName = ""
			},
			expectValid: false,
			shouldHave:  "player name is required",
		},
		{
			name: "Unknown position",
			mutate: func(l *models.PlayerGameLog) {
				l.Position = models.Position("LB")
			},
			expectValid: false,
			shouldHave:  "unknown position",
		},
		{
			name: "No entries",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries = nil
			},
			expectValid: false,
			shouldHave:  "no entries",
		},
		{
			name: "Week out of range",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[1].Week = 30
			},
			expectValid: false,
			shouldHave:  "week out of range",
		},
		{
			name: "Entry season too early",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[0].Season = 1900
			},
			expectValid: false,
			shouldHave:  "season must be 1960 or later",
		},
		{
			name: "Unknown entry game type",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[2].GameType = models.GameType("preseason")
			},
			expectValid: false,
			shouldHave:  "unknown game_type",
		},
		{
			name: "Entry without stats",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[1].Stats = nil
			},
			expectValid: false,
			shouldHave:  "no stats recorded",
		},
		{
			name: "Negative stat value is fine",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[0].Stats[models.StatRushingYards] = -4
			},
			expectValid: true,
		},
		{
			name: "NaN stat value",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[0].Stats[models.StatPassingYards] = math.NaN()
			},
			expectValid: false,
			shouldHave:  "not finite",
		},
		{
			name: "Infinite stat value",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[0].Stats[models.StatPassingYards] = math.Inf(1)
			},
			expectValid: false,
			shouldHave:  "not finite",
		},
		{
			name: "Entries out of chronological order",
			mutate: func(l *models.PlayerGameLog) {
				l.Entries[0], l.Entries[2] = l.Entries[2], l.Entries[0]
			},
			expectValid: false,
			shouldHave:  "chronological order",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := validGameLog()
			tt.mutate(log)
			errors := validator.ValidateGameLog(log)
			assertValidationErrors(t, errors, tt.expectValid, tt.shouldHave)
		})
	}
}

// TestTeamNameValidation tests team name validation
func TestTeamNameValidation(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		team    string
		isValid bool
	}{
		{"Valid team", "Chiefs", true},
		{"Valid team", "49ers", true},
		{"Empty team", "", false},
		{"Very long team name", string(make([]byte, 80)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := validator.IsValidTeamName(tt.team)
			assert.Equal(t, tt.isValid, valid)
		})
	}
}

// TestSeasonValidation tests season range validation
func TestSeasonValidation(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		season  int
		isValid bool
	}{
		{"Modern era season", 1967, true},
		{"Current season", time.Now().Year(), true},
		{"Pre-merger era", 1940, false},
		{"Far future season", time.Now().Year() + 10, false},
		{"Zero season", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := validator.IsValidSeason(tt.season)
			assert.Equal(t, tt.isValid, valid)
		})
	}
}

// TestWeekValidation tests week number validation
func TestWeekValidation(t *testing.T) {
	validator := newTestValidator()

	tests := []struct {
		name    string
		week    int
		isValid bool
	}{
		{"Opening week", 1, true},
		{"Week zero", 0, true},
		{"Postseason week", 22, true},
		{"Negative week", -1, false},
		{"Implausible week", 40, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid := validator.IsValidWeek(tt.week)
			assert.Equal(t, tt.isValid, valid)
		})
	}
}

// Helper functions
func ptr[T any](v T) *T {
	return &v
}

func assertValidationErrors(t *testing.T, errors []string, expectValid bool, shouldHave string) {
	t.Helper()

	if expectValid {
		require.Empty(t, errors, "expected no validation errors for valid input")
		return
	}

	require.NotEmpty(t, errors, expectedErrorsMsg)
	if shouldHave == "" {
		return
	}

	found := false
	for _, err := range errors {
		if strings.Contains(err, shouldHave) {
			found = true
			break
		}
	}
	require.True(t, found, errorContainsMsg, shouldHave, errors)
}
