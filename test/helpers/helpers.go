// Package helpers provides shared fixtures and utilities for the
// integration and end-to-end test suites.
package helpers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/datasource"
)

// ptr returns a pointer to v for optional fixture fields.
func ptr[T any](v T) *T {
	return &v
}

// SampleGames returns raw feed rows covering several seasons and game types,
// shaped the way the stats feed and fixture files deliver them. The rows are
// valid except where a test mutates them.
func SampleGames() []datasource.GameData {
	return []datasource.GameData{
		{
			SourceID: "sb-49",
			Season:   2014,
			GameType: "superbowl",
			Winner:   "Patriots",
			Loser:    "Seahawks",
			WinnerScores: map[string]int{
				"q1": 0, "q2": 14, "q3": 14, "q4": 28, "final": 28,
			},
			LoserScores: map[string]int{
				"q1": 0, "q2": 14, "q3": 24, "q4": 24, "final": 24,
			},
			OverUnder: ptr("47 1/2"),
		},
		{
			SourceID: "sb-50",
			Season:   2015,
			GameType: "superbowl",
			Winner:   "Broncos",
			Loser:    "Panthers",
			WinnerScores: map[string]int{
				"q1": 10, "q2": 13, "q3": 16, "q4": 24, "final": 24,
			},
			LoserScores: map[string]int{
				"q1": 0, "q2": 7, "q3": 10, "q4": 10, "final": 10,
			},
			OverUnder:   ptr("44"),
			DefensiveTD: ptr(true),
		},
		{
			SourceID: "sb-51",
			Season:   2016,
			GameType: "superbowl",
			Winner:   "Patriots",
			Loser:    "Falcons",
			WinnerScores: map[string]int{
				"q1": 0, "q2": 3, "q3": 9, "q4": 28, "final": 34,
			},
			LoserScores: map[string]int{
				"q1": 0, "q2": 21, "q3": 28, "q4": 28, "final": 28,
			},
			OverUnder: ptr("57"),
		},
		{
			SourceID: "sb-52",
			Season:   2017,
			GameType: "superbowl",
			Winner:   "Eagles",
			Loser:    "Patriots",
			WinnerScores: map[string]int{
				"q1": 9, "q2": 22, "q3": 29, "q4": 41, "final": 41,
			},
			LoserScores: map[string]int{
				"q1": 3, "q2": 12, "q3": 26, "q4": 33, "final": 33,
			},
			OverUnder: ptr("48 1/2"),
		},
		{
			SourceID: "sb-53",
			Season:   2018,
			GameType: "superbowl",
			Winner:   "Patriots",
			Loser:    "Rams",
			WinnerScores: map[string]int{
				"q1": 0, "q2": 3, "q3": 3, "q4": 13, "final": 13,
			},
			LoserScores: map[string]int{
				"q1": 0, "q2": 0, "q3": 3, "q4": 3, "final": 3,
			},
			OverUnder: ptr("55 1/2"),
		},
		{
			SourceID: "sb-54",
			Season:   2019,
			GameType: "superbowl",
			Winner:   "Chiefs",
			Loser:    "49ers",
			WinnerScores: map[string]int{
				"q1": 7, "q2": 10, "q3": 10, "q4": 31, "final": 31,
			},
			LoserScores: map[string]int{
				"q1": 3, "q2": 10, "q3": 20, "q4": 20, "final": 20,
			},
			OverUnder: ptr("53"),
		},
		{
			SourceID: "sb-55",
			Season:   2020,
			GameType: "superbowl",
			Winner:   "Buccaneers",
			Loser:    "Chiefs",
			WinnerScores: map[string]int{
				"q1": 7, "q2": 21, "q3": 31, "q4": 31, "final": 31,
			},
			LoserScores: map[string]int{
				"q1": 3, "q2": 6, "q3": 9, "q4": 9, "final": 9,
			},
			OverUnder: ptr("56"),
		},
		{
			SourceID: "sb-56",
			Season:   2021,
			GameType: "superbowl",
			Winner:   "Rams",
			Loser:    "Bengals",
			WinnerScores: map[string]int{
				"q1": 7, "q2": 13, "q3": 16, "q4": 23, "final": 23,
			},
			LoserScores: map[string]int{
				"q1": 3, "q2": 10, "q3": 20, "q4": 20, "final": 20,
			},
			OverUnder: ptr("48 1/2"),
		},
		{
			SourceID: "sb-57",
			Season:   2022,
			GameType: "superbowl",
			Winner:   "Chiefs",
			Loser:    "Eagles",
			WinnerScores: map[string]int{
				"q1": 7, "q2": 14, "q3": 21, "q4": 38, "final": 38,
			},
			LoserScores: map[string]int{
				"q1": 7, "q2": 24, "q3": 27, "q4": 35, "final": 35,
			},
			OverUnder: ptr("50 1/2"),
		},
		{
			SourceID: "afccg-2022",
			Season:   2022,
			GameType: "afc_championship",
			Winner:   "Chiefs",
			Loser:    "Bengals",
			WinnerScores: map[string]int{
				"q1": 3, "q2": 13, "q3": 13, "q4": 23, "final": 23,
			},
			LoserScores: map[string]int{
				"q1": 3, "q2": 10, "q3": 13, "q4": 20, "final": 20,
			},
		},
		{
			SourceID: "nfccg-2022",
			Season:   2022,
			GameType: "nfc_championship",
			Winner:   "Eagles",
			Loser:    "49ers",
			WinnerScores: map[string]int{
				"q1": 7, "q2": 21, "q3": 28, "q4": 31, "final": 31,
			},
			LoserScores: map[string]int{
				"q1": 7, "q2": 7, "q3": 7, "q4": 7, "final": 7,
			},
		},
		{
			SourceID: "reg-2022-week10",
			Season:   2022,
			GameType: "regular",
			Winner:   "Vikings",
			Loser:    "Bills",
			WinnerScores: map[string]int{
				"q1": 3, "q2": 10, "q3": 17, "q4": 30, "final": 33,
			},
			LoserScores: map[string]int{
				"q1": 14, "q2": 17, "q3": 27, "q4": 30, "final": 30,
			},
		},
	}
}

// SampleGameLogs returns raw per-game stat rows for a quarterback, a tight
// end, and a kicker across one season.
func SampleGameLogs() []datasource.GameLogData {
	logs := make([]datasource.GameLogData, 0, 16)

	quarterback := []map[string]float64{
		{"pass_yds": 360, "pass_tds": 3, "ints": 0, "rush_yds": 12},
		{"pass_yds": 292, "pass_tds": 2, "ints": 1, "rush_yds": 21},
		{"pass_yds": 249, "pass_tds": 1, "ints": 0, "rush_yds": 4},
		{"pass_yds": 333, "pass_tds": 4, "ints": 0, "rush_yds": 26},
		{"pass_yds": 305, "pass_tds": 2, "ints": 2, "rush_yds": -3},
		{"pass_yds": 286, "pass_tds": 3, "ints": 0, "rush_yds": 11},
	}
	for week, stats := range quarterback {
		logs = append(logs, datasource.GameLogData{
			SourceID:   fmt.Sprintf("qb-w%d", week+1),
			PlayerName: "Patrick Mahomes",
			Position:   "QB",
			Season:     2022,
			Week:       week + 1,
			GameType:   "regular",
			Stats:      stats,
		})
	}

	tightEnd := []map[string]float64{
		{"rec": 8, "rec_yds": 121, "rec_tds": 1},
		{"rec": 5, "rec_yds": 57, "rec_tds": 0},
		{"rec": 9, "rec_yds": 108, "rec_tds": 2},
		{"rec": 4, "rec_yds": 43, "rec_tds": 0},
		{"rec": 7, "rec_yds": 93, "rec_tds": 1},
	}
	for week, stats := range tightEnd {
		logs = append(logs, datasource.GameLogData{
			SourceID:   fmt.Sprintf("te-w%d", week+1),
			PlayerName: "Travis Kelce",
			Position:   "TE",
			Season:     2022,
			Week:       week + 1,
			GameType:   "regular",
			Stats:      stats,
		})
	}

	kicker := []map[string]float64{
		{"fg": 2, "xp": 3},
		{"fg": 1, "xp": 4},
		{"fg": 3, "xp": 2},
		{"fg": 2, "xp": 2},
	}
	for week, stats := range kicker {
		logs = append(logs, datasource.GameLogData{
			SourceID:   fmt.Sprintf("k-w%d", week+1),
			PlayerName: "Harrison Butker",
			Position:   "K",
			Season:     2022,
			Week:       week + 1,
			GameType:   "regular",
			Stats:      stats,
		})
	}

	return logs
}

// WriteFixtureDir writes games and game logs as the JSON fixture files the
// local_file data source reads, returning the directory.
func WriteFixtureDir(t *testing.T, games []datasource.GameData, logs []datasource.GameLogData) string {
	t.Helper()

	dir := t.TempDir()
	writeJSON(t, filepath.Join(dir, "games.json"), games)
	writeJSON(t, filepath.Join(dir, "game_logs.json"), logs)
	return dir
}

func writeJSON(t *testing.T, path string, payload interface{}) {
	t.Helper()

	data, err := json.MarshalIndent(payload, "", "  ")
	require.NoError(t, err, "failed to marshal fixture %s", path)
	require.NoError(t, os.WriteFile(path, data, 0o644), "failed to write fixture %s", path)
}

// CleanupTables truncates the ingestion tables between integration tests.
func CleanupTables(t *testing.T, db *database.DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, table := range []string{"player_game_logs", "games"} {
		if _, err := db.GetPool().Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Logf("Warning: failed to truncate table %s: %v", table, err)
		}
	}
}

// CreateTestContext creates a context with a timeout for testing.
func CreateTestContext(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}

// GetEnvOrDefault returns environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// SkipIfShort skips test if running in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
