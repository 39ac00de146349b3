// Package squares estimates which (winner, loser) score-digit squares are
// most likely at each stage of a game, from recency-weighted historical
// results.
package squares

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// WeightGames assigns recency weights to a set of historical games using
// the most recent season present as the reference point.
func WeightGames(games []models.GameRecord, cfg Config) ([]models.WeightedGame, error) {
	if len(games) == 0 {
		return nil, fmt.Errorf("no games to weight: %w", models.ErrInsufficientData)
	}

	ref := games[0].Season
	for i := range games[1:] {
		if games[i+1].Season > ref {
			ref = games[i+1].Season
		}
	}

	return WeightGamesAt(games, ref, cfg)
}

// WeightGamesAt assigns recency weights relative to an explicit reference
// season. Weight w is logically w duplicate observations; downstream counts
// multiply by it rather than repeating rows.
func WeightGamesAt(games []models.GameRecord, refSeason int, cfg Config) ([]models.WeightedGame, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("no games to weight: %w", models.ErrInsufficientData)
	}

	weighted := make([]models.WeightedGame, 0, len(games))
	for i := range games {
		weighted = append(weighted, models.WeightedGame{
			Game:   games[i],
			Weight: weightForAge(refSeason-games[i].Season, cfg),
		})
	}
	return weighted, nil
}

// weightForAge maps an age in seasons to its bucket weight. Boundaries are
// inclusive toward the more recent bucket, so age == RecentWindowYears
// still earns the recent weight.
func weightForAge(age int, cfg Config) int {
	if age < 0 {
		age = 0
	}
	switch {
	case age <= cfg.RecentWindowYears:
		return cfg.RecentWeight
	case age <= cfg.MiddleWindowYears:
		return cfg.MiddleWeight
	default:
		return cfg.BaselineWeight
	}
}
