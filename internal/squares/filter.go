package squares

import (
	"fmt"
	"strings"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// GameFilter selects a slice of history by round before the pipeline runs.
type GameFilter string

const (
	FilterAll          GameFilter = "all"
	FilterSuperBowl    GameFilter = "superbowl"
	FilterChampionship GameFilter = "championship"
	FilterAFC          GameFilter = "afc"
	FilterNFC          GameFilter = "nfc"
	FilterPlayoff      GameFilter = "playoff"
)

// ParseGameFilter converts a string to a GameFilter, accepting any casing.
func ParseGameFilter(s string) (GameFilter, error) {
	filter := GameFilter(strings.ToLower(strings.TrimSpace(s)))
	switch filter {
	case "":
		return FilterAll, nil
	case FilterAll, FilterSuperBowl, FilterChampionship, FilterAFC, FilterNFC, FilterPlayoff:
		return filter, nil
	}
	return "", fmt.Errorf("unknown game filter %q: %w", s, models.ErrInvalidConfiguration)
}

// FilterGames returns the games matching the filter, preserving input order.
func FilterGames(games []models.GameRecord, filter GameFilter) ([]models.GameRecord, error) {
	var keep func(models.GameType) bool
	switch filter {
	case "", FilterAll:
		return games, nil
	case FilterSuperBowl:
		keep = func(gt models.GameType) bool { return gt == models.GameTypeSuperBowl }
	case FilterChampionship:
		keep = func(gt models.GameType) bool { return gt.IsChampionship() }
	case FilterAFC:
		keep = func(gt models.GameType) bool { return gt == models.GameTypeAFCChampionship }
	case FilterNFC:
		keep = func(gt models.GameType) bool { return gt == models.GameTypeNFCChampionship }
	case FilterPlayoff:
		keep = func(gt models.GameType) bool { return gt.IsPlayoff() }
	default:
		return nil, fmt.Errorf("unknown game filter %q: %w", filter, models.ErrInvalidConfiguration)
	}

	filtered := make([]models.GameRecord, 0, len(games))
	for i := range games {
		if keep(games[i].GameType) {
			filtered = append(filtered, games[i])
		}
	}
	return filtered, nil
}
