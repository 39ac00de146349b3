package props

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// DefaultLines returns the standard candidate betting lines per category
// for a position, used when a caller supplies none. Half-point lines keep
// pushes impossible.
func DefaultLines(position models.Position) (map[models.StatCategory][]float64, error) {
	switch position {
	case models.PositionQB:
		return map[models.StatCategory][]float64{
			models.StatPassingYards:  {249.5, 274.5, 299.5},
			models.StatPassingTDs:    {1.5, 2.5},
			models.StatInterceptions: {0.5, 1.5},
			models.StatRushingYards:  {14.5, 24.5},
		}, nil
	case models.PositionRB:
		return map[models.StatCategory][]float64{
			models.StatRushingYards:   {49.5, 74.5, 99.5},
			models.StatRushingTDs:     {0.5, 1.5},
			models.StatReceptions:     {2.5, 4.5},
			models.StatReceivingYards: {19.5, 29.5},
		}, nil
	case models.PositionWR:
		return map[models.StatCategory][]float64{
			models.StatReceptions:     {3.5, 5.5},
			models.StatReceivingYards: {49.5, 74.5, 99.5},
			models.StatReceivingTDs:   {0.5},
		}, nil
	case models.PositionTE:
		return map[models.StatCategory][]float64{
			models.StatReceptions:     {2.5, 4.5},
			models.StatReceivingYards: {29.5, 49.5},
			models.StatReceivingTDs:   {0.5},
		}, nil
	case models.PositionK:
		return map[models.StatCategory][]float64{
			models.StatFieldGoals:  {1.5, 2.5},
			models.StatExtraPoints: {2.5, 3.5},
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownPosition, position)
}

// DefaultCategories returns the categories DefaultLines covers for the
// position, in a fixed report order.
func DefaultCategories(position models.Position) ([]models.StatCategory, error) {
	switch position {
	case models.PositionQB:
		return []models.StatCategory{
			models.StatPassingYards,
			models.StatPassingTDs,
			models.StatInterceptions,
			models.StatRushingYards,
		}, nil
	case models.PositionRB:
		return []models.StatCategory{
			models.StatRushingYards,
			models.StatRushingTDs,
			models.StatReceptions,
			models.StatReceivingYards,
		}, nil
	case models.PositionWR:
		return []models.StatCategory{
			models.StatReceptions,
			models.StatReceivingYards,
			models.StatReceivingTDs,
		}, nil
	case models.PositionTE:
		return []models.StatCategory{
			models.StatReceptions,
			models.StatReceivingYards,
			models.StatReceivingTDs,
		}, nil
	case models.PositionK:
		return []models.StatCategory{
			models.StatFieldGoals,
			models.StatExtraPoints,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", models.ErrUnknownPosition, position)
}
