package squares

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Config extends core config with squares-engine settings
type Config struct {
	RecentWindowYears int
	MiddleWindowYears int
	RecentWeight      int
	MiddleWeight      int
	BaselineWeight    int
	BoostDigits       []int
	BoostFactor       float64
	PenaltyFactor     float64
	TopSquares        int
}

// DefaultConfig returns the documented engine defaults: a 5/15-year
// three-tier weighting of 3/2/1 and the field-goal digit set boost.
func DefaultConfig() Config {
	return Config{
		RecentWindowYears: 5,
		MiddleWindowYears: 15,
		RecentWeight:      3,
		MiddleWeight:      2,
		BaselineWeight:    1,
		BoostDigits:       []int{0, 3, 6, 7},
		BoostFactor:       1.3,
		PenaltyFactor:     1.0,
		TopSquares:        10,
	}
}

// FromConfig converts app config to squares engine config
func FromConfig(cfg *config.SquaresConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("squares config is required: %w", models.ErrInvalidConfiguration)
	}

	sq := Config{
		RecentWindowYears: cfg.RecentWindowYears,
		MiddleWindowYears: cfg.MiddleWindowYears,
		RecentWeight:      cfg.RecentWeight,
		MiddleWeight:      cfg.MiddleWeight,
		BaselineWeight:    cfg.BaselineWeight,
		BoostDigits:       append([]int{}, cfg.BoostDigits...),
		BoostFactor:       cfg.BoostFactor,
		PenaltyFactor:     cfg.PenaltyFactor,
		TopSquares:        cfg.TopSquares,
	}

	return sq, sq.Validate()
}

// Validate validates squares engine parameters
func (c Config) Validate() error {
	if c.RecentWeight <= 0 || c.MiddleWeight <= 0 || c.BaselineWeight <= 0 {
		return fmt.Errorf("recency weights must be positive: %w", models.ErrInvalidConfiguration)
	}
	if c.RecentWindowYears <= 0 {
		return fmt.Errorf("recent window must be positive: %w", models.ErrInvalidConfiguration)
	}
	if c.MiddleWindowYears <= c.RecentWindowYears {
		return fmt.Errorf("middle window must exceed recent window: %w", models.ErrInvalidConfiguration)
	}
	if c.BoostFactor <= 1.0 {
		return fmt.Errorf("boost factor must exceed 1.0: %w", models.ErrInvalidConfiguration)
	}
	if c.PenaltyFactor <= 0 || c.PenaltyFactor > 1.0 {
		return fmt.Errorf("penalty factor must be in (0, 1]: %w", models.ErrInvalidConfiguration)
	}
	for _, d := range c.BoostDigits {
		if d < 0 || d > 9 {
			return fmt.Errorf("boost digit %d out of range 0-9: %w", d, models.ErrInvalidConfiguration)
		}
	}
	if c.TopSquares <= 0 || c.TopSquares > 100 {
		return fmt.Errorf("top squares must be in 1-100: %w", models.ErrInvalidConfiguration)
	}
	return nil
}
