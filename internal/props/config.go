// Package props analyzes player and game-level betting propositions from
// historical game logs: descriptive summaries, line hit rates, trend
// classification, benchmark blending, and Monte Carlo projections.
package props

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// Config extends core config with prop-analysis settings
type Config struct {
	TrendWindow         int
	TrendThreshold      float64
	SeasonWeight        float64
	ValidationThreshold float64
	PlayerBetThreshold  float64
	GameBetThreshold    float64
}

// DefaultConfig returns the documented prop-analysis defaults.
func DefaultConfig() Config {
	return Config{
		TrendWindow:         5,
		TrendThreshold:      0.05,
		SeasonWeight:        0.7,
		ValidationThreshold: 0.6,
		PlayerBetThreshold:  0.65,
		GameBetThreshold:    0.60,
	}
}

// FromConfig converts app config to prop-analysis config
func FromConfig(cfg *config.PropsConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("props config is required: %w", models.ErrInvalidConfiguration)
	}

	pc := Config{
		TrendWindow:         cfg.TrendWindow,
		TrendThreshold:      cfg.TrendThreshold,
		SeasonWeight:        cfg.SeasonWeight,
		ValidationThreshold: cfg.ValidationThreshold,
		PlayerBetThreshold:  cfg.PlayerBetThreshold,
		GameBetThreshold:    cfg.GameBetThreshold,
	}

	return pc, pc.Validate()
}

// Validate validates prop-analysis parameters
func (c Config) Validate() error {
	if c.TrendWindow <= 0 {
		return fmt.Errorf("trend window must be positive: %w", models.ErrInvalidConfiguration)
	}
	if c.TrendThreshold < 0 || c.TrendThreshold > 1 {
		return fmt.Errorf("trend threshold must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.SeasonWeight < 0 || c.SeasonWeight > 1 {
		return fmt.Errorf("season weight must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.ValidationThreshold < 0 || c.ValidationThreshold > 1 {
		return fmt.Errorf("validation threshold must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.PlayerBetThreshold < 0 || c.PlayerBetThreshold > 1 {
		return fmt.Errorf("player bet threshold must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.GameBetThreshold < 0 || c.GameBetThreshold > 1 {
		return fmt.Errorf("game bet threshold must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	return nil
}

// SimulationConfig configures the Monte Carlo prop simulator
type SimulationConfig struct {
	Iterations        int
	RecentWindow      int
	RecentBlend       float64
	VarianceInflation float64
	MinGames          int
	Seed              int64
	StrongThreshold   float64
	LeanThreshold     float64
}

// DefaultSimulationConfig returns the documented simulator defaults. The
// fixed seed keeps simulation output reproducible for identical inputs.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		Iterations:        10000,
		RecentWindow:      5,
		RecentBlend:       0.7,
		VarianceInflation: 1.1,
		MinGames:          3,
		Seed:              1,
		StrongThreshold:   0.60,
		LeanThreshold:     0.55,
	}
}

// SimulationFromConfig converts app config to simulator config
func SimulationFromConfig(cfg *config.SimulationConfig) (SimulationConfig, error) {
	if cfg == nil {
		return SimulationConfig{}, fmt.Errorf("simulation config is required: %w", models.ErrInvalidConfiguration)
	}

	sim := SimulationConfig{
		Iterations:        cfg.Iterations,
		RecentWindow:      cfg.RecentWindow,
		RecentBlend:       cfg.RecentBlend,
		VarianceInflation: cfg.VarianceInflation,
		MinGames:          cfg.MinGames,
		Seed:              cfg.Seed,
		StrongThreshold:   cfg.StrongThreshold,
		LeanThreshold:     cfg.LeanThreshold,
	}

	return sim, sim.Validate()
}

// Validate validates simulator parameters
func (c SimulationConfig) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive: %w", models.ErrInvalidConfiguration)
	}
	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent window must be positive: %w", models.ErrInvalidConfiguration)
	}
	if c.RecentBlend < 0 || c.RecentBlend > 1 {
		return fmt.Errorf("recent blend must be in [0, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.VarianceInflation < 1 {
		return fmt.Errorf("variance inflation must be at least 1: %w", models.ErrInvalidConfiguration)
	}
	if c.MinGames < 2 {
		return fmt.Errorf("min games must be at least 2: %w", models.ErrInvalidConfiguration)
	}
	if c.StrongThreshold <= 0.5 || c.StrongThreshold > 1 {
		return fmt.Errorf("strong threshold must be in (0.5, 1]: %w", models.ErrInvalidConfiguration)
	}
	if c.LeanThreshold <= 0.5 || c.LeanThreshold > c.StrongThreshold {
		return fmt.Errorf("lean threshold must be in (0.5, strong]: %w", models.ErrInvalidConfiguration)
	}
	return nil
}
