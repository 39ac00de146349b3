// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Datasource DatasourceConfig `mapstructure:"datasource" validate:"required"`
	Squares    SquaresConfig    `mapstructure:"squares" validate:"required"`
	Props      PropsConfig      `mapstructure:"props" validate:"required"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
	Features   FeaturesConfig   `mapstructure:"features" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// DatasourceConfig represents historical data ingestion configuration
type DatasourceConfig struct {
	Sources  []SourceConfig `mapstructure:"sources" validate:"required,min=1"`
	Schedule ScheduleConfig `mapstructure:"schedule" validate:"required"`
}

// SourceConfig represents a single data source configuration
type SourceConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Enabled   bool   `mapstructure:"enabled"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	Path      string `mapstructure:"path"`
	BatchSize int    `mapstructure:"batch_size" validate:"omitempty,gt=0"`
	APIKey    string `mapstructure:"api_key"`
}

// ScheduleConfig represents ingestion and refresh scheduling
type ScheduleConfig struct {
	HistoricalSync string `mapstructure:"historical_sync" validate:"required"`
	ReportRefresh  string `mapstructure:"report_refresh" validate:"required"`
	SyncFromSeason int    `mapstructure:"sync_from_season" validate:"omitempty,gte=1920"`
}

// SquaresConfig represents squares-analysis configuration
type SquaresConfig struct {
	RecentWindowYears int     `mapstructure:"recent_window_years" validate:"required,gt=0"`
	MiddleWindowYears int     `mapstructure:"middle_window_years" validate:"required,gt=0"`
	RecentWeight      int     `mapstructure:"recent_weight" validate:"required,gt=0"`
	MiddleWeight      int     `mapstructure:"middle_weight" validate:"required,gt=0"`
	BaselineWeight    int     `mapstructure:"baseline_weight" validate:"required,gt=0"`
	BoostDigits       []int   `mapstructure:"boost_digits" validate:"required,min=1,digits"`
	BoostFactor       float64 `mapstructure:"boost_factor" validate:"required,gt=1"`
	PenaltyFactor     float64 `mapstructure:"penalty_factor" validate:"required,gt=0,lte=1"`
	TopSquares        int     `mapstructure:"top_squares" validate:"required,gt=0,lte=100"`
	DefaultFilter     string  `mapstructure:"default_filter" validate:"omitempty,gamefilter"`
}

// PropsConfig represents player-prop analysis configuration
type PropsConfig struct {
	TrendWindow         int     `mapstructure:"trend_window" validate:"required,gt=0"`
	TrendThreshold      float64 `mapstructure:"trend_threshold" validate:"required,gt=0,lte=1"`
	SeasonWeight        float64 `mapstructure:"season_weight" validate:"required,gte=0,lte=1"`
	ValidationThreshold float64 `mapstructure:"validation_threshold" validate:"required,gte=0,lte=1"`
	PlayerBetThreshold  float64 `mapstructure:"player_bet_threshold" validate:"required,gte=0,lte=1"`
	GameBetThreshold    float64 `mapstructure:"game_bet_threshold" validate:"required,gte=0,lte=1"`
}

// SimulationConfig represents Monte Carlo simulator configuration
type SimulationConfig struct {
	Iterations        int     `mapstructure:"iterations" validate:"required,gt=0"`
	RecentWindow      int     `mapstructure:"recent_window" validate:"required,gt=0"`
	RecentBlend       float64 `mapstructure:"recent_blend" validate:"required,gte=0,lte=1"`
	VarianceInflation float64 `mapstructure:"variance_inflation" validate:"required,gte=1"`
	MinGames          int     `mapstructure:"min_games" validate:"required,gte=2"`
	Seed              int64   `mapstructure:"seed"`
	StrongThreshold   float64 `mapstructure:"strong_threshold" validate:"required,gt=0.5,lte=1"`
	LeanThreshold     float64 `mapstructure:"lean_threshold" validate:"required,gt=0.5,lte=1"`
}

// CacheConfig represents report cache configuration
type CacheConfig struct {
	TTLSeconds             int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	CleanupIntervalSeconds int `mapstructure:"cleanup_interval_seconds" validate:"required,gt=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// FeaturesConfig represents feature flags
type FeaturesConfig struct {
	TeamBoostsEnabled   bool `mapstructure:"team_boosts_enabled"`
	ProgressionsEnabled bool `mapstructure:"progressions_enabled"`
	SimulationsEnabled  bool `mapstructure:"simulations_enabled"`
	GamePropsEnabled    bool `mapstructure:"game_props_enabled"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetMetricsAddress returns the listen address for the metrics server
func (c *Config) GetMetricsAddress() string {
	return fmt.Sprintf(":%d", c.Metrics.Port)
}
