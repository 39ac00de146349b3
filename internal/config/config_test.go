// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"os"
	"testing"
)

const (
	validConfigPath              = "testdata/valid_config.yaml"
	expansionConfigPath          = "testdata/expansion_config.yaml"
	expansionConfigMissingPath   = "testdata/expansion_config_missing.yaml"
	nonexistentConfigPath        = "testdata/nonexistent_config.yaml"
	expectedNoErrorLoadingConfig = "expected no error loading config, got %v"
	expectedNoErrorMsg           = "expected no error, got %v"
	expectedNonNilConfig         = "expected non-nil config"
	gridironEdgeName             = "gridiron-edge"
	developmentEnv               = "development"
	invalidEnv                   = "invalid"
	localhostHost                = "localhost"
	postgresPort                 = 5432
	postgresPrefix               = "postgres://"
	testAppName                  = "test-app"
	testDBPassword               = "TEST_DB_PASSWORD"
	testMissingVar               = "TEST_MISSING_VAR"
	expandedSecretValue          = "expanded_secret_value"
	digitsValidationError        = "digits"
	digitsValidationErrorCaps    = "Digits"
)

// TestLoadConfigSuccess tests loading a valid configuration file
func TestLoadConfigSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg == nil {
		t.Fatal(expectedNonNilConfig)
	}

	if cfg.App.Name != gridironEdgeName {
		t.Errorf("expected app name '%s', got '%s'", gridironEdgeName, cfg.App.Name)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.Database.Host != localhostHost {
		t.Errorf("expected database host '%s', got '%s'", localhostHost, cfg.Database.Host)
	}

	if cfg.Database.Port != postgresPort {
		t.Errorf("expected database port %d, got %d", postgresPort, cfg.Database.Port)
	}

	if cfg.Squares.RecentWindowYears != 5 || cfg.Squares.MiddleWindowYears != 15 {
		t.Errorf("expected 5/15 year windows, got %d/%d",
			cfg.Squares.RecentWindowYears, cfg.Squares.MiddleWindowYears)
	}

	if len(cfg.Squares.BoostDigits) != 4 {
		t.Errorf("expected 4 boost digits, got %d", len(cfg.Squares.BoostDigits))
	}
}

// TestLoadConfigFileNotFound tests handling of missing configuration file
func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := Load(nonexistentConfigPath)
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadConfigEnvironmentVariables tests environment variable override
func TestLoadConfigEnvironmentVariables(t *testing.T) {
	// Set an environment variable
	os.Setenv("GRIDIRON_EDGE_APP_NAME", testAppName)
	defer os.Unsetenv("GRIDIRON_EDGE_APP_NAME")

	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Name != testAppName {
		t.Errorf("expected app name '%s' from environment, got '%s'", testAppName, cfg.App.Name)
	}
}

// TestValidateSuccess tests validation of a valid configuration
func TestValidateSuccess(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	err = Validate(cfg)
	if err != nil {
		t.Fatalf("expected no validation error, got %v", err)
	}
}

// TestValidateInvalidEnvironment tests validation of invalid environment
func TestValidateInvalidEnvironment(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.App.Environment = invalidEnv
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for invalid environment")
	}
}

// TestValidateInvalidBoostDigits tests validation of out-of-range boost digits
func TestValidateInvalidBoostDigits(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// A score digit can only be 0-9
	cfg.Squares.BoostDigits = []int{4, 12}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for out-of-range boost digits")
	}

	if !containsSubstring(err.Error(), digitsValidationError) && !containsSubstring(err.Error(), digitsValidationErrorCaps) {
		t.Errorf("expected digits validation error, got: %v", err)
	}
}

// TestValidateEmptyBoostDigits tests validation of an empty boost digit list
func TestValidateEmptyBoostDigits(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Squares.BoostDigits = []int{}
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for empty boost digits")
	}
}

// TestValidateWindowOrdering tests cross-field window validation
func TestValidateWindowOrdering(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Squares.MiddleWindowYears = cfg.Squares.RecentWindowYears
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error when the middle window does not exceed the recent window")
	}
}

// TestValidateSimulationThresholdOrdering tests cross-field threshold validation
func TestValidateSimulationThresholdOrdering(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Simulation.LeanThreshold = 0.7
	cfg.Simulation.StrongThreshold = 0.6
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error when lean threshold exceeds strong threshold")
	}
}

// TestValidateInvalidGameFilter tests validation of the default game filter
func TestValidateInvalidGameFilter(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	cfg.Squares.DefaultFilter = "preseason"
	err = Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error for unknown game filter")
	}
}

// TestGetDatabaseDSN tests DSN generation
func TestGetDatabaseDSN(t *testing.T) {
	cfg, err := Load(validConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	dsn := cfg.GetDatabaseDSN()
	if dsn == "" {
		t.Fatal("expected non-empty DSN")
	}

	if !containsSubstring(dsn, postgresPrefix) {
		t.Errorf("expected DSN to start with '%s', got '%s'", postgresPrefix, dsn)
	}
}

// TestIsDevelopment tests environment check function
func TestIsDevelopment(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: developmentEnv},
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return true")
	}

	if cfg.IsProduction() {
		t.Error("expected IsProduction() to return false")
	}
}

// TestIsProduction tests production environment check
func TestIsProduction(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "production"},
	}

	if !cfg.IsProduction() {
		t.Error("expected IsProduction() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

// TestIsStaging tests staging environment check
func TestIsStaging(t *testing.T) {
	cfg := &Config{
		App: AppConfig{Environment: "staging"},
	}

	if !cfg.IsStaging() {
		t.Error("expected IsStaging() to return true")
	}

	if cfg.IsDevelopment() {
		t.Error("expected IsDevelopment() to return false")
	}
}

// TestGetMetricsAddress tests metrics listen address formatting
func TestGetMetricsAddress(t *testing.T) {
	cfg := &Config{
		Metrics: MetricsConfig{Port: 9090},
	}

	addr := cfg.GetMetricsAddress()
	if addr != ":9090" {
		t.Errorf("expected address ':9090', got '%s'", addr)
	}
}

// TestLoadWithDefaultsNoFile tests defaults when no config file exists
func TestLoadWithDefaultsNoFile(t *testing.T) {
	cfg, err := LoadWithDefaults(nonexistentConfigPath)
	if err != nil {
		t.Fatalf(expectedNoErrorMsg, err)
	}

	if cfg.App.Environment != developmentEnv {
		t.Errorf("expected default environment '%s', got '%s'", developmentEnv, cfg.App.Environment)
	}

	if cfg.Squares.RecentWindowYears != 5 {
		t.Errorf("expected default recent window 5, got %d", cfg.Squares.RecentWindowYears)
	}

	if cfg.Simulation.Iterations != 10000 {
		t.Errorf("expected default iterations 10000, got %d", cfg.Simulation.Iterations)
	}
}

// TestLoadConfigEnvironmentVariableExpansion tests environment variable expansion in config file
func TestLoadConfigEnvironmentVariableExpansion(t *testing.T) {
	// Set environment variable
	os.Setenv(testDBPassword, expandedSecretValue)
	defer os.Unsetenv(testDBPassword)

	cfg, err := Load(expansionConfigPath)
	if err != nil {
		t.Fatalf("expected no error loading config with expansion, got %v", err)
	}

	if cfg.Database.Password != expandedSecretValue {
		t.Errorf("expected password '%s' from environment expansion, got '%s'", expandedSecretValue, cfg.Database.Password)
	}
}

// TestLoadConfigMissingEnvironmentVariable tests handling of missing environment variables
func TestLoadConfigMissingEnvironmentVariable(t *testing.T) {
	// Ensure environment variable is not set
	os.Unsetenv(testMissingVar)

	cfg, err := Load(expansionConfigMissingPath)
	if err != nil {
		t.Fatalf(expectedNoErrorLoadingConfig, err)
	}

	// os.ExpandEnv replaces unset variables with the empty string
	if cfg.Database.Password != "" {
		t.Errorf("expected empty password for unset variable, got %q", cfg.Database.Password)
	}
}

// Helper function
func containsSubstring(str, substr string) bool {
	for i := 0; i <= len(str)-len(substr); i++ {
		if str[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
