// Package config provides configuration management for the Gridiron Edge application.
package config

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	// Register custom validation functions
	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("gamefilter", validateGameFilter)
	_ = v.RegisterValidation("digits", validateDigits)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv := NewValidator()
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	// Additional cross-field validations
	if err := validateCrossField(cfg); err != nil {
		return err
	}

	return nil
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	env := fl.Field().String()
	switch env {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateGameFilter validates a game-filter name
func validateGameFilter(fl validator.FieldLevel) bool {
	filter := fl.Field().String()
	switch filter {
	case "all", "superbowl", "championship", "afc", "nfc", "playoff":
		return true
	default:
		return false
	}
}

// validateDigits validates a boost digit list
func validateDigits(fl validator.FieldLevel) bool {
	digits, ok := fl.Field().Interface().([]int)
	if !ok {
		return false
	}

	// Check if digits array is not empty
	if len(digits) == 0 {
		return false
	}

	// Check if all digits are in the score-digit range
	for _, d := range digits {
		if d < 0 || d > 9 {
			return false
		}
	}
	return true
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	// Validate recency window ordering
	if cfg.Squares.MiddleWindowYears <= cfg.Squares.RecentWindowYears {
		return fmt.Errorf("squares middle_window_years must exceed recent_window_years")
	}

	// Validate recency weight ordering
	if cfg.Squares.RecentWeight < cfg.Squares.MiddleWeight || cfg.Squares.MiddleWeight < cfg.Squares.BaselineWeight {
		return fmt.Errorf("squares recency weights must not increase with age")
	}

	// Validate simulator call bands
	if cfg.Simulation.LeanThreshold > cfg.Simulation.StrongThreshold {
		return fmt.Errorf("simulation lean_threshold cannot exceed strong_threshold")
	}

	// Validate production environment requirements
	if cfg.IsProduction() {
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
		}
	}

	// Validate connection pool settings
	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.StructField()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "url":
			errMsg += fmt.Sprintf("- Field '%s' must be a valid URL, got '%v'\n", field, value)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s violated\n", field, tag)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "gamefilter":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: all, superbowl, championship, afc, nfc, playoff\n", field)
		case "digits":
			errMsg += fmt.Sprintf("- Field '%s' must be a non-empty list of digits 0-9\n", field)
		case "oneof":
			errMsg += fmt.Sprintf("- Field '%s' has invalid value '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() {
		// Production must have SSL enabled
		if cfg.Database.SSLMode == "disable" {
			return fmt.Errorf("production environment requires database SSL mode to be 'require' or 'verify-full'")
		}

		// Production should not have test credentials
		for _, source := range cfg.Datasource.Sources {
			if source.APIKey != "" && isTestCredential(source.APIKey) {
				return fmt.Errorf("production environment should not use test credentials for source %q", source.Name)
			}
		}
	}

	return nil
}

// isTestCredential checks if a credential looks like a test credential
func isTestCredential(credential string) bool {
	testPatterns := []string{
		"test", "demo", "example", "placeholder", "YOUR_",
	}

	for _, pattern := range testPatterns {
		if match, _ := regexp.MatchString("(?i)"+pattern, credential); match {
			return true
		}
	}

	return false
}
