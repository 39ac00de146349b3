package database

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// SetupTestDB connects to the database named by the GRIDIRON_EDGE_TEST_DB_*
// environment variables. Tests calling it skip when no host is configured,
// so the suite passes on machines without a provisioned test database.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	host := os.Getenv("GRIDIRON_EDGE_TEST_DB_HOST")
	if host == "" {
		t.Skip("set GRIDIRON_EDGE_TEST_DB_HOST to run database tests")
	}

	cfg := &config.DatabaseConfig{
		Host:               host,
		Port:               envInt("GRIDIRON_EDGE_TEST_DB_PORT", 5432),
		Name:               envString("GRIDIRON_EDGE_TEST_DB_NAME", "gridiron_edge_test"),
		User:               envString("GRIDIRON_EDGE_TEST_DB_USER", "gridiron"),
		Password:           envString("GRIDIRON_EDGE_TEST_DB_PASSWORD", "localdev"),
		SSLMode:            envString("GRIDIRON_EDGE_TEST_DB_SSLMODE", "disable"),
		MaxConnections:     5,
		MaxIdleConnections: 2,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}

func envString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
