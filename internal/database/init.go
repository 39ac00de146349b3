package database

import (
	"context"
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/config"
)

// requiredTables lists the tables the ingestion and report services expect.
var requiredTables = []string{"games", "player_game_logs"}

// Initialize creates a database connection pool and verifies the schema has
// been provisioned. Schema changes themselves are applied out of band with
// the migrate CLI; this only refuses to start against an empty database.
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	// Create connection pool
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range requiredTables {
		var regclass *string
		err := db.pool.QueryRow(ctx, "SELECT to_regclass($1)", "public."+table).Scan(&regclass)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to verify table %q: %w", table, err)
		}
		if regclass == nil {
			db.Close()
			return nil, fmt.Errorf(
				"table %q not found: apply the schema migrations before starting", table,
			)
		}
	}

	return db, nil
}
