package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const errScanGameLog = "failed to scan game log entry: %w"

// gameLogColumns is the column order used for batch inserts.
var gameLogColumns = []string{"player_name", "position", "season", "week", "game_type", "stats"}

// PostgresGameLogRepository implements PlayerGameLogRepository for PostgreSQL.
// Each row holds one game log entry; logs are reassembled in chronological
// order on read.
type PostgresGameLogRepository struct {
	db *database.DB
}

// NewPostgresGameLogRepository creates a new player game log repository
func NewPostgresGameLogRepository(db *database.DB) PlayerGameLogRepository {
	return &PostgresGameLogRepository{db: db}
}

// logCopyRows flattens player logs into COPY rows, one per entry
func logCopyRows(logs []*models.PlayerGameLog) [][]interface{} {
	var rows [][]interface{}
	for _, log := range logs {
		for i := range log.Entries {
			e := &log.Entries[i]
			rows = append(rows, []interface{}{
				log.PlayerName, log.Position, e.Season, e.Week, e.GameType, e.Stats,
			})
		}
	}
	return rows
}

// InsertBatch inserts the entries of multiple player logs using high-performance batch insert
func (r *PostgresGameLogRepository) InsertBatch(ctx context.Context, logs []*models.PlayerGameLog) error {
	copyFromSource := logCopyRows(logs)
	if len(copyFromSource) == 0 {
		return nil
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"player_game_logs"}, gameLogColumns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert game logs: %w", err)
	}

	if count != int64(len(copyFromSource)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(copyFromSource))
	}

	return nil
}

// ReplaceLog atomically replaces a player's stored log with the given one
func (r *PostgresGameLogRepository) ReplaceLog(ctx context.Context, log *models.PlayerGameLog) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, "DELETE FROM player_game_logs WHERE player_name = $1", log.PlayerName)
		if err != nil {
			return fmt.Errorf("failed to clear existing game log: %w", err)
		}

		copyFromSource := logCopyRows([]*models.PlayerGameLog{log})
		if len(copyFromSource) == 0 {
			return nil
		}

		count, err := tx.CopyFrom(ctx, pgx.Identifier{"player_game_logs"}, gameLogColumns, pgx.CopyFromRows(copyFromSource))
		if err != nil {
			return fmt.Errorf("failed to insert replacement game log: %w", err)
		}

		if count != int64(len(copyFromSource)) {
			return fmt.Errorf("inserted %d rows, expected %d", count, len(copyFromSource))
		}

		return nil
	})
}

// GetByPlayer retrieves a player's full game log in chronological order
func (r *PostgresGameLogRepository) GetByPlayer(ctx context.Context, playerName string) (*models.PlayerGameLog, error) {
	query := `
		SELECT position, season, week, game_type, stats
		FROM player_game_logs
		WHERE player_name = $1
		ORDER BY season ASC, week ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to query game log: %w", err)
	}
	defer rows.Close()

	log := &models.PlayerGameLog{PlayerName: playerName}
	for rows.Next() {
		var entry models.GameLogEntry
		err := rows.Scan(&log.Position, &entry.Season, &entry.Week, &entry.GameType, &entry.Stats)
		if err != nil {
			return nil, fmt.Errorf(errScanGameLog, err)
		}
		log.Entries = append(log.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read game log rows: %w", err)
	}

	if len(log.Entries) == 0 {
		return nil, models.ErrNotFound
	}

	return log, nil
}

// GetByPosition retrieves the logs of every player at a position within an
// inclusive season range, ordered by player name
func (r *PostgresGameLogRepository) GetByPosition(ctx context.Context, position models.Position, fromSeason, toSeason int) ([]*models.PlayerGameLog, error) {
	query := `
		SELECT player_name, position, season, week, game_type, stats
		FROM player_game_logs
		WHERE position = $1 AND season >= $2 AND season <= $3
		ORDER BY player_name ASC, season ASC, week ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, position, fromSeason, toSeason)
	if err != nil {
		return nil, fmt.Errorf("failed to query game logs by position: %w", err)
	}
	defer rows.Close()

	// Rows arrive grouped by player, so a new name starts a new log.
	var logs []*models.PlayerGameLog
	var current *models.PlayerGameLog
	for rows.Next() {
		var name string
		var pos models.Position
		var entry models.GameLogEntry
		err := rows.Scan(&name, &pos, &entry.Season, &entry.Week, &entry.GameType, &entry.Stats)
		if err != nil {
			return nil, fmt.Errorf(errScanGameLog, err)
		}

		if current == nil || current.PlayerName != name {
			current = &models.PlayerGameLog{PlayerName: name, Position: pos}
			logs = append(logs, current)
		}
		current.Entries = append(current.Entries, entry)
	}

	return logs, rows.Err()
}

// GetPlayerNames retrieves the distinct player names with stored logs
func (r *PostgresGameLogRepository) GetPlayerNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT player_name
		FROM player_game_logs
		ORDER BY player_name ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query player names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan player name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// DeleteByPlayer deletes every stored entry for a player
func (r *PostgresGameLogRepository) DeleteByPlayer(ctx context.Context, playerName string) error {
	query := "DELETE FROM player_game_logs WHERE player_name = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, playerName)
	if err != nil {
		return fmt.Errorf("failed to delete game log: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Count returns the number of stored game log entries
func (r *PostgresGameLogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM player_game_logs").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count game log entries: %w", err)
	}
	return count, nil
}
