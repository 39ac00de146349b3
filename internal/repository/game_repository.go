package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/gridiron-edge/internal/database"
	"github.com/yourusername/gridiron-edge/internal/models"
)

const errScanGame = "failed to scan game: %w"

// PostgresGameRepository implements GameRepository for PostgreSQL
type PostgresGameRepository struct {
	db *database.DB
}

// NewPostgresGameRepository creates a new game repository
func NewPostgresGameRepository(db *database.DB) GameRepository {
	return &PostgresGameRepository{db: db}
}

// Create inserts a new historical game
func (r *PostgresGameRepository) Create(ctx context.Context, game *models.GameRecord) error {
	query := `
		INSERT INTO games (id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.Season, game.GameType, game.Winner, game.Loser,
		game.WinnerScores, game.LoserScores, game.OverUnderLine, game.DefensiveTD,
	)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

// CreateBatch inserts multiple games using high-performance batch insert
func (r *PostgresGameRepository) CreateBatch(ctx context.Context, games []*models.GameRecord) error {
	if len(games) == 0 {
		return nil
	}

	// Use COPY for high-performance bulk insert
	columns := []string{"id", "season", "game_type", "winner", "loser", "winner_scores", "loser_scores", "over_under_line", "defensive_td"}

	copyFromSource := make([][]interface{}, len(games))
	for i, g := range games {
		copyFromSource[i] = []interface{}{
			g.ID, g.Season, g.GameType, g.Winner, g.Loser,
			g.WinnerScores, g.LoserScores, g.OverUnderLine, g.DefensiveTD,
		}
	}

	count, err := r.db.GetPool().CopyFrom(ctx, pgx.Identifier{"games"}, columns, pgx.CopyFromRows(copyFromSource))
	if err != nil {
		return fmt.Errorf("failed to batch insert games: %w", err)
	}

	if count != int64(len(games)) {
		return fmt.Errorf("inserted %d rows, expected %d", count, len(games))
	}

	return nil
}

// GetByID retrieves a game by ID
func (r *PostgresGameRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error) {
	query := `
		SELECT id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td
		FROM games WHERE id = $1
	`

	game := &models.GameRecord{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&game.ID, &game.Season, &game.GameType, &game.Winner, &game.Loser,
		&game.WinnerScores, &game.LoserScores, &game.OverUnderLine, &game.DefensiveTD,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// GetAll retrieves every stored game ordered by season
func (r *PostgresGameRepository) GetAll(ctx context.Context) ([]*models.GameRecord, error) {
	query := `
		SELECT id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td
		FROM games
		ORDER BY season ASC, winner ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.GameRecord
	for rows.Next() {
		game := &models.GameRecord{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.GameType, &game.Winner, &game.Loser,
			&game.WinnerScores, &game.LoserScores, &game.OverUnderLine, &game.DefensiveTD,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// GetBySeasonRange retrieves games within an inclusive season range
func (r *PostgresGameRepository) GetBySeasonRange(ctx context.Context, fromSeason, toSeason int) ([]*models.GameRecord, error) {
	query := `
		SELECT id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td
		FROM games
		WHERE season >= $1 AND season <= $2
		ORDER BY season ASC, winner ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, fromSeason, toSeason)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by season range: %w", err)
	}
	defer rows.Close()

	var games []*models.GameRecord
	for rows.Next() {
		game := &models.GameRecord{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.GameType, &game.Winner, &game.Loser,
			&game.WinnerScores, &game.LoserScores, &game.OverUnderLine, &game.DefensiveTD,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// GetByGameType retrieves games of a single round type
func (r *PostgresGameRepository) GetByGameType(ctx context.Context, gameType models.GameType) ([]*models.GameRecord, error) {
	query := `
		SELECT id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td
		FROM games
		WHERE game_type = $1
		ORDER BY season ASC, winner ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, gameType)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by type: %w", err)
	}
	defer rows.Close()

	var games []*models.GameRecord
	for rows.Next() {
		game := &models.GameRecord{}
		err := rows.Scan(
			&game.ID, &game.Season, &game.GameType, &game.Winner, &game.Loser,
			&game.WinnerScores, &game.LoserScores, &game.OverUnderLine, &game.DefensiveTD,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanGame, err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// GetBySeasonAndTeams retrieves a game by its natural key for deduplication
func (r *PostgresGameRepository) GetBySeasonAndTeams(ctx context.Context, season int, winner, loser string) (*models.GameRecord, error) {
	query := `
		SELECT id, season, game_type, winner, loser, winner_scores, loser_scores, over_under_line, defensive_td
		FROM games
		WHERE season = $1 AND winner = $2 AND loser = $3
	`

	game := &models.GameRecord{}
	err := r.db.GetPool().QueryRow(ctx, query, season, winner, loser).Scan(
		&game.ID, &game.Season, &game.GameType, &game.Winner, &game.Loser,
		&game.WinnerScores, &game.LoserScores, &game.OverUnderLine, &game.DefensiveTD,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game by season and teams: %w", err)
	}

	return game, nil
}

// Update updates the mutable fields of an existing game
func (r *PostgresGameRepository) Update(ctx context.Context, game *models.GameRecord) error {
	query := `
		UPDATE games SET
			winner_scores = $2, loser_scores = $3, over_under_line = $4, defensive_td = $5
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		game.ID, game.WinnerScores, game.LoserScores, game.OverUnderLine, game.DefensiveTD,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete deletes a game
func (r *PostgresGameRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM games WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Count returns the number of stored games
func (r *PostgresGameRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetPool().QueryRow(ctx, "SELECT COUNT(*) FROM games").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", err)
	}
	return count, nil
}
