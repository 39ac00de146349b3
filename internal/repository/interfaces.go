package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/gridiron-edge/internal/models"
)

// GameRepository defines the interface for historical game data access
type GameRepository interface {
	Create(ctx context.Context, game *models.GameRecord) error
	CreateBatch(ctx context.Context, games []*models.GameRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.GameRecord, error)
	GetAll(ctx context.Context) ([]*models.GameRecord, error)
	GetBySeasonRange(ctx context.Context, fromSeason, toSeason int) ([]*models.GameRecord, error)
	GetByGameType(ctx context.Context, gameType models.GameType) ([]*models.GameRecord, error)
	GetBySeasonAndTeams(ctx context.Context, season int, winner, loser string) (*models.GameRecord, error)
	Update(ctx context.Context, game *models.GameRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// PlayerGameLogRepository defines the interface for player game log data access
type PlayerGameLogRepository interface {
	InsertBatch(ctx context.Context, logs []*models.PlayerGameLog) error
	ReplaceLog(ctx context.Context, log *models.PlayerGameLog) error
	GetByPlayer(ctx context.Context, playerName string) (*models.PlayerGameLog, error)
	GetByPosition(ctx context.Context, position models.Position, fromSeason, toSeason int) ([]*models.PlayerGameLog, error)
	GetPlayerNames(ctx context.Context) ([]string, error)
	DeleteByPlayer(ctx context.Context, playerName string) error
	Count(ctx context.Context) (int64, error)
}
