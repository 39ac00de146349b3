package repository

import (
	"fmt"

	"github.com/yourusername/gridiron-edge/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Game    GameRepository
	GameLog PlayerGameLogRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Game:    NewPostgresGameRepository(db),
		GameLog: NewPostgresGameLogRepository(db),
	}, nil
}
