package i

import (
	"context"

	"github.com/beka-birhanu/mindful-maze/crisis"
	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/google/uuid"
)

// PlayerRepo defines the interface for player persistence operations.
type PlayerRepo interface {
	// Save inserts or updates a player in the repository.
	// A username already taken by another player yields dmn.ErrUsernameConflict.
	Save(ctx context.Context, player *dmn.Player) error

	// ByID retrieves a player by their unique ID.
	// Returns dmn.ErrPlayerNotFound if there is no such player.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Player, error)

	// ByUsername retrieves a player by their username.
	// Returns dmn.ErrPlayerNotFound if there is no such player.
	ByUsername(ctx context.Context, username string) (*dmn.Player, error)

	// RaiseBestScore stores score as the player's best if it beats the current one.
	RaiseBestScore(ctx context.Context, id uuid.UUID, score int) error
}

// LevelHistory records finished levels.
type LevelHistory interface {
	Record(ctx context.Context, r dmn.LevelRecord) error
	// ByPlayer returns up to limit records, newest first.
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]dmn.LevelRecord, error)
}

// AlertRepo stores composed crisis alerts.
type AlertRepo interface {
	Save(ctx context.Context, a crisis.Alert) error
	ByPlayer(ctx context.Context, playerID uuid.UUID, limit int) ([]crisis.Alert, error)
}
