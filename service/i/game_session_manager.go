package i

import (
	"context"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/google/uuid"
)

// GameSessionManager manages player-owned maze sessions. Every call takes the
// caller's player ID; sessions owned by someone else are reported as
// dmn.ErrSessionNotFound.
type GameSessionManager interface {
	NewSession(ctx context.Context, playerID uuid.UUID, d maze.Difficulty, t game.Theme) (*dmn.Session, error)
	Session(ctx context.Context, playerID, sessionID uuid.UUID) (*dmn.Session, error)
	Move(ctx context.Context, playerID, sessionID uuid.UUID, dir game.Direction) (game.MoveResult, *dmn.Session, error)
	ChangeDifficulty(ctx context.Context, playerID, sessionID uuid.UUID, d maze.Difficulty) (*dmn.Session, error)
	ChangeTheme(ctx context.Context, playerID, sessionID uuid.UUID, t game.Theme) (*dmn.Session, error)
	EndSession(ctx context.Context, playerID, sessionID uuid.UUID) error
	Leaderboard(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error)
	History(ctx context.Context, playerID uuid.UUID, n int) ([]dmn.LevelRecord, error)
}
