package i

import (
	"context"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/google/uuid"
)

// SessionStore keeps live game sessions.
type SessionStore interface {
	Save(ctx context.Context, s *dmn.Session) error
	// ByID returns dmn.ErrSessionNotFound for unknown or expired sessions.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Lock acquires the per-session mutex. The returned func releases it.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}

// Leaderboard ranks players by their best score.
type Leaderboard interface {
	// Submit keeps the higher of score and the player's current entry.
	Submit(ctx context.Context, playerID uuid.UUID, score int) error
	Top(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error)
}
