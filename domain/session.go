package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionBusy     = errors.New("session is busy")
)

// Session is a player-owned maze game as it is kept in the session store.
type Session struct {
	ID        uuid.UUID     `json:"id"`
	PlayerID  uuid.UUID     `json:"player_id"`
	Game      game.Snapshot `json:"game"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// OwnedBy reports whether the session belongs to playerID.
func (s *Session) OwnedBy(playerID uuid.UUID) bool {
	return s != nil && s.PlayerID == playerID
}

// LevelRecord is a finished level in a player's history.
type LevelRecord struct {
	ID          uuid.UUID       `json:"id" bson:"_id"`
	PlayerID    uuid.UUID       `json:"player_id" bson:"playerID"`
	SessionID   uuid.UUID       `json:"session_id" bson:"sessionID"`
	Level       int             `json:"level" bson:"level"`
	Difficulty  maze.Difficulty `json:"difficulty" bson:"difficulty"`
	Bonus       int             `json:"bonus" bson:"bonus"`
	Score       int             `json:"score" bson:"score"`
	Moves       int64           `json:"moves" bson:"moves"`
	CompletedAt time.Time       `json:"completed_at" bson:"completedAt"`
}

// LeaderboardEntry is one row of the best-score table.
type LeaderboardEntry struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"player_id"`
	Score    int       `json:"score"`
}
