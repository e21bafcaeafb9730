// Package gameapi exposes maze sessions over HTTP.
package gameapi

import (
	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/google/uuid"
)

// NewSessionRequest starts a session. Empty fields fall back to easy and calm.
type NewSessionRequest struct {
	Difficulty string `json:"difficulty"`
	Theme      string `json:"theme"`
}

type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

type DifficultyRequest struct {
	Difficulty string `json:"difficulty" binding:"required"`
}

type ThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SessionResponse is a session as the client sees it.
type SessionResponse struct {
	ID           uuid.UUID          `json:"id"`
	State        game.State         `json:"state"`
	Phase        game.Phase         `json:"phase"`
	Player       maze.Position      `json:"player"`
	Size         int                `json:"size"`
	Grid         [][]maze.Cell      `json:"grid"`
	Collectibles []maze.Collectible `json:"collectibles"`
	Remaining    int                `json:"remaining"`
	Moves        int64              `json:"moves"`
}

type MoveResponse struct {
	Result  game.MoveResult `json:"result"`
	Session SessionResponse `json:"session"`
}

func toSessionResponse(s *dmn.Session) SessionResponse {
	r := SessionResponse{
		ID:           s.ID,
		State:        s.Game.State,
		Phase:        s.Game.Phase,
		Player:       s.Game.Player,
		Collectibles: s.Game.Collectibles,
		Remaining:    s.Game.Remaining(),
		Moves:        s.Game.Moves,
	}
	if s.Game.Maze != nil {
		r.Size = s.Game.Maze.Size
		r.Grid = s.Game.Maze.Grid
	}
	return r
}
