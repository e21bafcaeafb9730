package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/beka-birhanu/mindful-maze/service/i"
	"github.com/google/uuid"
)

const (
	DefaultListLimit = 10
	MaxListLimit     = 100
)

var ErrMissingDependency = errors.New("missing dependency")

// GameSessionManager keeps one maze game per session in a SessionStore and
// applies player inputs to it one at a time.
type GameSessionManager struct {
	store       i.SessionStore
	leaderboard i.Leaderboard
	history     i.LevelHistory
	players     i.PlayerRepo
	generator   game.MazeGenerator
	logger      i.Logger
	now         func() time.Time
}

type Config struct {
	Store       i.SessionStore
	Leaderboard i.Leaderboard
	History     i.LevelHistory
	Players     i.PlayerRepo // Optional. Best scores are mirrored to it when set.
	Generator   game.MazeGenerator
	Logger      i.Logger
}

func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	switch {
	case c.Store == nil:
		return nil, fmt.Errorf("%w: session store", ErrMissingDependency)
	case c.Leaderboard == nil:
		return nil, fmt.Errorf("%w: leaderboard", ErrMissingDependency)
	case c.History == nil:
		return nil, fmt.Errorf("%w: level history", ErrMissingDependency)
	case c.Generator == nil:
		return nil, fmt.Errorf("%w: maze generator", ErrMissingDependency)
	case c.Logger == nil:
		return nil, fmt.Errorf("%w: logger", ErrMissingDependency)
	}

	return &GameSessionManager{
		store:       c.Store,
		leaderboard: c.Leaderboard,
		history:     c.History,
		players:     c.Players,
		generator:   c.Generator,
		logger:      c.Logger,
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}

// NewSession starts a level-1 game for playerID.
func (g *GameSessionManager) NewSession(ctx context.Context, playerID uuid.UUID, d maze.Difficulty, t game.Theme) (*dmn.Session, error) {
	gm, err := game.New(g.generator, d, t)
	if err != nil {
		return nil, err
	}

	now := g.now()
	s := &dmn.Session{
		ID:        uuid.New(),
		PlayerID:  playerID,
		Game:      gm.Snapshot(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.store.Save(ctx, s); err != nil {
		g.logger.Error(fmt.Sprintf("saving new session for player %s: %v", playerID, err))
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("started %s session %s for player %s", d, s.ID, playerID))
	return s, nil
}

// Session returns the session if playerID owns it.
func (g *GameSessionManager) Session(ctx context.Context, playerID, sessionID uuid.UUID) (*dmn.Session, error) {
	return g.load(ctx, playerID, sessionID)
}

func (g *GameSessionManager) load(ctx context.Context, playerID, sessionID uuid.UUID) (*dmn.Session, error) {
	s, err := g.store.ByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.OwnedBy(playerID) {
		return nil, dmn.ErrSessionNotFound
	}
	return s, nil
}

// mutate runs fn on the restored game under the session lock and saves the
// result. Nothing is saved when fn fails.
func (g *GameSessionManager) mutate(ctx context.Context, playerID, sessionID uuid.UUID, fn func(*game.Game) error) (*dmn.Session, error) {
	unlock, err := g.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := g.load(ctx, playerID, sessionID)
	if err != nil {
		return nil, err
	}

	gm, err := game.Restore(g.generator, s.Game)
	if err != nil {
		g.logger.Error(fmt.Sprintf("restoring session %s: %v", sessionID, err))
		return nil, err
	}

	if err := fn(gm); err != nil {
		return nil, err
	}

	s.Game = gm.Snapshot()
	s.UpdatedAt = g.now()
	if err := g.store.Save(ctx, s); err != nil {
		g.logger.Error(fmt.Sprintf("saving session %s: %v", sessionID, err))
		return nil, err
	}
	return s, nil
}

// Move applies one directional input. Bumping into a wall is not an error.
func (g *GameSessionManager) Move(ctx context.Context, playerID, sessionID uuid.UUID, dir game.Direction) (game.MoveResult, *dmn.Session, error) {
	var result game.MoveResult
	s, err := g.mutate(ctx, playerID, sessionID, func(gm *game.Game) error {
		var err error
		result, err = gm.Move(dir)
		return err
	})
	if err != nil {
		return game.MoveResult{}, nil, err
	}

	if result.LevelCompleted {
		g.recordLevel(ctx, s, result)
	}
	return result, s, nil
}

// recordLevel stores a finished level and the new score. Failures are logged
// only; the move itself is already saved.
func (g *GameSessionManager) recordLevel(ctx context.Context, s *dmn.Session, result game.MoveResult) {
	rec := dmn.LevelRecord{
		ID:          uuid.New(),
		PlayerID:    s.PlayerID,
		SessionID:   s.ID,
		Level:       result.CompletedLevel,
		Difficulty:  s.Game.State.Difficulty,
		Bonus:       result.LevelBonus,
		Score:       s.Game.State.Score,
		Moves:       s.Game.Moves,
		CompletedAt: g.now(),
	}
	if err := g.history.Record(ctx, rec); err != nil {
		g.logger.Warning(fmt.Sprintf("recording level %d of session %s: %v", rec.Level, s.ID, err))
	}
	g.submitScore(ctx, s.PlayerID, s.Game.State.Score)

	g.logger.Info(fmt.Sprintf("player %s completed level %d with score %d", s.PlayerID, rec.Level, rec.Score))
}

func (g *GameSessionManager) submitScore(ctx context.Context, playerID uuid.UUID, score int) {
	if err := g.leaderboard.Submit(ctx, playerID, score); err != nil {
		g.logger.Warning(fmt.Sprintf("submitting score for player %s: %v", playerID, err))
	}
	if g.players == nil {
		return
	}
	if err := g.players.RaiseBestScore(ctx, playerID, score); err != nil {
		g.logger.Warning(fmt.Sprintf("raising best score for player %s: %v", playerID, err))
	}
}

// ChangeDifficulty regenerates the current level at d. Score and level are kept.
func (g *GameSessionManager) ChangeDifficulty(ctx context.Context, playerID, sessionID uuid.UUID, d maze.Difficulty) (*dmn.Session, error) {
	return g.mutate(ctx, playerID, sessionID, func(gm *game.Game) error {
		return gm.ChangeDifficulty(d)
	})
}

func (g *GameSessionManager) ChangeTheme(ctx context.Context, playerID, sessionID uuid.UUID, t game.Theme) (*dmn.Session, error) {
	return g.mutate(ctx, playerID, sessionID, func(gm *game.Game) error {
		return gm.SetTheme(t)
	})
}

// EndSession submits the final score and removes the session.
func (g *GameSessionManager) EndSession(ctx context.Context, playerID, sessionID uuid.UUID) error {
	unlock, err := g.store.Lock(ctx, sessionID)
	if err != nil {
		return err
	}
	defer unlock()

	s, err := g.load(ctx, playerID, sessionID)
	if err != nil {
		return err
	}

	if s.Game.State.Score > 0 {
		g.submitScore(ctx, playerID, s.Game.State.Score)
	}
	if err := g.store.Delete(ctx, sessionID); err != nil {
		g.logger.Error(fmt.Sprintf("deleting session %s: %v", sessionID, err))
		return err
	}

	g.logger.Info(fmt.Sprintf("ended session %s for player %s", sessionID, playerID))
	return nil
}

func (g *GameSessionManager) Leaderboard(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error) {
	return g.leaderboard.Top(ctx, clampLimit(n))
}

func (g *GameSessionManager) History(ctx context.Context, playerID uuid.UUID, n int) ([]dmn.LevelRecord, error) {
	return g.history.ByPlayer(ctx, playerID, clampLimit(n))
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultListLimit
	case n > MaxListLimit:
		return MaxListLimit
	}
	return n
}
