package game

import (
	"errors"
	"fmt"
	"sync"

	"github.com/beka-birhanu/mindful-maze/maze"
)

// Game-related errors.
var (
	ErrNilGenerator    = errors.New("maze generator is required")
	ErrInvalidSnapshot = errors.New("invalid game snapshot")
)

const startLevel = 1

// MoveResult describes what a single input did.
type MoveResult struct {
	Direction      Direction         `json:"direction"`
	From           maze.Position     `json:"from"`
	To             maze.Position     `json:"to"`
	Moved          bool              `json:"moved"`                     // False when the input bumped into a wall or edge.
	Collected      *maze.Collectible `json:"collected,omitempty"`       // Item picked up by this move, if any.
	Points         int               `json:"points"`                    // Collectible points plus any level bonus.
	LevelCompleted bool              `json:"level_completed"`           // True when the goal was reached.
	CompletedLevel int               `json:"completed_level,omitempty"` // Level number that was just finished.
	LevelBonus     int               `json:"level_bonus,omitempty"`     // Bonus awarded for finishing it.
}

// Game is a single-player maze game. It owns the maze, the player position,
// the collectibles and the progress state, and applies inputs one at a time.
type Game struct {
	generator    MazeGenerator      // Source of new levels.
	maze         *maze.Maze         // Current level.
	player       maze.Position      // Player location on the current level.
	collectibles []maze.Collectible // Items placed on the current level.
	state        State              // Score, level, difficulty and theme.
	phase        Phase              // Navigating, or mid level transition.
	moves        int64              // Accepted moves since the game started.
	sync.RWMutex                    // Serialises inputs.
}

// New starts a game at level 1 with a freshly generated maze.
func New(gen MazeGenerator, d maze.Difficulty, t Theme) (*Game, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", maze.ErrInvalidDifficulty, d)
	}
	if _, err := ParseTheme(string(t)); err != nil {
		return nil, err
	}

	g := &Game{
		generator: gen,
		state: State{
			Level:      startLevel,
			Difficulty: d,
			Theme:      t,
		},
	}
	g.newLevel()
	return g, nil
}

// Restore rebuilds a game from a snapshot taken with Snapshot.
func Restore(gen MazeGenerator, s Snapshot) (*Game, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}

	switch {
	case s.Maze == nil || s.Maze.Size == 0 || len(s.Maze.Grid) != s.Maze.Size:
		return nil, fmt.Errorf("%w: missing maze", ErrInvalidSnapshot)
	case !s.Maze.IsOpen(s.Player):
		return nil, fmt.Errorf("%w: player at %v is not on an open cell", ErrInvalidSnapshot, s.Player)
	case s.State.Level < startLevel || s.State.Score < 0:
		return nil, fmt.Errorf("%w: level %d score %d", ErrInvalidSnapshot, s.State.Level, s.State.Score)
	case !s.State.Difficulty.Valid():
		return nil, fmt.Errorf("%w: difficulty %q", ErrInvalidSnapshot, s.State.Difficulty)
	}
	if _, err := ParseTheme(string(s.State.Theme)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSnapshot, err)
	}

	return &Game{
		generator:    gen,
		maze:         s.Maze.Clone(),
		player:       s.Player,
		collectibles: copyCollectibles(s.Collectibles),
		state:        s.State,
		phase:        Navigating,
		moves:        s.Moves,
	}, nil
}

// newLevel generates a maze and collectibles for the current difficulty and
// puts the player back on the start cell. Must be called with g locked.
func (g *Game) newLevel() {
	g.maze = g.generator.Generate(g.state.Difficulty)
	g.collectibles = g.generator.Collectibles(g.maze)
	if g.collectibles == nil {
		g.collectibles = []maze.Collectible{}
	}
	g.player = g.maze.Start()
	g.phase = Navigating
}

// Move applies one directional input. Bumping into a wall or the edge is not
// an error: the result simply reports Moved=false. Reaching the goal awards
// the level bonus, advances the level and swaps in a new maze before Move
// returns.
func (g *Game) Move(dir Direction) (MoveResult, error) {
	delta, ok := dir.Delta()
	if !ok {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}

	g.Lock()
	defer g.Unlock()

	result := MoveResult{Direction: dir, From: g.player, To: g.player}
	to, updated, points, completed := Step(g.player, delta, g.maze, g.collectibles)
	if to == g.player {
		return result, nil
	}

	for i := range updated {
		if updated[i].Collected && !g.collectibles[i].Collected {
			c := updated[i]
			result.Collected = &c
		}
	}

	g.player = to
	g.collectibles = updated
	g.state.Score += points
	g.moves++

	result.To = to
	result.Moved = true
	result.Points = points

	if completed {
		g.phase = LevelComplete
		bonus := maze.LevelBonus(g.state.Level)
		g.state.Score += bonus

		result.LevelCompleted = true
		result.CompletedLevel = g.state.Level
		result.LevelBonus = bonus
		result.Points += bonus

		g.state.Level++
		g.newLevel()
	}

	return result, nil
}

// ChangeDifficulty switches difficulty and regenerates the current level.
// Score and level are kept.
func (g *Game) ChangeDifficulty(d maze.Difficulty) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %q", maze.ErrInvalidDifficulty, d)
	}

	g.Lock()
	defer g.Unlock()

	g.state.Difficulty = d
	g.newLevel()
	return nil
}

// SetTheme changes the palette only.
func (g *Game) SetTheme(t Theme) error {
	if _, err := ParseTheme(string(t)); err != nil {
		return err
	}

	g.Lock()
	defer g.Unlock()

	g.state.Theme = t
	return nil
}

// State returns the current progress.
func (g *Game) State() State {
	g.RLock()
	defer g.RUnlock()
	return g.state
}

// Snapshot returns a deep copy of the game.
func (g *Game) Snapshot() Snapshot {
	g.RLock()
	defer g.RUnlock()

	return Snapshot{
		State:        g.state,
		Phase:        g.phase,
		Player:       g.player,
		Maze:         g.maze.Clone(),
		Collectibles: copyCollectibles(g.collectibles),
		Moves:        g.moves,
	}
}
