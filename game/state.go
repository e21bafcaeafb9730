package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/mindful-maze/maze"
)

// Theme selects the colour palette a client renders the maze with.
type Theme string

const (
	Calm  Theme = "calm"
	Joy   Theme = "joy"
	Focus Theme = "focus"
)

// Phase is the state of the movement state machine.
type Phase string

const (
	Navigating    Phase = "navigating"
	LevelComplete Phase = "level-complete-transition"
)

var ErrInvalidTheme = errors.New("invalid theme")

// ParseTheme converts user input into a Theme.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case Calm, Joy, Focus:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Next cycles calm -> joy -> focus -> calm.
func (t Theme) Next() Theme {
	switch t {
	case Calm:
		return Joy
	case Joy:
		return Focus
	default:
		return Calm
	}
}

// State is the player's progress. Score never decreases and Level starts at 1.
type State struct {
	Score      int             `json:"score"`
	Level      int             `json:"level"`
	Difficulty maze.Difficulty `json:"difficulty"`
	Theme      Theme           `json:"theme"`
}

// Snapshot is a self-contained copy of a game, suitable for encoding and for
// rebuilding the game with Restore.
type Snapshot struct {
	State        State              `json:"state"`
	Phase        Phase              `json:"phase"`
	Player       maze.Position      `json:"player"`
	Maze         *maze.Maze         `json:"maze"`
	Collectibles []maze.Collectible `json:"collectibles"`
	Moves        int64              `json:"moves"`
}

// Remaining returns the number of collectibles not yet picked up.
func (s Snapshot) Remaining() int {
	n := 0
	for _, c := range s.Collectibles {
		if !c.Collected {
			n++
		}
	}
	return n
}

func copyCollectibles(cs []maze.Collectible) []maze.Collectible {
	out := make([]maze.Collectible, len(cs))
	copy(out, cs)
	return out
}
