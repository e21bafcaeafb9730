package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/mindful-maze/maze"
)

// Direction is a player input.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
)

var (
	ErrInvalidDirection = errors.New("invalid direction")

	deltas = map[Direction]Delta{
		Up:    {DX: 0, DY: -1},
		Down:  {DX: 0, DY: 1},
		Left:  {DX: -1, DY: 0},
		Right: {DX: 1, DY: 0},
	}
)

// Delta is a single-cell displacement.
type Delta struct {
	DX int
	DY int
}

// ParseDirection converts user input into a Direction.
func ParseDirection(s string) (Direction, error) {
	d := Direction(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := deltas[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
	}
	return d, nil
}

// Delta returns the displacement for d and whether d is known.
func (d Direction) Delta() (Delta, bool) {
	delta, ok := deltas[d]
	return delta, ok
}

// Step computes the outcome of one move without touching the inputs. A move
// out of bounds or into a wall leaves the position unchanged and awards
// nothing. Otherwise the player moves, an uncollected collectible on the
// target is marked collected in the returned slice, and reaching the goal
// reports level completion. The level bonus is not part of points.
func Step(pos maze.Position, delta Delta, m *maze.Maze, collectibles []maze.Collectible) (maze.Position, []maze.Collectible, int, bool) {
	updated := copyCollectibles(collectibles)

	target := pos.Add(delta.DX, delta.DY)
	if m == nil || !m.IsOpen(target) {
		return pos, updated, 0, false
	}

	points := 0
	for i := range updated {
		if updated[i].Position() == target && !updated[i].Collected {
			updated[i].Collected = true
			points += maze.CalculatePoints(updated[i].Type)
		}
	}

	return target, updated, points, target == m.Goal()
}
