package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is the value of a single grid square.
type Cell int

const (
	Open Cell = 0 // Open cells can be walked on.
	Wall Cell = 1 // Wall cells block movement.
)

// Position is a grid coordinate. X is the column and Y is the row, so a cell
// is addressed as Grid[Y][X].
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the position shifted by the given delta.
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Difficulty selects the wall density used when filling a maze.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var (
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	wallDensity = map[Difficulty]float64{
		Easy:   0.25,
		Medium: 0.35,
		Hard:   0.45,
	}
)

// Density returns the probability of a cell being generated as a wall.
func (d Difficulty) Density() float64 {
	return wallDensity[d]
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	_, ok := wallDensity[d]
	return ok
}

// ParseDifficulty converts user input into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Next cycles easy -> medium -> hard -> easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case Easy:
		return Medium
	case Medium:
		return Hard
	default:
		return Easy
	}
}
