/*
Package maze provides generation and validation of the square mazes used by
the Mindful Maze game.

A maze is a grid of open and wall cells. Generation fills the grid at random
according to a difficulty's wall density, repairs thick wall clusters and
isolated pockets, and only returns grids where the goal corner can be reached
from the start corner. Collectibles are scattered over four quadrant regions
on a best-effort basis.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultSize is the side length of the mazes served to players.
	DefaultSize = 10

	minMazeDimension = 6
	maxMazeDimension = 20

	maxAttempts = 100
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimension")

	// directions are tried in this order by the reachability search.
	directions = [4][2]int{
		{1, 0},  // right
		{0, 1},  // down
		{-1, 0}, // left
		{0, -1}, // up
	}

	defaultGenerator = mustDefaultGenerator()
)

// Maze is a square grid of open and wall cells.
type Maze struct {
	Size int      `json:"size"` // Side length of the grid.
	Grid [][]Cell `json:"grid"` // Grid[y][x].
}

func newMaze(size int) *Maze {
	grid := make([][]Cell, size)
	for y := range grid {
		grid[y] = make([]Cell, size)
	}
	return &Maze{Size: size, Grid: grid}
}

// Start returns the top-left corner the player starts on.
func (m *Maze) Start() Position {
	return Position{X: 0, Y: 0}
}

// Goal returns the bottom-right corner that completes a level.
func (m *Maze) Goal() Position {
	return Position{X: m.Size - 1, Y: m.Size - 1}
}

// InBound reports whether p lies inside the grid.
func (m *Maze) InBound(p Position) bool {
	return p.X >= 0 && p.X < m.Size && p.Y >= 0 && p.Y < m.Size
}

// IsOpen reports whether p is inside the grid and not a wall.
func (m *Maze) IsOpen(p Position) bool {
	return m.InBound(p) && m.Grid[p.Y][p.X] == Open
}

// Clone returns a deep copy of the maze.
func (m *Maze) Clone() *Maze {
	c := newMaze(m.Size)
	for y := range m.Grid {
		copy(c.Grid[y], m.Grid[y])
	}
	return c
}

// Generator builds mazes from its own random source. It is safe for
// concurrent use.
type Generator struct {
	size int
	rng  *rand.Rand
	sync.Mutex
}

// NewGenerator creates a generator for size×size mazes. A nil rng is replaced
// with a time-seeded source.
func NewGenerator(size int, rng *rand.Rand) (*Generator, error) {
	if size < minMazeDimension || size > maxMazeDimension {
		return nil, fmt.Errorf("%w: %d (want %d..%d)", ErrInvalidDimension, size, minMazeDimension, maxMazeDimension)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{size: size, rng: rng}, nil
}

func mustDefaultGenerator() *Generator {
	g, err := NewGenerator(DefaultSize, nil)
	if err != nil {
		panic(err)
	}
	return g
}

// Size returns the side length of the mazes produced by g.
func (g *Generator) Size() int {
	return g.size
}

// Generate returns a maze for the given difficulty using the package default
// generator.
func Generate(d Difficulty) *Maze {
	return defaultGenerator.Generate(d)
}

// Generate returns a maze whose start and goal are connected by open cells.
// After maxAttempts rejected grids it falls back to easy density. Unknown
// difficulties are treated as easy.
func (g *Generator) Generate(d Difficulty) *Maze {
	g.Lock()
	defer g.Unlock()

	if !d.Valid() {
		d = Easy
	}
	return g.generate(d.Density())
}

// generate must be called with g locked.
func (g *Generator) generate(density float64) *Maze {
	if m, ok := g.attempt(density); ok {
		return m
	}

	fallback := Easy.Density()
	m, ok := g.attempt(fallback)
	if !ok {
		carveCorridor(m)
	}
	return m
}

// attempt generates up to maxAttempts candidates and returns the first
// reachable one. On failure the last candidate is returned with ok=false.
func (g *Generator) attempt(density float64) (m *Maze, ok bool) {
	for i := 0; i < maxAttempts; i++ {
		m = g.candidate(density)
		if Reachable(m) {
			return m, true
		}
	}
	return m, false
}

// candidate runs one fill-and-repair pass.
func (g *Generator) candidate(density float64) *Maze {
	m := newMaze(g.size)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if g.rng.Float64() > density {
				m.Grid[y][x] = Open
			} else {
				m.Grid[y][x] = Wall
			}
		}
	}

	clearCorners(m)
	optimizePath(m)
	g.ensureMinimumPathWidth(m)
	return m
}

// clearCorners opens the 2×2 start and goal blocks.
func clearCorners(m *Maze) {
	n := m.Size
	for _, p := range []Position{
		{0, 0}, {1, 0}, {0, 1}, {1, 1},
		{n - 1, n - 1}, {n - 2, n - 1}, {n - 1, n - 2}, {n - 2, n - 2},
	} {
		m.Grid[p.Y][p.X] = Open
	}
}

// optimizePath breaks up wall clusters: a wall with walls directly above and
// to its left is opened. The scan is row-major and sees its own edits.
func optimizePath(m *Maze) {
	for y := 2; y < m.Size; y++ {
		for x := 2; x < m.Size; x++ {
			if m.Grid[y][x] == Wall && m.Grid[y][x-1] == Wall && m.Grid[y-1][x] == Wall {
				m.Grid[y][x] = Open
			}
		}
	}
}

// ensureMinimumPathWidth opens a random neighbour of every interior open cell
// that is boxed in on all four sides.
func (g *Generator) ensureMinimumPathWidth(m *Maze) {
	for y := 1; y < m.Size-1; y++ {
		for x := 1; x < m.Size-1; x++ {
			if m.Grid[y][x] != Open {
				continue
			}

			adjacent := [4]Position{{x, y - 1}, {x, y + 1}, {x - 1, y}, {x + 1, y}}
			boxed := true
			for _, a := range adjacent {
				if m.Grid[a.Y][a.X] == Open {
					boxed = false
					break
				}
			}

			if boxed {
				a := adjacent[g.rng.Intn(len(adjacent))]
				m.Grid[a.Y][a.X] = Open
			}
		}
	}
}

// carveCorridor opens the top row and the right column, which always links
// the start to the goal.
func carveCorridor(m *Maze) {
	for i := 0; i < m.Size; i++ {
		m.Grid[0][i] = Open
		m.Grid[i][m.Size-1] = Open
	}
}

// Reachable reports whether an open 4-directional path connects the start
// and the goal. It uses an explicit stack so deep grids cannot exhaust the
// goroutine stack.
func Reachable(m *Maze) bool {
	if m == nil || m.Size == 0 || !m.IsOpen(m.Start()) {
		return false
	}

	goal := m.Goal()
	visited := make([][]bool, m.Size)
	for y := range visited {
		visited[y] = make([]bool, m.Size)
	}

	stack := []Position{m.Start()}
	visited[0][0] = true
	for len(stack) > 0 {
		cur := pop(&stack)
		if cur == goal {
			return true
		}

		// Push in reverse so the first direction is explored first.
		for i := len(directions) - 1; i >= 0; i-- {
			next := cur.Add(directions[i][0], directions[i][1])
			if m.IsOpen(next) && !visited[next.Y][next.X] {
				visited[next.Y][next.X] = true
				stack = append(stack, next)
			}
		}
	}

	return false
}

// pop removes and returns the last element of a stack of positions.
func pop(s *[]Position) Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}

// String provides a textual representation of the maze. Walls are drawn as
// '#', open cells as '.', the start as 'S' and the goal as 'G'.
func (m *Maze) String() string {
	var b strings.Builder

	b.WriteString("+" + strings.Repeat("-", m.Size) + "+\n")
	for y := 0; y < m.Size; y++ {
		b.WriteByte('|')
		for x := 0; x < m.Size; x++ {
			p := Position{X: x, Y: y}
			switch {
			case p == m.Start():
				b.WriteByte('S')
			case p == m.Goal():
				b.WriteByte('G')
			case m.Grid[y][x] == Wall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	b.WriteString("+" + strings.Repeat("-", m.Size) + "+\n")

	return b.String()
}
