package game

import "github.com/beka-birhanu/mindful-maze/maze"

// MazeGenerator defines the methods a game needs to build new levels.
type MazeGenerator interface {
	Generate(d maze.Difficulty) *maze.Maze
	Collectibles(m *maze.Maze) []maze.Collectible
}
