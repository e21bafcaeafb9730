package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGenerateCmd(t *testing.T) {
	t.Run("seeded output is reproducible", func(t *testing.T) {
		first, err := runCmd(t, "generate", "--difficulty", "hard", "--seed", "42")
		require.NoError(t, err)
		second, err := runCmd(t, "generate", "--difficulty", "hard", "--seed", "42")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.True(t, strings.HasPrefix(first, "hard maze, 10x10\n"))
		assert.Contains(t, first, "|S")
		assert.Contains(t, first, "G|")
	})

	t.Run("custom size", func(t *testing.T) {
		out, err := runCmd(t, "generate", "--size", "12", "--seed", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "+"+strings.Repeat("-", 12)+"+")
	})

	t.Run("invalid difficulty", func(t *testing.T) {
		_, err := runCmd(t, "generate", "--difficulty", "nightmare")
		assert.ErrorIs(t, err, maze.ErrInvalidDifficulty)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := runCmd(t, "generate", "--size", "3")
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)
	})
}

func TestPlayCmd_InvalidTheme(t *testing.T) {
	_, err := runCmd(t, "play", "--theme", "gloomy")
	assert.ErrorIs(t, err, game.ErrInvalidTheme)
}

func newTestModel(t *testing.T) model {
	t.Helper()
	gen, err := newGenerator(maze.DefaultSize, 3)
	require.NoError(t, err)
	g, err := game.New(gen, maze.Easy, game.Calm)
	require.NoError(t, err)
	return newModel(g)
}

func press(m model, key tea.KeyMsg) (model, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Move(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, maze.Position{X: 1, Y: 0}, m.game.Snapshot().Player)

	m, _ = press(m, runes("h"))
	assert.Equal(t, maze.Position{X: 0, Y: 0}, m.game.Snapshot().Player)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, "A wall. Take another path.", m.status)
}

func TestModel_CycleDifficultyAndTheme(t *testing.T) {
	m := newTestModel(t)

	m, _ = press(m, runes("d"))
	assert.Equal(t, maze.Medium, m.game.State().Difficulty)

	m, _ = press(m, runes("t"))
	assert.Equal(t, game.Joy, m.game.State().Theme)
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)
	_, cmd := press(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_View(t *testing.T) {
	view := newTestModel(t).View()
	assert.Contains(t, view, "Mindful Maze")
	assert.Contains(t, view, "level 1")
	assert.Contains(t, view, "@")
	assert.Equal(t, maze.DefaultSize, strings.Count(view, "\n")-5)
}
