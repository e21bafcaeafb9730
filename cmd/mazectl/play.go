package main

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/mindful-maze/game"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	var (
		difficulty string
		theme      string
		seed       int64
		size       int
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := maze.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			t, err := game.ParseTheme(theme)
			if err != nil {
				return err
			}
			gen, err := newGenerator(size, seed)
			if err != nil {
				return err
			}
			g, err := game.New(gen, d, t)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newModel(g), tea.WithAltScreen(), tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&difficulty, "difficulty", "d", string(maze.Easy), "easy, medium or hard")
	cmd.Flags().StringVarP(&theme, "theme", "t", string(game.Calm), "calm, joy or focus")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed, 0 picks one from the clock")
	cmd.Flags().IntVar(&size, "size", maze.DefaultSize, "side length of the maze")
	return cmd
}

var themeColours = map[game.Theme]lipgloss.Color{
	game.Calm:  lipgloss.Color("99"),
	game.Joy:   lipgloss.Color("208"),
	game.Focus: lipgloss.Color("30"),
}

var itemGlyphs = map[maze.CollectibleType]string{
	maze.Star:    "★ ",
	maze.Crystal: "◆ ",
	maze.Heart:   "♥ ",
}

type styles struct {
	title  lipgloss.Style
	wall   lipgloss.Style
	player lipgloss.Style
	goal   lipgloss.Style
	item   lipgloss.Style
	status lipgloss.Style
}

func newStyles(t game.Theme) styles {
	accent := themeColours[t]
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		wall:   lipgloss.NewStyle().Foreground(accent),
		player: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		goal:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		item:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		status: lipgloss.NewStyle().Faint(true),
	}
}

// model is the bubbletea model for one terminal game.
type model struct {
	game   *game.Game
	styles styles
	help   help.Model
	status string
}

func newModel(g *game.Game) model {
	return model{
		game:   g,
		styles: newStyles(g.State().Theme),
		help:   help.New(),
		status: "Find your way to the bottom-right corner.",
	}
}

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Difficulty, Theme     key.Binding
	Quit                  key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Difficulty, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func (k keyMap) direction(msg tea.KeyMsg) (game.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return game.Up, true
	case key.Matches(msg, k.Down):
		return game.Down, true
	case key.Matches(msg, k.Left):
		return game.Left, true
	case key.Matches(msg, k.Right):
		return game.Right, true
	}
	return "", false
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Quit):
		return m, tea.Quit
	case key.Matches(km, keys.Difficulty):
		next := m.game.State().Difficulty.Next()
		if err := m.game.ChangeDifficulty(next); err == nil {
			m.status = fmt.Sprintf("Difficulty set to %s. New maze.", next)
		}
		return m, nil
	case key.Matches(km, keys.Theme):
		next := m.game.State().Theme.Next()
		if err := m.game.SetTheme(next); err == nil {
			m.styles = newStyles(next)
			m.status = fmt.Sprintf("Theme set to %s.", next)
		}
		return m, nil
	}

	dir, ok := keys.direction(km)
	if !ok {
		return m, nil
	}
	result, err := m.game.Move(dir)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = describe(result)
	return m, nil
}

func describe(r game.MoveResult) string {
	switch {
	case r.LevelCompleted:
		return fmt.Sprintf("Level %d complete! +%d bonus. Breathe, then begin the next maze.", r.CompletedLevel, r.LevelBonus)
	case r.Collected != nil:
		return fmt.Sprintf("Collected a %s (+%d).", r.Collected.Type, maze.CalculatePoints(r.Collected.Type))
	case !r.Moved:
		return "A wall. Take another path."
	default:
		return ""
	}
}

func (m model) View() string {
	s := m.game.Snapshot()
	st := s.State

	items := make(map[maze.Position]maze.CollectibleType, len(s.Collectibles))
	for _, c := range s.Collectibles {
		if !c.Collected {
			items[c.Position()] = c.Type
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("Mindful Maze"))
	b.WriteString(fmt.Sprintf("  level %d  score %d  %s  %s\n\n", st.Level, st.Score, st.Difficulty, st.Theme))

	goal := s.Maze.Goal()
	for y, row := range s.Maze.Grid {
		for x, cell := range row {
			p := maze.Position{X: x, Y: y}
			switch {
			case p == s.Player:
				b.WriteString(m.styles.player.Render("@ "))
			case cell == maze.Wall:
				b.WriteString(m.styles.wall.Render("██"))
			case p == goal:
				b.WriteString(m.styles.goal.Render("◎ "))
			default:
				if t, ok := items[p]; ok {
					b.WriteString(m.styles.item.Render(itemGlyphs[t]))
				} else {
					b.WriteString("· ")
				}
			}
		}
		b.WriteByte('\n')
	}

	b.WriteString("\n" + m.styles.status.Render(m.status) + "\n")
	b.WriteString(m.help.View(keys))
	b.WriteByte('\n')
	return b.String()
}
