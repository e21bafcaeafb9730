package service

import (
	"context"
	"errors"
	"sync"

	"github.com/beka-birhanu/mindful-maze/crisis"
	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/beka-birhanu/mindful-maze/maze"
	"github.com/google/uuid"
)

// openGenerator returns all-open mazes with one star next to the start.
type openGenerator struct{ size int }

func (o openGenerator) Generate(maze.Difficulty) *maze.Maze {
	m := &maze.Maze{Size: o.size, Grid: make([][]maze.Cell, o.size)}
	for y := range m.Grid {
		m.Grid[y] = make([]maze.Cell, o.size)
	}
	return m
}

func (o openGenerator) Collectibles(*maze.Maze) []maze.Collectible {
	return []maze.Collectible{{X: 1, Y: 0, Type: maze.Star}}
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type fakeHistory struct {
	records []dmn.LevelRecord
	err     error
	sync.Mutex
}

func (f *fakeHistory) Record(_ context.Context, r dmn.LevelRecord) error {
	f.Lock()
	defer f.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, r)
	return nil
}

func (f *fakeHistory) ByPlayer(_ context.Context, playerID uuid.UUID, limit int) ([]dmn.LevelRecord, error) {
	f.Lock()
	defer f.Unlock()
	out := []dmn.LevelRecord{}
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		if f.records[i].PlayerID == playerID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}

type fakePlayers struct {
	byName map[string]*dmn.Player
	best   map[uuid.UUID]int
	err    error
	sync.Mutex
}

func newFakePlayers() *fakePlayers {
	return &fakePlayers{byName: map[string]*dmn.Player{}, best: map[uuid.UUID]int{}}
}

func (f *fakePlayers) Save(_ context.Context, p *dmn.Player) error {
	f.Lock()
	defer f.Unlock()
	f.byName[p.Username] = p
	return nil
}

func (f *fakePlayers) ByID(_ context.Context, id uuid.UUID) (*dmn.Player, error) {
	f.Lock()
	defer f.Unlock()
	for _, p := range f.byName {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, dmn.ErrPlayerNotFound
}

func (f *fakePlayers) ByUsername(_ context.Context, username string) (*dmn.Player, error) {
	f.Lock()
	defer f.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if p, ok := f.byName[username]; ok {
		return p, nil
	}
	return nil, dmn.ErrPlayerNotFound
}

func (f *fakePlayers) RaiseBestScore(_ context.Context, id uuid.UUID, score int) error {
	f.Lock()
	defer f.Unlock()
	if score > f.best[id] {
		f.best[id] = score
	}
	return nil
}

type fakeAlerts struct {
	saved []crisis.Alert
	fail  bool
}

func (f *fakeAlerts) Save(_ context.Context, a crisis.Alert) error {
	if f.fail {
		return errors.New("mongo down")
	}
	f.saved = append(f.saved, a)
	return nil
}

func (f *fakeAlerts) ByPlayer(_ context.Context, playerID uuid.UUID, limit int) ([]crisis.Alert, error) {
	out := []crisis.Alert{}
	for _, a := range f.saved {
		if a.PlayerID == playerID && len(out) < limit {
			out = append(out, a)
		}
	}
	return out, nil
}
