package leaderboard

import (
	"context"
	"sort"
	"sync"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/google/uuid"
)

// MemoryLeaderboard is a single-process leaderboard.
type MemoryLeaderboard struct {
	best map[uuid.UUID]int
	sync.RWMutex
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{best: make(map[uuid.UUID]int)}
}

func (ml *MemoryLeaderboard) Submit(_ context.Context, playerID uuid.UUID, score int) error {
	ml.Lock()
	defer ml.Unlock()
	if current, ok := ml.best[playerID]; !ok || score > current {
		ml.best[playerID] = score
	}
	return nil
}

// Top returns up to n entries, best first. Ties are ordered by player ID.
func (ml *MemoryLeaderboard) Top(_ context.Context, n int) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	ml.RLock()
	entries := make([]dmn.LeaderboardEntry, 0, len(ml.best))
	for id, score := range ml.best {
		entries = append(entries, dmn.LeaderboardEntry{PlayerID: id, Score: score})
	}
	ml.RUnlock()

	sort.Slice(entries, func(a, b int) bool {
		if entries[a].Score != entries[b].Score {
			return entries[a].Score > entries[b].Score
		}
		return entries[a].PlayerID.String() > entries[b].PlayerID.String()
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
