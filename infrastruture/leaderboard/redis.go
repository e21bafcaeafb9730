// Package leaderboard ranks players by their best maze score.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/mindful-maze/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "maze:leaderboard"

	lockSuffix = ":submit_lock"
)

var ErrInvalidLimit = errors.New("limit must be positive")

// RedisLeaderboard keeps one member per player in a Redis sorted set.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	ttl    time.Duration
}

// NewRedisLeaderboard initializes a leaderboard stored under key. A positive
// ttl expires the whole board once it is idle that long.
func NewRedisLeaderboard(client *redis.Client, key string, ttl time.Duration) *RedisLeaderboard {
	if key == "" {
		key = DefaultKey
	}
	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		key:    key,
		ttl:    ttl,
	}
}

// Submit records score if it beats the player's current best.
func (rl *RedisLeaderboard) Submit(ctx context.Context, playerID uuid.UUID, score int) error {
	mutex := rl.locker.NewMutex(rl.key + lockSuffix)
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking leaderboard: %w", err)
	}
	defer func() {
		_, _ = mutex.Unlock()
	}()

	member := playerID.String()
	current, err := rl.client.ZScore(ctx, rl.key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return err
	case current >= float64(score):
		return nil
	}

	if err := rl.client.ZAdd(ctx, rl.key, redis.Z{Score: float64(score), Member: member}).Err(); err != nil {
		return err
	}

	if rl.ttl > 0 {
		_ = rl.client.Expire(ctx, rl.key, rl.ttl).Err()
	}
	return nil
}

// Top returns up to n entries, best first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int) ([]dmn.LeaderboardEntry, error) {
	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	rows, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]dmn.LeaderboardEntry, 0, len(rows))
	for _, z := range rows {
		member, _ := z.Member.(string)
		id, err := uuid.Parse(member)
		if err != nil {
			continue
		}
		entries = append(entries, dmn.LeaderboardEntry{
			Rank:     len(entries) + 1,
			PlayerID: id,
			Score:    int(z.Score),
		})
	}
	return entries, nil
}

// Count returns the number of ranked players.
func (rl *RedisLeaderboard) Count(ctx context.Context) int64 {
	return rl.client.ZCard(ctx, rl.key).Val()
}
