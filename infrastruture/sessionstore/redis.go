// Package sessionstore keeps live maze sessions in Redis or in memory.
package sessionstore

import (
	"context"
	"encoding/json"
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
	keyPrefix  = "maze:session:"
	lockSuffix = ":lock"

	lockExpiry = 5 * time.Second
	lockTries  = 20
)

// RedisStore stores sessions as JSON values that expire after ttl of
// inactivity. Locks are redsync mutexes so several API replicas share them.
type RedisStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisStore initializes a RedisStore with the provided Redis client and TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	pool := goredis.NewPool(client)
	return &RedisStore{
		client: client,
		locker: redsync.New(pool),
		ttl:    ttl,
	}
}

func key(id uuid.UUID) string {
	return keyPrefix + id.String()
}

// Save writes s and refreshes its expiry.
func (r *RedisStore) Save(ctx context.Context, s *dmn.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return r.client.Set(ctx, key(s.ID), payload, r.ttl).Err()
}

// ByID loads a session.
func (r *RedisStore) ByID(ctx context.Context, id uuid.UUID) (*dmn.Session, error) {
	payload, err := r.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dmn.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s dmn.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &s, nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (r *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	return r.client.Del(ctx, key(id)).Err()
}

// Lock acquires the distributed mutex for one session.
func (r *RedisStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := r.locker.NewMutex(key(id)+lockSuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", dmn.ErrSessionBusy, err)
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
