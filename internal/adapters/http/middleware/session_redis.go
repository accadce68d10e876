package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix    = "session:"
	defaultRedisTimeout = 5 * time.Second
)

// redisClient is the subset of *redis.Client used by RedisStore.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps sessions in Redis as JSON with a TTL, so they survive restarts
// and are shared between instances.
// Key format: session:<token>
type RedisStore struct {
	client redisClient
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore wrapping the given client.
func NewRedisStore(client redisClient) *RedisStore {
	return &RedisStore{client: client, ttl: SessionTTL}
}

// ConnectRedis initialises a Redis client and validates connectivity with a ping.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	pingCtx, cancel := context.WithTimeout(ctx, defaultRedisTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Get loads and decodes a session.
// PRE: token is non-empty
// POST: Returns ErrNoSession for a missing or expired key, a wrapped error on faults
func (rs *RedisStore) Get(ctx context.Context, token string) (Session, error) {
	raw, err := rs.client.Get(ctx, rs.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, ErrNoSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("session get: %w", err)
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return Session{}, fmt.Errorf("session decode: %w", err)
	}
	return session, nil
}

// Set encodes and stores a session with the store TTL.
func (rs *RedisStore) Set(ctx context.Context, token string, session Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := rs.client.Set(ctx, rs.key(token), raw, rs.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

// Destroy deletes a session. Unknown tokens are ignored.
func (rs *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := rs.client.Del(ctx, rs.key(token)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (rs *RedisStore) key(token string) string {
	return sessionKeyPrefix + token
}
