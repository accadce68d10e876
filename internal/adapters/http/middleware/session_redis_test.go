package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis keeps string values in a map and records the last TTL.
type fakeRedis struct {
	data    map[string]string
	lastTTL time.Duration
	err     error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

// Get returns a stored value or redis.Nil.
// PRE: key is non-empty
// POST: Returns a StringCmd carrying the value or an error
func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.lastTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client)

	token, err := CreateSession(ctx, store, 11, "agency@hotel.test", "travel_company")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, ok := client.data["session:"+token]; !ok {
		t.Fatalf("key session:%s not written; keys=%v", token, client.data)
	}
	if client.lastTTL != SessionTTL {
		t.Errorf("ttl = %v, want %v", client.lastTTL, SessionTTL)
	}

	got, err := store.Get(ctx, token)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != 11 || got.Role != "travel_company" {
		t.Errorf("session = %+v", got)
	}

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := store.Get(ctx, token); !errors.Is(err, ErrNoSession) {
		t.Errorf("err = %v, want ErrNoSession", err)
	}
}

func TestRedisStore_Faults(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewRedisStore(client)

	client.data["session:garbled"] = "{not json"
	if _, err := store.Get(ctx, "garbled"); err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("garbled value err = %v, want decode error", err)
	}

	client.err = errors.New("connection refused")
	if _, err := store.Get(ctx, "any"); err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("Get fault err = %v, want wrapped fault", err)
	}
	if err := store.Set(ctx, "any", Session{}); err == nil {
		t.Error("Set fault swallowed")
	}
	if err := store.Destroy(ctx, "any"); err == nil {
		t.Error("Destroy fault swallowed")
	}
}
