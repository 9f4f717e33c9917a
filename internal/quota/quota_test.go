package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeStore counts increments in memory and records Expire calls.
type fakeStore struct {
	counts  map[string]int64
	expires map[string]int
	incrErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{counts: map[string]int64{}, expires: map[string]int{}}
}

func (f *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.incrErr != nil {
		return redis.NewIntResult(0, f.incrErr)
	}
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeStore) Expire(_ context.Context, key string, _ time.Duration) *redis.BoolCmd {
	f.expires[key]++
	return redis.NewBoolResult(true, nil)
}

func TestLimiter_DisabledAlwaysAllows(t *testing.T) {
	for _, l := range []*Limiter{
		NewLimiter(nil, 0),
		NewLimiter(nil, 10),
		NewLimiterWithStore(newFakeStore(), 0),
	} {
		if l.Enabled() {
			t.Fatal("limiter must be disabled without backend and limit")
		}
		ok, err := l.Allow(context.Background(), "10.0.0.1")
		if err != nil || !ok {
			t.Fatalf("disabled limiter must allow, got ok=%v err=%v", ok, err)
		}
	}
}

func TestLimiter_AllowsWithinLimit(t *testing.T) {
	store := newFakeStore()
	l := NewLimiterWithStore(store, 2)

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(context.Background(), "10.0.0.1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			t.Fatalf("request %d should be within the allowance", i+1)
		}
	}
}

func TestLimiter_DeniesOverLimit(t *testing.T) {
	store := newFakeStore()
	l := NewLimiterWithStore(store, 2)

	_, _ = l.Allow(context.Background(), "10.0.0.1")
	_, _ = l.Allow(context.Background(), "10.0.0.1")
	ok, err := l.Allow(context.Background(), "10.0.0.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("third request must exceed a limit of 2")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	store := newFakeStore()
	l := NewLimiterWithStore(store, 1)

	_, _ = l.Allow(context.Background(), "10.0.0.1")
	ok, err := l.Allow(context.Background(), "10.0.0.2")
	if err != nil || !ok {
		t.Fatalf("a second client must get its own allowance, got ok=%v err=%v", ok, err)
	}
}

func TestLimiter_BackendErrorFailsOpen(t *testing.T) {
	store := newFakeStore()
	store.incrErr = errors.New("connection refused")
	l := NewLimiterWithStore(store, 1)

	ok, err := l.Allow(context.Background(), "10.0.0.1")
	if !ok {
		t.Fatal("backend errors must fail open")
	}
	if err == nil {
		t.Fatal("the backend error must surface so the caller can log it")
	}
}

func TestLimiter_ExpireSetOnlyOnFirstIncrement(t *testing.T) {
	store := newFakeStore()
	l := NewLimiterWithStore(store, 5)

	for i := 0; i < 3; i++ {
		_, _ = l.Allow(context.Background(), "10.0.0.1")
	}
	if len(store.expires) != 1 {
		t.Fatalf("expected one key with a ttl, got %d", len(store.expires))
	}
	for key, n := range store.expires {
		if n != 1 {
			t.Fatalf("expected a single Expire call for %s, got %d", key, n)
		}
	}
}
