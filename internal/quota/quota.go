package quota

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the slice of redis the limiter needs. Narrowed to an interface
// so tests can substitute the backend.
type Store interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, ttl time.Duration) *redis.BoolCmd
}

// Limiter counts quiz generations per client and day. A missing backend
// or non-positive limit disables the check entirely.
type Limiter struct {
	store Store
	limit int
	ttl   time.Duration
}

func NewLimiter(rdb *redis.Client, dailyLimit int) *Limiter {
	l := &Limiter{limit: dailyLimit, ttl: 24 * time.Hour}
	if rdb != nil {
		l.store = rdb
	}
	return l
}

// NewLimiterWithStore wires an explicit backend.
func NewLimiterWithStore(store Store, dailyLimit int) *Limiter {
	return &Limiter{store: store, limit: dailyLimit, ttl: 24 * time.Hour}
}

func (l *Limiter) Enabled() bool { return l.store != nil && l.limit > 0 }

// Allow counts one generation for key and reports whether it is still
// within the daily allowance. Backend errors fail open.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	if !l.Enabled() {
		return true, nil
	}
	k := "quota:gen:" + key + ":" + time.Now().UTC().Format("2006-01-02")
	n, err := l.store.Incr(ctx, k).Result()
	if err != nil {
		return true, err
	}
	if n == 1 {
		_ = l.store.Expire(ctx, k, l.ttl).Err()
	}
	return n <= int64(l.limit), nil
}
