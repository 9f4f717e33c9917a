package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// MustConnect opens the quota counter backend, panicking when redis is
// unreachable at boot. Only called when the daily allowance is enabled.
func MustConnect(addr string, db int) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := r.Ping(context.Background()).Err(); err != nil {
		panic(err)
	}
	return r
}
