package app

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Pinger is anything that can ping its upstream, such as the Tika client.
type Pinger interface{ Ping(ctx context.Context) error }

// BuildReadinessChecks returns the redis and tika readiness checks. Redis is
// optional: with no client the check is nil and readiness skips it.
func BuildReadinessChecks(rdb *redis.Client, tika Pinger) (
	redisCheck func(ctx context.Context) error,
	tikaCheck func(ctx context.Context) error,
) {
	if rdb != nil {
		redisCheck = func(ctx context.Context) error {
			if err := rdb.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("op=app.redisCheck: %w", err)
			}
			return nil
		}
	}
	tikaCheck = func(ctx context.Context) error {
		if tika == nil {
			return fmt.Errorf("tika not configured")
		}
		return tika.Ping(ctx)
	}
	return redisCheck, tikaCheck
}
