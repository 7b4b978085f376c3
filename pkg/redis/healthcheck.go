package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that expects PONG from client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return fmt.Errorf("%w: client is nil", ErrHealthcheckFailed)
		}
		reply, err := client.Ping(ctx).Result()
		if err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		if reply != "PONG" {
			return fmt.Errorf("%w: unexpected reply %q", ErrHealthcheckFailed, reply)
		}
		return nil
	}
}
