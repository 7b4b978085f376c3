// Package redis opens the shared Redis client used by the Redis-backed
// resolution caches.
//
// It wraps [github.com/redis/go-redis/v9] with environment configuration
// (REDIS_URL, REDIS_POOL_SIZE, timeouts and startup retries), a startup ping
// with linear backoff and a health check closure:
//
//	client, err := redis.Open(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
package redis
