package cache

import "time"

// RedisOption configures the Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	prefix     string
	ttl        time.Duration
	maxEntries int
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{}
}

// WithTTL sets how long the hash lives after its last write.
// Default: 0 (the hash persists until cleared or evicted by Redis).
func WithTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.ttl = max(d, 0)
	}
}

// WithPrefix sets the name of the Redis hash holding the entries.
// Caches sharing a Redis instance need distinct prefixes. Default: "cache".
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithRedisMaxEntries bounds the number of fields in the hash. Writing past
// the bound removes the least recently used fields. Recency is kept in a
// sorted set next to the hash. Default: 0 (unbounded).
func WithRedisMaxEntries(n int) RedisOption {
	return func(o *redisOptions) {
		o.maxEntries = max(n, 0)
	}
}
