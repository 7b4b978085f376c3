package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultRedisKey is the hash used when no prefix is configured.
const defaultRedisKey = "cache"

// boundedSet writes a field, records its recency and trims the hash to the bound.
// KEYS: hash, recency set. ARGV: field, value, score, bound, ttl in ms.
var boundedSet = redis.NewScript(`
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
redis.call('ZADD', KEYS[2], ARGV[3], ARGV[1])
local over = redis.call('ZCARD', KEYS[2]) - tonumber(ARGV[4])
if over > 0 then
	local oldest = redis.call('ZPOPMIN', KEYS[2], tostring(over))
	for i = 1, #oldest, 2 do
		redis.call('HDEL', KEYS[1], oldest[i])
	end
end
if tonumber(ARGV[5]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[5])
	redis.call('PEXPIRE', KEYS[2], ARGV[5])
end
return 1
`)

// Redis stores a cache as a single Redis hash: entries are hash fields, so a
// page is cleared with one DEL and expires as a whole. Values are serialized
// with the configured Marshaler (default: JSON).
type Redis[V any] struct {
	client    redis.UniversalClient
	marshaler Marshaler[V]
	key       string
	recency   string
	opts      *redisOptions
}

// NewRedis creates a Redis-backed cache. The client lifecycle stays with the
// caller; Close does not close it.
//
// Example:
//
//	c := cache.NewRedis[*resource.FileInfo](client, nil,
//	    cache.WithPrefix("localize:files:en-US"),
//	    cache.WithTTL(time.Hour),
//	)
func NewRedis[V any](client redis.UniversalClient, m Marshaler[V], opts ...RedisOption) *Redis[V] {
	o := defaultRedisOptions()
	for _, opt := range opts {
		opt(o)
	}
	if m == nil {
		m = jsonMarshaler[V]{}
	}

	key := o.prefix
	if key == "" {
		key = defaultRedisKey
	}

	return &Redis[V]{
		client:    client,
		marshaler: m,
		key:       key,
		recency:   key + ":lru",
		opts:      o,
	}
}

// Key returns the Redis hash holding the entries.
func (r *Redis[V]) Key() string { return r.key }

// Get returns ErrNotFound when the field is absent.
func (r *Redis[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V

	data, err := r.client.HGet(ctx, r.key, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	if r.opts.maxEntries > 0 {
		_ = r.client.ZAddXX(ctx, r.recency, redis.Z{Score: recencyScore(), Member: key}).Err()
	}
	return r.marshaler.Unmarshal(data)
}

// Set stores value and, with a TTL configured, pushes the expiry of the whole hash forward.
func (r *Redis[V]) Set(ctx context.Context, key string, value V) error {
	data, err := r.marshaler.Marshal(value)
	if err != nil {
		return err
	}

	if r.opts.maxEntries > 0 {
		return boundedSet.Run(ctx, r.client, []string{r.key, r.recency},
			key, data, recencyScore(), r.opts.maxEntries, r.opts.ttl.Milliseconds()).Err()
	}
	if r.opts.ttl <= 0 {
		return r.client.HSet(ctx, r.key, key, data).Err()
	}
	_, err = r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, r.key, key, data)
		p.Expire(ctx, r.key, r.opts.ttl)
		return nil
	})
	return err
}

func (r *Redis[V]) Delete(ctx context.Context, key string) error {
	if r.opts.maxEntries <= 0 {
		return r.client.HDel(ctx, r.key, key).Err()
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HDel(ctx, r.key, key)
		p.ZRem(ctx, r.recency, key)
		return nil
	})
	return err
}

func (r *Redis[V]) Has(ctx context.Context, key string) (bool, error) {
	return r.client.HExists(ctx, r.key, key).Result()
}

// Clear drops the hash and its recency set.
func (r *Redis[V]) Clear(ctx context.Context) error {
	return r.client.Del(ctx, r.key, r.recency).Err()
}

// Close is a no-op.
func (r *Redis[V]) Close() error {
	return nil
}

// recencyScore orders writes and reads in microseconds, which a float64 score holds exactly.
func recencyScore() float64 {
	return float64(time.Now().UnixMicro())
}

var _ Cache[any] = (*Redis[any])(nil)
