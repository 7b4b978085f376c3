package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/singleflight"
)

// Cache is a generic key-value cache.
// Entries live until they are evicted by the backend's capacity policy
// or removed explicitly; there is no per-entry expiration.
type Cache[V any] interface {
	// Get retrieves a value by key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (V, error)

	// Set stores a value, replacing any previous value for the key.
	Set(ctx context.Context, key string, value V) error

	// Delete removes a key from the cache.
	Delete(ctx context.Context, key string) error

	// Has checks whether a key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear(ctx context.Context) error

	// Close releases resources held by the cache.
	Close() error
}

// Marshaler serializes and deserializes cache values for storage backends
// that require byte representation (e.g., Redis).
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// JSONMarshaler returns the JSON Marshaler used by default for Redis-backed caches.
func JSONMarshaler[V any]() Marshaler[V] { return jsonMarshaler[V]{} }

var sfGroup singleflight.Group

type getOrSetResult[V any] struct {
	val V
}

// GetOrSet retrieves a value from the cache, or calls fn to compute it on a miss.
// Uses singleflight to prevent cache stampedes: if multiple goroutines call
// GetOrSet for the same cache and key concurrently, fn is called only once.
//
// Zero values (including nil pointers and slices) are cached like any other value,
// so a "not found" result is not recomputed on the next call.
// If fn returns an error, nothing is cached and the error is returned.
// Backend errors on Get and Set are treated as misses: the cache is best-effort.
//
// fn runs with ctx detached from cancellation, since its result is shared with
// every caller waiting on the same key. Context values are kept.
func GetOrSet[V any](ctx context.Context, c Cache[V], key string, fn func(ctx context.Context) (V, error)) (V, error) {
	// Fast path: try cache first.
	if v, err := c.Get(ctx, key); err == nil {
		return v, nil
	}

	// Flights are scoped to the cache instance so equal keys in different
	// caches (e.g. two culture pages) never share a result.
	flight := fmt.Sprintf("%p\x00%s", c, key)

	flightCtx := context.WithoutCancel(ctx)

	v, err, _ := sfGroup.Do(flight, func() (any, error) {
		ctx := flightCtx

		// A flight that finished between the fast path and Do already stored the value.
		if v, err := c.Get(ctx, key); err == nil {
			return getOrSetResult[V]{val: v}, nil
		}

		val, err := fn(ctx)
		if err != nil {
			return nil, err
		}

		// Best-effort cache the result before releasing waiters.
		_ = c.Set(ctx, key, val)

		return getOrSetResult[V]{val: val}, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}

	return v.(getOrSetResult[V]).val, nil
}
