// Package cache provides a generic Cache interface with in-memory and Redis
// implementations, and a two-level Paged cache built on top of them.
//
// # Interface
//
// The [Cache] interface is generic over value type V:
//
//   - Get(ctx, key) (V, error): retrieve a value
//   - Set(ctx, key, value) error: store a value
//   - Delete(ctx, key) error: remove a key
//   - Has(ctx, key) (bool, error): check existence
//   - Clear(ctx) error: remove all entries
//   - Close() error: release resources
//
// Entries have no expiration. They stay until the backend's capacity policy
// evicts them or they are removed explicitly.
//
// # In-Memory Cache
//
// [NewMemory] uses a hash map for O(1) lookups and a doubly-linked list for
// O(1) LRU eviction. With [WithMaxEntries] the cache never holds more than
// the configured number of entries:
//
//	c := cache.NewMemory[string](cache.WithMaxEntries(100))
//	defer c.Close()
//
//	c.Set(ctx, "greeting", "hello")
//	val, err := c.Get(ctx, "greeting") // val = "hello"
//
// The eviction callback set with [Memory.SetEvictCallback] fires on LRU
// eviction, manual deletion, and clearing.
//
// # Redis Cache
//
// [NewRedis] stores the entries as fields of one Redis hash named by the
// prefix, so a whole cache is dropped with a single DEL and a TTL applies to
// the hash as a whole. The client usually comes from
// [github.com/dmitrymomot/localize/pkg/redis]:
//
//	client, err := redis.Open(ctx, cfg)
//	c := cache.NewRedis[string](client, nil,
//	    cache.WithPrefix("strings"),
//	    cache.WithTTL(time.Hour),
//	)
//
// Pass a custom [Marshaler] as the second argument to use a different
// serialization format. If nil, JSON is used.
//
// [WithRedisMaxEntries] bounds the hash the way [WithMaxEntries] bounds a
// memory cache: reads and writes record recency in a sorted set next to the
// hash, and a write past the bound removes the least recently used fields.
//
// # Two-Level Cache
//
// [Paged] keeps one inner cache (a page) per outer key, created on first use
// by a [PageFactory]. The outer level is itself a bounded LRU, so both the
// number of pages and the entries per page are limited:
//
//	files := cache.NewPaged(20, cache.MemoryPages[*resource.FileInfo](100))
//	info, err := files.Get(ctx, "en-US", "Views/page.?.html", func(ctx context.Context) (*resource.FileInfo, error) {
//	    return resolver.Resolve(ctx, "Views", "page", "html", culture.MustParse("en-US"))
//	})
//
// A nil result is cached like any other value, so a resource that does not
// exist is not searched for again. [RedisPages] swaps the inner level for
// Redis so several processes share resolved entries. ClearAll only reaches
// pages this process has touched; Clear addresses a page by name either way.
//
// # Cache Stampede Prevention
//
// [GetOrSet] (and therefore [Paged.Get]) uses singleflight so concurrent
// misses for the same key in the same cache compute the value once:
//
//	val, err := cache.GetOrSet(ctx, c, "k1.name", func(ctx context.Context) (string, error) {
//	    return lookup(ctx, "k1")
//	})
//
// # Error Handling
//
// The package defines sentinel errors:
//
//   - [ErrNotFound]: key does not exist
//   - [ErrClosed]: write to a closed cache
//   - [ErrMarshal]: value serialization failed
//   - [ErrUnmarshal]: value deserialization failed
//
// Use [errors.Is] to check:
//
//	val, err := c.Get(ctx, "key")
//	if errors.Is(err, cache.ErrNotFound) {
//	    // handle miss
//	}
package cache
