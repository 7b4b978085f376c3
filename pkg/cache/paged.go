package cache

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// PageFactory creates the inner cache (page) for one outer key.
// It is called at most once per outer key while the page stays in the outer cache.
type PageFactory[V any] func(page string) Cache[V]

// MemoryPages returns a factory of in-memory LRU pages holding at most capacity entries each.
func MemoryPages[V any](capacity int) PageFactory[V] {
	return func(string) Cache[V] {
		return NewMemory[V](WithMaxEntries(capacity))
	}
}

// RedisPages returns a factory of Redis-backed pages. Each page is the hash
// "{prefix}:{page}", so pages are cleared independently.
// A nil marshaler selects JSON.
func RedisPages[V any](client redis.UniversalClient, prefix string, m Marshaler[V], opts ...RedisOption) PageFactory[V] {
	return func(page string) Cache[V] {
		o := append(opts[:len(opts):len(opts)], WithPrefix(prefix+":"+page))
		return NewRedis(client, m, o...)
	}
}

// Paged is a two-level cache: an outer bounded LRU keyed by page name
// (typically a culture display name) whose values are inner caches created
// lazily by a PageFactory.
//
// Pages are never re-keyed. Evicting or clearing a page drops its entries
// as a whole; entries of other pages are unaffected.
type Paged[V any] struct {
	pages   *Memory[Cache[V]]
	newPage PageFactory[V]
	mu      sync.Mutex
}

// NewPaged creates a two-level cache holding at most capacity pages.
//
// Example:
//
//	files := cache.NewPaged(20, cache.MemoryPages[*resource.FileInfo](100))
//	info, err := files.Get(ctx, "en-US", "Views/page.?.html", resolve)
func NewPaged[V any](capacity int, factory PageFactory[V]) *Paged[V] {
	return &Paged[V]{
		pages:   NewMemory[Cache[V]](WithMaxEntries(capacity)),
		newPage: factory,
	}
}

// Get returns the value stored under inner in the page named outer.
// On a miss compute is called without any lock held and its result,
// including a zero or nil value, is stored. Concurrent misses for the
// same outer and inner key share a single compute call.
// Compute errors are returned and nothing is stored.
func (p *Paged[V]) Get(ctx context.Context, outer, inner string, compute func(ctx context.Context) (V, error)) (V, error) {
	return GetOrSet(ctx, p.page(ctx, outer), inner, compute)
}

// Clear drops the page named outer, including any entries its backend
// persisted outside the process.
func (p *Paged[V]) Clear(ctx context.Context, outer string) error {
	p.mu.Lock()
	page, err := p.pages.Get(ctx, outer)
	if err != nil {
		// Not tracked: a fresh handle addresses the same storage for shared backends.
		page = p.newPage(outer)
	}
	_ = p.pages.Delete(ctx, outer)
	p.mu.Unlock()

	return page.Clear(ctx)
}

// ClearAll drops every tracked page.
func (p *Paged[V]) ClearAll(ctx context.Context) error {
	p.mu.Lock()
	keys := p.pages.Keys()
	pages := make([]Cache[V], 0, len(keys))
	for _, k := range keys {
		if page, err := p.pages.Get(ctx, k); err == nil {
			pages = append(pages, page)
		}
	}
	err := p.pages.Clear(ctx)
	p.mu.Unlock()

	for _, page := range pages {
		if cerr := page.Clear(ctx); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Len returns the number of pages currently held.
func (p *Paged[V]) Len() int {
	return p.pages.Len()
}

// page returns the page for outer, creating it on first use.
func (p *Paged[V]) page(ctx context.Context, outer string) Cache[V] {
	p.mu.Lock()
	defer p.mu.Unlock()

	if page, err := p.pages.Get(ctx, outer); err == nil {
		return page
	}

	page := p.newPage(outer)
	_ = p.pages.Set(ctx, outer, page)
	return page
}
