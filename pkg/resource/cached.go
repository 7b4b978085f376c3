package resource

import (
	"context"
	"errors"
	"slices"

	"github.com/dmitrymomot/localize/pkg/cache"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/provider"
)

// Cached memoizes a Resolver.
//
// Single-file results are cached per (dir, name, ext) and enumeration results
// per (dir, ext), both partitioned by the requested culture's display name:
// the fallback search starts differently for each requested culture even when
// the resolved culture ends up the same. Not-found results are cached too.
//
// Results are never invalidated by content changes; call Clear or ClearAll
// after the content root is modified.
type Cached struct {
	resolver    *Resolver
	files       *cache.Paged[*FileInfo]
	collections *cache.Paged[[]FileInfo]
}

// NewCached wraps r with the two resolution caches.
//
// Example:
//
//	res := resource.NewCached(resource.NewResolver(p, opt),
//		resource.WithCultureCapacity(10),
//		resource.WithPageCapacity(500),
//	)
func NewCached(r *Resolver, opts ...CachedOption) *Cached {
	o := &cachedOptions{
		cultures:       DefaultCultureCapacity,
		pageSize:       DefaultPageCapacity,
		collectionSize: DefaultCollectionCapacity,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.filePages == nil {
		o.filePages = cache.MemoryPages[*FileInfo](o.pageSize)
	}
	if o.collectionPages == nil {
		o.collectionPages = cache.MemoryPages[[]FileInfo](o.collectionSize)
	}

	return &Cached{
		resolver:    r,
		files:       cache.NewPaged(o.cultures, o.filePages),
		collections: cache.NewPaged(o.cultures, o.collectionPages),
	}
}

// Resolver returns the underlying uncached resolver.
func (c *Cached) Resolver() *Resolver { return c.resolver }

// Resolve is the cached form of Resolver.Resolve.
// The returned FileInfo is a copy owned by the caller.
func (c *Cached) Resolve(ctx context.Context, dir, name, ext string, requested culture.Expression) (*FileInfo, error) {
	dir, ext = provider.Clean(dir), normalizeExt(ext)
	key := provider.Join(dir, name+".?."+ext)

	info, err := c.files.Get(ctx, requested.DisplayName(), key, func(ctx context.Context) (*FileInfo, error) {
		return c.resolver.Resolve(ctx, dir, name, ext, requested)
	})
	if err != nil || info == nil {
		return nil, err
	}

	out := *info
	return &out, nil
}

// Enumerate is the cached form of Resolver.Enumerate.
// The returned slice is a copy owned by the caller.
func (c *Cached) Enumerate(ctx context.Context, dir, ext string, requested culture.Expression) ([]FileInfo, error) {
	dir, ext = provider.Clean(dir), normalizeExt(ext)
	key := provider.Join(dir, "?.?."+ext)

	list, err := c.collections.Get(ctx, requested.DisplayName(), key, func(ctx context.Context) ([]FileInfo, error) {
		return c.resolver.Enumerate(ctx, dir, ext, requested)
	})
	if err != nil {
		return nil, err
	}
	if list == nil {
		return []FileInfo{}, nil
	}
	return slices.Clone(list), nil
}

// Clear drops every cached result of one requested culture.
func (c *Cached) Clear(ctx context.Context, requested culture.Expression) error {
	name := requested.DisplayName()
	return errors.Join(
		c.files.Clear(ctx, name),
		c.collections.Clear(ctx, name),
	)
}

// ClearAll drops every cached result.
func (c *Cached) ClearAll(ctx context.Context) error {
	return errors.Join(
		c.files.ClearAll(ctx),
		c.collections.ClearAll(ctx),
	)
}

var _ Source = (*Cached)(nil)
