package resource

import (
	"log/slog"

	"github.com/dmitrymomot/localize/pkg/cache"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug tracing of fallback tiers.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Default capacities of the resolution caches.
const (
	DefaultCultureCapacity    = 20
	DefaultPageCapacity       = 100
	DefaultCollectionCapacity = 100
)

type cachedOptions struct {
	filePages       cache.PageFactory[*FileInfo]
	collectionPages cache.PageFactory[[]FileInfo]
	cultures        int
	pageSize        int
	collectionSize  int
}

// CachedOption configures a Cached resolver.
type CachedOption func(*cachedOptions)

// WithCultureCapacity sets how many culture pages each cache keeps.
// Default: 20.
func WithCultureCapacity(n int) CachedOption {
	return func(o *cachedOptions) {
		if n > 0 {
			o.cultures = n
		}
	}
}

// WithPageCapacity sets how many single-file results each culture page keeps.
// Default: 100.
func WithPageCapacity(n int) CachedOption {
	return func(o *cachedOptions) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithCollectionCapacity sets how many enumeration results each culture page keeps.
// Default: 100.
func WithCollectionCapacity(n int) CachedOption {
	return func(o *cachedOptions) {
		if n > 0 {
			o.collectionSize = n
		}
	}
}

// WithFilePages overrides the page factory of the single-file cache,
// e.g. with cache.RedisPages to share results between processes.
// Page capacity options do not apply to a custom factory.
func WithFilePages(f cache.PageFactory[*FileInfo]) CachedOption {
	return func(o *cachedOptions) {
		o.filePages = f
	}
}

// WithCollectionPages overrides the page factory of the enumeration cache.
func WithCollectionPages(f cache.PageFactory[[]FileInfo]) CachedOption {
	return func(o *cachedOptions) {
		o.collectionPages = f
	}
}
