package localize

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localize/pkg/cache"
	"github.com/dmitrymomot/localize/pkg/codematch"
	"github.com/dmitrymomot/localize/pkg/content"
	"github.com/dmitrymomot/localize/pkg/culture"
	"github.com/dmitrymomot/localize/pkg/logger"
	"github.com/dmitrymomot/localize/pkg/provider"
	"github.com/dmitrymomot/localize/pkg/resource"
)

const defaultRedisPrefix = "localize"

// Localizer is the entry point for culture-aware resource lookups.
// It is safe for concurrent use.
type Localizer struct {
	option    *culture.Option
	provider  provider.Provider
	resources *resource.Cached
	strings   *codematch.Matcher
	logger    *slog.Logger

	redis       redis.UniversalClient
	redisPrefix string
	parsers     []content.Parser
}

// New builds a Localizer from cfg.
func New(cfg Config, opts ...Option) (*Localizer, error) {
	opt, err := culture.NewOption(cfg.DefaultCulture, cfg.SupportedCultures)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	l := &Localizer{
		option:      opt,
		logger:      logger.NewNope(),
		redisPrefix: defaultRedisPrefix,
	}
	for _, o := range opts {
		o(l)
	}

	if l.provider == nil {
		if l.provider, err = newProvider(cfg); err != nil {
			return nil, err
		}
	}

	cacheOpts := []resource.CachedOption{
		resource.WithCultureCapacity(cfg.CultureCacheSize),
		resource.WithPageCapacity(cfg.PageCacheSize),
		resource.WithCollectionCapacity(cfg.CollectionCacheSize),
	}
	switch cfg.CacheBackend {
	case "", CacheMemory:
	case CacheRedis:
		if l.redis == nil {
			return nil, ErrRedisRequired
		}
		ttl := cache.WithTTL(cfg.CacheTTL)
		cacheOpts = append(cacheOpts,
			resource.WithFilePages(cache.RedisPages(l.redis, l.redisPrefix+":files", cache.JSONMarshaler[*resource.FileInfo](),
				ttl, cache.WithRedisMaxEntries(cfg.PageCacheSize))),
			resource.WithCollectionPages(cache.RedisPages(l.redis, l.redisPrefix+":collections", cache.JSONMarshaler[[]resource.FileInfo](),
				ttl, cache.WithRedisMaxEntries(cfg.CollectionCacheSize))),
		)
	default:
		return nil, fmt.Errorf("%w: cache %q", ErrUnknownBackend, cfg.CacheBackend)
	}

	resolver := resource.NewResolver(l.provider, opt, resource.WithLogger(l.logger))
	l.resources = resource.NewCached(resolver, cacheOpts...)

	matchOpts := []codematch.Option{
		codematch.WithDirectory(cfg.ResourceDir),
		codematch.WithExtensions(cfg.ResourceExtensions...),
		codematch.WithCaseSensitive(cfg.CaseSensitive),
		codematch.WithCultureCapacity(cfg.CultureCacheSize),
		codematch.WithPageCapacity(cfg.PageCacheSize),
		codematch.WithLogger(l.logger),
	}
	for _, p := range l.parsers {
		matchOpts = append(matchOpts, codematch.WithParser(p))
	}
	l.strings = codematch.New(l.resources, l.provider, matchOpts...)

	l.logger.Debug("localize: ready",
		slog.String("default_culture", opt.Default().DisplayName()),
		slog.Int("supported_cultures", len(opt.Supported())),
		slog.String("cache_backend", cmp.Or(cfg.CacheBackend, CacheMemory)),
	)

	return l, nil
}

// Option returns the culture registry.
func (l *Localizer) Option() *culture.Option { return l.option }

// Provider returns the content root.
func (l *Localizer) Provider() provider.Provider { return l.provider }

// Resolve returns the best file for requested in dir, or nil when neither the
// requested culture, the default culture nor the neutral file match.
func (l *Localizer) Resolve(ctx context.Context, dir, name, ext string, requested culture.Expression) (*resource.FileInfo, error) {
	return l.resources.Resolve(ctx, dir, name, ext, requested)
}

// Enumerate lists the files in dir that have a variant for requested.
func (l *Localizer) Enumerate(ctx context.Context, dir, ext string, requested culture.Expression) ([]resource.FileInfo, error) {
	return l.resources.Enumerate(ctx, dir, ext, requested)
}

// DisplayName returns the "<code>.name" entry of the string tables for
// requested, or defaultName when it is missing.
func (l *Localizer) DisplayName(ctx context.Context, requested culture.Expression, code, defaultName string) string {
	return l.strings.DisplayName(ctx, requested, code, defaultName)
}

// Match sets the display name of item for requested.
func (l *Localizer) Match(ctx context.Context, requested culture.Expression, item codematch.CodedItem) {
	l.strings.Match(ctx, requested, item)
}

// Clear drops every cached result of the requested culture.
func (l *Localizer) Clear(ctx context.Context, requested culture.Expression) error {
	return errors.Join(
		l.resources.Clear(ctx, requested),
		l.strings.Clear(ctx, requested),
	)
}

// ClearAll drops every cached result.
func (l *Localizer) ClearAll(ctx context.Context) error {
	return errors.Join(
		l.resources.ClearAll(ctx),
		l.strings.ClearAll(ctx),
	)
}
