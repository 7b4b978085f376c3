package localize

import (
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/localize/pkg/content"
	"github.com/dmitrymomot/localize/pkg/provider"
)

// Option configures a Localizer.
type Option func(*Localizer)

// WithLogger sets the logger passed down to the resolver and the matcher.
func WithLogger(l *slog.Logger) Option {
	return func(lz *Localizer) {
		if l != nil {
			lz.logger = l
		}
	}
}

// WithProvider replaces the content root built from Config.ContentBackend.
func WithProvider(p provider.Provider) Option {
	return func(lz *Localizer) {
		if p != nil {
			lz.provider = p
		}
	}
}

// WithRedis sets the client used by the redis cache backend.
// Keys are stored under "{prefix}:files:{culture}" and "{prefix}:collections:{culture}".
func WithRedis(client redis.UniversalClient, prefix string) Option {
	return func(lz *Localizer) {
		lz.redis = client
		if prefix != "" {
			lz.redisPrefix = prefix
		}
	}
}

// WithParser registers an extra string table parser, e.g. for a custom format.
func WithParser(p content.Parser) Option {
	return func(lz *Localizer) {
		if p != nil {
			lz.parsers = append(lz.parsers, p)
		}
	}
}
