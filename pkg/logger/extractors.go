package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/localize/pkg/culture"
)

// StringExtractor adds key with the value returned by fn, skipping empty values.
//
//	logger.StringExtractor("request_id", middlewares.GetRequestID)
func StringExtractor(key string, fn func(context.Context) string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v := fn(ctx); v != "" {
			return slog.String(key, v), true
		}
		return slog.Attr{}, false
	}
}

// CultureExtractor adds the requested culture stored by the culture middleware.
func CultureExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		c, ok := culture.FromContext(ctx)
		if !ok || c.Requested.IsZero() {
			return slog.Attr{}, false
		}
		return slog.String("culture", c.Requested.DisplayName()), true
	}
}
