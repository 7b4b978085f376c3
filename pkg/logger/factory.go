package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds logger settings.
type Config struct {
	// Level is the minimum level written: DEBUG, INFO, WARN or ERROR.
	Level slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	// Format is "json" or "text".
	Format string `env:"LOG_FORMAT" envDefault:"json"`
	Sentry SentryConfig
}

// New creates a logger writing to stdout with optional context extractors.
// When cfg.Sentry.DSN is set, records are also forwarded to Sentry.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return NewWithWriter(os.Stdout, cfg, extractors...)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	handler := newHandler(w, cfg)
	if sh := newSentryHandler(cfg.Sentry, handler); sh != nil {
		handler = fanout{handler, sh}
	}
	return slog.New(withExtractors(handler, extractors))
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
