package codematch

import (
	"log/slog"
	"strings"

	"github.com/dmitrymomot/localize/pkg/content"
	"github.com/dmitrymomot/localize/pkg/logger"
)

const (
	// DefaultDirectory is where string tables are looked up.
	DefaultDirectory = "Strings"

	// DefaultCultureCapacity is how many culture pages are kept.
	DefaultCultureCapacity = 20

	// DefaultPageCapacity is how many resolved codes each culture page keeps.
	DefaultPageCapacity = 100
)

type options struct {
	logger        *slog.Logger
	parsers       map[string]content.Parser
	dir           string
	extensions    []string
	cultures      int
	pageSize      int
	caseSensitive bool
}

// Option configures a Matcher.
type Option func(*options)

// WithDirectory sets the directory holding the string tables. Default: "Strings".
func WithDirectory(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithExtensions sets the string table extensions, in priority order.
// A name found under an earlier extension wins over the same key from a later one.
// Default: "json".
func WithExtensions(exts ...string) Option {
	return func(o *options) {
		clean := make([]string, 0, len(exts))
		for _, e := range exts {
			if e = strings.TrimPrefix(e, "."); e != "" {
				clean = append(clean, e)
			}
		}
		if len(clean) > 0 {
			o.extensions = clean
		}
	}
}

// WithCaseSensitive controls whether keys are matched case-sensitively. Default: true.
func WithCaseSensitive(v bool) Option {
	return func(o *options) {
		o.caseSensitive = v
	}
}

// WithParser registers a parser for its extensions, replacing the built-in one.
func WithParser(p content.Parser) Option {
	return func(o *options) {
		if p == nil {
			return
		}
		for _, ext := range p.Extensions() {
			o.parsers[strings.ToLower(ext)] = p
		}
	}
}

// WithCultureCapacity sets how many culture pages are kept. Default: 20.
func WithCultureCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cultures = n
		}
	}
}

// WithPageCapacity sets how many resolved codes each culture page keeps. Default: 100.
func WithPageCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.pageSize = n
		}
	}
}

// WithLogger sets the logger for skipped files and build tracing.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger:        logger.NewNope(),
		parsers:       make(map[string]content.Parser),
		dir:           DefaultDirectory,
		extensions:    []string{"json"},
		cultures:      DefaultCultureCapacity,
		pageSize:      DefaultPageCapacity,
		caseSensitive: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
