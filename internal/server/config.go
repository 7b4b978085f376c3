package server

import "time"

// Config holds the HTTP host settings.
type Config struct {
	Addr              string        `env:"HTTP_ADDR" envDefault:":8080"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// ViewsDir is the content directory holding markdown views.
	ViewsDir string `env:"HTTP_VIEWS_DIR" envDefault:"views"`
	// ViewsExt is the extension of view files.
	ViewsExt string `env:"HTTP_VIEWS_EXT" envDefault:"md"`
	// IndexName is the view served for directory paths ("/", "/docs/").
	IndexName string `env:"HTTP_INDEX_NAME" envDefault:"index"`

	// CultureCookie names the cookie that remembers a visitor's culture.
	// Empty disables the cookie lookup.
	CultureCookie string `env:"HTTP_CULTURE_COOKIE" envDefault:"lang"`

	// AdminEnabled exposes the cache clearing endpoints.
	AdminEnabled bool `env:"HTTP_ADMIN_ENABLED" envDefault:"false"`
}

const (
	defaultAddr              = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = defaultReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = defaultWriteTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = defaultIdleTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = defaultReadHeaderTimeout
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.ViewsDir == "" {
		c.ViewsDir = "views"
	}
	if c.ViewsExt == "" {
		c.ViewsExt = "md"
	}
	if c.IndexName == "" {
		c.IndexName = "index"
	}
	return c
}
