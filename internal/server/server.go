package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/localize"
	"github.com/dmitrymomot/localize/internal/view"
	"github.com/dmitrymomot/localize/middlewares"
	"github.com/dmitrymomot/localize/pkg/health"
	"github.com/dmitrymomot/localize/pkg/logger"
)

// Health endpoints.
const (
	LivenessPath  = "/health/live"
	ReadinessPath = "/health/ready"
)

// Server exposes a Localizer over HTTP.
type Server struct {
	localizer *localize.Localizer
	renderer  *view.Renderer
	logger    *slog.Logger
	checks    health.Checks
	cfg       Config
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCheck adds a readiness check.
func WithCheck(name string, fn health.CheckFunc) Option {
	return func(s *Server) {
		if name != "" && fn != nil {
			s.checks[name] = fn
		}
	}
}

// WithRenderer replaces the default markdown view renderer.
func WithRenderer(r *view.Renderer) Option {
	return func(s *Server) {
		if r != nil {
			s.renderer = r
		}
	}
}

// New creates a server for l. The content root is always part of the
// readiness checks.
func New(cfg Config, l *localize.Localizer, opts ...Option) *Server {
	s := &Server{
		localizer: l,
		logger:    logger.NewNope(),
		checks:    health.Checks{},
		cfg:       cfg.withDefaults(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = view.NewRenderer(l.Provider())
	}
	if _, ok := s.checks["content"]; !ok {
		s.checks["content"] = health.ContentCheck(l.Provider(), s.cfg.ViewsDir)
	}
	return s
}

// Handler builds the router.
//
//	GET    /health/live
//	GET    /health/ready
//	GET    /api/strings/{code}?default=
//	GET    /api/resources/*?ext=          enumerate a directory
//	GET    /api/resource/*?ext=           resolve dir/name
//	DELETE /api/cache[/{culture}]         when AdminEnabled
//	GET    /*                             markdown views
//
// Every path may carry a culture prefix ("/fr-CA/api/strings/DE").
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middlewares.RequestID())
	r.Use(middlewares.Recover(s.logger))
	// Routing sees the path with the culture prefix already stripped.
	var cultureOpts []middlewares.CultureOption
	if s.cfg.CultureCookie != "" {
		cultureOpts = append(cultureOpts, middlewares.WithCultureCookie(s.cfg.CultureCookie))
	}
	r.Use(middlewares.Culture(s.localizer.Option(), cultureOpts...))

	r.Get(LivenessPath, health.LivenessHandler())
	r.Get(ReadinessPath, health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	r.Route("/api", func(r chi.Router) {
		r.Get("/strings/{code}", s.handleString)
		r.Get("/resources/*", s.handleEnumerate)
		r.Get("/resource/*", s.handleResolve)
		if s.cfg.AdminEnabled {
			r.Delete("/cache", s.handleClearAll)
			r.Delete("/cache/{culture}", s.handleClear)
		}
	})

	r.Get("/*", s.handleView)

	return r
}
