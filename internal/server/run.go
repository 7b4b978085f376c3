package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrymomot/localize/pkg/logger"
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	logger        *slog.Logger
	shutdownHooks []func(context.Context) error
	ready         func(addr net.Addr)
}

// WithRunLogger sets the logger for lifecycle messages.
func WithRunLogger(l *slog.Logger) RunOption {
	return func(c *runConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// ShutdownHook registers a cleanup function to run after the HTTP server stops.
// Hooks are called in the order they were registered and share the shutdown timeout.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// OnReady is called with the bound address once the listener is open.
func OnReady(fn func(addr net.Addr)) RunOption {
	return func(c *runConfig) {
		c.ready = fn
	}
}

// Run serves h on cfg.Addr and blocks until ctx is cancelled, SIGINT or
// SIGTERM arrives, or the server fails. Shutdown waits for in-flight
// requests up to cfg.ShutdownTimeout and then runs the shutdown hooks.
func Run(ctx context.Context, cfg Config, h http.Handler, opts ...RunOption) error {
	cfg = cfg.withDefaults()
	rc := &runConfig{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(rc)
	}
	log := rc.logger

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	if rc.ready != nil {
		rc.ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range rc.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			log.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		log.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	log.Info("shutdown completed")
	return nil
}
