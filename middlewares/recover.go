package middlewares

import (
	"log/slog"
	"net/http"
	"runtime"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

type recoverConfig struct {
	stackSize  int
	printStack bool
}

// RecoverOption configures the Recover middleware.
type RecoverOption func(*recoverConfig)

// WithRecoverStackSize sets the maximum logged stack trace size.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *recoverConfig) {
		if size > 0 {
			cfg.stackSize = size
		}
	}
}

// WithRecoverDisablePrintStack omits the stack trace from the log record.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *recoverConfig) {
		cfg.printStack = false
	}
}

// Recover turns a handler panic into a logged error and a 500 response.
// http.ErrAbortHandler is re-panicked so the server can abort the connection.
func Recover(log *slog.Logger, opts ...RecoverOption) func(http.Handler) http.Handler {
	cfg := &recoverConfig{stackSize: DefaultStackSize, printStack: true}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				attrs := []any{slog.Any("panic", rec), slog.String("path", r.URL.Path)}
				if cfg.printStack {
					stack := make([]byte, cfg.stackSize)
					stack = stack[:runtime.Stack(stack, false)]
					attrs = append(attrs, slog.String("stack", string(stack)))
				}
				log.ErrorContext(r.Context(), "panic recovered", attrs...)

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
