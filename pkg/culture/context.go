package culture

import "context"

// Context is the request-scoped culture state produced by the HTTP layer.
// It is passed explicitly (or through context.Context) instead of living in shared mutable state.
type Context struct {
	// Requested is the culture the request asked for, after fallback to the default.
	Requested Expression
	// Specifier is the culture path prefix found in the URL, e.g. "/en-US"; empty when absent.
	Specifier string
	// Path is the request path with the culture prefix removed.
	Path string
}

type contextKey struct{}

// WithContext stores the culture context in ctx.
func WithContext(ctx context.Context, c Context) context.Context {
	return context.WithValue(ctx, contextKey{}, c)
}

// FromContext returns the culture context stored in ctx.
func FromContext(ctx context.Context) (Context, bool) {
	c, ok := ctx.Value(contextKey{}).(Context)
	return c, ok
}

// Requested returns the requested culture stored in ctx, or fallback when none is set.
func Requested(ctx context.Context, fallback Expression) Expression {
	if c, ok := FromContext(ctx); ok && !c.Requested.IsZero() {
		return c.Requested
	}
	return fallback
}
