package middlewares

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/localize/pkg/culture"
)

type cultureConfig struct {
	cookieName     string
	checkSupported bool
	stripPrefix    bool
}

// CultureOption configures the Culture middleware.
type CultureOption func(*cultureConfig)

// WithCheckSupported controls whether cultures outside the supported set are
// ignored. An unsupported URL prefix is then treated as an ordinary path
// segment and an unsupported Accept-Language entry is skipped. Default: true.
func WithCheckSupported(v bool) CultureOption {
	return func(cfg *cultureConfig) {
		cfg.checkSupported = v
	}
}

// WithStripPrefix controls whether the culture prefix is removed from
// r.URL.Path before the next handler runs. Default: true.
func WithStripPrefix(v bool) CultureOption {
	return func(cfg *cultureConfig) {
		cfg.stripPrefix = v
	}
}

// WithCultureCookie reads the culture from the named cookie when the URL has
// no culture prefix. The cookie is checked before Accept-Language.
func WithCultureCookie(name string) CultureOption {
	return func(cfg *cultureConfig) {
		cfg.cookieName = name
	}
}

// Culture determines the requested culture of each request and stores a
// culture.Context in the request context.
//
// The culture is taken from the first path segment ("/fr-CA/about"), then
// from the culture cookie when configured, then from the Accept-Language
// header, then from the option's default.
func Culture(opt *culture.Option, opts ...CultureOption) func(http.Handler) http.Handler {
	cfg := &cultureConfig{checkSupported: true, stripPrefix: true}
	for _, o := range opts {
		o(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cc := culture.Context{Path: r.URL.Path}

			if c, specifier, rest, ok := splitCulturePrefix(r.URL.Path); ok && (!cfg.checkSupported || opt.IsSupported(c)) {
				cc.Requested = c
				cc.Specifier = specifier
				cc.Path = rest
			}

			if cc.Requested.IsZero() && cfg.cookieName != "" {
				cc.Requested = fromCookie(r, cfg.cookieName, opt, cfg.checkSupported)
			}
			if cc.Requested.IsZero() {
				cc.Requested = fromAcceptLanguage(r.Header.Get("Accept-Language"), opt, cfg.checkSupported)
			}
			if cc.Requested.IsZero() {
				cc.Requested = opt.Default()
			}

			r = r.WithContext(culture.WithContext(r.Context(), cc))
			if cfg.stripPrefix && cc.Specifier != "" {
				u := *r.URL
				u.Path = cc.Path
				u.RawPath = ""
				r.URL = &u
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCulture returns the requested culture stored by the Culture middleware.
func GetCulture(r *http.Request) (culture.Expression, bool) {
	c, ok := culture.FromContext(r.Context())
	if !ok || c.Requested.IsZero() {
		return culture.Expression{}, false
	}
	return c.Requested, true
}

// splitCulturePrefix splits "/fr-CA/about" into fr-CA, "/fr-CA" and "/about".
func splitCulturePrefix(p string) (culture.Expression, string, string, bool) {
	trimmed := strings.TrimPrefix(p, "/")
	segment, rest, _ := strings.Cut(trimmed, "/")

	c, ok := culture.TryParse(segment)
	if !ok {
		return culture.Expression{}, "", "", false
	}
	return c, "/" + segment, "/" + rest, true
}

func fromAcceptLanguage(header string, opt *culture.Option, checkSupported bool) culture.Expression {
	if !checkSupported {
		if list := culture.ParseAcceptLanguage(header); len(list) > 0 {
			return list[0]
		}
		return culture.Expression{}
	}
	c, _ := opt.Negotiate(header)
	return c
}

func fromCookie(r *http.Request, name string, opt *culture.Option, checkSupported bool) culture.Expression {
	ck, err := r.Cookie(name)
	if err != nil {
		return culture.Expression{}
	}
	c, ok := culture.TryParse(ck.Value)
	if !ok || (checkSupported && !opt.IsSupported(c)) {
		return culture.Expression{}
	}
	return c
}
