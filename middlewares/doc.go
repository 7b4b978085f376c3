// Package middlewares provides net/http middleware for the localized host.
//
// # Culture
//
// Culture resolves the requested culture from the URL prefix, the
// Accept-Language header or the default culture, strips the prefix from the
// path and stores a culture.Context in the request context:
//
//	r := chi.NewRouter()
//	r.Use(middlewares.Culture(opt))
//	r.Get("/*", func(w http.ResponseWriter, r *http.Request) {
//		c, _ := middlewares.GetCulture(r) // "/fr-CA/about" -> fr-CA, path "/about"
//	})
//
// # Request ID
//
// RequestID assigns each request an ID, reusing X-Request-ID or
// X-Correlation-ID from upstream, and echoes it in the response. Pair it with
// the logger:
//
//	log := logger.New(cfg, logger.StringExtractor("request_id", middlewares.GetRequestID))
//
// # Recover
//
// Recover logs handler panics with a stack trace and answers 500.
package middlewares
