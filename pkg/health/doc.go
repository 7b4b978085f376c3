// Package health provides liveness and readiness HTTP handlers.
//
// Readiness runs named checks concurrently under a shared timeout:
//
//	r.Get("/healthz", health.LivenessHandler())
//	r.Get("/readyz", health.ReadinessHandler(health.Checks{
//		"content": health.ContentCheck(p, "Strings"),
//		"redis":   redis.Healthcheck(client),
//	}))
//
// Responses are plain text unless the client asks for JSON with
// "Accept: application/json" or "?format=json".
package health
