package redis

import "errors"

var (
	// ErrMissingURL is returned when REDIS_URL is empty.
	ErrMissingURL = errors.New("redis: connection URL is required")
	// ErrInvalidURL is returned for a URL that is not redis:// or rediss://.
	ErrInvalidURL = errors.New("redis: invalid connection URL")
	// ErrUnreachable is returned when no ping succeeded within the retry budget.
	ErrUnreachable = errors.New("redis: server unreachable")
	// ErrHealthcheckFailed is returned by the readiness check.
	ErrHealthcheckFailed = errors.New("redis: healthcheck failed")
)
