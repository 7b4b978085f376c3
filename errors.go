package localize

import "errors"

var (
	// ErrUnknownBackend is returned for an unsupported content or cache backend name.
	ErrUnknownBackend = errors.New("localize: unknown backend")

	// ErrRedisRequired is returned when the redis cache backend is selected without a client.
	ErrRedisRequired = errors.New("localize: redis client required")

	// ErrInvalidConfig wraps culture and provider configuration failures.
	ErrInvalidConfig = errors.New("localize: invalid configuration")
)
