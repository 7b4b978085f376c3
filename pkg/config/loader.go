package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type options struct {
	environment map[string]string
	prefix      string
	files       []string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles loads the given env files before parsing. Unlike the default
// ".env", an explicitly named file that cannot be read is an error.
// Variables already set in the process environment are not overridden.
func WithEnvFiles(files ...string) Option {
	return func(o *options) {
		o.files = append(o.files, files...)
	}
}

// WithPrefix prepends prefix to every variable name, e.g. "APP_".
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithEnvironment parses from the given map instead of the process environment.
// Env files are not loaded in this mode.
func WithEnvironment(environment map[string]string) Option {
	return func(o *options) {
		o.environment = environment
	}
}

// Load fills v from environment variables using its `env` and `envDefault` struct tags.
// An optional ".env" file in the working directory is loaded first when present.
//
// Example:
//
//	type Config struct {
//		Addr    string `env:"HTTP_ADDR" envDefault:":8080"`
//		Default string `env:"LOCALIZE_DEFAULT_CULTURE,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T, opts ...Option) error {
	if v == nil {
		return ErrNilPointer
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.environment == nil {
		if len(o.files) > 0 {
			if err := godotenv.Load(o.files...); err != nil {
				return errors.Join(ErrEnvFile, err)
			}
		} else {
			// The default .env file is optional.
			_ = godotenv.Load()
		}
	}

	if err := env.ParseWithOptions(v, env.Options{
		Environment: o.environment,
		Prefix:      o.prefix,
	}); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad is like Load but panics on error.
// Use it for configuration the process cannot start without.
func MustLoad[T any](v *T, opts ...Option) {
	if err := Load(v, opts...); err != nil {
		panic(fmt.Sprintf("config: %v", err))
	}
}
