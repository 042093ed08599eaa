package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Option configures a single Load call.
type Option func(*loader)

type loader struct {
	files       []string
	optional    bool
	prefix      string
	environment map[string]string
}

// WithEnvFiles loads the given dotenv files before parsing. Variables already
// present in the process environment win over file values, and earlier
// files win over later ones. Missing files are an error.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) { l.files = append(l.files, paths...) }
}

// WithOptionalEnvFiles works like WithEnvFiles but ignores files that
// cannot be read.
func WithOptionalEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, paths...)
		l.optional = true
	}
}

// WithPrefix prepends prefix to every variable name looked up.
func WithPrefix(prefix string) Option {
	return func(l *loader) { l.prefix = prefix }
}

// WithEnvironment parses from vars instead of the process environment.
// Dotenv files are not read in this mode.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) { l.environment = vars }
}

// Load parses environment variables into a new T using its env struct tags.
//
//	type ServerConfig struct {
//		Addr string `env:"ADDR" envDefault:":8080"`
//	}
//
//	cfg, err := config.Load[ServerConfig](config.WithOptionalEnvFiles(".env"))
func Load[T any](opts ...Option) (T, error) {
	var zero T

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	if l.environment == nil && len(l.files) > 0 {
		if err := l.loadFiles(); err != nil {
			return zero, err
		}
	}

	envOpts := env.Options{Prefix: l.prefix}
	if l.environment != nil {
		envOpts.Environment = l.environment
	}

	cfg, err := env.ParseAsWithOptions[T](envOpts)
	if err != nil {
		return zero, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Use it for configuration
// the process cannot start without.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}

func (l *loader) loadFiles() error {
	for _, path := range l.files {
		if err := godotenv.Load(path); err != nil {
			if l.optional {
				continue
			}
			return errors.Join(ErrLoadingEnvFile, fmt.Errorf("%s: %w", path, err))
		}
	}
	return nil
}
