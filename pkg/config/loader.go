package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type options struct {
	files  []string
	prefix string
}

// Option configures Load.
type Option func(*options)

// WithEnvFiles loads the given .env files instead of the default one.
func WithEnvFiles(paths ...string) Option {
	return func(o *options) {
		o.files = append(o.files, paths...)
	}
}

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// Load reads .env files into the environment and parses it into a new T.
//
// Example:
//
//	type DatabaseConfig struct {
//		Host string `env:"DB_HOST" envDefault:"localhost"`
//		Port int    `env:"DB_PORT" envDefault:"5432"`
//	}
//
//	cfg, err := config.Load[DatabaseConfig](config.WithPrefix("APP_"))
func Load[T any](opts ...Option) (T, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	files, optional := o.files, false
	if len(files) == 0 {
		files, optional = []string{defaultEnvFile}, true
	}

	var v T
	if err := loadEnvFiles(files, optional); err != nil {
		return v, err
	}
	if err := env.ParseWithOptions(&v, env.Options{Prefix: o.prefix}); err != nil {
		return v, errors.Join(ErrParsingConfig, err)
	}
	return v, nil
}

// MustLoad works like Load but panics if configuration loading fails.
func MustLoad[T any](opts ...Option) T {
	v, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load required configuration: %v", err))
	}
	return v
}

func loadEnvFiles(files []string, optional bool) error {
	for _, file := range files {
		err := godotenv.Load(file)
		if err == nil {
			continue
		}
		if optional && errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return fmt.Errorf("%w: %s: %v", ErrLoadingEnvFile, file, err)
	}
	return nil
}
