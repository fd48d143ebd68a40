// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageStub     = "stub"
	StoragePostgres = "postgres"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Listener
	Host string `env:"HOST" envDefault:"0.0.0.0"`
	Port uint16 `env:"PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Application settings
	AppEnv        string `env:"APP_ENV" envDefault:"development"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"stub"`

	// Cache (Redis). Empty disables the user cache.
	RedisURL string `env:"REDIS_URL"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Comma-separated list of allowed origins (e.g., "https://example.com,https://app.example.com")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// ConfigError reports why the configuration could not be built.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(int(c.Port)))
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// UsesPostgres reports whether the users store is backed by PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return c.StorageDriver == StoragePostgres
}

// CacheEnabled reports whether a Redis URL was provided.
func (c *Config) CacheEnabled() bool {
	return c.RedisURL != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// Load parses environment variables and returns a Config.
// A missing DATABASE_URL or an unparsable PORT yields a *ConfigError.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, toConfigError(err)
	}

	switch cfg.StorageDriver {
	case StorageStub, StoragePostgres:
	default:
		return nil, &ConfigError{
			Message: fmt.Sprintf("invalid STORAGE_DRIVER %q: must be %q or %q", cfg.StorageDriver, StorageStub, StoragePostgres),
		}
	}

	return cfg, nil
}

// LoadDotenv loads variables from a .env file into the process environment.
// Variables already set are left untouched. A missing file is not an error.
func LoadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// toConfigError rewrites env parse failures into the messages operators see.
func toConfigError(err error) error {
	var agg env.AggregateError
	if !errors.As(err, &agg) {
		return &ConfigError{Message: fmt.Sprintf("failed to parse config: %v", err), Err: err}
	}

	for _, e := range agg.Errors {
		switch e := e.(type) {
		case env.EnvVarIsNotSetError:
			return &ConfigError{Message: e.Key + " must be set", Err: e}
		case env.ParseError:
			if e.Name == "Port" {
				return &ConfigError{Message: fmt.Sprintf("invalid PORT: %v", e.Err), Err: e}
			}
			return &ConfigError{Message: fmt.Sprintf("invalid %s: %v", e.Name, e.Err), Err: e}
		}
	}

	return &ConfigError{Message: fmt.Sprintf("failed to parse config: %v", err), Err: err}
}
