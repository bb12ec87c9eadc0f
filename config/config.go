// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Environment names the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// IsProduction reports whether the environment is production.
func (e Environment) IsProduction() bool {
	return e == Production
}

// Config holds every setting the catalog server and seed command read.
type Config struct {
	Env             Environment   `envconfig:"APP_ENV" default:"development"`
	HTTPPort        int           `envconfig:"HTTP_PORT" default:"3000"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" default:"catalog.db"`
	DBDebug         bool          `envconfig:"DB_DEBUG" default:"false"`
	SeedFile        string        `envconfig:"SEED_FILE" default:"data/products.json"`
	CORSOrigins     string        `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	CurrencyLocale  string        `envconfig:"CURRENCY_LOCALE" default:"en-IN"`
	CurrencyCode    string        `envconfig:"CURRENCY_CODE" default:"INR"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"120"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	RedisURL        string        `envconfig:"REDIS_URL"`
}

// Load reads an optional .env file and then the process environment.
// A missing .env file is not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot check on its own.
func (c *Config) Validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.RateLimitMax < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative: %d", c.RateLimitMax)
	}
	if c.RateLimitMax > 0 && c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive: %s", c.RateLimitWindow)
	}
	switch c.Env {
	case Development, Testing, Production:
	default:
		return fmt.Errorf("unknown APP_ENV %q", c.Env)
	}
	return nil
}

// UsesPostgres reports whether DatabaseURL points at PostgreSQL rather than a
// SQLite file.
func (c *Config) UsesPostgres() bool {
	return strings.HasPrefix(c.DatabaseURL, "postgres://") ||
		strings.HasPrefix(c.DatabaseURL, "postgresql://")
}
