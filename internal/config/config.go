// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Development fallbacks, used only outside production when the variable is unset.
const (
	devCSRFKey       = "01234567890123456789012345678901"
	devAdminPassword = "change-me-now"
)

type Config struct {
	Addr     string `env:"HOTEL_ADDR, default=:8080"`
	Env      string `env:"HOTEL_ENV, default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	CSRFKey  string `env:"HOTEL_CSRF_KEY"`

	DB      DBConfig
	Session SessionConfig
	Admin   AdminConfig
	Perf    PerfConfig
	Tracing TracingConfig
}

type DBConfig struct {
	Driver string `env:"HOTEL_DB_DRIVER, default=sqlite"`
	DSN    string `env:"HOTEL_DB_DSN, default=hotel.db"`
}

type SessionConfig struct {
	Backend   string `env:"HOTEL_SESSION_BACKEND, default=memory"`
	RedisAddr string `env:"HOTEL_REDIS_ADDR, default=localhost:6379"`
}

type AdminConfig struct {
	Email    string `env:"HOTEL_ADMIN_EMAIL, default=admin@hotel.test"`
	Password string `env:"HOTEL_ADMIN_PASSWORD"`
}

type PerfConfig struct {
	SlowQueryMs   int `env:"HOTEL_SLOW_QUERY_MS, default=50"`
	SlowRequestMs int `env:"HOTEL_SLOW_REQUEST_MS, default=200"`
}

type TracingConfig struct {
	Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	Insecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE, default=false"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("HOTEL_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Env)
	}
	switch c.DB.Driver {
	case "sqlite", "pgx":
	default:
		return fmt.Errorf("HOTEL_DB_DRIVER must be sqlite or pgx, got %q", c.DB.Driver)
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("HOTEL_SESSION_BACKEND must be memory or redis, got %q", c.Session.Backend)
	}
	if c.CSRFKey == "" {
		if c.IsProduction() {
			return errors.New("HOTEL_CSRF_KEY is required in production")
		}
		c.CSRFKey = devCSRFKey
	}
	if len(c.CSRFKey) != 32 {
		return fmt.Errorf("HOTEL_CSRF_KEY must be 32 bytes, got %d", len(c.CSRFKey))
	}
	if c.Admin.Password == "" {
		if c.IsProduction() {
			return errors.New("HOTEL_ADMIN_PASSWORD is required in production")
		}
		c.Admin.Password = devAdminPassword
	}
	return nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func (c *Config) SlowQuery() time.Duration {
	return time.Duration(c.Perf.SlowQueryMs) * time.Millisecond
}

func (c *Config) SlowRequest() time.Duration {
	return time.Duration(c.Perf.SlowRequestMs) * time.Millisecond
}

// TrustedOrigins lists the host:port values accepted as CSRF origins over plain HTTP.
func (c *Config) TrustedOrigins() []string {
	port := c.Addr
	if i := strings.LastIndex(port, ":"); i >= 0 {
		port = port[i+1:]
	}
	return []string{"localhost:" + port, "127.0.0.1:" + port}
}
