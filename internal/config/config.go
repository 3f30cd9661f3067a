// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// one exists), loads them into structured Go types, applies defaults and
// validates the result once at process start. The resulting *Config is then
// passed explicitly to every component that needs it.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Provide defaults so a bare serverless runtime only needs DATABASE_URL.
//   - Validate values so the app fails fast on bad config.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists, it gets loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

/*
	Key mapping:
	- DATABASE_URL is read as-is (it is the one variable the hosting runtime
	  provides) and lands on database.url.
	- Everything else uses the SALON_ prefix. A double underscore separates
	  nesting levels, a single underscore stays part of the key:
	    SALON_SERVER__PORT                   -> server.port
	    SALON_SERVER__READ_TIMEOUT           -> server.read_timeout
	    SALON_OBSERVABILITY__LOGGING__LEVEL  -> observability.logging.level
	- Any other variable is ignored.
*/

const (
	// EnvPrefix is the prefix of every application variable except DATABASE_URL.
	EnvPrefix = "SALON_"

	// DatabaseURLEnv is the connection string variable.
	DatabaseURLEnv = "DATABASE_URL"

	// ServiceName tags logs, traces and New Relic data.
	ServiceName = "salon-db-api"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database"`
	Redis         RedisConfig          `koanf:"redis"`
	Alerts        AlertsConfig         `koanf:"alerts"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=local development staging production test"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"min=1"`
}

// DatabaseConfig contains the PostgreSQL connection string and pool tuning.
//
// URL is deliberately not required: a missing connection string is reported
// per request by the handler, not at startup.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxConns        int32         `koanf:"max_conns" validate:"min=1"`
	MinConns        int32         `koanf:"min_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

// Configured reports whether a connection string was provided.
func (d DatabaseConfig) Configured() bool {
	return strings.TrimSpace(d.URL) != ""
}

// RedisConfig contains Redis connection details. Address is "host:port".
// An empty address disables Redis-backed features (alerts queue, redis health check).
type RedisConfig struct {
	Address string `koanf:"address"`
}

// Enabled reports whether a Redis address was provided.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// AlertsConfig controls low-stock alert emails.
type AlertsConfig struct {
	Enabled      bool   `koanf:"enabled"`
	Recipient    string `koanf:"recipient" validate:"required_if=Enabled true"`
	From         string `koanf:"from"`
	ResendAPIKey string `koanf:"resend_api_key" validate:"required_if=Enabled true"`
}

// Load reads configuration from the environment, applies defaults and
// validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", mapEnvKey), nil)
	if err != nil {
		return nil, errors.Wrap(err, "could not load env variables")
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "could not unmarshal config")
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	if err := cfg.Observability.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid observability config")
	}

	return cfg, nil
}

// MustLoad is Load for process entrypoints: any error is fatal.
func MustLoad() *Config {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("could not load config")
	}
	return cfg
}

// mapEnvKey converts a raw env var name into a koanf key.
// Returning "" tells the env provider to skip the variable.
func mapEnvKey(s string) string {
	if s == DatabaseURLEnv {
		return "database.url"
	}
	if !strings.HasPrefix(s, EnvPrefix) {
		return ""
	}
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// applyDefaults fills every zero value that has a sensible default.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "production"
	}

	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 30
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}

	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = 4
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = time.Hour
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = 5 * time.Minute
	}

	if c.Alerts.From == "" {
		c.Alerts.From = "Salon Inventory <alerts@resend.dev>"
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary block.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
	c.Observability.fillDefaults()
}
