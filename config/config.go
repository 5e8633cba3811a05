// Package config provides application configuration management.
// It loads configuration from environment variables and an optional config file with sensible defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environments recognized by the application.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	Environment     string
}

// DatabaseConfig holds datasource configuration.
type DatabaseConfig struct {
	URL             string
	Username        string
	Password        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration. An empty URL disables Redis.
type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

// RateLimitConfig holds the API rate limiting configuration.
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
	CacheSize   int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string
}

// IsProduction reports whether the server runs in the production environment.
func (c ServerConfig) IsProduction() bool {
	return c.Environment == EnvProduction
}

// IsTest reports whether the server runs in the test environment.
func (c ServerConfig) IsTest() bool {
	return c.Environment == EnvTest
}

// SlogLevel converts the configured level into a slog.Level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Level, err)
	}
	return level, nil
}

// bindings maps configuration keys to the environment variables that feed them.
var bindings = map[string][]string{
	"server.host":             {"SERVER_HOST"},
	"server.port":             {"SERVER_PORT", "PORT"},
	"server.read_timeout":     {"SERVER_READ_TIMEOUT"},
	"server.write_timeout":    {"SERVER_WRITE_TIMEOUT"},
	"server.shutdown_timeout": {"SERVER_SHUTDOWN_TIMEOUT"},
	"server.environment":      {"ENV"},
	"database.url":            {"DATABASE_URL"},
	"database.username":       {"DATABASE_USERNAME"},
	"database.password":       {"DATABASE_PASSWORD"},
	"database.max_open_conns": {"DB_MAX_OPEN_CONNS"},
	"database.max_idle_conns": {"DB_MAX_IDLE_CONNS"},
	"database.conn_max_life":  {"DB_CONN_MAX_LIFETIME"},
	"redis.url":               {"REDIS_URL"},
	"redis.password":          {"REDIS_PASSWORD"},
	"redis.db":                {"REDIS_DB"},
	"rate_limit.enabled":      {"RATE_LIMIT_ENABLED"},
	"rate_limit.max_requests": {"RATE_LIMIT_MAX_REQUESTS"},
	"rate_limit.window":       {"RATE_LIMIT_WINDOW"},
	"rate_limit.cache_size":   {"RATE_LIMIT_CACHE_SIZE"},
	"log.level":               {"LOG_LEVEL"},
}

// NewViper returns a viper instance with defaults and environment bindings registered.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.environment", EnvDevelopment)

	v.SetDefault("database.url", "postgres://localhost:5432/controle_financeiro?sslmode=disable")
	v.SetDefault("database.username", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_life", 5*time.Minute)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max_requests", 100)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("rate_limit.cache_size", 10000)

	v.SetDefault("log.level", "info")

	for key, envs := range bindings {
		// BindEnv only fails without a key.
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}

	return v
}

// Load reads the configuration from v. When configFile is set it is read first;
// environment variables and bound flags take precedence over it.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if v == nil {
		v = NewViper()
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:            v.GetString("server.host"),
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			Environment:     strings.ToLower(v.GetString("server.environment")),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			Username:        v.GetString("database.username"),
			Password:        v.GetString("database.password"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_life"),
		},
		Redis: RedisConfig{
			URL:      v.GetString("redis.url"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		RateLimit: RateLimitConfig{
			Enabled:     v.GetBool("rate_limit.enabled"),
			MaxRequests: v.GetInt("rate_limit.max_requests"),
			Window:      v.GetDuration("rate_limit.window"),
			CacheSize:   v.GetInt("rate_limit.cache_size"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port))
	}
	switch c.Server.Environment {
	case EnvDevelopment, EnvTest, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Server.Environment))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("database URL is required"))
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
