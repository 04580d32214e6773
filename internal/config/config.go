package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Run modes
const (
	ModeCLI    = "cli"
	ModeWorker = "worker"
)

// Config holds all configuration for the sheet evaluator
type Config struct {
	// Run mode: evaluate stdin once, or serve requests from a Redis stream
	Mode string `env:"MODE" envDefault:"cli"`

	// Resolution configuration
	Strategy string   `env:"STRATEGY" envDefault:"fixedpoint"`
	Checks   []string `env:"CHECKS" envSeparator:";"`

	// Output templates (empty uses the plain listing format)
	SuccessTemplate string `env:"SUCCESS_TEMPLATE"`
	FailureTemplate string `env:"FAILURE_TEMPLATE"`

	// Worker configuration
	WorkerID string `env:"WORKER_ID" envDefault:"sheet-1"`

	// Redis configuration
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Stream configuration
	StreamKey     string        `env:"STREAM_KEY" envDefault:"sheet.work"`
	ConsumerGroup string        `env:"CONSUMER_GROUP" envDefault:"sheet-workers"`
	ResultStream  string        `env:"RESULT_STREAM" envDefault:"sheet.resolved"`
	BlockTime     time.Duration `env:"BLOCK_TIME" envDefault:"1s"`
	ResultTTL     time.Duration `env:"RESULT_TTL" envDefault:"24h"`

	// Health check configuration
	HealthPort int `env:"HEALTH_PORT" envDefault:"8083"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return LoadWith(env.Options{})
}

// LoadWith loads configuration using explicit env options, e.g. a fixed
// Environment map in tests.
func LoadWith(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Mode != ModeCLI && c.Mode != ModeWorker {
		return fmt.Errorf("MODE must be one of: cli, worker")
	}

	if c.Strategy != "fixedpoint" && c.Strategy != "toposort" {
		return fmt.Errorf("STRATEGY must be one of: fixedpoint, toposort")
	}

	if !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error")
	}

	// Redis settings only matter when serving from a stream
	if c.Mode != ModeWorker {
		return nil
	}

	if c.WorkerID == "" {
		return fmt.Errorf("WORKER_ID is required")
	}

	if c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	if c.StreamKey == "" {
		return fmt.Errorf("STREAM_KEY is required")
	}

	if c.ConsumerGroup == "" {
		return fmt.Errorf("CONSUMER_GROUP is required")
	}

	if c.ResultStream == "" {
		return fmt.Errorf("RESULT_STREAM is required")
	}

	if c.BlockTime <= 0 {
		return fmt.Errorf("BLOCK_TIME must be positive")
	}

	if c.ResultTTL < 0 {
		return fmt.Errorf("RESULT_TTL must be non-negative")
	}

	if c.HealthPort <= 0 || c.HealthPort > 65535 {
		return fmt.Errorf("HEALTH_PORT must be between 1 and 65535")
	}

	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	return validLevels[level]
}

// String returns a string representation of the config (without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Mode=%s, Strategy=%s, Checks=%d, WorkerID=%s, RedisAddr=%s, RedisDB=%d, "+
			"StreamKey=%s, ConsumerGroup=%s, ResultStream=%s, HealthPort=%d, LogLevel=%s}",
		c.Mode,
		c.Strategy,
		len(c.Checks),
		c.WorkerID,
		c.RedisAddr,
		c.RedisDB,
		c.StreamKey,
		c.ConsumerGroup,
		c.ResultStream,
		c.HealthPort,
		c.LogLevel,
	)
}
