package config

import (
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config struct for environment variables.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	ContentDir   string `envconfig:"CONTENT_DIR" default:"content"`
	ExercisesDir string `envconfig:"EXERCISES_DIR" default:"khan-exercises"`
	DBPath       string `envconfig:"DB_PATH" default:"downloads.db"`

	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"2s"`
	MaxParallel  int           `envconfig:"MAX_PARALLEL" default:"3"`
	MaxAttempts  int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	RetryBackoff time.Duration `envconfig:"RETRY_BACKOFF" default:"5s"`

	MetricsEnabled bool `envconfig:"METRICS_ENABLED" default:"false"`

	// A non-default port keeps this app clear of other KA Lite installations
	// on the same device.
	Server struct {
		Host            string        `split_words:"true" default:"0.0.0.0"`
		Port            int           `split_words:"true" default:"8032"`
		ReadTimeout     time.Duration `split_words:"true" default:"30s"`
		WriteTimeout    time.Duration `split_words:"true" default:"30s"`
		IdleTimeout     time.Duration `split_words:"true" default:"5s"`
		ShutdownTimeout time.Duration `split_words:"true" default:"5s"`
	}
}

// Load reads environment variables and populates the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env: %w", err)
	}

	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL must be positive, got %s", cfg.PollInterval)
	}
	if cfg.MaxParallel < 1 {
		cfg.MaxParallel = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}

	return &cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to INFO.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// BindAddress returns host:port for the exercise server.
func (c *Config) BindAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
