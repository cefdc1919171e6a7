// Package config provides configuration loading from environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Static errors for configuration validation.
var (
	// ErrAccessKeyRequired is returned when KLING_ACCESS_KEY is not set.
	ErrAccessKeyRequired = errors.New("config: KLING_ACCESS_KEY is required")
	// ErrSecretKeyRequired is returned when KLING_SECRET_KEY is not set.
	ErrSecretKeyRequired = errors.New("config: KLING_SECRET_KEY is required")
	// ErrInvalidPollInterval is returned when KLING_POLL_INTERVAL is not positive.
	ErrInvalidPollInterval = errors.New("config: KLING_POLL_INTERVAL must be positive")
)

// Config holds all configuration for the command line tool.
type Config struct {
	// Kling API settings
	AccessKey      string        `env:"KLING_ACCESS_KEY, required" json:"-"` // Masked in JSON
	SecretKey      string        `env:"KLING_SECRET_KEY, required" json:"-"` // Masked in JSON
	BaseURL        string        `env:"KLING_BASE_URL, default=https://api-singapore.klingai.com" json:"base_url"`
	RequestTimeout time.Duration `env:"KLING_REQUEST_TIMEOUT, default=30s" json:"request_timeout"`

	// Wait settings
	PollInterval time.Duration `env:"KLING_POLL_INTERVAL, default=5s" json:"poll_interval"`
	PollTimeout  time.Duration `env:"KLING_POLL_TIMEOUT, default=600s" json:"poll_timeout"`

	// Download settings
	OutputDir string `env:"OUTPUT_DIR, default=." json:"output_dir"`

	// Optional S3 settings
	S3Bucket           string `env:"S3_BUCKET" json:"s3_bucket,omitempty"`
	S3Region           string `env:"S3_REGION" json:"s3_region,omitempty"`
	S3Prefix           string `env:"S3_PREFIX" json:"s3_prefix,omitempty"`
	S3Endpoint         string `env:"S3_ENDPOINT" json:"s3_endpoint,omitempty"`
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" json:"-"`     // Masked in JSON
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" json:"-"` // Masked in JSON

	// Logging settings
	LogFormat string `env:"LOG_FORMAT, default=text" json:"log_format"` // "json" or "text"
	LogLevel  string `env:"LOG_LEVEL, default=warn" json:"log_level"`   // "debug", "info", "warn", "error"
}

// S3Enabled returns true if S3 configuration is provided.
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != "" && c.S3Region != ""
}

// Load reads configuration from environment variables using go-envconfig.
// It returns an error if required variables are not set.
func Load() (*Config, error) {
	return LoadWith(context.Background(), nil)
}

// LoadWith is Load with an explicit lookuper. A nil lookuper reads the
// process environment.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: cfg, Lookuper: lookuper}); err != nil {
		// Map envconfig errors to our domain errors for required fields
		if strings.Contains(err.Error(), "KLING_ACCESS_KEY") {
			return nil, ErrAccessKeyRequired
		}
		if strings.Contains(err.Error(), "KLING_SECRET_KEY") {
			return nil, ErrSecretKeyRequired
		}
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() error {
	if c.AccessKey == "" {
		return ErrAccessKeyRequired
	}
	if c.SecretKey == "" {
		return ErrSecretKeyRequired
	}
	if c.PollInterval <= 0 {
		return ErrInvalidPollInterval
	}
	return nil
}

// NewLogger creates a structured logger based on the configuration.
// When LogFormat is "json", it outputs JSON logs suitable for machines.
// Otherwise, it outputs human-readable text logs. Logs go to stderr so they
// never mix with command output.
func (c *Config) NewLogger() *slog.Logger {
	level := parseLogLevel(c.LogLevel)

	var handler slog.Handler
	if strings.ToLower(c.LogFormat) == "json" {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	}

	return slog.New(handler)
}

// String returns a string representation of the config with sensitive values masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{AccessKey: %s, BaseURL: %s, RequestTimeout: %s, PollInterval: %s, PollTimeout: %s, OutputDir: %s, S3Bucket: %s, S3Region: %s, LogFormat: %s, LogLevel: %s}",
		mask(c.AccessKey),
		c.BaseURL,
		c.RequestTimeout,
		c.PollInterval,
		c.PollTimeout,
		c.OutputDir,
		c.S3Bucket,
		c.S3Region,
		c.LogFormat,
		c.LogLevel,
	)
}

// mask keeps the first four characters of a credential.
func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
