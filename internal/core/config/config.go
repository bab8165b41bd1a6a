// Package config handles configuration loading and validation for tempbox.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvCronSecret  = "TEMPBOX_CRON_SECRET"
	EnvGofileToken = "TEMPBOX_GOFILE_TOKEN"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Cleanup   CleanupConfig   `yaml:"cleanup"`
	MailTM    MailTMConfig    `yaml:"mailtm"`
	Gofile    GofileConfig    `yaml:"gofile"`
	RateLimit RateLimitConfig `yaml:"ratelimit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	// WriteTimeout of 0 disables the write deadline.
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// CleanupConfig holds sweep settings.
type CleanupConfig struct {
	// Secret is the bearer token required by the cleanup and file endpoints.
	// An empty secret rejects every call.
	Secret     string        `yaml:"secret"`
	BatchSize  int           `yaml:"batch_size"`
	BatchDelay time.Duration `yaml:"batch_delay"`
	// Interval runs sweeps in-process on a ticker. Zero disables it.
	Interval time.Duration `yaml:"interval"`
}

// MailTMConfig holds the mail API settings.
type MailTMConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// GofileConfig holds the file host settings.
type GofileConfig struct {
	BaseURL    string        `yaml:"base_url"`
	Token      string        `yaml:"token"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
}

// RateLimitConfig bounds mail proxy requests per client per window.
type RateLimitConfig struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `yaml:"window"`
}

// CORSConfig lists allowed origins as glob patterns.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cleanup: CleanupConfig{
			BatchSize:  5,
			BatchDelay: time.Second,
		},
		MailTM: MailTMConfig{
			BaseURL: "https://api.mail.tm",
			Timeout: 10 * time.Second,
		},
		Gofile: GofileConfig{
			BaseURL:    "https://api.gofile.io",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		RateLimit: RateLimitConfig{
			Requests: 8,
			Window:   time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads configuration from the given path. If configPath is empty or
// doesn't exist, defaults are used. Environment overrides are applied last.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()
	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Server.Addr == "" {
		c.Server.Addr = defaults.Server.Addr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = defaults.Server.ReadTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if c.Cleanup.BatchSize == 0 {
		c.Cleanup.BatchSize = defaults.Cleanup.BatchSize
	}
	if c.MailTM.BaseURL == "" {
		c.MailTM.BaseURL = defaults.MailTM.BaseURL
	}
	if c.MailTM.Timeout == 0 {
		c.MailTM.Timeout = defaults.MailTM.Timeout
	}
	if c.Gofile.BaseURL == "" {
		c.Gofile.BaseURL = defaults.Gofile.BaseURL
	}
	if c.Gofile.Timeout == 0 {
		c.Gofile.Timeout = defaults.Gofile.Timeout
	}
	if c.RateLimit.Requests == 0 {
		c.RateLimit.Requests = defaults.RateLimit.Requests
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = defaults.RateLimit.Window
	}
	if c.CORS.AllowedOrigins == nil {
		c.CORS.AllowedOrigins = defaults.CORS.AllowedOrigins
	}
}

// applyEnv overlays secrets from the environment. Set variables win over
// the file.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvCronSecret); v != "" {
		c.Cleanup.Secret = v
	}
	if v := getenv(EnvGofileToken); v != "" {
		c.Gofile.Token = v
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr cannot be empty")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts cannot be negative")
	}
	if c.Cleanup.BatchSize < 1 {
		return fmt.Errorf("cleanup.batch_size must be at least 1")
	}
	if c.Cleanup.BatchDelay < 0 {
		return fmt.Errorf("cleanup.batch_delay cannot be negative")
	}
	if c.Cleanup.Interval < 0 {
		return fmt.Errorf("cleanup.interval cannot be negative")
	}
	if c.MailTM.Timeout < 0 || c.Gofile.Timeout < 0 {
		return fmt.Errorf("client timeouts cannot be negative")
	}
	if c.Gofile.MaxRetries < 0 {
		return fmt.Errorf("gofile.max_retries cannot be negative")
	}
	if c.RateLimit.Requests < 1 {
		return fmt.Errorf("ratelimit.requests must be at least 1")
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("ratelimit.window must be positive")
	}
	return nil
}
