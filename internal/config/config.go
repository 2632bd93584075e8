// Package config provides configuration loading for taskweave.
//
// Configuration comes from an optional YAML file overridden by
// environment variables, with sensible defaults. The loaded Config is
// injected into components explicitly; nothing else in the codebase
// reads the process environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/fyrsmithlabs/taskweave/internal/extraction"
)

// Config holds the complete taskweave configuration.
type Config struct {
	Server     ServerConfig               `koanf:"server"`
	Log        LogConfig                  `koanf:"log"`
	DB         DBConfig                   `koanf:"db"`
	Auth       AuthConfig                 `koanf:"auth"`
	Anthropic  extraction.ProviderConfig  `koanf:"anthropic"`
	OpenAI     extraction.ProviderConfig  `koanf:"openai"`
	Extraction ExtractionConfig           `koanf:"extraction"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// DBConfig holds storage configuration.
type DBConfig struct {
	Path string `koanf:"path"`
}

// AuthConfig holds session authentication configuration. An empty
// Password disables the password check (local development); Secret
// signs session cookies and should always be set in production.
type AuthConfig struct {
	Password string `koanf:"password"`
	Secret   string `koanf:"secret"`
}

// ExtractionConfig holds orchestrator-level extraction settings.
// Provider credentials live in the top-level Anthropic and OpenAI
// sections so the conventional ANTHROPIC_API_KEY and OPENAI_API_KEY
// environment variables map onto them directly.
type ExtractionConfig struct {
	ForceMock      bool `koanf:"force_mock"`
	TimeoutSeconds int  `koanf:"timeout_seconds"`
}

// Default returns the configuration defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8484,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		DB: DBConfig{
			Path: "taskweave.db",
		},
		Auth: AuthConfig{
			Secret: "fallback-dev-secret",
		},
		Extraction: ExtractionConfig{
			TimeoutSeconds: 30,
		},
	}
}

// ExtractionSettings assembles the extraction package's config from
// the relevant sections.
func (c *Config) ExtractionSettings() extraction.Config {
	return extraction.Config{
		ForceMock:      c.Extraction.ForceMock,
		TimeoutSeconds: c.Extraction.TimeoutSeconds,
		Anthropic:      c.Anthropic,
		OpenAI:         c.OpenAI,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q (must be json or console)", c.Log.Format)
	}
	if c.DB.Path == "" {
		return errors.New("database path is required")
	}
	if c.Auth.Secret == "" {
		return errors.New("auth secret is required")
	}
	if c.Extraction.TimeoutSeconds <= 0 {
		return errors.New("extraction timeout must be positive")
	}
	return nil
}
