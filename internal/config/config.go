// Package config provides configuration loading for the patina server and CLI.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvLogLevel    = "PATINA_LOG_LEVEL"
	EnvLogFormat   = "PATINA_LOG_FORMAT"
	EnvMetricsAddr = "PATINA_METRICS_ADDR"
	EnvCatalog     = "PATINA_CATALOG"
)

// Config is the complete patina configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Catalog CatalogConfig `yaml:"catalog"`
}

// ServerConfig names the MCP implementation.
type ServerConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// LogConfig configures the slog default.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	// Addr is the listen address for /metrics; empty disables the endpoint.
	Addr string `yaml:"addr"`
}

// CatalogConfig points at replacement morphospace content.
type CatalogConfig struct {
	// Path is a YAML file replacing the embedded morphospace content; empty uses the embedded copy.
	Path string `yaml:"path"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name:    "Patina & Weathering MCP",
			Version: "1.0.0-phase2.7+tier4d",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("server.name is required")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// ParseLevel maps a level name onto slog.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log.level must be debug, info, warn or error, got %q", s)
}

// SlogLevel returns the configured level, falling back to info.
func (c *Config) SlogLevel() slog.Level {
	l, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Merge merges other into c; non-zero values in other win.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Server.Name != "" {
		c.Server.Name = other.Server.Name
	}
	if other.Server.Version != "" {
		c.Server.Version = other.Server.Version
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
	if other.Metrics.Addr != "" {
		c.Metrics.Addr = other.Metrics.Addr
	}
	if other.Catalog.Path != "" {
		c.Catalog.Path = other.Catalog.Path
	}
}

// ApplyEnv overlays the PATINA_* variables read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	c.Merge(&Config{
		Log: LogConfig{
			Level:  getenv(EnvLogLevel),
			Format: getenv(EnvLogFormat),
		},
		Metrics: MetricsConfig{Addr: getenv(EnvMetricsAddr)},
		Catalog: CatalogConfig{Path: getenv(EnvCatalog)},
	})
}
