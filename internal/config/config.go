// Package config handles doula configuration loading and validation.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config is the root configuration structure for doula.
type Config struct {
	// Global settings
	Global GlobalConfig `yaml:"global" mapstructure:"global"`

	// Backend API settings
	API APIConfig `yaml:"api" mapstructure:"api"`

	// Database settings
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`

	// TUI settings
	TUI TUIConfig `yaml:"tui" mapstructure:"tui"`
}

// GlobalConfig contains global doula settings.
type GlobalConfig struct {
	// DataDir is where doula stores its data (default: ~/.local/share/doula).
	DataDir string `yaml:"data_dir" mapstructure:"data_dir"`

	// ConfigDir is where config files are stored (default: ~/.config/doula).
	ConfigDir string `yaml:"config_dir" mapstructure:"config_dir"`
}

// APIConfig describes how to reach the backend.
type APIConfig struct {
	// BaseURL is the backend root, e.g. http://127.0.0.1:8000.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout bounds each request round trip.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// ChatTimeout bounds chat completions, which are slower than lookups.
	ChatTimeout time.Duration `yaml:"chat_timeout" mapstructure:"chat_timeout"`
}

// DatabaseConfig contains database settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path" mapstructure:"path"`

	// BusyTimeout is how long to wait for a locked database (milliseconds).
	BusyTimeoutMs int `yaml:"busy_timeout_ms" mapstructure:"busy_timeout_ms"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level" mapstructure:"level"`

	// Format is the output format (json, console).
	Format string `yaml:"format" mapstructure:"format"`

	// File is an optional log file path. The TUI logs only to this file.
	File string `yaml:"file" mapstructure:"file"`

	// EnableCaller adds caller information to logs.
	EnableCaller bool `yaml:"enable_caller" mapstructure:"enable_caller"`
}

// TUIConfig contains TUI settings.
type TUIConfig struct {
	// Theme is the color theme (default, high-contrast).
	Theme string `yaml:"theme" mapstructure:"theme"`

	// Markdown renders assistant replies as markdown.
	Markdown bool `yaml:"markdown" mapstructure:"markdown"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		Global: GlobalConfig{
			DataDir:   filepath.Join(homeDir, ".local", "share", "doula"),
			ConfigDir: filepath.Join(homeDir, ".config", "doula"),
		},
		API: APIConfig{
			BaseURL:     "http://127.0.0.1:8000",
			Timeout:     10 * time.Second,
			ChatTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Path:          "", // Will be set to DataDir/doula.db
			BusyTimeoutMs: 5000,
		},
		Logging: LoggingConfig{
			Level:        "info",
			Format:       "console",
			EnableCaller: false,
		},
		TUI: TUIConfig{
			Theme:    "default",
			Markdown: true,
		},
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	base := strings.TrimSpace(c.API.BaseURL)
	if base == "" {
		return fmt.Errorf("api.base_url is required")
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return fmt.Errorf("api.base_url is invalid: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must use http or https")
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url must include a host")
	}

	if c.API.Timeout < 100*time.Millisecond {
		return fmt.Errorf("api.timeout must be at least 100ms")
	}
	if c.API.ChatTimeout < c.API.Timeout {
		return fmt.Errorf("api.chat_timeout must be at least api.timeout")
	}

	if c.Database.BusyTimeoutMs < 0 {
		return fmt.Errorf("database.busy_timeout_ms must not be negative")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be one of console, json")
	}

	switch c.TUI.Theme {
	case "default", "high-contrast":
	default:
		return fmt.Errorf("tui.theme must be one of default, high-contrast")
	}

	return nil
}

// EnsureDirectories creates required directories.
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Global.DataDir,
		c.Global.ConfigDir,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// DatabasePath returns the full database path.
func (c *Config) DatabasePath() string {
	if c.Database.Path != "" {
		return c.Database.Path
	}
	return filepath.Join(c.Global.DataDir, "doula.db")
}
