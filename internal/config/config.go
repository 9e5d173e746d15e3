// Package config loads and saves the application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration.
type Config struct {
	// Database configuration
	Database DatabaseConfig `toml:"database"`

	// Entry defaults applied when recording a match
	Entry EntryConfig `toml:"entry"`

	// Export configuration
	Export ExportConfig `toml:"export"`

	// Watch mode configuration
	Watch WatchConfig `toml:"watch"`
}

// DatabaseConfig contains record store settings.
type DatabaseConfig struct {
	Path string `toml:"path"` // Path to the SQLite database; empty means the default location
}

// EntryConfig contains defaults for the record subcommand.
type EntryConfig struct {
	DefaultSeason      string   `toml:"default_season"`      // Season used when none is given
	DefaultEnvironment string   `toml:"default_environment"` // Environment used when none is given
	Environments       []string `toml:"environments"`        // Known environments, offered on entry
}

// ExportConfig contains export settings.
type ExportConfig struct {
	Dir string `toml:"dir"` // Directory exports are written to; empty means the working directory
}

// WatchConfig contains watch mode settings.
type WatchConfig struct {
	PollInterval string `toml:"poll_interval"` // Fallback polling interval (e.g., "2s")
	UseFsnotify  bool   `toml:"use_fsnotify"`  // Use file system events
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: "",
		},
		Entry: EntryConfig{
			DefaultSeason:      "",
			DefaultEnvironment: "casual",
			Environments:       []string{"casual", "store", "tournament"},
		},
		Export: ExportConfig{
			Dir: "",
		},
		Watch: WatchConfig{
			PollInterval: "2s",
			UseFsnotify:  true,
		},
	}
}

// configPath returns the path to the configuration file.
func configPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".deck-ledger")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	return filepath.Join(configDir, "config.toml"), nil
}

// DatabasePath returns the configured database path, or the default path
// under the config directory when unset.
func (c *Config) DatabasePath() (string, error) {
	if c.Database.Path != "" {
		return c.Database.Path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".deck-ledger", "ledger.db"), nil
}

// Load loads the configuration from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &config, nil
}

// Save saves the configuration to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Watch.PollInterval != "" {
		if _, err := time.ParseDuration(c.Watch.PollInterval); err != nil {
			return fmt.Errorf("invalid poll interval %q: %w", c.Watch.PollInterval, err)
		}
	}

	for _, env := range c.Entry.Environments {
		if env == "" {
			return fmt.Errorf("environments list contains an empty entry")
		}
	}

	return nil
}

// GetPollInterval returns the watch poll interval as a duration.
func (c *Config) GetPollInterval() (time.Duration, error) {
	if c.Watch.PollInterval == "" {
		return 2 * time.Second, nil
	}
	return time.ParseDuration(c.Watch.PollInterval)
}
