package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// PortConfig selects a MIDI input/output pair. Each side is a port index
// ("3") or a case-insensitive name substring; empty means ask.
type PortConfig struct {
	In  string `yaml:"in"`
	Out string `yaml:"out"`
}

// Config is the main configuration structure
type Config struct {
	Surface PortConfig `yaml:"surface"`
	Sink    PortConfig `yaml:"sink"`

	StartupAnimation bool          `yaml:"startupAnimation"`
	StartupPause     time.Duration `yaml:"startupPause"`
	FaderStep        time.Duration `yaml:"faderStep"`

	Keys         bool          `yaml:"keys"` // inject arrow keys through uinput
	DebugLog     bool          `yaml:"debugLog"`
	PollInterval time.Duration `yaml:"pollInterval"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Surface: PortConfig{
			In:  "X-Touch",
			Out: "X-Touch",
		},
		Sink: PortConfig{
			In:  "MyDMX",
			Out: "MyDMX",
		},
		StartupAnimation: true,
		StartupPause:     time.Second,
		FaderStep:        50 * time.Millisecond,
		Keys:             true,
		PollInterval:     time.Millisecond,
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "xtouch-bridge"), nil
}

// ConfigPath returns the full path to config.yaml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath returns the debug log location
func LogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "debug.log"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultConfig().PollInterval
	}
	return cfg, nil
}

// Save writes the config to the default location
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
