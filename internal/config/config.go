// Package config loads user preferences for the lsbsteg command from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/yyyoichi/lsb_steg/internal/imageio"
)

const (
	appName    = "lsbsteg"
	configFile = "config.yaml"

	currentVersion = 1
)

// Config is the content of config.yaml. Unset fields keep their defaults.
type Config struct {
	Version      int    `yaml:"version"`
	LogLevel     string `yaml:"log_level,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
	// TrimSpace strips leading and trailing white space from messages before encoding.
	TrimSpace *bool `yaml:"trim_space,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	trim := true
	return &Config{
		Version:      currentVersion,
		OutputFormat: string(imageio.PNG),
		TrimSpace:    &trim,
	}
}

// ShouldTrimSpace reports the trim_space setting, true when unset.
func (c *Config) ShouldTrimSpace() bool {
	return c.TrimSpace == nil || *c.TrimSpace
}

// Format returns the parsed output format.
func (c *Config) Format() (imageio.Format, error) {
	return imageio.ParseFormat(c.OutputFormat)
}

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux and others: $XDG_CONFIG_HOME/lsbsteg or $HOME/.config/lsbsteg
//   - macOS: $HOME/.config/lsbsteg
//   - Windows: %LOCALAPPDATA%\lsbsteg
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", errors.New("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil
	case "darwin":
	default:
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetConfigPath returns the full path to the default configuration file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the configuration at path, or at GetConfigPath when path is empty.
// A missing file at the default location yields Default; a missing explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := GetConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to get config path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data on top of Default and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if cfg.Version != currentVersion {
		return nil, fmt.Errorf("unsupported config version: %d (expected %d)", cfg.Version, currentVersion)
	}
	if _, err := cfg.Format(); err != nil {
		return nil, fmt.Errorf("invalid output_format: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory with user-only permissions.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
