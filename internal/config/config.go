// Package config loads the device configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the device-level configuration. One file per installation.
type Config struct {
	// DatabasePath locates the local SQLite store.
	DatabasePath string `yaml:"database_path"`

	// APIBaseURL is the remote sales service root, e.g. https://api.example.com.
	APIBaseURL string `yaml:"api_base_url"`

	// APIToken is the bearer credential for the service. Authentication
	// itself is the service's concern; the token is carried verbatim.
	APIToken string `yaml:"api_token"`

	// DeviceCode is the short code embedded in friendly order references,
	// distinguishing codes minted on different devices.
	DeviceCode string `yaml:"device_code"`

	// UserName stamps authored records.
	UserName string `yaml:"user_name"`

	// RequestTimeout bounds each network call.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration values.
func Default() Config {
	return Config{
		DatabasePath:   "btrade.db",
		DeviceCode:     "A01",
		RequestTimeout: 30 * time.Second,
		LogLevel:       "info",
	}
}

// Load reads a YAML config file, layering it over the defaults. Environment
// variables BTRADE_API_URL and BTRADE_API_TOKEN override the file, so
// credentials can stay out of it. Commands that touch the network require
// api_base_url; check RequireAPI after Load.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return cfg, nil
}

// LoadOrDefault behaves like Load but a missing file yields the defaults
// (plus env overrides) instead of an error, so a fresh device works before
// it is configured.
func LoadOrDefault(path string) (Config, error) {
	cfg, err := Load(path)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		cfg = Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	return Config{}, err
}

// RequireAPI validates that the config can reach the remote service.
func (c Config) RequireAPI() error {
	if c.APIBaseURL == "" {
		return errors.New("api_base_url is not configured (file or BTRADE_API_URL)")
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BTRADE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BTRADE_API_TOKEN"); v != "" {
		cfg.APIToken = v
	}
}
