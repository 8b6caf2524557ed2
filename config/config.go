// ABOUTME: Application configuration loaded from XDG paths, .env and the environment
// ABOUTME: Resolves API, database, server, logging and UI settings with defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/rolodex/models"
)

const appName = "rolodex"

// Defaults.
const (
	DefaultAPIURL        = "http://localhost:3001"
	DefaultAPITimeout    = 10 * time.Second
	DefaultListenAddr    = ":3001"
	DefaultLogLevel      = "info"
	DefaultToastLifetime = 7 * time.Second
)

type Config struct {
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	UI       UIConfig       `yaml:"ui"`
}

type APIConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token,omitempty"`
	Timeout time.Duration `yaml:"timeout"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type ServerConfig struct {
	Listen string `yaml:"listen"`
	// Token, when set, is required as a bearer token by the API server.
	Token string `yaml:"token,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

type UIConfig struct {
	ToastLifetime time.Duration `yaml:"toast_lifetime"`
	SortOrder     string        `yaml:"sort_order"`
}

// Dir returns the XDG config directory for the app.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DataDir returns the XDG data directory for the app.
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// StateDir returns the XDG state directory, where the TUI writes its log.
func StateDir() string {
	return filepath.Join(xdg.StateHome, appName)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     DefaultAPIURL,
			Timeout: DefaultAPITimeout,
		},
		Database: DatabaseConfig{
			URL: filepath.Join(DataDir(), appName+".db"),
		},
		Server: ServerConfig{
			Listen: DefaultListenAddr,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		UI: UIConfig{
			ToastLifetime: DefaultToastLifetime,
			SortOrder:     string(models.SortAsc),
		},
	}
}

// Load reads the config file at path (Path() when empty), then .env files,
// then environment overrides. A missing file is not an error.
// Environment variables override file values:
// - ROLODEX_API_URL
// - ROLODEX_API_TOKEN
// - ROLODEX_API_TIMEOUT
// - ROLODEX_DATABASE_URL
// - ROLODEX_LISTEN_ADDR
// - ROLODEX_SERVER_TOKEN
// - ROLODEX_LOG_LEVEL
// - ROLODEX_LOG_FILE.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads each existing file; variables already set win.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("ROLODEX_API_URL"); v != "" {
		cfg.API.URL = v
	}
	if v := os.Getenv("ROLODEX_API_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("ROLODEX_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid ROLODEX_API_TIMEOUT %q: %w", v, err)
		}
		cfg.API.Timeout = d
	}
	if v := os.Getenv("ROLODEX_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("ROLODEX_LISTEN_ADDR"); v != "" {
		cfg.Server.Listen = v
	}
	if v := os.Getenv("ROLODEX_SERVER_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("ROLODEX_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ROLODEX_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.API.URL, "http://") && !strings.HasPrefix(c.API.URL, "https://") {
		return fmt.Errorf("api.url must be an http(s) URL, got %q", c.API.URL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("database.url is required")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.UI.ToastLifetime <= 0 {
		c.UI.ToastLifetime = DefaultToastLifetime
	}
	return nil
}

// SortOrder returns the configured initial sort order.
func (c *Config) SortOrder() models.SortOrder {
	return models.ParseSortOrder(c.UI.SortOrder)
}

// Save writes cfg to path (Path() when empty) with restricted permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = Path()
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
