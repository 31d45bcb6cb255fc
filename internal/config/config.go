// Package config loads ls-galaxy settings from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/litescript/ls-galaxy/internal/logging"
)

const (
	appDir   = "ls-galaxy"
	fileName = "config.toml"

	DefaultCatalog     = "galaxy_data.json"
	DefaultLogLevel    = "info"
	DefaultCellWidth   = 8.0
	DefaultCellHeight  = 16.0
	DefaultHTTPTimeout = "15s"
)

// Config is the on-disk configuration. Unset keys keep their defaults.
type Config struct {
	Catalog     string            `toml:"catalog"`
	LogLevel    string            `toml:"log_level"`
	LogFile     string            `toml:"log_file"`
	Watch       bool              `toml:"watch"`
	CellWidth   float64           `toml:"cell_width"`
	CellHeight  float64           `toml:"cell_height"`
	HTTPTimeout string            `toml:"http_timeout"`
	Theme       map[string]string `toml:"theme"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Catalog:     DefaultCatalog,
		LogLevel:    DefaultLogLevel,
		Watch:       true,
		CellWidth:   DefaultCellWidth,
		CellHeight:  DefaultCellHeight,
		HTTPTimeout: DefaultHTTPTimeout,
		Theme:       map[string]string{},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ls-galaxy/config.toml, falling back
// to the user config directory of the platform.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir, fileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Theme == nil {
		cfg.Theme = map[string]string{}
	}

	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory when needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Catalog) == "" {
		return fmt.Errorf("catalog must not be empty")
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %vx%v", c.CellWidth, c.CellHeight)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses http_timeout.
func (c Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("http_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	return d, nil
}

// Level returns the configured log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}

// IsRemote reports whether the catalog is fetched over HTTP.
func (c Config) IsRemote() bool {
	return strings.HasPrefix(c.Catalog, "http://") || strings.HasPrefix(c.Catalog, "https://")
}
