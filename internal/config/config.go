// Package config loads editor configuration from a JSON file. A missing
// file yields the defaults; a malformed file is an error so the user
// notices a broken config instead of silently losing their settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/keylite/internal/renderer"
	"github.com/dshills/keylite/internal/renderer/core"
)

// ErrInvalidConfig indicates the config file is not valid JSON.
var ErrInvalidConfig = errors.New("invalid config file")

// Theme holds the colors used to draw the screen.
type Theme struct {
	GutterForeground core.Color
	StatusForeground core.Color
	StatusBackground core.Color
}

// Config is the editor configuration.
type Config struct {
	GutterWidth int
	LogFile     string
	LogLevel    string
	Theme       Theme
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		GutterWidth: 4,
		LogLevel:    "info",
		Theme: Theme{
			GutterForeground: core.ColorLightBlue,
			StatusForeground: core.ColorWhite,
			StatusBackground: core.ColorBlue,
		},
	}
}

// DefaultPath returns the standard config file location, or "" if the
// user config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "keylite", "config.json")
}

// Load reads the config file at path. A missing file or empty path
// returns the defaults. Unset fields keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return cfg, fmt.Errorf("%w: %s", ErrInvalidConfig, path)
	}

	if v := gjson.GetBytes(data, "gutter_width"); v.Exists() {
		cfg.GutterWidth = int(v.Int())
	}
	if v := gjson.GetBytes(data, "log.file"); v.Exists() {
		cfg.LogFile = v.String()
	}
	if v := gjson.GetBytes(data, "log.level"); v.Exists() {
		cfg.LogLevel = v.String()
	}

	if err := loadColor(data, "theme.gutter_fg", &cfg.Theme.GutterForeground); err != nil {
		return cfg, err
	}
	if err := loadColor(data, "theme.status_fg", &cfg.Theme.StatusForeground); err != nil {
		return cfg, err
	}
	if err := loadColor(data, "theme.status_bg", &cfg.Theme.StatusBackground); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// loadColor parses a hex color at the given JSON path into dst if set.
func loadColor(data []byte, path string, dst *core.Color) error {
	v := gjson.GetBytes(data, path)
	if !v.Exists() {
		return nil
	}
	c, err := core.ColorFromHex(v.String())
	if err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	*dst = c
	return nil
}

// WriteDefault writes the default configuration as JSON to path,
// creating parent directories. Does not overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	cfg := Default()
	data := []byte("{}")
	var err error

	set := func(key string, value interface{}) {
		if err != nil {
			return
		}
		data, err = sjson.SetBytes(data, key, value)
	}
	set("gutter_width", cfg.GutterWidth)
	set("log.file", cfg.LogFile)
	set("log.level", cfg.LogLevel)
	set("theme.gutter_fg", cfg.Theme.GutterForeground.Hex())
	set("theme.status_fg", cfg.Theme.StatusForeground.Hex())
	set("theme.status_bg", cfg.Theme.StatusBackground.Hex())
	if err != nil {
		return fmt.Errorf("build default config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Styles maps the theme onto renderer styles.
func (c Config) Styles() renderer.Styles {
	return renderer.Styles{
		Text:   core.DefaultStyle(),
		Gutter: core.DefaultStyle().WithForeground(c.Theme.GutterForeground),
		Status: core.DefaultStyle().WithForeground(c.Theme.StatusForeground).WithBackground(c.Theme.StatusBackground),
	}
}
