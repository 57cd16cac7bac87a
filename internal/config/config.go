package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"sparkcalc/sparkos/proto"
)

// ErrInvalidColor is returned for theme colors that are not "#rrggbb".
var ErrInvalidColor = errors.New("invalid color")

const (
	DefaultScale = 2
	DefaultHz    = 60
	MaxScale     = 4
)

// Config represents the optional calculator YAML configuration.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Headless HeadlessConfig `yaml:"headless"`
	Theme    ThemeConfig    `yaml:"theme"`
}

// WindowConfig contains desktop window settings.
type WindowConfig struct {
	Scale int `yaml:"scale,omitempty"`
}

// HeadlessConfig contains settings for runs without a window.
type HeadlessConfig struct {
	Hz    int    `yaml:"hz,omitempty"`
	Ticks uint64 `yaml:"ticks,omitempty"`
}

// ThemeConfig holds "#rrggbb" overrides. Empty fields keep the default color.
type ThemeConfig struct {
	Background string `yaml:"background,omitempty"`
	DisplayBg  string `yaml:"display_bg,omitempty"`
	DisplayFg  string `yaml:"display_fg,omitempty"`
	KeyBg      string `yaml:"key_bg,omitempty"`
	KeyFg      string `yaml:"key_fg,omitempty"`
	OperatorBg string `yaml:"operator_bg,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Window:   WindowConfig{Scale: DefaultScale},
		Headless: HeadlessConfig{Hz: DefaultHz},
	}
}

// Load reads path if present. A missing file yields Default. Fields absent
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and theme colors.
func (c *Config) Validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > MaxScale {
		return fmt.Errorf("window.scale must be between 1 and %d (got %d)", MaxScale, c.Window.Scale)
	}
	if c.Headless.Hz < 1 {
		return fmt.Errorf("headless.hz must be positive (got %d)", c.Headless.Hz)
	}
	if _, err := c.Theme.Resolve(); err != nil {
		return err
	}
	return nil
}

// Resolve applies the overrides on top of proto.DefaultTheme.
func (tc ThemeConfig) Resolve() (proto.Theme, error) {
	t := proto.DefaultTheme
	fields := []struct {
		name string
		val  string
		dst  *color.RGBA
	}{
		{"background", tc.Background, &t.Background},
		{"display_bg", tc.DisplayBg, &t.DisplayBg},
		{"display_fg", tc.DisplayFg, &t.DisplayFg},
		{"key_bg", tc.KeyBg, &t.KeyBg},
		{"key_fg", tc.KeyFg, &t.KeyFg},
		{"operator_bg", tc.OperatorBg, &t.OperatorBg},
		{"accent", tc.Accent, &t.Accent},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.val) == "" {
			continue
		}
		c, err := ParseColor(f.val)
		if err != nil {
			return proto.Theme{}, fmt.Errorf("theme.%s: %w", f.name, err)
		}
		*f.dst = c
	}
	return t, nil
}

// ParseColor parses "#rrggbb" (the leading '#' is optional).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}
