// Package config loads the optional racepace JSON configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/banshee-data/racepace/internal/fsutil"
	"github.com/banshee-data/racepace/internal/openf1"
	"github.com/banshee-data/racepace/internal/pace"
)

// ExampleConfigPath is the documented example configuration.
const ExampleConfigPath = "config/racepace.example.json"

const (
	defaultTimeout = 10 * time.Second
	maxFileSize    = 1 * 1024 * 1024 // 1MB
)

// Config is the root configuration. Every field is optional; the Get*
// methods supply defaults for anything left out.
type Config struct {
	BaseURL         *string  `json:"base_url,omitempty"`
	Timeout         *string  `json:"timeout,omitempty"` // duration string like "10s"
	UserAgent       *string  `json:"user_agent,omitempty"`
	LightnessFactor *float64 `json:"lightness_factor,omitempty"`
	FallbackColor   *string  `json:"fallback_color,omitempty"`

	// TeamColors overrides or extends the built-in team table.
	TeamColors map[string]string `json:"team_colors,omitempty"`
}

// Load reads a Config from a JSON file on fsys.
// The file must have a .json extension and be at most 1MB. Fields omitted
// from the file keep their defaults, so partial configs are safe.
func Load(fsys fsutil.FileSystem, path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := fsys.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := fsys.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the values that are set.
func (c *Config) Validate() error {
	if c.Timeout != nil && *c.Timeout != "" {
		d, err := time.ParseDuration(*c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", *c.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", d)
		}
	}

	if c.LightnessFactor != nil && *c.LightnessFactor <= 0 {
		return fmt.Errorf("lightness_factor must be positive, got %f", *c.LightnessFactor)
	}

	if c.FallbackColor != nil && !pace.ValidHex(*c.FallbackColor) {
		return fmt.Errorf("fallback_color must be a #rrggbb color, got %q", *c.FallbackColor)
	}

	for team, hex := range c.TeamColors {
		if !pace.ValidHex(hex) {
			return fmt.Errorf("team_colors[%q] must be a #rrggbb color, got %q", team, hex)
		}
	}
	return nil
}

// GetBaseURL returns the API root or openf1.DefaultBaseURL.
func (c *Config) GetBaseURL() string {
	if c.BaseURL == nil || *c.BaseURL == "" {
		return openf1.DefaultBaseURL
	}
	return *c.BaseURL
}

// GetTimeout parses Timeout, defaulting to 10s.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout == nil || *c.Timeout == "" {
		return defaultTimeout
	}
	d, err := time.ParseDuration(*c.Timeout)
	if err != nil || d <= 0 {
		return defaultTimeout // default on parse error
	}
	return d
}

// GetUserAgent returns the configured User-Agent, or "" for the caller's
// default.
func (c *Config) GetUserAgent() string {
	if c.UserAgent == nil {
		return ""
	}
	return *c.UserAgent
}

// GetLightnessFactor returns the teammate lightness factor or the default.
func (c *Config) GetLightnessFactor() float64 {
	if c.LightnessFactor == nil || *c.LightnessFactor <= 0 {
		return pace.DefaultLightnessFactor
	}
	return *c.LightnessFactor
}

// GetFallbackColor returns the unknown-team color or the default.
func (c *Config) GetFallbackColor() string {
	if c.FallbackColor == nil || *c.FallbackColor == "" {
		return pace.FallbackColor
	}
	return *c.FallbackColor
}

// Palette builds the team palette described by c.
func (c *Config) Palette() pace.Palette {
	return pace.NewPalette(c.TeamColors, c.GetFallbackColor(), c.GetLightnessFactor())
}
