// Package config handles loading and saving chronochart configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/chronochart/config.yaml
//   - Data:    ~/.local/share/chronochart/ (event files, exports)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// UIConfig holds viewer preference settings.
type UIConfig struct {
	ShowTelemetry bool   `yaml:"show_telemetry,omitempty"` // Open the telemetry pane on start
	Theme         string `yaml:"theme,omitempty"`          // "dark" or "light"
}

// LayoutConfig holds the layout engine tunables. Zero values mean
// "use the engine default"; see pkg/layout for the defaults themselves.
type LayoutConfig struct {
	SlotsAbove     int     `yaml:"slots_above,omitempty"`      // Card rows above the axis
	SlotsBelow     int     `yaml:"slots_below,omitempty"`      // Card rows below the axis
	MaxColumns     int     `yaml:"max_columns,omitempty"`      // Cap on viewport-scaled columns
	MinGapPx       float64 `yaml:"min_gap_px,omitempty"`       // Cluster merge distance in pixels
	MinWindowWidth float64 `yaml:"min_window_width,omitempty"` // Smallest zoomable window fraction
	DensityMode    string  `yaml:"density_mode,omitempty"`     // "normal", "dense", "very-dense"
}

// Config is the top-level configuration for chronochart.
type Config struct {
	EventsPath string       `yaml:"events_path,omitempty"` // Default event file when none is given
	UI         UIConfig     `yaml:"ui,omitempty"`
	Layout     LayoutConfig `yaml:"layout,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		UI: UIConfig{
			Theme: "dark",
		},
		Layout: LayoutConfig{
			DensityMode: "normal",
		},
	}
}

// ConfigDir returns the XDG config directory for chronochart.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "chronochart")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chronochart")
}

// DataDir returns the XDG data directory for chronochart.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "chronochart")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "chronochart")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.EventsPath = expandHome(cfg.EventsPath)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
