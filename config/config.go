// Package config loads the YAML configuration shared by the demo binaries.
// Every option has a built-in default; a missing file is not an error.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/termwin/log"
)

// Config holds every tunable the binaries expose. Fields absent from the
// file keep their defaults.
type Config struct {
	// FrameBudgetMS is the redraw interval in milliseconds
	FrameBudgetMS int `yaml:"frame_budget_ms"`

	// Backend selects the terminal driver: ansi or tcell
	Backend string `yaml:"backend"`

	// ColorMode is auto, truecolor or 256
	ColorMode string `yaml:"color_mode"`

	Mouse bool `yaml:"mouse"`
	Paste bool `yaml:"paste"`

	// LogFile enables file logging when non-empty
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	Theme Theme `yaml:"theme"`
}

// Theme selects the window chrome colors as "#rrggbb" strings
type Theme struct {
	Border    string `yaml:"border"`
	Title     string `yaml:"title"`
	Scrollbar string `yaml:"scrollbar"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		FrameBudgetMS: 50,
		Backend:       "ansi",
		ColorMode:     "auto",
		Mouse:         true,
		Paste:         true,
		Theme: Theme{
			Border:    "#3c5064",
			Title:     "#c8c8c8",
			Scrollbar: "#646464",
		},
	}
}

// Load reads path on top of the defaults, so the file only needs the
// options it changes. A file that does not exist leaves the defaults
// standing.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports the first nonsensical setting
func (c Config) Validate() error {
	if c.FrameBudgetMS <= 0 {
		return fmt.Errorf("config: frame_budget_ms must be positive, got %d", c.FrameBudgetMS)
	}
	switch c.Backend {
	case "ansi", "tcell":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.ColorMode {
	case "auto", "truecolor", "256":
	default:
		return fmt.Errorf("config: unknown color_mode %q", c.ColorMode)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// FrameBudget returns the redraw interval as a duration
func (c Config) FrameBudget() time.Duration {
	return time.Duration(c.FrameBudgetMS) * time.Millisecond
}
