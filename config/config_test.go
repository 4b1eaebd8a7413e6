package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Expected valid defaults, got %v", err)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Expected no error for a missing file, got %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termwin.yaml")
	doc := strings.Join([]string{
		"frame_budget_ms: 16",
		"backend: tcell",
		"mouse: false",
		"theme:",
		"  border: \"#102030\"",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Expected clean load, got %v", err)
	}

	if cfg.FrameBudgetMS != 16 {
		t.Errorf("Expected frame_budget_ms 16, got %d", cfg.FrameBudgetMS)
	}
	if cfg.Backend != "tcell" {
		t.Errorf("Expected backend tcell, got %q", cfg.Backend)
	}
	if cfg.Mouse {
		t.Error("Expected mouse disabled")
	}
	if cfg.Theme.Border != "#102030" {
		t.Errorf("Expected border override, got %q", cfg.Theme.Border)
	}

	// Untouched options keep their defaults
	if !cfg.Paste {
		t.Error("Expected paste default to survive")
	}
	if cfg.ColorMode != "auto" {
		t.Errorf("Expected color_mode default, got %q", cfg.ColorMode)
	}
	if cfg.Theme.Title != Default().Theme.Title {
		t.Errorf("Expected title default, got %q", cfg.Theme.Title)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero budget", func(c *Config) { c.FrameBudgetMS = 0 }},
		{"negative budget", func(c *Config) { c.FrameBudgetMS = -5 }},
		{"unknown backend", func(c *Config) { c.Backend = "gpu" }},
		{"unknown color mode", func(c *Config) { c.ColorMode = "16" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}

func TestFrameBudget(t *testing.T) {
	cfg := Default()
	if got := cfg.FrameBudget(); got != 50*time.Millisecond {
		t.Errorf("Expected 50ms, got %v", got)
	}
}
