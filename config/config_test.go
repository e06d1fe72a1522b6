package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Token.BaseRadius != 14 {
		t.Errorf("base radius = %f, want 14", cfg.Token.BaseRadius)
	}
	if cfg.Gravity.Strength != 0.15 {
		t.Errorf("gravity = %f, want 0.15", cfg.Gravity.Strength)
	}
	if cfg.Wind.CaptureTime != 500*time.Millisecond {
		t.Errorf("capture time = %v, want 500ms", cfg.Wind.CaptureTime)
	}
	if cfg.Derived.TickDuration != time.Second/60 {
		t.Errorf("tick duration = %v, want %v", cfg.Derived.TickDuration, time.Second/60)
	}
	if cfg.Derived.Width != 1280 || cfg.Derived.Height != 800 {
		t.Errorf("derived size = %fx%f, want 1280x800", cfg.Derived.Width, cfg.Derived.Height)
	}
}

func TestLoadOverlaysUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "gravity:\n  strength: 0.3\nspawn:\n  interval: 0s\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Gravity.Strength != 0.3 {
		t.Errorf("gravity = %f, want 0.3", cfg.Gravity.Strength)
	}
	if cfg.Spawn.Interval != 0 {
		t.Errorf("spawn interval = %v, want 0", cfg.Spawn.Interval)
	}
	// Untouched fields keep their defaults
	if cfg.Gravity.MassEffect != 1.0 {
		t.Errorf("mass effect = %f, want default 1.0", cfg.Gravity.MassEffect)
	}
	if !cfg.Gravity.Realistic {
		t.Error("realistic gravity should stay enabled")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero friction", func(c *Config) { c.Friction = 0 }, "friction"},
		{"mass effect above one", func(c *Config) { c.Gravity.MassEffect = 1.5 }, "mass_effect"},
		{"zero base radius", func(c *Config) { c.Token.BaseRadius = 0 }, "base_radius"},
		{"zero tick rate", func(c *Config) { c.Physics.TickRate = 0 }, "tick_rate"},
		{"zero lookback", func(c *Config) { c.Wind.AngleLookback = 0 }, "angle_lookback"},
		{"smoothing above one", func(c *Config) { c.Wind.Smoothing = 2 }, "smoothing"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("friction: 1.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for friction 1.5")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Wind.MaxAngle = 90
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Wind.MaxAngle != 90 {
		t.Errorf("max angle = %f, want 90", loaded.Wind.MaxAngle)
	}
	if loaded.Wind.LifetimePerPixel != 3*time.Millisecond {
		t.Errorf("lifetime per pixel = %v, want 3ms", loaded.Wind.LifetimePerPixel)
	}
}
