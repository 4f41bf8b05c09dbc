package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/conserve/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.State != (dynamo.State{}) {
		t.Errorf("expected zero state, got %v", cfg.State)
	}
	if cfg.Plot.Samples != 512 {
		t.Errorf("expected 512 samples, got %d", cfg.Plot.Samples)
	}
	if cfg.Slider.Min != -5 || cfg.Slider.Max != 5 {
		t.Errorf("expected slider range [-5, 5], got [%v, %v]", cfg.Slider.Min, cfg.Slider.Max)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_OverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conserve.yaml")
	data := []byte("state:\n  m0: 2\n  v0: 3\nplot:\n  x_min: -10\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.State.M0 != 2 || cfg.State.V0 != 3 || cfg.State.M1 != 0 {
		t.Errorf("unexpected state %v", cfg.State)
	}
	if cfg.Plot.XMin != -10 || cfg.Plot.XMax != DefaultXMax {
		t.Errorf("unexpected domain %v", cfg.Domain())
	}
	if cfg.Plot.Samples != DefaultSamples {
		t.Errorf("expected default samples, got %d", cfg.Plot.Samples)
	}
}

func TestLoad_StateSet(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want bool
	}{
		{"no state section", "plot:\n  x_min: -8\n", false},
		{"empty file", "", false},
		{"state section", "state:\n  m1: 2\n", true},
		{"zero state", "state:\n  m0: 0\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conserve.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatalf("load failed: %v", err)
			}
			if cfg.StateSet != tt.want {
				t.Errorf("StateSet = %v, want %v", cfg.StateSet, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("state: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conserve.yaml")
	cfg := DefaultConfig()
	cfg.State = dynamo.State{M0: 1, V0: -2, M1: 3, V1: -4}
	cfg.Theme = "ocean"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.State != cfg.State || got.Theme != "ocean" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.StateSet {
		t.Error("saved config should carry its state section")
	}
}

func TestSave_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")
	if err := Save(path, DefaultConfig()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("saved defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		err    error
	}{
		{"empty domain", func(c *Config) { c.Plot.XMax = c.Plot.XMin }, dynamo.ErrInvalidDomain},
		{"reversed y", func(c *Config) { c.Plot.YMin = 10 }, dynamo.ErrInvalidDomain},
		{"one sample", func(c *Config) { c.Plot.Samples = 1 }, dynamo.ErrSampleCount},
		{"slider range", func(c *Config) { c.Slider.Min = 5 }, dynamo.ErrParameterBounds},
		{"slider step", func(c *Config) { c.Slider.Step = 0 }, dynamo.ErrParameterBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	s, err := GetPreset("head_on")
	if err != nil {
		t.Fatalf("expected preset: %v", err)
	}
	if s != (dynamo.State{M0: 2, V0: 3, M1: 1, V1: -1}) {
		t.Errorf("unexpected head_on state %v", s)
	}

	if _, err := GetPreset("nonexistent"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("presets not sorted: %v", names)
		}
	}
}

func TestPresets_WithinSliderRange(t *testing.T) {
	for name, s := range Presets {
		if s.Clamp(DefaultSliderMin, DefaultSliderMax) != s {
			t.Errorf("preset %s outside slider range: %v", name, s)
		}
	}
}
