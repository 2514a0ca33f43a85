package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width != 640 || cfg.Window.Height != 480 {
		t.Errorf("expected 640x480 window, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "ProteinViewer" {
		t.Errorf("expected title ProteinViewer, got %s", cfg.Window.Title)
	}
	if cfg.Reader.BScale != 1.0 || cfg.Reader.HBScale != 1.0 {
		t.Error("bond scales should default to 1.0")
	}
	if cfg.ReaderOptions() != molecule.DefaultOptions() {
		t.Errorf("reader options %+v differ from %+v", cfg.ReaderOptions(), molecule.DefaultOptions())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.BackgroundColor(); got != (geometry.Color{R: 112, G: 128, B: 144}) {
		t.Errorf("background = %v, want slate gray", got)
	}
	cfg.Window.Background = "black"
	if got := cfg.BackgroundColor(); got != (geometry.Color{}) {
		t.Errorf("background = %v, want black", got)
	}
}

func TestSceneSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bonds.Color = "tomato"
	s := cfg.SceneSettings()

	if s.ScaleFactor != 0.25 || s.TubeRadius != 0.2 || s.SphereRadius != 1.0 {
		t.Errorf("unexpected pipeline settings %+v", s)
	}
	if s.Capping {
		t.Error("capping should default off")
	}
	if s.Atoms.SpecularPower != 80 || s.Bonds.Diffuse != 0.7 {
		t.Error("lighting not copied into properties")
	}
	if s.Bonds.Color != (geometry.Color{R: 255, G: 99, B: 71}) {
		t.Errorf("bond colour = %v", s.Bonds.Color)
	}
}

func TestSliderStyle(t *testing.T) {
	s := DefaultConfig().SliderStyle()
	if s.Color != (geometry.Color{R: 204, G: 204, B: 204}) {
		t.Errorf("slider colour = %v", s.Color)
	}
	if s.SelectedColor != (geometry.Color{R: 255, G: 128, B: 0}) {
		t.Errorf("selected colour = %v", s.SelectedColor)
	}
	if !s.Animate || s.AnimationSteps != 24 {
		t.Errorf("animation %v/%d", s.Animate, s.AnimationSteps)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"negative b scale", func(c *Config) { c.Reader.BScale = -1 }},
		{"zero scale factor", func(c *Config) { c.Atoms.ScaleFactor = 0 }},
		{"negative resolution", func(c *Config) { c.Atoms.Resolution = -4 }},
		{"zero bond radius", func(c *Config) { c.Bonds.Radius = 0 }},
		{"zero frames", func(c *Config) { c.Render.Frames = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "molviz.yaml")
	cfg := DefaultConfig()
	cfg.Atoms.Resolution = 12
	cfg.Bonds.Capping = true

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Atoms.Resolution != 12 || !loaded.Bonds.Capping {
		t.Errorf("round trip lost values: %+v", loaded.Atoms)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("atoms:\n  scale_factor: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Atoms.ScaleFactor != 0.5 {
		t.Errorf("scale factor = %v", cfg.Atoms.ScaleFactor)
	}
	if cfg.Window.Title != DefaultTitle || cfg.Bonds.Radius != 0.2 {
		t.Error("defaults lost for fields missing from the file")
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("bonds:\n  radius: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	cfg, err := GetPreset("fast")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Atoms.Resolution != 6 {
		t.Errorf("expected resolution 6, got %v", cfg.Atoms.Resolution)
	}

	cfg.Atoms.Resolution = 99
	again, _ := GetPreset("fast")
	if again.Atoms.Resolution != 6 {
		t.Error("GetPreset should hand out copies")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if _, err := GetPreset("nonexistent"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	want := []string{"default", "fast", "quality"}
	if len(presets) != len(want) {
		t.Fatalf("presets = %v", presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, presets[i], want[i])
		}
	}
	for _, name := range presets {
		cfg, _ := GetPreset(name)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}
