package config

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownPreset = errors.New("config: unknown preset")

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"fast":    fastPreset(),
	"quality": qualityPreset(),
}

// fastPreset keeps large structures interactive: fixed coarse
// tessellation, a small point cloud and no slider animation.
func fastPreset() *Config {
	c := DefaultConfig()
	c.Atoms.Resolution = 6
	c.Atoms.CloudPoints = 10000
	c.Sliders.Animate = false
	c.Window.FPS = 30
	c.Render.Size = 320
	c.Render.Frames = 18
	return c
}

func qualityPreset() *Config {
	c := DefaultConfig()
	c.Atoms.Resolution = 20
	c.Bonds.Capping = true
	c.Window.Width = 1280
	c.Window.Height = 960
	c.Render.Size = 1024
	c.Render.Frames = 72
	c.Render.Delay = 4
	return c
}

// GetPreset returns a copy of the named preset.
func GetPreset(name string) (*Config, error) {
	cfg, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	c := *cfg
	return &c, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
