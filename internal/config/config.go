package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/widget"
)

const (
	DefaultWidth       = 640
	DefaultHeight      = 480
	DefaultTitle       = "ProteinViewer"
	DefaultBackground  = "slategray"
	DefaultFPS         = 60
	DefaultTheme       = "default"
	DefaultDataDir     = ".molviz"
	DefaultRenderSize  = 512
	DefaultFrames      = 36
	DefaultFrameDelay  = 8
	DefaultAnimSteps   = widget.DefaultAnimationSteps
	DefaultSpecularPow = 80.0
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Reader   ReaderConfig   `yaml:"reader"`
	Atoms    AtomConfig     `yaml:"atoms"`
	Bonds    BondConfig     `yaml:"bonds"`
	Lighting LightingConfig `yaml:"lighting"`
	Sliders  SliderConfig   `yaml:"sliders"`
	Render   RenderConfig   `yaml:"render"`
	DataDir  string         `yaml:"data_dir"`
}

type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Title      string `yaml:"title"`
	Background string `yaml:"background"`
	FPS        int    `yaml:"fps"`
	Theme      string `yaml:"theme"`
}

type ReaderConfig struct {
	BScale     float64 `yaml:"b_scale"`
	HBScale    float64 `yaml:"hb_scale"`
	InferBonds bool    `yaml:"infer_bonds"`
}

// AtomConfig controls the glyph pipeline. Resolution 0 picks one from the
// atom count.
type AtomConfig struct {
	SphereRadius float64 `yaml:"sphere_radius"`
	ScaleFactor  float64 `yaml:"scale_factor"`
	Resolution   float64 `yaml:"resolution"`
	CloudPoints  int     `yaml:"cloud_points"`
}

type BondConfig struct {
	Radius  float64 `yaml:"radius"`
	Capping bool    `yaml:"capping"`
	Color   string  `yaml:"color"`
}

type LightingConfig struct {
	Ambient       float64 `yaml:"ambient"`
	Diffuse       float64 `yaml:"diffuse"`
	Specular      float64 `yaml:"specular"`
	SpecularPower float64 `yaml:"specular_power"`
}

// SliderConfig colours are RGB triples in [0,1].
type SliderConfig struct {
	Animate        bool       `yaml:"animate"`
	AnimationSteps int        `yaml:"animation_steps"`
	Color          [3]float64 `yaml:"color"`
	SelectedColor  [3]float64 `yaml:"selected_color"`
}

type RenderConfig struct {
	Size   int `yaml:"size"`
	Frames int `yaml:"frames"`
	Delay  int `yaml:"delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			Title:      DefaultTitle,
			Background: DefaultBackground,
			FPS:        DefaultFPS,
			Theme:      DefaultTheme,
		},
		Reader: ReaderConfig{
			BScale:  1.0,
			HBScale: 1.0,
		},
		Atoms: AtomConfig{
			SphereRadius: scene.DefaultSphereRadius,
			ScaleFactor:  scene.DefaultScaleFactor,
			CloudPoints:  scene.DefaultCloudPoints,
		},
		Bonds: BondConfig{
			Radius: scene.DefaultTubeRadius,
			Color:  "white",
		},
		Lighting: LightingConfig{
			Ambient:       0.1,
			Diffuse:       0.7,
			Specular:      0.5,
			SpecularPower: DefaultSpecularPow,
		},
		Sliders: SliderConfig{
			Animate:        true,
			AnimationSteps: DefaultAnimSteps,
			Color:          [3]float64{0.8, 0.8, 0.8},
			SelectedColor:  [3]float64{1.0, 0.5, 0.0},
		},
		Render: RenderConfig{
			Size:   DefaultRenderSize,
			Frames: DefaultFrames,
			Delay:  DefaultFrameDelay,
		},
		DataDir: DefaultDataDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case c.Reader.BScale <= 0 || c.Reader.HBScale <= 0:
		return fmt.Errorf("%w: bond scales must be positive", ErrInvalidConfig)
	case c.Atoms.SphereRadius <= 0 || c.Atoms.ScaleFactor <= 0:
		return fmt.Errorf("%w: atom radius and scale factor must be positive", ErrInvalidConfig)
	case c.Atoms.Resolution < 0:
		return fmt.Errorf("%w: resolution %g", ErrInvalidConfig, c.Atoms.Resolution)
	case c.Bonds.Radius <= 0:
		return fmt.Errorf("%w: bond radius %g", ErrInvalidConfig, c.Bonds.Radius)
	case c.Render.Size <= 0 || c.Render.Frames <= 0:
		return fmt.Errorf("%w: render size and frames must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) ReaderOptions() molecule.Options {
	return molecule.Options{
		BScale:     c.Reader.BScale,
		HBScale:    c.Reader.HBScale,
		InferBonds: c.Reader.InferBonds,
	}
}

func (c *Config) property(color geometry.Color) scene.Property {
	p := scene.DefaultProperty()
	p.Color = color
	p.Ambient = c.Lighting.Ambient
	p.Diffuse = c.Lighting.Diffuse
	p.Specular = c.Lighting.Specular
	p.SpecularPower = c.Lighting.SpecularPower
	return p
}

func (c *Config) SceneSettings() scene.Settings {
	s := scene.DefaultSettings()
	s.SphereRadius = c.Atoms.SphereRadius
	s.ScaleFactor = c.Atoms.ScaleFactor
	s.Resolution = c.Atoms.Resolution
	s.CloudPoints = c.Atoms.CloudPoints
	s.TubeRadius = c.Bonds.Radius
	s.Capping = c.Bonds.Capping
	s.Atoms = c.property(geometry.Color{R: 255, G: 255, B: 255})
	s.Bonds = c.property(scene.ColorOr(c.Bonds.Color, geometry.Color{R: 255, G: 255, B: 255}))
	return s
}

func (c *Config) SliderStyle() widget.Style {
	s := widget.DefaultStyle()
	s.Animate = c.Sliders.Animate
	s.AnimationSteps = c.Sliders.AnimationSteps
	s.Color = rgb(c.Sliders.Color)
	s.SelectedColor = rgb(c.Sliders.SelectedColor)
	return s
}

func (c *Config) BackgroundColor() geometry.Color {
	return scene.ColorOr(c.Window.Background, geometry.Color{R: 112, G: 128, B: 144})
}

func rgb(v [3]float64) geometry.Color {
	b := func(f float64) uint8 {
		if f <= 0 {
			return 0
		}
		if f >= 1 {
			return 255
		}
		return uint8(f*255 + 0.5)
	}
	return geometry.Color{R: b(v[0]), G: b(v[1]), B: b(v[2])}
}
