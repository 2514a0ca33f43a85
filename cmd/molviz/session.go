package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/san-kum/molviz/internal/config"
	"github.com/san-kum/molviz/internal/export"
	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/viz"
	"github.com/san-kum/molviz/internal/widget"
)

const (
	resolutionSlider = "resolution"
	radiusSlider     = "radius"
)

// session is one loaded structure with its pipeline and sliders.
type session struct {
	path      string
	structure *molecule.Structure
	pipeline  *scene.Pipeline
	ui        *widget.UI
}

func newSession(path string, cfg *config.Config) (*session, error) {
	st, err := readStructure(path, cfg)
	if err != nil {
		return nil, err
	}
	p, err := scene.NewPipeline(st, cfg.SceneSettings())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	ui := widget.NewUI()
	ui.Style = cfg.SliderStyle()
	ui.AddResolutionSlider(p.Sphere, p.Tube, resolutionSlider, p.Resolution)
	ui.AddRadiusSlider(p.Sphere, radiusSlider, p.Sphere.Radius())

	return &session{path: path, structure: st, pipeline: p, ui: ui}, nil
}

func (s *session) model(cfg *config.Config) viz.Model {
	return viz.NewModel(s.pipeline, s.ui, viz.Options{
		Theme:    cfg.Window.Theme,
		Snapshot: snapshotter(s.path, cfg),
		Steps: map[string]float64{
			resolutionSlider: 1,
			radiusSlider:     0.1,
		},
	})
}

// snapshotter saves the terminal canvas as SVG in the data directory.
func snapshotter(source string, cfg *config.Config) func(*viz.Canvas) (string, error) {
	bg := cfg.BackgroundColor()
	fg := geometry.Color{R: 255, G: 255, B: 255}
	return func(c *viz.Canvas) (string, error) {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return "", err
		}
		base := filepath.Base(source)
		name := fmt.Sprintf("%s_%d.svg", base[:len(base)-len(filepath.Ext(base))], time.Now().Unix())
		path := filepath.Join(cfg.DataDir, name)
		return path, export.WriteSVG(path, c, 4, bg, fg)
	}
}
