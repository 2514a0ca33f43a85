package scene

import (
	"log"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
)

const (
	DefaultSphereRadius = 1.0
	DefaultScaleFactor  = 0.25
	DefaultTubeRadius   = 0.2
)

// Settings are the tunables of the atom and bond pipeline. A zero
// Resolution means "pick one from the atom count".
type Settings struct {
	SphereRadius float64
	ScaleFactor  float64
	TubeRadius   float64
	Capping      bool
	Resolution   float64
	CloudPoints  int
	Atoms        Property
	Bonds        Property
}

func DefaultSettings() Settings {
	return Settings{
		SphereRadius: DefaultSphereRadius,
		ScaleFactor:  DefaultScaleFactor,
		TubeRadius:   DefaultTubeRadius,
		CloudPoints:  DefaultCloudPoints,
		Atoms:        DefaultProperty(),
		Bonds:        DefaultProperty(),
	}
}

// Pipeline is the wired scene for one structure: a sphere glyphed onto
// every atom and a tube around every bond. Coordinates are recentred on
// the structure's centroid.
type Pipeline struct {
	Structure  *molecule.Structure
	Sphere     *geometry.SphereSource
	Glyph      *geometry.Glyph3D
	Tube       *geometry.TubeFilter
	AtomActor  *Actor
	BondActor  *Actor
	Resolution float64
	Extent     float64
}

func NewPipeline(s *molecule.Structure, cfg Settings) (*Pipeline, error) {
	res := cfg.Resolution
	if res <= 0 {
		r, err := InitialResolution(s.NumAtoms())
		if err != nil {
			return nil, err
		}
		res = r
	}
	log.Printf("number of atoms: %d", s.NumAtoms())
	log.Printf("resolution: %g", res)

	cx, cy, cz := s.Center()
	center := geometry.Vec3{X: cx, Y: cy, Z: cz}

	points := make([]geometry.GlyphPoint, len(s.Atoms))
	extent := 0.0
	for i, a := range s.Atoms {
		c := a.Color()
		pos := geometry.Vec3{X: a.X, Y: a.Y, Z: a.Z}.Sub(center)
		points[i] = geometry.GlyphPoint{
			Pos:   pos,
			Scale: a.Radius(),
			Color: geometry.Color{R: c[0], G: c[1], B: c[2]},
		}
		if d := pos.Length() + a.Radius()*cfg.ScaleFactor*cfg.SphereRadius; d > extent {
			extent = d
		}
	}

	segments := make([]geometry.Segment, len(s.Bonds))
	for i, b := range s.Bonds {
		segments[i] = geometry.Segment{A: points[b.I].Pos, B: points[b.J].Pos}
	}

	sphere := geometry.NewSphereSource()
	sphere.SetCenter(geometry.Vec3{})
	sphere.SetRadius(cfg.SphereRadius)
	sphere.SetThetaResolution(int(res))
	sphere.SetPhiResolution(int(res))

	glyph := geometry.NewGlyph3D()
	glyph.SetInput(points)
	glyph.SetSource(sphere)
	glyph.ScalingOn()
	glyph.SetScaleMode(geometry.ScaleByVectorComponents)
	glyph.SetScaleFactor(cfg.ScaleFactor)
	glyph.SetColorMode(geometry.ColorByScalar)

	tube := geometry.NewTubeFilter()
	tube.SetInput(segments)
	tube.SetNumberOfSides(int(res))
	tube.SetRadius(cfg.TubeRadius)
	tube.SetCapping(cfg.Capping)

	atoms := NewActor("atoms", glyph)
	atoms.Property = cfg.Atoms
	atoms.ScalarVisibility = true
	atoms.CloudPoints = cfg.CloudPoints

	bonds := NewActor("bonds", tube)
	bonds.Property = cfg.Bonds
	bonds.CloudPoints = cfg.CloudPoints

	return &Pipeline{
		Structure:  s,
		Sphere:     sphere,
		Glyph:      glyph,
		Tube:       tube,
		AtomActor:  atoms,
		BondActor:  bonds,
		Resolution: res,
		Extent:     extent,
	}, nil
}

// Actors returns the visible actors in draw order.
func (p *Pipeline) Actors() []*Actor {
	var out []*Actor
	for _, a := range []*Actor{p.AtomActor, p.BondActor} {
		if a.Visible {
			out = append(out, a)
		}
	}
	return out
}

// Update brings every stage up to date.
func (p *Pipeline) Update() {
	p.Sphere.Update()
	p.Glyph.Update()
	p.Tube.Update()
}
