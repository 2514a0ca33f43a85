package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
)

func TestInitialResolution(t *testing.T) {
	tests := []struct {
		count int
		want  float64
	}{
		{1, 20},
		{100, 20},
		{750, 20},
		{3000, 10},
		{18750, 4},
		{300000, 4},
		{1000000, 4},
	}

	for _, tt := range tests {
		got, err := InitialResolution(tt.count)
		if err != nil {
			t.Fatalf("InitialResolution(%d): %v", tt.count, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("InitialResolution(%d) = %v, want %v", tt.count, got, tt.want)
		}
	}
}

func TestInitialResolution_Monotone(t *testing.T) {
	prev := math.Inf(1)
	for n := 1; n <= 40000; n += 37 {
		r, err := InitialResolution(n)
		if err != nil {
			t.Fatal(err)
		}
		if r > prev {
			t.Fatalf("resolution increased at %d atoms: %v > %v", n, r, prev)
		}
		if r < MinResolution || r > MaxResolution {
			t.Fatalf("resolution %v out of bounds at %d atoms", r, n)
		}
		prev = r
	}
}

func TestInitialResolution_InvalidCount(t *testing.T) {
	for _, n := range []int{0, -1, -300000} {
		if _, err := InitialResolution(n); !errors.Is(err, ErrInvalidAtomCount) {
			t.Errorf("InitialResolution(%d) error = %v, want ErrInvalidAtomCount", n, err)
		}
	}
}

func TestNamedColor(t *testing.T) {
	c, ok := NamedColor(" SlateGray ")
	if !ok {
		t.Fatal("expected SlateGray to be known")
	}
	if c != (geometry.Color{R: 112, G: 128, B: 144}) {
		t.Errorf("SlateGray = %v", c)
	}
	if _, ok := NamedColor("not-a-colour"); ok {
		t.Error("expected unknown colour to miss")
	}
	if got := ColorOr("nope", geometry.Color{R: 1}); got.R != 1 {
		t.Errorf("ColorOr fallback = %v", got)
	}
}

func TestDefaultProperty(t *testing.T) {
	p := DefaultProperty()
	if p.Ambient != 0.1 || p.Diffuse != 0.7 || p.Specular != 0.5 || p.SpecularPower != 80 {
		t.Errorf("unexpected lighting coefficients %+v", p)
	}
	if p.Interpolation != Gouraud {
		t.Error("expected Gouraud interpolation")
	}
	if p.SpecularColor != (geometry.Color{R: 255, G: 255, B: 255}) {
		t.Errorf("specular colour = %v, want white", p.SpecularColor)
	}
}

func TestPropertyShade(t *testing.T) {
	p := DefaultProperty()
	z := geometry.Vec3{Z: 1}
	white := geometry.Color{R: 255, G: 255, B: 255}
	black := geometry.Color{}

	if got := p.Shade(white, z, z, z); got != white {
		t.Errorf("lit white = %v, want saturated white", got)
	}
	if got := p.Shade(black, z, z, z); got.R != 128 || got.G != 128 || got.B != 128 {
		t.Errorf("specular-only black = %v, want 128 grey", got)
	}
	if got := p.Shade(white, geometry.Vec3{Z: -1}, z, z); got.R != 26 {
		t.Errorf("back face = %v, want ambient only", got)
	}
}

func TestActorPointCloud(t *testing.T) {
	sphere := geometry.NewSphereSource()
	sphere.SetThetaResolution(20)
	sphere.SetPhiResolution(20)
	a := NewActor("sphere", sphere)

	n := sphere.Output().NumVertices()
	if got := len(a.PointCloud()); got != n {
		t.Errorf("small mesh cloud = %d, want all %d vertices", got, n)
	}

	a.CloudPoints = 10
	idx := a.PointCloud()
	if len(idx) != 10 {
		t.Fatalf("expected 10 cloud points, got %d", len(idx))
	}
	for i := 1; i < len(idx); i++ {
		if idx[i] <= idx[i-1] || idx[i] >= n {
			t.Fatalf("bad cloud index sequence %v", idx)
		}
	}

	a.CloudPoints = 0
	if a.PointCloud() != nil {
		t.Error("expected no cloud with zero budget")
	}
}

func water() *molecule.Structure {
	return &molecule.Structure{
		Title: "water",
		Atoms: []molecule.Atom{
			{Serial: 1, Name: "O", Element: "O"},
			{Serial: 2, Name: "H1", Element: "H", X: 0.957},
			{Serial: 3, Name: "H2", Element: "H", X: -0.240, Y: 0.927},
		},
		Bonds: []molecule.Bond{{I: 0, J: 1, Order: 1}, {I: 0, J: 2, Order: 1}},
	}
}

func TestNewPipeline(t *testing.T) {
	p, err := NewPipeline(water(), DefaultSettings())
	if err != nil {
		t.Fatalf("pipeline failed: %v", err)
	}
	if p.Resolution != 20 {
		t.Errorf("resolution = %v, want 20", p.Resolution)
	}
	if p.Sphere.ThetaResolution() != 20 || p.Sphere.PhiResolution() != 20 {
		t.Errorf("sphere resolution %d/%d", p.Sphere.ThetaResolution(), p.Sphere.PhiResolution())
	}
	if p.Tube.NumberOfSides() != 20 {
		t.Errorf("tube sides = %d", p.Tube.NumberOfSides())
	}
	if p.Tube.Radius() != DefaultTubeRadius || p.Tube.Capping() {
		t.Errorf("tube radius %v capping %v", p.Tube.Radius(), p.Tube.Capping())
	}
	if p.Glyph.NumPoints() != 3 {
		t.Errorf("glyph points = %d, want 3", p.Glyph.NumPoints())
	}
	if p.Glyph.ScaleFactor() != DefaultScaleFactor {
		t.Errorf("scale factor = %v", p.Glyph.ScaleFactor())
	}

	atoms := p.AtomActor.Mesh()
	if atoms.NumVertices() != 3*(20*18+2) {
		t.Errorf("atom vertices = %d", atoms.NumVertices())
	}
	if bonds := p.BondActor.Mesh(); bonds.NumVertices() != 2*2*20 {
		t.Errorf("bond vertices = %d", bonds.NumVertices())
	}

	if !atoms.HasColors() || atoms.Colors[0] != (geometry.Color{R: 255, G: 13, B: 13}) {
		t.Errorf("expected oxygen-coloured first glyph")
	}
	if len(p.Actors()) != 2 {
		t.Errorf("expected 2 visible actors, got %d", len(p.Actors()))
	}
	if p.Extent <= 0 {
		t.Errorf("extent = %v", p.Extent)
	}
}

func TestNewPipeline_Recentres(t *testing.T) {
	st := water()
	for i := range st.Atoms {
		st.Atoms[i].X += 100
	}
	p, err := NewPipeline(st, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	lo, hi := p.AtomActor.Mesh().Bounds()
	mid := lo.Add(hi).Scale(0.5)
	if math.Abs(mid.X) > 2 {
		t.Errorf("atoms not recentred: mid %v", mid)
	}
}

func TestNewPipeline_FixedResolution(t *testing.T) {
	cfg := DefaultSettings()
	cfg.Resolution = 6.9
	p, err := NewPipeline(water(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.Sphere.ThetaResolution() != 6 || p.Tube.NumberOfSides() != 6 {
		t.Errorf("expected truncation to 6, got %d/%d", p.Sphere.ThetaResolution(), p.Tube.NumberOfSides())
	}
}

func TestNewPipeline_Empty(t *testing.T) {
	_, err := NewPipeline(&molecule.Structure{}, DefaultSettings())
	if !errors.Is(err, ErrInvalidAtomCount) {
		t.Errorf("error = %v, want ErrInvalidAtomCount", err)
	}
}

func TestPipelineRespondsToSphere(t *testing.T) {
	p, err := NewPipeline(water(), DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	before := p.AtomActor.Mesh()
	p.Sphere.SetRadius(2)
	p.Update()
	after := p.AtomActor.Mesh()
	if after == before {
		t.Fatal("glyph output not rebuilt after sphere change")
	}
	if after.NumVertices() != before.NumVertices() {
		t.Errorf("vertex count changed with radius: %d -> %d", before.NumVertices(), after.NumVertices())
	}
}
