package export

import (
	"bytes"
	"image"
	"image/gif"
	"image/png"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/molecule"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/viz"
)

func waterPipeline(t *testing.T) *scene.Pipeline {
	t.Helper()
	st := &molecule.Structure{
		Atoms: []molecule.Atom{
			{Element: "O"},
			{Element: "H", X: 0.957},
			{Element: "H", X: -0.240, Y: 0.927},
		},
		Bonds: []molecule.Bond{{I: 0, J: 1, Order: 1}, {I: 0, J: 2, Order: 1}},
	}
	p, err := scene.NewPipeline(st, scene.DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func isBackground(img *image.RGBA, x, y int, bg geometry.Color) bool {
	o := img.PixOffset(x, y)
	return img.Pix[o] == bg.R && img.Pix[o+1] == bg.G && img.Pix[o+2] == bg.B
}

func TestRender(t *testing.T) {
	p := waterPipeline(t)
	r := NewRenderer(96, 64, p.Extent)
	img := r.Render(p.Actors())

	if img.Bounds().Dx() != 96 || img.Bounds().Dy() != 64 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for _, pt := range [][2]int{{0, 0}, {95, 0}, {0, 63}, {95, 63}} {
		if !isBackground(img, pt[0], pt[1], r.Background) {
			t.Errorf("corner %v not background", pt)
		}
	}

	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 96; x++ {
			if !isBackground(img, x, y, r.Background) {
				covered++
			}
		}
	}
	if covered < 100 {
		t.Errorf("only %d pixels covered by the molecule", covered)
	}
}

func TestRender_Deterministic(t *testing.T) {
	p := waterPipeline(t)
	r := NewRenderer(80, 80, p.Extent)
	a := r.Render(p.Actors())
	b := r.Render(p.Actors())
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("parallel render not deterministic")
	}
}

func TestRender_Empty(t *testing.T) {
	r := NewRenderer(8, 8, 1)
	img := r.Render(nil)
	if !isBackground(img, 4, 4, r.Background) {
		t.Error("empty scene should be background only")
	}
}

func TestSpin(t *testing.T) {
	p := waterPipeline(t)
	r := NewRenderer(48, 48, p.Extent)
	r.Camera.RotY = 0.5

	frames := r.Spin(p.Actors(), 6)
	if len(frames) != 6 {
		t.Fatalf("frames = %d", len(frames))
	}
	if r.Camera.RotY != 0.5 {
		t.Errorf("camera not restored: %v", r.Camera.RotY)
	}
	if bytes.Equal(frames[0].Pix, frames[3].Pix) {
		t.Error("half-turn frame identical to the first")
	}
}

func TestEncodePNG(t *testing.T) {
	p := waterPipeline(t)
	img := NewRenderer(32, 24, p.Extent).Render(p.Actors())

	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	dec, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if dec.Bounds() != img.Bounds() {
		t.Errorf("decoded bounds %v", dec.Bounds())
	}
}

func TestWriteGIF(t *testing.T) {
	p := waterPipeline(t)
	frames := NewRenderer(32, 32, p.Extent).Spin(p.Actors(), 4)
	path := filepath.Join(t.TempDir(), "spin.gif")
	if err := WriteGIF(path, frames, 8); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := EncodeGIF(&buf, frames, 8); err != nil {
		t.Fatal(err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 4 || anim.Delay[0] != 8 {
		t.Errorf("frames %d delay %v", len(anim.Image), anim.Delay)
	}
}

func TestCanvasToSVG(t *testing.T) {
	c := viz.NewCanvas(2, 1)
	c.Plot(0, 0, 1, geometry.Color{R: 255})
	c.Plot(3, 3, 1, geometry.Color{})
	c.Set(2, 0)

	svg := CanvasToSVG(c, 4, geometry.Color{R: 112, G: 128, B: 144}, geometry.Color{G: 255})
	if got := strings.Count(svg, "<circle"); got != 3 {
		t.Errorf("circles = %d, want 3", got)
	}
	for _, want := range []string{`fill="#708090"`, `fill="#ff0000"`, `fill="#00ff00"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %s", want)
		}
	}
	if CanvasToSVG(nil, 1, geometry.Color{}, geometry.Color{}) != "" {
		t.Error("nil canvas should render empty")
	}
}
