package export

import (
	"image"
	"image/color"
	"math"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/parallel"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/viz"
)

// Renderer rasterises scene actors offline with a z-buffer and Gouraud
// shading. The camera is shared with the terminal viewer.
type Renderer struct {
	Width, Height int
	Background    geometry.Color
	Camera        *viz.Camera
	Light         geometry.Vec3
}

func NewRenderer(w, h int, extent float64) *Renderer {
	return &Renderer{
		Width:      w,
		Height:     h,
		Background: geometry.Color{R: 112, G: 128, B: 144},
		Camera:     viz.NewCamera(extent),
		Light:      geometry.Vec3{X: 0.3, Y: 0.5, Z: 1}.Normalize(),
	}
}

type rasterVertex struct {
	x, y, z float64
	r, g, b float64
}

type rasterTriangle struct {
	v                      [3]int
	minX, maxX, minY, maxY int
}

// Render draws the visible actors into a new image.
func (r *Renderer) Render(actors []*scene.Actor) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	verts, tris := r.project(actors)

	depth := make([]float64, r.Width*r.Height)
	for i := range depth {
		depth[i] = math.Inf(-1)
	}
	bg := color.RGBA{R: r.Background.R, G: r.Background.G, B: r.Background.B, A: 255}
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}

	// Bands of rows are disjoint, so workers never write the same pixel.
	parallel.For(r.Height, 16, func(y0, y1 int) {
		for _, t := range tris {
			if t.maxY < y0 || t.minY >= y1 {
				continue
			}
			r.fill(img, depth, verts, t, y0, y1)
		}
	})
	return img
}

func (r *Renderer) project(actors []*scene.Actor) ([]rasterVertex, []rasterTriangle) {
	cam := r.Camera
	view := geometry.Vec3{Z: 1}
	minDim := math.Min(float64(r.Width), float64(r.Height))
	pScale := cam.Zoom * minDim / (2.2 * cam.Extent)
	cx, cy := float64(r.Width)/2, float64(r.Height)/2

	var verts []rasterVertex
	var tris []rasterTriangle
	for _, a := range actors {
		if !a.Visible {
			continue
		}
		m := a.Mesh()
		base := len(verts)
		for i, p := range m.Positions {
			rp := cam.RotatePoint(p)
			persp := 1.0
			if d := cam.Distance - rp.Z; d > 0 {
				persp = cam.Distance / d
			}
			n := cam.RotatePoint(m.Normals[i])
			if n.Z < 0 {
				n = n.Scale(-1)
			}
			c := a.Property.Shade(a.VertexColor(m, i), n, r.Light, view)
			cr, cg, cb := c.Float()
			verts = append(verts, rasterVertex{
				x: cx + rp.X*pScale*persp,
				y: cy - rp.Y*pScale*persp,
				z: rp.Z,
				r: cr * 255,
				g: cg * 255,
				b: cb * 255,
			})
		}
		for _, t := range m.Triangles {
			rt := rasterTriangle{v: [3]int{base + t[0], base + t[1], base + t[2]}}
			va, vb, vc := verts[rt.v[0]], verts[rt.v[1]], verts[rt.v[2]]
			rt.minX = int(math.Floor(math.Min(va.x, math.Min(vb.x, vc.x))))
			rt.maxX = int(math.Ceil(math.Max(va.x, math.Max(vb.x, vc.x))))
			rt.minY = int(math.Floor(math.Min(va.y, math.Min(vb.y, vc.y))))
			rt.maxY = int(math.Ceil(math.Max(va.y, math.Max(vb.y, vc.y))))
			if rt.maxX < 0 || rt.minX >= r.Width || rt.maxY < 0 || rt.minY >= r.Height {
				continue
			}
			tris = append(tris, rt)
		}
	}
	return verts, tris
}

func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// fill rasterises t into rows [y0, y1).
func (r *Renderer) fill(img *image.RGBA, depth []float64, verts []rasterVertex, t rasterTriangle, y0, y1 int) {
	a, b, c := verts[t.v[0]], verts[t.v[1]], verts[t.v[2]]
	area := edge(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}

	minX, maxX := max(t.minX, 0), min(t.maxX, r.Width-1)
	minY, maxY := max(t.minY, y0), min(t.maxY, y1-1)
	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			w0 := edge(b.x, b.y, c.x, c.y, px, py) / area
			w1 := edge(c.x, c.y, a.x, a.y, px, py) / area
			w2 := 1 - w0 - w1
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*a.z + w1*b.z + w2*c.z
			i := y*r.Width + x
			if z <= depth[i] {
				continue
			}
			depth[i] = z
			o := img.PixOffset(x, y)
			img.Pix[o] = clampByte(w0*a.r + w1*b.r + w2*c.r)
			img.Pix[o+1] = clampByte(w0*a.g + w1*b.g + w2*c.g)
			img.Pix[o+2] = clampByte(w0*a.b + w1*b.b + w2*c.b)
			img.Pix[o+3] = 255
		}
	}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// Spin renders frames of one full turn about the vertical axis, starting
// from the camera's current orientation.
func (r *Renderer) Spin(actors []*scene.Actor, frames int) []*image.RGBA {
	start := r.Camera.RotY
	defer func() { r.Camera.RotY = start }()

	out := make([]*image.RGBA, 0, frames)
	for f := 0; f < frames; f++ {
		r.Camera.RotY = start + 2*math.Pi*float64(f)/float64(frames)
		out = append(out, r.Render(actors))
	}
	return out
}
