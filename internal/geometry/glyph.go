package geometry

import "github.com/san-kum/molviz/internal/parallel"

// GlyphPoint is one glyph placement: where, how large, which colour.
type GlyphPoint struct {
	Pos   Vec3
	Scale float64
	Color Color
}

type ScaleMode int

const (
	// ScaleByVectorComponents multiplies the source by the point scale.
	ScaleByVectorComponents ScaleMode = iota
	// DataScalingOff uses only the scale factor.
	DataScalingOff
)

type ColorMode int

const (
	ColorByScalar ColorMode = iota
	ColorOff
)

// Glyph3D copies the source mesh to every input point.
type Glyph3D struct {
	input       []GlyphPoint
	source      Producer
	scaling     bool
	scaleMode   ScaleMode
	scaleFactor float64
	colorMode   ColorMode

	mtime  TimeStamp
	built  uint64
	output *Mesh
}

func NewGlyph3D() *Glyph3D {
	g := &Glyph3D{scaling: true, scaleFactor: 1.0}
	g.mtime.Modified()
	return g
}

func (g *Glyph3D) SetInput(points []GlyphPoint) {
	g.input = points
	g.mtime.Modified()
}

func (g *Glyph3D) SetSource(p Producer) {
	g.source = p
	g.mtime.Modified()
}

func (g *Glyph3D) SetScaling(on bool) {
	if g.scaling != on {
		g.scaling = on
		g.mtime.Modified()
	}
}

func (g *Glyph3D) ScalingOn()  { g.SetScaling(true) }
func (g *Glyph3D) ScalingOff() { g.SetScaling(false) }

func (g *Glyph3D) SetScaleMode(m ScaleMode) {
	if g.scaleMode != m {
		g.scaleMode = m
		g.mtime.Modified()
	}
}

func (g *Glyph3D) SetScaleFactor(f float64) {
	if g.scaleFactor != f {
		g.scaleFactor = f
		g.mtime.Modified()
	}
}

func (g *Glyph3D) SetColorMode(m ColorMode) {
	if g.colorMode != m {
		g.colorMode = m
		g.mtime.Modified()
	}
}

func (g *Glyph3D) ScaleFactor() float64 { return g.scaleFactor }
func (g *Glyph3D) NumPoints() int       { return len(g.input) }

// MTime is the newest of the glyph's own stamp and its source's.
func (g *Glyph3D) MTime() uint64 {
	t := g.mtime.Time()
	if g.source != nil && g.source.MTime() > t {
		t = g.source.MTime()
	}
	return t
}

// Update rebuilds the glyphs when the glyph or its source changed.
func (g *Glyph3D) Update() {
	if g.output != nil && g.built >= g.MTime() {
		return
	}
	var src *Mesh
	if g.source != nil {
		src = g.source.Output()
	}
	g.output = g.build(src)
	g.built = g.MTime()
}

func (g *Glyph3D) Output() *Mesh {
	g.Update()
	return g.output
}

func (g *Glyph3D) scaleFor(p GlyphPoint) float64 {
	if !g.scaling || g.scaleMode == DataScalingOff {
		return g.scaleFactor
	}
	return g.scaleFactor * p.Scale
}

// build writes each glyph into its own slot of preallocated slices so
// workers never share an index range.
func (g *Glyph3D) build(src *Mesh) *Mesh {
	if src == nil || len(g.input) == 0 {
		return &Mesh{}
	}
	nv, nt := src.NumVertices(), src.NumTriangles()
	n := len(g.input)

	out := &Mesh{
		Positions: make([]Vec3, n*nv),
		Normals:   make([]Vec3, n*nv),
		Triangles: make([][3]int, n*nt),
	}
	if g.colorMode == ColorByScalar {
		out.Colors = make([]Color, n*nv)
	}

	fill := func(start, end int) {
		for i := start; i < end; i++ {
			p := g.input[i]
			s := g.scaleFor(p)
			vo, to := i*nv, i*nt
			for k, v := range src.Positions {
				out.Positions[vo+k] = p.Pos.Add(v.Scale(s))
				out.Normals[vo+k] = src.Normals[k]
				if out.Colors != nil {
					out.Colors[vo+k] = p.Color
				}
			}
			for k, t := range src.Triangles {
				out.Triangles[to+k] = [3]int{t[0] + vo, t[1] + vo, t[2] + vo}
			}
		}
	}

	minChunk := 1
	if nv > 0 {
		minChunk = 2048/nv + 1
	}
	parallel.For(n, minChunk, fill)
	return out
}
