package geometry

import "math"

// Mesh is an indexed triangle mesh. Colors is either empty or holds one
// colour per vertex.
type Mesh struct {
	Positions []Vec3
	Normals   []Vec3
	Colors    []Color
	Triangles [][3]int
}

func NewMesh(vertices, triangles int) *Mesh {
	return &Mesh{
		Positions: make([]Vec3, 0, vertices),
		Normals:   make([]Vec3, 0, vertices),
		Triangles: make([][3]int, 0, triangles),
	}
}

func (m *Mesh) NumVertices() int  { return len(m.Positions) }
func (m *Mesh) NumTriangles() int { return len(m.Triangles) }
func (m *Mesh) HasColors() bool   { return len(m.Colors) == len(m.Positions) && len(m.Colors) > 0 }

// Bounds returns the axis-aligned bounding box. An empty mesh returns
// zero vectors.
func (m *Mesh) Bounds() (Vec3, Vec3) {
	if len(m.Positions) == 0 {
		return Vec3{}, Vec3{}
	}
	lo := Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range m.Positions {
		lo = Vec3{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y), math.Min(lo.Z, p.Z)}
		hi = Vec3{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y), math.Max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Append copies other into m, offsetting its triangle indices.
func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	base := len(m.Positions)
	colored := m.HasColors() || base == 0
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	if colored && other.HasColors() {
		m.Colors = append(m.Colors, other.Colors...)
	} else {
		m.Colors = nil
	}
	for _, t := range other.Triangles {
		m.Triangles = append(m.Triangles, [3]int{t[0] + base, t[1] + base, t[2] + base})
	}
}

// Producer is a pipeline stage with a lazily computed mesh output.
type Producer interface {
	Output() *Mesh
	MTime() uint64
}
