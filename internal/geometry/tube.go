package geometry

import "math"

// MinTubeSides is the smallest side count a tube accepts.
const MinTubeSides = 3

// Segment is one straight line piece a tube is swept along.
type Segment struct {
	A, B Vec3
}

// TubeFilter sweeps a polygonal cross-section along line segments.
type TubeFilter struct {
	input         []Segment
	numberOfSides int
	radius        float64
	capping       bool

	mtime  TimeStamp
	built  uint64
	output *Mesh
}

func NewTubeFilter() *TubeFilter {
	t := &TubeFilter{numberOfSides: 3, radius: 0.5}
	t.mtime.Modified()
	return t
}

func (t *TubeFilter) SetInput(segments []Segment) {
	t.input = segments
	t.mtime.Modified()
}

func (t *TubeFilter) SetNumberOfSides(n int) {
	if n < MinTubeSides {
		n = MinTubeSides
	}
	if t.numberOfSides != n {
		t.numberOfSides = n
		t.mtime.Modified()
	}
}

func (t *TubeFilter) SetRadius(r float64) {
	if t.radius != r {
		t.radius = r
		t.mtime.Modified()
	}
}

func (t *TubeFilter) SetCapping(on bool) {
	if t.capping != on {
		t.capping = on
		t.mtime.Modified()
	}
}

func (t *TubeFilter) CappingOn()  { t.SetCapping(true) }
func (t *TubeFilter) CappingOff() { t.SetCapping(false) }

func (t *TubeFilter) NumberOfSides() int { return t.numberOfSides }
func (t *TubeFilter) Radius() float64    { return t.radius }
func (t *TubeFilter) Capping() bool      { return t.capping }
func (t *TubeFilter) MTime() uint64      { return t.mtime.Time() }

// Update rebuilds the tubes if the input or a property changed.
func (t *TubeFilter) Update() {
	if t.output != nil && t.built >= t.mtime.Time() {
		return
	}
	t.output = buildTubes(t.input, t.numberOfSides, t.radius, t.capping)
	t.built = t.mtime.Time()
}

func (t *TubeFilter) Output() *Mesh {
	t.Update()
	return t.output
}

// buildTubes emits 2*sides vertices and 2*sides triangles per segment,
// plus 2*sides vertices and 2*(sides-2) triangles when capped.
// Zero-length segments are skipped.
func buildTubes(segments []Segment, sides int, radius float64, capping bool) *Mesh {
	perVerts, perTris := 2*sides, 2*sides
	if capping {
		perVerts += 2 * sides
		perTris += 2 * (sides - 2)
	}
	m := NewMesh(len(segments)*perVerts, len(segments)*perTris)

	for _, seg := range segments {
		axis := seg.B.Sub(seg.A)
		if axis.Length() == 0 {
			continue
		}
		dir := axis.Normalize()
		n1 := dir.Perpendicular()
		n2 := dir.Cross(n1).Normalize()

		base := len(m.Positions)
		for _, end := range []Vec3{seg.A, seg.B} {
			for k := 0; k < sides; k++ {
				a := 2 * math.Pi * float64(k) / float64(sides)
				n := n1.Scale(math.Cos(a)).Add(n2.Scale(math.Sin(a)))
				m.Positions = append(m.Positions, end.Add(n.Scale(radius)))
				m.Normals = append(m.Normals, n)
			}
		}
		for k := 0; k < sides; k++ {
			a0, a1 := base+k, base+(k+1)%sides
			b0, b1 := a0+sides, a1+sides
			m.Triangles = append(m.Triangles, [3]int{a0, b0, a1}, [3]int{a1, b0, b1})
		}

		if !capping {
			continue
		}
		for e := 0; e < 2; e++ {
			normal := dir.Scale(-1)
			if e == 1 {
				normal = dir
			}
			capBase := len(m.Positions)
			for k := 0; k < sides; k++ {
				m.Positions = append(m.Positions, m.Positions[base+e*sides+k])
				m.Normals = append(m.Normals, normal)
			}
			for k := 1; k < sides-1; k++ {
				if e == 0 {
					m.Triangles = append(m.Triangles, [3]int{capBase, capBase + k + 1, capBase + k})
				} else {
					m.Triangles = append(m.Triangles, [3]int{capBase, capBase + k, capBase + k + 1})
				}
			}
		}
	}
	return m
}
