package geometry

import "math"

// MinSphereResolution is the smallest theta/phi resolution a sphere
// accepts; lower values are clamped.
const MinSphereResolution = 3

// SphereSource produces a UV sphere. Theta runs around the z axis, phi
// from the north pole to the south pole.
type SphereSource struct {
	center          Vec3
	radius          float64
	thetaResolution int
	phiResolution   int

	mtime  TimeStamp
	built  uint64
	output *Mesh
}

func NewSphereSource() *SphereSource {
	s := &SphereSource{radius: 0.5, thetaResolution: 8, phiResolution: 8}
	s.mtime.Modified()
	return s
}

func (s *SphereSource) SetCenter(c Vec3) {
	if s.center != c {
		s.center = c
		s.mtime.Modified()
	}
}

func (s *SphereSource) SetRadius(r float64) {
	if s.radius != r {
		s.radius = r
		s.mtime.Modified()
	}
}

func (s *SphereSource) SetThetaResolution(n int) {
	if n < MinSphereResolution {
		n = MinSphereResolution
	}
	if s.thetaResolution != n {
		s.thetaResolution = n
		s.mtime.Modified()
	}
}

func (s *SphereSource) SetPhiResolution(n int) {
	if n < MinSphereResolution {
		n = MinSphereResolution
	}
	if s.phiResolution != n {
		s.phiResolution = n
		s.mtime.Modified()
	}
}

func (s *SphereSource) Center() Vec3         { return s.center }
func (s *SphereSource) Radius() float64      { return s.radius }
func (s *SphereSource) ThetaResolution() int { return s.thetaResolution }
func (s *SphereSource) PhiResolution() int   { return s.phiResolution }
func (s *SphereSource) MTime() uint64        { return s.mtime.Time() }

// Update rebuilds the mesh if a property changed since the last build.
func (s *SphereSource) Update() {
	if s.output != nil && s.built >= s.mtime.Time() {
		return
	}
	s.output = buildSphere(s.center, s.radius, s.thetaResolution, s.phiResolution)
	s.built = s.mtime.Time()
}

func (s *SphereSource) Output() *Mesh {
	s.Update()
	return s.output
}

// buildSphere emits theta*(phi-2)+2 vertices and 2*theta*(phi-2)
// triangles: two pole fans and (phi-3) bands of quads.
func buildSphere(c Vec3, r float64, theta, phi int) *Mesh {
	rings := phi - 2
	m := NewMesh(theta*rings+2, 2*theta*rings)

	north := Vec3{0, 0, 1}
	m.Positions = append(m.Positions, c.Add(north.Scale(r)))
	m.Normals = append(m.Normals, north)

	for j := 1; j <= rings; j++ {
		p := math.Pi * float64(j) / float64(phi-1)
		sp, cp := math.Sin(p), math.Cos(p)
		for i := 0; i < theta; i++ {
			t := 2 * math.Pi * float64(i) / float64(theta)
			n := Vec3{sp * math.Cos(t), sp * math.Sin(t), cp}
			m.Positions = append(m.Positions, c.Add(n.Scale(r)))
			m.Normals = append(m.Normals, n)
		}
	}

	south := Vec3{0, 0, -1}
	m.Positions = append(m.Positions, c.Add(south.Scale(r)))
	m.Normals = append(m.Normals, south)
	southIdx := len(m.Positions) - 1

	ring := func(j, i int) int { return 1 + j*theta + (i % theta) }

	for i := 0; i < theta; i++ {
		m.Triangles = append(m.Triangles, [3]int{0, ring(0, i), ring(0, i+1)})
	}
	for j := 0; j < rings-1; j++ {
		for i := 0; i < theta; i++ {
			a, b := ring(j, i), ring(j, i+1)
			lo, hi := ring(j+1, i), ring(j+1, i+1)
			m.Triangles = append(m.Triangles, [3]int{a, lo, b}, [3]int{b, lo, hi})
		}
	}
	for i := 0; i < theta; i++ {
		m.Triangles = append(m.Triangles, [3]int{southIdx, ring(rings-1, i+1), ring(rings-1, i)})
	}
	return m
}
