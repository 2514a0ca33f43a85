package scene

import "github.com/san-kum/molviz/internal/geometry"

// DefaultCloudPoints is the vertex budget of the interactive point cloud.
const DefaultCloudPoints = 30000

// Actor pairs a mesh producer with its appearance. ScalarVisibility
// selects per-vertex mesh colours over Property.Color.
type Actor struct {
	Name             string
	Mapper           geometry.Producer
	Property         Property
	ScalarVisibility bool
	Visible          bool
	CloudPoints      int
}

func NewActor(name string, mapper geometry.Producer) *Actor {
	return &Actor{
		Name:        name,
		Mapper:      mapper,
		Property:    DefaultProperty(),
		Visible:     true,
		CloudPoints: DefaultCloudPoints,
	}
}

// Mesh returns the up-to-date mapper output.
func (a *Actor) Mesh() *geometry.Mesh {
	if a.Mapper == nil {
		return &geometry.Mesh{}
	}
	return a.Mapper.Output()
}

// VertexColor returns the colour vertex i is drawn with before lighting.
func (a *Actor) VertexColor(m *geometry.Mesh, i int) geometry.Color {
	if a.ScalarVisibility && m.HasColors() {
		return m.Colors[i]
	}
	return a.Property.Color
}

// PointCloud returns at most CloudPoints vertex indices, evenly strided,
// for the low level of detail drawn while the camera moves.
func (a *Actor) PointCloud() []int {
	m := a.Mesh()
	n := m.NumVertices()
	budget := a.CloudPoints
	if budget <= 0 || n == 0 {
		return nil
	}
	if n <= budget {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}
	idx := make([]int, budget)
	step := float64(n) / float64(budget)
	for i := range idx {
		idx[i] = int(float64(i) * step)
	}
	return idx
}
