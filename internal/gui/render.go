package gui

import (
	"math"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/widget"
)

func (a *App) drawScene() {
	view := vec3(rl.Vector3Normalize(rl.Vector3Subtract(a.Camera.Position, a.Camera.Target)))
	// Headlight, slightly above and right of the eye.
	right := geometry.Vec3{Y: 1}.Cross(view).Normalize()
	light := view.Add(right.Scale(0.3)).Add(geometry.Vec3{Y: 0.3}).Normalize()

	lod := a.Interacting()
	for _, act := range a.Pipeline.Actors() {
		switch {
		case lod:
			a.drawPointCloud(act, light, view)
		case a.Wireframe || act.Property.Representation == scene.Wireframe:
			a.drawWireframe(act)
		case act.Property.Representation == scene.Points:
			a.drawPointCloud(act, light, view)
		default:
			a.drawSurface(act, light, view)
		}
	}
}

func (a *App) shade(act *scene.Actor, m *geometry.Mesh, i int, light, view geometry.Vec3) rl.Color {
	n := view
	if i < len(m.Normals) {
		n = m.Normals[i]
	}
	if n.Dot(view) < 0 {
		n = n.Scale(-1)
	}
	return toRL(act.Property.Shade(act.VertexColor(m, i), n, light, view))
}

func (a *App) drawSurface(act *scene.Actor, light, view geometry.Vec3) {
	m := act.Mesh()
	if m.NumTriangles() == 0 {
		return
	}
	colors := make([]rl.Color, m.NumVertices())
	for i := range colors {
		colors[i] = a.shade(act, m, i, light, view)
	}
	flat := act.Property.Interpolation == scene.Flat

	rl.Begin(rl.Triangles)
	for _, t := range m.Triangles {
		for _, vi := range t {
			c := colors[vi]
			if flat {
				c = colors[t[0]]
			}
			rl.Color4ub(c.R, c.G, c.B, c.A)
			p := m.Positions[vi]
			rl.Vertex3f(float32(p.X), float32(p.Y), float32(p.Z))
		}
	}
	rl.End()
}

func (a *App) drawWireframe(act *scene.Actor) {
	m := act.Mesh()
	c := toRL(act.Property.Color)
	rl.Begin(rl.Lines)
	for _, t := range m.Triangles {
		for k := 0; k < 3; k++ {
			p, q := m.Positions[t[k]], m.Positions[t[(k+1)%3]]
			if act.ScalarVisibility && m.HasColors() {
				c = toRL(m.Colors[t[k]])
			}
			rl.Color4ub(c.R, c.G, c.B, c.A)
			rl.Vertex3f(float32(p.X), float32(p.Y), float32(p.Z))
			rl.Vertex3f(float32(q.X), float32(q.Y), float32(q.Z))
		}
	}
	rl.End()
}

func (a *App) drawPointCloud(act *scene.Actor, light, view geometry.Vec3) {
	m := act.Mesh()
	for _, i := range act.PointCloud() {
		p := m.Positions[i]
		rl.DrawPoint3D(rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z)), a.shade(act, m, i, light, view))
	}
}

func (a *App) drawSlider(s *widget.SliderWidget, w, h int) {
	rep, ok := s.Representation().(*widget.SliderRepresentation2D)
	if !ok || !s.Enabled() {
		return
	}
	l := rep.Layout(w, h)
	angle := float32(math.Atan2(l.Dir[1], l.Dir[0]) * 180 / math.Pi)

	bar := func(center [2]float64, length, width float64, c geometry.Color) {
		rec := rl.NewRectangle(float32(center[0]), float32(center[1]), float32(length), float32(width))
		rl.DrawRectanglePro(rec, rl.NewVector2(float32(length/2), float32(width/2)), angle, toRL(c))
	}
	mid := func(p, q [2]float64) [2]float64 {
		return [2]float64{(p[0] + q[0]) / 2, (p[1] + q[1]) / 2}
	}

	bar(mid(l.TubeStart, l.TubeEnd), l.Length-2*l.CapLength, l.TubeWidth, rep.TubeColor)
	bar(mid(l.P1, l.TubeStart), l.CapLength, l.CapWidth, rep.CapColor)
	bar(mid(l.TubeEnd, l.P2), l.CapLength, l.CapWidth, rep.CapColor)
	bar(l.Bead, l.SliderLength, l.SliderWidth, rep.CurrentSliderColor())

	size := int(math.Max(12, float64(h)/32))
	if rep.Title != "" {
		c := mid(l.P1, l.P2)
		tw := rl.MeasureTextEx(a.Font, rep.Title, float32(size), 1).X
		y := c[1] + l.CapWidth
		a.drawText(rep.Title, int(c[0]-float64(tw)/2), int(y), size, toRL(rep.TitleColor))
	}
	if rep.ShowLabel {
		label := strings.TrimSpace(rep.Label())
		tw := rl.MeasureTextEx(a.Font, label, float32(size), 1).X
		y := l.Bead[1] - l.SliderWidth - float64(size)
		a.drawText(label, int(l.Bead[0]-float64(tw)/2), int(y), size, toRL(rep.LabelColor))
	}
}

func vec3(v rl.Vector3) geometry.Vec3 {
	return geometry.Vec3{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}
