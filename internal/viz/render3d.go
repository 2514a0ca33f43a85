package viz

import (
	"math"
	"sort"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/scene"
)

// Camera orbits the origin. Extent is the radius that should fill the
// smaller screen dimension at Zoom 1.
type Camera struct {
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
	Extent           float64
}

func NewCamera(extent float64) *Camera {
	if extent <= 0 {
		extent = 1
	}
	return &Camera{Distance: 4 * extent, Zoom: 1.0, Extent: extent}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Reset() {
	c.RotX, c.RotY, c.RotZ = 0, 0, 0
	c.Zoom = 1
}

// RotatePoint rotates a point around the camera's axes.
func (c *Camera) RotatePoint(p geometry.Vec3) geometry.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts world coordinates to screen coordinates. Returns x, y,
// depth (larger is nearer) and visibility.
func (c *Camera) Project(p geometry.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.RotatePoint(p)
	dist := c.Distance
	if rot.Z >= dist-0.01*c.Extent {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := c.Zoom * minDim / (2.2 * c.Extent)
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

var (
	lightDir = geometry.Vec3{X: 0.3, Y: 0.5, Z: 1}.Normalize()
	viewDir  = geometry.Vec3{Z: 1}
)

type projectedVertex struct {
	x, y  int
	depth float64
	color geometry.Color
}

// DrawPoints plots the actor's level-of-detail point cloud, culling
// vertices that face away and shading the rest with the actor's property.
func DrawPoints(cv *Canvas, a *scene.Actor, cam *Camera) int {
	m := a.Mesh()
	sw, sh := cv.PixelSize()
	pts := make([]projectedVertex, 0, len(m.Positions))
	for _, i := range a.PointCloud() {
		n := cam.RotatePoint(m.Normals[i])
		if n.Z < 0 {
			continue
		}
		x, y, d, ok := cam.Project(m.Positions[i], sw, sh)
		if !ok {
			continue
		}
		col := a.Property.Shade(a.VertexColor(m, i), n, lightDir, viewDir)
		pts = append(pts, projectedVertex{x, y, d, col})
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].depth < pts[j].depth })
	for _, p := range pts {
		cv.Plot(p.x, p.y, p.depth, p.color)
	}
	return len(pts)
}

// DrawWireframe draws the edges of front-facing triangles.
func DrawWireframe(cv *Canvas, a *scene.Actor, cam *Camera) int {
	m := a.Mesh()
	sw, sh := cv.PixelSize()
	proj := make([]projectedVertex, len(m.Positions))
	visible := make([]bool, len(m.Positions))
	for i, p := range m.Positions {
		x, y, d, ok := cam.Project(p, sw, sh)
		proj[i] = projectedVertex{x: x, y: y, depth: d}
		visible[i] = ok
	}

	drawn := 0
	for _, t := range m.Triangles {
		if !visible[t[0]] && !visible[t[1]] && !visible[t[2]] {
			continue
		}
		n := cam.RotatePoint(m.Normals[t[0]].Add(m.Normals[t[1]]).Add(m.Normals[t[2]])).Normalize()
		if n.Z <= 0 {
			continue
		}
		col := a.Property.Shade(a.VertexColor(m, t[0]), n, lightDir, viewDir)
		for k := 0; k < 3; k++ {
			p, q := proj[t[k]], proj[t[(k+1)%3]]
			cv.DrawLine(p.x, p.y, q.x, q.y, p.depth, q.depth, col)
		}
		drawn++
	}
	return drawn
}
