package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	orbitSpeed = 0.01
	maxPitch   = 1.5
	zoomStep   = 0.1
)

// Orbit is a camera position on a sphere around the origin.
type Orbit struct {
	Yaw, Pitch float64
	Distance   float64
	MinDist    float64
	MaxDist    float64
	home       float64
}

// NewOrbit frames a scene whose points lie within extent of the origin.
func NewOrbit(extent float64) Orbit {
	if extent <= 0 {
		extent = 1
	}
	d := 4 * extent
	return Orbit{Distance: d, MinDist: extent * 0.5, MaxDist: extent * 20, home: d}
}

func (o *Orbit) Rotate(dx, dy float64) {
	o.Yaw -= dx * orbitSpeed
	o.Pitch = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch+dy*orbitSpeed))
}

// Zoom moves toward the origin for positive wheel steps.
func (o *Orbit) Zoom(steps float64) {
	d := o.Distance * (1 - zoomStep*steps)
	o.Distance = math.Max(o.MinDist, math.Min(o.MaxDist, d))
}

func (o *Orbit) Reset() {
	o.Yaw, o.Pitch, o.Distance = 0, 0, o.home
}

func (o Orbit) Position() rl.Vector3 {
	cp := math.Cos(o.Pitch)
	return rl.NewVector3(
		float32(o.Distance*cp*math.Sin(o.Yaw)),
		float32(o.Distance*math.Sin(o.Pitch)),
		float32(o.Distance*cp*math.Cos(o.Yaw)),
	)
}
