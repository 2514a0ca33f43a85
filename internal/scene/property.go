package scene

import (
	"math"

	"github.com/san-kum/molviz/internal/geometry"
)

type Interpolation int

const (
	Flat Interpolation = iota
	Gouraud
)

type Representation int

const (
	Points Representation = iota
	Wireframe
	Surface
)

// Property holds the surface appearance of an actor.
type Property struct {
	Color          geometry.Color
	Ambient        float64
	Diffuse        float64
	Specular       float64
	SpecularPower  float64
	SpecularColor  geometry.Color
	Interpolation  Interpolation
	Representation Representation
}

// DefaultProperty is the molecule look: mostly diffuse with a tight white
// highlight.
func DefaultProperty() Property {
	return Property{
		Color:          geometry.Color{R: 255, G: 255, B: 255},
		Ambient:        0.1,
		Diffuse:        0.7,
		Specular:       0.5,
		SpecularPower:  80,
		SpecularColor:  geometry.Color{R: 255, G: 255, B: 255},
		Interpolation:  Gouraud,
		Representation: Surface,
	}
}

// Shade evaluates Blinn-Phong lighting for one vertex. n, light and view
// must be unit vectors; light and view point away from the surface.
func (p Property) Shade(base geometry.Color, n, light, view geometry.Vec3) geometry.Color {
	br, bg, bb := base.Float()
	sr, sg, sb := p.SpecularColor.Float()

	diff := math.Max(n.Dot(light), 0)
	spec := 0.0
	if diff > 0 && p.Specular > 0 {
		h := light.Add(view).Normalize()
		spec = p.Specular * math.Pow(math.Max(n.Dot(h), 0), p.SpecularPower)
	}
	k := p.Ambient + p.Diffuse*diff
	return geometry.Color{
		R: toByte(br*k + sr*spec),
		G: toByte(bg*k + sg*spec),
		B: toByte(bb*k + sb*spec),
	}
}

func toByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
