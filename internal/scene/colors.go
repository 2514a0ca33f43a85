package scene

import (
	"strings"

	"github.com/san-kum/molviz/internal/geometry"
)

var namedColors = map[string]geometry.Color{
	"black":         {R: 0, G: 0, B: 0},
	"white":         {R: 255, G: 255, B: 255},
	"slategray":     {R: 112, G: 128, B: 144},
	"slategrey":     {R: 112, G: 128, B: 144},
	"midnightblue":  {R: 25, G: 25, B: 112},
	"darkslategray": {R: 47, G: 79, B: 79},
	"gainsboro":     {R: 220, G: 220, B: 220},
	"lightgray":     {R: 211, G: 211, B: 211},
	"tomato":        {R: 255, G: 99, B: 71},
	"orange":        {R: 255, G: 165, B: 0},
	"gold":          {R: 255, G: 215, B: 0},
	"steelblue":     {R: 70, G: 130, B: 180},
}

// NamedColor looks up a colour by CSS-style name, ignoring case.
func NamedColor(name string) (geometry.Color, bool) {
	c, ok := namedColors[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// ColorOr returns the named colour or fallback when the name is unknown.
func ColorOr(name string, fallback geometry.Color) geometry.Color {
	if c, ok := NamedColor(name); ok {
		return c
	}
	return fallback
}
