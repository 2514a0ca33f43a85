package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/viz"
)

// CanvasToSVG converts a braille canvas to SVG, one circle per dot in the
// colour of its cell. Uncoloured cells use fg.
func CanvasToSVG(canvas *viz.Canvas, scale float64, bg, fg geometry.Color) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, hex(bg)))

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			c := canvas.Colors[row][col]
			if c == (geometry.Color{}) {
				c = fg
			}
			sb.WriteString(fmt.Sprintf(`<g fill="%s">`, hex(c)))

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>`, cx, cy, dotRadius))
					}
				}
			}
			sb.WriteString("</g>\n")
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteSVG(path string, canvas *viz.Canvas, scale float64, bg, fg geometry.Color) error {
	return os.WriteFile(path, []byte(CanvasToSVG(canvas, scale, bg, fg)), 0644)
}

func hex(c geometry.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
