package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/molviz/internal/geometry"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille canvas with one colour per cell and a depth value
// per dot. The cell takes the colour of its nearest plotted dot.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]geometry.Color
	depth         []float64
	cellDepth     []float64
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:     w,
		Height:    h,
		Grid:      make([][]rune, h),
		Colors:    make([][]geometry.Color, h),
		depth:     make([]float64, w*2*h*4),
		cellDepth: make([]float64, w*h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]geometry.Color, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in dots.
func (c *Canvas) PixelSize() (int, int) { return c.Width * 2, c.Height * 4 }

func (c *Canvas) cell(x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/2, y/4
	return row, col, col < c.Width && row < c.Height
}

// Set sets the dot at (x, y) without touching depth or colour.
func (c *Canvas) Set(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	row, col, ok := c.cell(x, y)
	if !ok {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// Plot sets the dot at (x, y) if depth is nearer (larger) than anything
// plotted there before, and reports whether it did.
func (c *Canvas) Plot(x, y int, depth float64, col geometry.Color) bool {
	row, cl, ok := c.cell(x, y)
	if !ok {
		return false
	}
	i := y*c.Width*2 + x
	if depth <= c.depth[i] {
		return false
	}
	c.depth[i] = depth
	c.Grid[row][cl] |= rune(pixelMap[y%4][x%2])
	if depth > c.cellDepth[row*c.Width+cl] {
		c.cellDepth[row*c.Width+cl] = depth
		c.Colors[row][cl] = col
	}
	return true
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = geometry.Color{}
		}
	}
	for i := range c.depth {
		c.depth[i] = math.Inf(-1)
	}
	for i := range c.cellDepth {
		c.cellDepth[i] = math.Inf(-1)
	}
}

// DrawLine draws a line using Bresenham's algorithm, interpolating depth.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, d0, d1 float64, col geometry.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	steps := dx
	if dy > steps {
		steps = dy
	}

	for i := 0; ; i++ {
		d := d0
		if steps > 0 {
			d = d0 + (d1-d0)*float64(i)/float64(steps)
		}
		c.Plot(x0, y0, d, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// String renders the canvas without colour.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render renders the canvas with each cell in its plotted colour.
// Adjacent cells of the same colour share one style run.
func (c *Canvas) Render() string {
	var b strings.Builder
	for r, row := range c.Grid {
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && c.Colors[r][i] == c.Colors[r][start] {
				continue
			}
			run := string(row[start:i])
			col := c.Colors[r][start]
			if col == (geometry.Color{}) {
				b.WriteString(run)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(int(col.R), int(col.G), int(col.B)))).Render(run))
			}
			start = i
		}
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
