package viz

import (
	"image/color"
	"math"
	"strings"

	"github.com/san-kum/pulsefield/internal/wavefield"
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

type Canvas struct {
	Width, Height int
	Grid          [][]rune
	// Mark flags cells holding a marker dot, so views can tint them.
	Mark [][]bool
}

func NewCanvas(w, h int) *Canvas {
	w, h = max(w, 1), max(h, 1)
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Mark:   make([][]bool, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Mark[i] = make([]bool, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] &^= rune(pixelMap[y%4][x%2])
	if c.Grid[row][col] < blank {
		c.Grid[row][col] = blank
	}
}

// IsSet reports whether the sub-pixel (x, y) is on.
func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}
	return c.Grid[row][col]&rune(pixelMap[y%4][x%2]) != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Mark[i][j] = false
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
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

	for {
		c.Set(x0, y0)
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

// FillDisc sets every sub-pixel within r of (cx, cy) and marks the cells.
func (c *Canvas) FillDisc(cx, cy, r int) {
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			if (x-cx)*(x-cx)+(y-cy)*(y-cy) > r*r {
				continue
			}
			c.Set(x, y)
			if x >= 0 && y >= 0 && x/2 < c.Width && y/4 < c.Height {
				c.Mark[y/4][x/2] = true
			}
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Surface draws a field onto a Canvas. Field units map to sub-pixels by
// Scale; Braille cells cannot blend, so Fade clears the canvas.
type Surface struct {
	Canvas *Canvas
	Scale  float64
	Steps  int
}

// NewSurface fits a field height into the canvas rows.
func NewSurface(c *Canvas, fieldHeight float64) *Surface {
	return &Surface{
		Canvas: c,
		Scale:  float64(c.Height*4) / fieldHeight,
		Steps:  4,
	}
}

// FieldWidth is the field width that exactly fills the canvas.
func (s *Surface) FieldWidth() float64 {
	return float64(s.Canvas.Width*2) / s.Scale
}

// FieldX converts a terminal column to a field x at the middle of the cell.
func (s *Surface) FieldX(col int) float64 {
	return (float64(col)*2 + 1) / s.Scale
}

func (s *Surface) Fade(color.NRGBA) { s.Canvas.Clear() }

func (s *Surface) StrokePath(p wavefield.Path, _ wavefield.Stroke) {
	pts := p.Flatten(s.Steps)
	for i := 1; i < len(pts); i++ {
		x0, y0 := s.px(pts[i-1])
		x1, y1 := s.px(pts[i])
		s.Canvas.DrawLine(x0, y0, x1, y1)
	}
	if len(pts) == 1 {
		x, y := s.px(pts[0])
		s.Canvas.Set(x, y)
	}
}

func (s *Surface) FillCircle(x, y, r float64, _ wavefield.Fill) {
	cx, cy := s.px(wavefield.Vec{X: x, Y: y})
	s.Canvas.FillDisc(cx, cy, max(1, int(math.Round(r*s.Scale))))
}

func (s *Surface) px(v wavefield.Vec) (int, int) {
	return int(math.Round(v.X * s.Scale)), int(math.Round(v.Y * s.Scale))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
