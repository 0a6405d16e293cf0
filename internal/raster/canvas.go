package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/san-kum/pulsefield/internal/wavefield"
	"golang.org/x/image/vector"
)

// DefaultSteps is the number of polyline points per curve segment.
const DefaultSteps = 8

// Canvas maps field units onto pixels at Scale.
type Canvas struct {
	Img   *image.RGBA
	Scale float64
	Steps int

	z *vector.Rasterizer
}

// New returns a canvas of w x h pixels cleared to bg.
func New(w, h int, scale float64, bg color.NRGBA) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{
		Img:   img,
		Scale: scale,
		Steps: DefaultSteps,
		z:     vector.NewRasterizer(w, h),
	}
}

// ForField sizes a canvas so the whole field fits at scale.
func ForField(f *wavefield.Field, scale float64) *Canvas {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(f.Width() * scale))
	h := int(math.Ceil(f.Height() * scale))
	return New(w, h, scale, color.NRGBA{A: 0xFF})
}

func (c *Canvas) Bounds() image.Rectangle { return c.Img.Bounds() }

func (c *Canvas) Fade(col color.NRGBA) {
	draw.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *Canvas) StrokePath(p wavefield.Path, s wavefield.Stroke) {
	pts := p.Flatten(c.Steps)
	if s.Glow > 0 {
		c.strokePolyline(pts, s.Width+s.Glow, fade(s.Color, 0.12))
		c.strokePolyline(pts, s.Width+s.Glow/2, fade(s.Color, 0.25))
	}
	c.strokePolyline(pts, s.Width, s.Color)
}

func (c *Canvas) FillCircle(x, y, r float64, f wavefield.Fill) {
	if f.Glow > 0 {
		c.begin()
		c.circle(x, y, r+f.Glow/2)
		c.paint(fade(f.Color, 0.2))
	}
	c.begin()
	c.circle(x, y, r)
	c.paint(f.Color)
}

func (c *Canvas) strokePolyline(pts []wavefield.Vec, width float64, col color.NRGBA) {
	if len(pts) == 0 || width <= 0 {
		return
	}
	hw := width / 2
	c.begin()
	for i := 1; i < len(pts); i++ {
		c.segment(pts[i-1], pts[i], hw)
	}
	// round caps and joins
	for _, pt := range pts {
		c.circle(pt.X, pt.Y, hw)
	}
	c.paint(col)
}

// segment adds the rectangle around a->b. Winding matches circle so the
// union accumulates instead of cancelling.
func (c *Canvas) segment(a, b wavefield.Vec, hw float64) {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*hw, dx/l*hw
	c.moveTo(a.X-nx, a.Y-ny)
	c.lineTo(b.X-nx, b.Y-ny)
	c.lineTo(b.X+nx, b.Y+ny)
	c.lineTo(a.X+nx, a.Y+ny)
	c.z.ClosePath()
}

func (c *Canvas) circle(x, y, r float64) {
	n := int(math.Max(8, math.Min(48, r*c.Scale*2)))
	for i := 0; i <= n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 {
			c.moveTo(px, py)
		} else {
			c.lineTo(px, py)
		}
	}
	c.z.ClosePath()
}

func (c *Canvas) begin() {
	b := c.Img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *Canvas) paint(col color.NRGBA) {
	c.z.Draw(c.Img, c.Img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *Canvas) moveTo(x, y float64) {
	c.z.MoveTo(float32(x*c.Scale), float32(y*c.Scale))
}

func (c *Canvas) lineTo(x, y float64) {
	c.z.LineTo(float32(x*c.Scale), float32(y*c.Scale))
}

// fade scales the opacity of col by k.
func fade(col color.NRGBA, k float64) color.NRGBA {
	col.A = uint8(float64(col.A) * k)
	return col
}
