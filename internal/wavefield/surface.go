package wavefield

import "image/color"

type Vec struct{ X, Y float64 }

func Mid(a, b Vec) Vec { return Vec{(a.X + b.X) / 2, (a.Y + b.Y) / 2} }

// Quad is a quadratic Bézier segment continuing from the previous end point.
type Quad struct {
	Ctrl, End Vec
}

// At evaluates the segment starting at from for t in [0, 1].
func (q Quad) At(from Vec, t float64) Vec {
	u := 1 - t
	return Vec{
		X: u*u*from.X + 2*u*t*q.Ctrl.X + t*t*q.End.X,
		Y: u*u*from.Y + 2*u*t*q.Ctrl.Y + t*t*q.End.Y,
	}
}

type Path struct {
	Start    Vec
	Segments []Quad
}

func (p Path) Clone() Path {
	c := Path{Start: p.Start, Segments: make([]Quad, len(p.Segments))}
	copy(c.Segments, p.Segments)
	return c
}

// Flatten approximates the path with a polyline, steps points per segment.
// Surfaces without native curves draw this instead.
func (p Path) Flatten(steps int) []Vec {
	if steps < 1 {
		steps = 1
	}
	out := make([]Vec, 0, 1+len(p.Segments)*steps)
	out = append(out, p.Start)
	from := p.Start
	for _, q := range p.Segments {
		for i := 1; i <= steps; i++ {
			out = append(out, q.At(from, float64(i)/float64(steps)))
		}
		from = q.End
	}
	return out
}

// Stroke describes a line. Glow is a blur radius in surface units; surfaces
// approximate it however they can.
type Stroke struct {
	Color color.NRGBA
	Width float64
	Glow  float64
}

type Fill struct {
	Color color.NRGBA
	Glow  float64
}

// Surface is a 2D drawing target. The field never owns its lifecycle.
// Colors carry straight (non-premultiplied) alpha.
type Surface interface {
	// Fade blends c over the whole surface, leaving a fading trail of
	// earlier frames.
	Fade(c color.NRGBA)
	StrokePath(p Path, s Stroke)
	FillCircle(x, y, r float64, f Fill)
}
