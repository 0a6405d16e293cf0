package gui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

// Surface draws into whatever raylib target is active, usually the
// persistent render texture that keeps the trails.
type Surface struct {
	Scale         float32
	Width, Height int32
	Steps         int
}

func (s *Surface) Fade(c color.NRGBA) {
	rl.DrawRectangle(0, 0, s.Width, s.Height, toColor(c))
}

func (s *Surface) StrokePath(p wavefield.Path, st wavefield.Stroke) {
	pts := p.Flatten(s.Steps)
	if st.Glow > 0 {
		s.polyline(pts, st.Width+st.Glow, rl.Fade(toColor(st.Color), 0.08))
		s.polyline(pts, st.Width+st.Glow/2, rl.Fade(toColor(st.Color), 0.18))
	}
	s.polyline(pts, st.Width, toColor(st.Color))
}

func (s *Surface) FillCircle(x, y, r float64, f wavefield.Fill) {
	c := toColor(f.Color)
	center := s.vec(wavefield.Vec{X: x, Y: y})
	if f.Glow > 0 {
		rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(r+f.Glow)*s.Scale, rl.Fade(c, 0.5), rl.Fade(c, 0))
	}
	rl.DrawCircleV(center, float32(r)*s.Scale, c)
}

func (s *Surface) polyline(pts []wavefield.Vec, width float64, c rl.Color) {
	thick := float32(width) * s.Scale
	for i := 1; i < len(pts); i++ {
		a, b := s.vec(pts[i-1]), s.vec(pts[i])
		rl.DrawLineEx(a, b, thick, c)
		rl.DrawCircleV(b, thick/2, c)
	}
}

func (s *Surface) vec(v wavefield.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X)*s.Scale, float32(v.Y)*s.Scale)
}

func toColor(c color.NRGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
