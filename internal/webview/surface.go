package webview

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Surface draws onto Target with ebiten's vector package. Curves stay
// quadratic; glow is a pair of wider translucent strokes.
type Surface struct {
	Target *ebiten.Image
	Scale  float32

	vertices []ebiten.Vertex
	indices  []uint16
}

func (s *Surface) Fade(c color.NRGBA) {
	b := s.Target.Bounds()
	vector.DrawFilledRect(s.Target, 0, 0, float32(b.Dx()), float32(b.Dy()), c, false)
}

func (s *Surface) StrokePath(p wavefield.Path, st wavefield.Stroke) {
	var path vector.Path
	path.MoveTo(float32(p.Start.X)*s.Scale, float32(p.Start.Y)*s.Scale)
	for _, q := range p.Segments {
		path.QuadTo(
			float32(q.Ctrl.X)*s.Scale, float32(q.Ctrl.Y)*s.Scale,
			float32(q.End.X)*s.Scale, float32(q.End.Y)*s.Scale,
		)
	}

	if st.Glow > 0 {
		s.stroke(&path, st.Width+st.Glow, st.Color, 0.08)
		s.stroke(&path, st.Width+st.Glow/2, st.Color, 0.18)
	}
	s.stroke(&path, st.Width, st.Color, 1)
}

func (s *Surface) stroke(path *vector.Path, width float64, c color.NRGBA, alpha float32) {
	op := &vector.StrokeOptions{
		Width:    float32(width) * s.Scale,
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	}
	s.vertices, s.indices = path.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], op)

	r, g, b := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff
	a := float32(c.A) / 0xff * alpha
	for i := range s.vertices {
		s.vertices[i].SrcX = 1
		s.vertices[i].SrcY = 1
		s.vertices[i].ColorR = r
		s.vertices[i].ColorG = g
		s.vertices[i].ColorB = b
		s.vertices[i].ColorA = a
	}

	// vertex colors are straight alpha
	s.Target.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		AntiAlias:      true,
		ColorScaleMode: ebiten.ColorScaleModeStraightAlpha,
	})
}

func (s *Surface) FillCircle(x, y, r float64, f wavefield.Fill) {
	cx, cy := float32(x)*s.Scale, float32(y)*s.Scale
	if f.Glow > 0 {
		glow := f.Color
		glow.A = uint8(float64(glow.A) * 0.2)
		vector.DrawFilledCircle(s.Target, cx, cy, float32(r+f.Glow/2)*s.Scale, glow, true)
	}
	vector.DrawFilledCircle(s.Target, cx, cy, float32(r)*s.Scale, f.Color, true)
}
