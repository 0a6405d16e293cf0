package wavefield

// Path builds the waveform curve: it starts at the first point and each
// later point contributes a quadratic segment controlled by its predecessor
// and ending halfway between the two.
func (f *Field) Path() Path {
	if len(f.points) == 0 {
		return Path{}
	}
	first := f.points[0]
	p := Path{
		Start:    Vec{first.X, first.Y},
		Segments: make([]Quad, 0, len(f.points)-1),
	}
	for i := 1; i < len(f.points); i++ {
		prev := Vec{f.points[i-1].X, f.points[i-1].Y}
		cur := Vec{f.points[i].X, f.points[i].Y}
		p.Segments = append(p.Segments, Quad{Ctrl: prev, End: Mid(prev, cur)})
	}
	return p
}

// Render draws the current state onto s. It reads state only.
func (f *Field) Render(s Surface) {
	st := f.style
	s.Fade(st.Fade)
	if len(f.points) == 0 {
		return
	}

	s.StrokePath(f.Path(), Stroke{Color: st.Stroke, Width: st.StrokeWidth, Glow: st.StrokeGlow})

	stride := st.MarkerStride
	if stride <= 0 {
		return
	}
	marker := Fill{Color: st.Marker, Glow: st.MarkerGlow}
	for i := 0; i < len(f.points); i += stride {
		s.FillCircle(f.points[i].X, f.points[i].Y, st.MarkerRadius, marker)
	}
}
