package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

// SVG is a Surface that writes native SVG elements. Curves stay quadratic
// Béziers and glow becomes a Gaussian blur filter.
type SVG struct {
	Width, Height float64
	Background    color.NRGBA

	body    strings.Builder
	filters map[int]bool
}

func NewSVG(width, height float64) *SVG {
	return &SVG{
		Width:      width,
		Height:     height,
		Background: color.NRGBA{R: 5, G: 5, B: 5, A: 0xFF},
		filters:    make(map[int]bool),
	}
}

func (s *SVG) Fade(c color.NRGBA) {
	fmt.Fprintf(&s.body, `<rect width="100%%" height="100%%" fill="%s" fill-opacity="%.3f"/>`+"\n", hex(c), opacity(c))
}

func (s *SVG) StrokePath(p wavefield.Path, st wavefield.Stroke) {
	var d strings.Builder
	fmt.Fprintf(&d, "M%.1f,%.1f", p.Start.X, p.Start.Y)
	for _, q := range p.Segments {
		fmt.Fprintf(&d, " Q%.1f,%.1f %.1f,%.1f", q.Ctrl.X, q.Ctrl.Y, q.End.X, q.End.Y)
	}
	fmt.Fprintf(&s.body, `<path fill="none" stroke="%s" stroke-opacity="%.3f" stroke-width="%.1f" stroke-linecap="round" stroke-linejoin="round"%s d="%s"/>`+"\n",
		hex(st.Color), opacity(st.Color), st.Width, s.filter(st.Glow), d.String())
}

func (s *SVG) FillCircle(x, y, r float64, f wavefield.Fill) {
	fmt.Fprintf(&s.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.3f"%s/>`+"\n",
		x, y, r, hex(f.Color), opacity(f.Color), s.filter(f.Glow))
}

// filter returns the attribute referencing a glow filter, registering it.
func (s *SVG) filter(glow float64) string {
	g := int(glow + 0.5)
	if g <= 0 {
		return ""
	}
	s.filters[g] = true
	return fmt.Sprintf(` filter="url(#glow%d)"`, g)
}

func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
`, s.Width, s.Height, s.Width, s.Height))

	if len(s.filters) > 0 {
		keys := make([]int, 0, len(s.filters))
		for g := range s.filters {
			keys = append(keys, g)
		}
		sort.Ints(keys)
		sb.WriteString("<defs>\n")
		for _, g := range keys {
			// canvas shadowBlur is roughly twice the Gaussian deviation
			sb.WriteString(fmt.Sprintf(`<filter id="glow%d" x="-50%%" y="-50%%" width="200%%" height="200%%"><feGaussianBlur stdDeviation="%.1f" result="b"/><feMerge><feMergeNode in="b"/><feMergeNode in="SourceGraphic"/></feMerge></filter>`+"\n",
				g, float64(g)/2))
		}
		sb.WriteString("</defs>\n")
	}

	sb.WriteString(fmt.Sprintf(`<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(s.Background)))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

func (s *SVG) Save(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0644)
}

// TraceToSVG plots one series of a trace as a polyline.
func TraceToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minY, maxY := values[0], values[0]
	for _, v := range values {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY
	stepX := float64(width) / float64(len(values)-1)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, v := range values {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
