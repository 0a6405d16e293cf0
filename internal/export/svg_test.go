package export

import (
	"encoding/xml"
	"image/color"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

func wellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			t.Fatalf("malformed svg: %v\n%s", err, doc)
		}
	}
}

func TestSVGSurface(t *testing.T) {
	p := wavefield.DefaultParams()
	p.Count, p.Seed = 12, 5
	f, err := wavefield.New(p)
	if err != nil {
		t.Fatal(err)
	}
	f.Step()

	s := NewSVG(f.Width(), f.Height())
	f.Render(s)
	doc := s.String()
	wellFormed(t, doc)

	if got := strings.Count(doc, "<path"); got != 1 {
		t.Errorf("expected 1 path, got %d", got)
	}
	if got := strings.Count(doc, " Q"); got != 11 {
		t.Errorf("expected 11 quadratic segments, got %d", got)
	}
	if got := strings.Count(doc, "<circle"); got != 3 {
		t.Errorf("expected 3 markers, got %d", got)
	}
	for _, want := range []string{`id="glow20"`, `id="glow15"`, `stroke="#ff4d00"`, `fill-opacity="0.078"`} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected %s in output", want)
		}
	}
}

func TestSVGNoGlow(t *testing.T) {
	s := NewSVG(10, 10)
	s.FillCircle(5, 5, 1, wavefield.Fill{Color: color.NRGBA{R: 1, A: 0xFF}})
	doc := s.String()
	wellFormed(t, doc)
	if strings.Contains(doc, "<defs>") || strings.Contains(doc, "filter=") {
		t.Error("expected no filters without glow")
	}
}

func TestTraceToSVG(t *testing.T) {
	if TraceToSVG([]float64{1}, 100, 50, "#fff") != "" {
		t.Error("expected empty output for a single value")
	}
	doc := TraceToSVG([]float64{0, 1, 0, 1}, 300, 100, "#ff4d00")
	wellFormed(t, doc)
	if got := strings.Count(doc, " L"); got != 3 {
		t.Errorf("expected 3 line segments, got %d", got)
	}
	if !strings.Contains(doc, "M0.0,") {
		t.Error("expected path to start at x=0")
	}
}
