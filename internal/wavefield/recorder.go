package wavefield

import "image/color"

type OpKind int

const (
	OpFade OpKind = iota
	OpStroke
	OpCircle
)

func (k OpKind) String() string {
	switch k {
	case OpFade:
		return "fade"
	case OpStroke:
		return "stroke"
	case OpCircle:
		return "circle"
	}
	return "unknown"
}

// Op is one recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind    OpKind
	Color   color.NRGBA
	Path    Path
	Stroke  Stroke
	X, Y, R float64
	Fill    Fill
}

// Recorder is a Surface that keeps every call it receives.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Fade(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFade, Color: c})
}

func (r *Recorder) StrokePath(p Path, s Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpStroke, Path: p.Clone(), Stroke: s})
}

func (r *Recorder) FillCircle(x, y, rad float64, f Fill) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: x, Y: y, R: rad, Fill: f})
}

func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Count returns how many recorded ops are of kind k.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

type discard struct{}

func (discard) Fade(color.NRGBA)                           {}
func (discard) StrokePath(Path, Stroke)                    {}
func (discard) FillCircle(float64, float64, float64, Fill) {}

// Discard is a Surface that draws nothing, for headless runs.
var Discard Surface = discard{}
