package wavefield

import (
	"math"
	"math/rand"
	"time"
)

// Point is one sample of the waveform. Everything but Y is fixed at creation.
type Point struct {
	X           float64
	BaseY       float64
	PhaseSpeed  float64
	PhaseOffset float64
	Amplitude   float64
	Y           float64
}

// Ripple is a transient disturbance spreading from OriginX.
type Ripple struct {
	ID       uint64
	OriginX  float64
	Radius   float64
	Strength float64
	Age      int
}

type Field struct {
	params Params
	style  Style
	rng    *rand.Rand

	width, height float64
	points        []Point
	ripples       []Ripple
	nextID        uint64

	tick     int
	lastTick int
	advanced bool
}

func New(p Params) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f := &Field{
		params: p,
		style:  DefaultStyle(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	if err := f.Initialize(p.Width, p.Height, p.Count); err != nil {
		return nil, err
	}
	return f, nil
}

// Initialize replaces the whole point set with count freshly randomized
// points evenly spaced across [0, width).
func (f *Field) Initialize(width, height float64, count int) error {
	if err := checkDimensions(width, height, count); err != nil {
		return err
	}
	p := f.params
	spacing := width / float64(count)
	points := make([]Point, count)
	for i := range points {
		pt := Point{
			X:           spacing * float64(i),
			BaseY:       height / 2,
			PhaseSpeed:  p.PhaseSpeedMin + f.rng.Float64()*(p.PhaseSpeedMax-p.PhaseSpeedMin),
			PhaseOffset: f.rng.Float64() * 2 * math.Pi,
			Amplitude:   p.AmplitudeMin + f.rng.Float64()*(p.AmplitudeMax-p.AmplitudeMin),
		}
		pt.Y = pt.BaseY
		points[i] = pt
	}

	f.points = points
	f.width, f.height = width, height
	f.params.Width, f.params.Height, f.params.Count = width, height, count
	return nil
}

// Advance recomputes every point for the given tick, then grows and decays
// the active ripples. Ripples affect points using their pre-update radius.
func (f *Field) Advance(tick int) {
	t := float64(tick)
	pulse := Pulse(f.params, tick)
	sway := math.Sin(t * f.params.RippleRate)

	for i := range f.points {
		pt := &f.points[i]
		y := pt.BaseY + pt.Amplitude*math.Sin(t*pt.PhaseSpeed+pt.PhaseOffset) + pulse
		for _, r := range f.ripples {
			y += RippleShape(r, math.Abs(pt.X-r.OriginX)) * sway
		}
		pt.Y = y
	}

	f.decay()
	f.lastTick, f.advanced = tick, true
}

func (f *Field) decay() {
	kept := f.ripples[:0]
	for _, r := range f.ripples {
		r.Radius += f.params.RippleGrowth
		r.Strength -= f.params.RippleDecay
		r.Age++
		if r.Strength <= f.params.RippleDecay*spent {
			continue
		}
		if r.Age >= f.params.MaxRippleAge {
			continue
		}
		kept = append(kept, r)
	}
	f.ripples = kept
}

// Step advances the field by one tick using its own counter.
func (f *Field) Step() {
	f.Advance(f.tick)
	f.tick++
}

// Disturb starts a ripple at x. When MaxRipples is set and reached, the
// oldest ripple is evicted first.
func (f *Field) Disturb(x float64) Ripple {
	if limit := f.params.MaxRipples; limit > 0 && len(f.ripples) >= limit {
		n := copy(f.ripples, f.ripples[len(f.ripples)-limit+1:])
		f.ripples = f.ripples[:n]
	}
	f.nextID++
	r := Ripple{
		ID:       f.nextID,
		OriginX:  x,
		Strength: f.params.RippleStrength,
	}
	f.ripples = append(f.ripples, r)
	return r
}

// Resize rebuilds the point set for the new viewport, keeping the count.
// Ripples survive unless ClearRipplesOnResize is set.
func (f *Field) Resize(width, height float64) error {
	if err := f.Initialize(width, height, len(f.points)); err != nil {
		return err
	}
	if f.params.ClearRipplesOnResize {
		f.ripples = f.ripples[:0]
	}
	return nil
}

// Reset rebuilds the points, drops all ripples and rewinds the tick counter.
func (f *Field) Reset() error {
	if err := f.Initialize(f.width, f.height, len(f.points)); err != nil {
		return err
	}
	f.ripples = f.ripples[:0]
	f.tick, f.lastTick, f.advanced = 0, 0, false
	return nil
}

func (f *Field) Points() []Point {
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

func (f *Field) Ripples() []Ripple {
	out := make([]Ripple, len(f.ripples))
	copy(out, f.ripples)
	return out
}

func (f *Field) Len() int         { return len(f.points) }
func (f *Field) RippleCount() int { return len(f.ripples) }
func (f *Field) Tick() int        { return f.tick }
func (f *Field) Width() float64   { return f.width }
func (f *Field) Height() float64  { return f.height }
func (f *Field) Params() Params   { return f.params }
func (f *Field) Style() Style     { return f.style }
func (f *Field) SetStyle(s Style) { f.style = s }
