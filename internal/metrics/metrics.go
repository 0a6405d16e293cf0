package metrics

import (
	"math"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

// Metric accumulates a scalar over per-tick samples.
type Metric interface {
	Name() string
	Observe(s wavefield.Sample)
	Value() float64
	Reset()
}

// Default returns the metrics recorded with every run.
func Default() []Metric {
	return []Metric{
		NewPeakDisplacement(),
		NewRippleLoad(),
		NewPulseDuty(),
		NewRoughness(),
	}
}

// PeakDisplacement is the largest distance of any point from its center line.
type PeakDisplacement struct {
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (p *PeakDisplacement) Name() string { return "peak_displacement" }

func (p *PeakDisplacement) Observe(s wavefield.Sample) {
	p.peak = math.Max(p.peak, s.PeakDisplacement)
}

func (p *PeakDisplacement) Value() float64 { return p.peak }
func (p *PeakDisplacement) Reset()         { p.peak = 0 }

// RippleLoad is the mean number of active ripples per tick.
type RippleLoad struct {
	total   int
	samples int
	max     int
}

func NewRippleLoad() *RippleLoad { return &RippleLoad{} }

func (r *RippleLoad) Name() string { return "ripple_load" }

func (r *RippleLoad) Observe(s wavefield.Sample) {
	r.total += s.Ripples
	r.samples++
	if s.Ripples > r.max {
		r.max = s.Ripples
	}
}

func (r *RippleLoad) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.total) / float64(r.samples)
}

// Max is the most ripples seen on a single tick.
func (r *RippleLoad) Max() int { return r.max }

func (r *RippleLoad) Reset() {
	r.total, r.samples, r.max = 0, 0, 0
}

// PulseDuty is the fraction of ticks on which the heartbeat was active.
type PulseDuty struct {
	active  int
	samples int
}

func NewPulseDuty() *PulseDuty { return &PulseDuty{} }

func (p *PulseDuty) Name() string { return "pulse_duty" }

func (p *PulseDuty) Observe(s wavefield.Sample) {
	p.samples++
	if s.Pulse != 0 {
		p.active++
	}
}

func (p *PulseDuty) Value() float64 {
	if p.samples == 0 {
		return 0
	}
	return float64(p.active) / float64(p.samples)
}

func (p *PulseDuty) Reset() {
	p.active, p.samples = 0, 0
}

// Roughness is the RMS of the per-tick mean displacement.
type Roughness struct {
	sumSq   float64
	samples int
}

func NewRoughness() *Roughness { return &Roughness{} }

func (r *Roughness) Name() string { return "roughness" }

func (r *Roughness) Observe(s wavefield.Sample) {
	r.sumSq += s.MeanDisplacement * s.MeanDisplacement
	r.samples++
}

func (r *Roughness) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *Roughness) Reset() {
	r.sumSq, r.samples = 0, 0
}

// Collect maps each metric's name to its value.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
