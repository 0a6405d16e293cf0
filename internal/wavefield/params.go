package wavefield

import (
	"fmt"
	"image/color"
	"math"
)

const (
	DefaultCount  = 60
	DefaultWidth  = 800.0
	DefaultHeight = 400.0
)

// Params holds the tunable constants of a field. Ranges are half-open:
// a value is drawn from [Min, Max).
type Params struct {
	Count  int
	Width  float64
	Height float64

	PhaseSpeedMin float64
	PhaseSpeedMax float64
	AmplitudeMin  float64
	AmplitudeMax  float64

	PulseThreshold float64
	PulseGate      float64
	PulseRate      float64
	PulseGain      float64

	RippleRate     float64
	RippleStrength float64
	RippleGrowth   float64
	RippleDecay    float64
	MaxRippleAge   int
	MaxRipples     int

	ClearRipplesOnResize bool

	// Seed for the field's random source; zero seeds from the clock.
	Seed int64
}

func DefaultParams() Params {
	return Params{
		Count:          DefaultCount,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		PhaseSpeedMin:  0.02,
		PhaseSpeedMax:  0.04,
		AmplitudeMin:   20,
		AmplitudeMax:   60,
		PulseThreshold: 0.85,
		PulseGate:      0.08,
		PulseRate:      0.4,
		PulseGain:      30,
		RippleRate:     0.15,
		RippleStrength: 60,
		RippleGrowth:   8,
		RippleDecay:    1.5,
		MaxRippleAge:   50,
	}
}

func (p Params) Validate() error {
	if err := checkDimensions(p.Width, p.Height, p.Count); err != nil {
		return err
	}
	for name, v := range p.tunables() {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidParams, name, *v)
		}
	}
	switch {
	case p.PhaseSpeedMin > p.PhaseSpeedMax:
		return fmt.Errorf("%w: phase speed range [%g, %g)", ErrInvalidParams, p.PhaseSpeedMin, p.PhaseSpeedMax)
	case p.AmplitudeMin > p.AmplitudeMax:
		return fmt.Errorf("%w: amplitude range [%g, %g)", ErrInvalidParams, p.AmplitudeMin, p.AmplitudeMax)
	case p.RippleGrowth <= 0:
		return fmt.Errorf("%w: ripple growth %g", ErrInvalidParams, p.RippleGrowth)
	case p.RippleDecay <= 0:
		return fmt.Errorf("%w: ripple decay %g", ErrInvalidParams, p.RippleDecay)
	case p.RippleStrength <= 0:
		return fmt.Errorf("%w: ripple strength %g", ErrInvalidParams, p.RippleStrength)
	case p.MaxRippleAge <= 0:
		return fmt.Errorf("%w: max ripple age %d", ErrInvalidParams, p.MaxRippleAge)
	case p.MaxRipples < 0:
		return fmt.Errorf("%w: negative ripple cap", ErrInvalidParams)
	}
	return nil
}

// spent is the relative slack under which a strength counts as zero, so
// repeated subtraction of an inexact decay ends on the same tick as
// ceil(S0/decay).
const spent = 1e-9

// RippleLifetime is the number of ticks a fresh ripple survives, ignoring
// the age bound.
func (p Params) RippleLifetime() int {
	return int(math.Ceil(p.RippleStrength/p.RippleDecay - spent))
}

func checkDimensions(width, height float64, count int) error {
	if !(width > 0) || !(height > 0) || count <= 0 || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return fmt.Errorf("%w: %gx%g with %d points", ErrInvalidDimensions, width, height, count)
	}
	return nil
}

// Style is the look of a rendered frame.
type Style struct {
	Fade         color.NRGBA
	Stroke       color.NRGBA
	StrokeWidth  float64
	StrokeGlow   float64
	Marker       color.NRGBA
	MarkerRadius float64
	MarkerGlow   float64
	MarkerStride int
}

func DefaultStyle() Style {
	accent := color.NRGBA{R: 0xFF, G: 0x4D, B: 0x00, A: 0xFF}
	return Style{
		Fade:         color.NRGBA{R: 5, G: 5, B: 5, A: 20},
		Stroke:       accent,
		StrokeWidth:  3,
		StrokeGlow:   20,
		Marker:       accent,
		MarkerRadius: 4,
		MarkerGlow:   15,
		MarkerStride: 4,
	}
}
