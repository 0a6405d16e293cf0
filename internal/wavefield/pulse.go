package wavefield

import "math"

// Pulse is the heartbeat term shared by every point. It is nonzero only while
// sin(tick*PulseGate) exceeds PulseThreshold, producing a short spike once per
// 2π/PulseGate ticks.
func Pulse(p Params, tick int) float64 {
	t := float64(tick)
	if math.Sin(t*p.PulseGate) <= p.PulseThreshold {
		return 0
	}
	return math.Sin(t*p.PulseRate) * p.PulseGain
}

// PulsePeriod is the spacing in ticks between heartbeat windows.
func PulsePeriod(p Params) float64 {
	return 2 * math.Pi / p.PulseGate
}

// RippleShape is the envelope of r at distance d from its origin: a half sine
// across the radius scaled by strength, zero at the origin and outside.
func RippleShape(r Ripple, d float64) float64 {
	if r.Radius <= 0 || d >= r.Radius {
		return 0
	}
	return math.Sin(d/r.Radius*math.Pi) * r.Strength
}

// RippleContribution is the displacement r adds at distance d on the given tick.
func RippleContribution(r Ripple, d float64, tick int, rate float64) float64 {
	return RippleShape(r, d) * math.Sin(float64(tick)*rate)
}
