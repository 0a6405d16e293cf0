package wavefield

import (
	"fmt"
	"sort"
)

func (p *Params) tunables() map[string]*float64 {
	return map[string]*float64{
		"phase_speed_min": &p.PhaseSpeedMin,
		"phase_speed_max": &p.PhaseSpeedMax,
		"amplitude_min":   &p.AmplitudeMin,
		"amplitude_max":   &p.AmplitudeMax,
		"pulse_threshold": &p.PulseThreshold,
		"pulse_gate":      &p.PulseGate,
		"pulse_rate":      &p.PulseRate,
		"pulse_gain":      &p.PulseGain,
		"ripple_rate":     &p.RippleRate,
		"ripple_strength": &p.RippleStrength,
		"ripple_growth":   &p.RippleGrowth,
		"ripple_decay":    &p.RippleDecay,
	}
}

// Values returns the tunable parameters by name.
func (p Params) Values() map[string]float64 {
	out := make(map[string]float64)
	for k, v := range p.tunables() {
		out[k] = *v
	}
	return out
}

func ParamNames() []string {
	var p Params
	names := make([]string, 0, 12)
	for k := range p.tunables() {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Set assigns a tunable parameter by name. It does not validate the result.
func (p *Params) Set(name string, v float64) error {
	ptr, ok := p.tunables()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	*ptr = v
	return nil
}

// SetParam tunes a live field. Pulse and ripple settings apply on the next
// tick; phase and amplitude ranges apply at the next (re)initialization.
// An assignment that leaves the parameters invalid is rejected.
func (f *Field) SetParam(name string, v float64) error {
	next := f.params
	if err := next.Set(name, v); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	f.params = next
	return nil
}

// Tune applies several tunables at once, validating only the final result.
func (f *Field) Tune(values map[string]float64) error {
	next := f.params
	for name, v := range values {
		if err := next.Set(name, v); err != nil {
			return err
		}
	}
	if err := next.Validate(); err != nil {
		return err
	}
	f.params = next
	return nil
}
