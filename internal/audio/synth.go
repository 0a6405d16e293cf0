package audio

import (
	"math"
	"sync"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Synth turns field samples into a soft drone with a thump on every
// heartbeat onset. Ripples open the filter and raise the level.
type Synth struct {
	Tone   float64
	Volume float64

	mu      sync.Mutex
	ripples float64
	pulse   float64
	onset   bool

	time         float64
	thump        float64
	filter       float64
	rippleSmooth float64
}

func NewSynth(tone, volume float64) *Synth {
	return &Synth{Tone: tone, Volume: volume}
}

// Observe feeds the latest field sample; safe to call while Fill runs on the
// audio thread.
func (s *Synth) Observe(sample wavefield.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sample.Pulse != 0 && s.pulse == 0 {
		s.onset = true
	}
	s.pulse = sample.Pulse
	s.ripples = float64(sample.Ripples)
}

// Fill writes mono samples in [-Volume, Volume].
func (s *Synth) Fill(out []float32) {
	s.mu.Lock()
	ripples := s.ripples
	if s.onset {
		s.thump = 1
		s.onset = false
	}
	s.mu.Unlock()

	dt := 1.0 / SampleRate
	for i := range out {
		s.rippleSmooth = s.rippleSmooth*0.9995 + ripples*0.0005

		drone := triangle(s.time*s.Tone)*0.6 + triangle(s.time*s.Tone*1.5)*0.4
		cutoff := 250 + math.Min(s.rippleSmooth*120, 1500)
		s.filter = lpf(drone, cutoff, dt, s.filter)

		beat := math.Sin(2*math.Pi*s.time*s.Tone*0.5) * s.thump
		s.thump *= 0.9996

		level := 0.5 + 0.5*math.Min(s.rippleSmooth/4, 1)
		v := (s.filter*level*0.6 + beat*0.4) * s.Volume
		out[i] = float32(clamp(v, -s.Volume, s.Volume))

		s.time += dt
	}
}

// Triangle wave, period 1 in phase.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
