package analysis

import "github.com/san-kum/pulsefield/internal/wavefield"

// Window is a run of ticks [Start, End] with the heartbeat active.
type Window struct {
	Start int
	End   int
}

func (w Window) Len() int { return w.End - w.Start + 1 }

func PulseWindows(samples []wavefield.Sample) []Window {
	var windows []Window
	open := false
	for i, s := range samples {
		active := s.Pulse != 0
		switch {
		case active && !open:
			windows = append(windows, Window{Start: s.Tick, End: s.Tick})
			open = true
		case active:
			windows[len(windows)-1].End = s.Tick
		case open:
			open = false
		}
		// a gap in ticks closes the window too
		if open && i+1 < len(samples) && samples[i+1].Tick != s.Tick+1 {
			open = false
		}
	}
	return windows
}

// MeanSpacing is the mean distance between consecutive window starts, or 0
// with fewer than two windows.
func MeanSpacing(windows []Window) float64 {
	if len(windows) < 2 {
		return 0
	}
	return float64(windows[len(windows)-1].Start-windows[0].Start) / float64(len(windows)-1)
}

// HeartbeatPeriod estimates the ticks between heartbeats from the gate, not
// from the signed pulse, whose spectrum peaks on the carrier inside each
// window.
func HeartbeatPeriod(samples []wavefield.Sample) (float64, error) {
	return DominantPeriod(PulseGate(samples))
}

func PulseGate(samples []wavefield.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		if s.Pulse != 0 {
			out[i] = 1
		}
	}
	return out
}

// Series extracts one column of a trace by name; unknown names yield nil.
func Series(samples []wavefield.Sample, column string) []float64 {
	var pick func(wavefield.Sample) float64
	switch column {
	case "gate":
		return PulseGate(samples)
	case "pulse":
		pick = func(s wavefield.Sample) float64 { return s.Pulse }
	case "ripples":
		pick = func(s wavefield.Sample) float64 { return float64(s.Ripples) }
	case "mean_y":
		pick = func(s wavefield.Sample) float64 { return s.MeanY }
	case "mean_displacement":
		pick = func(s wavefield.Sample) float64 { return s.MeanDisplacement }
	case "peak_displacement":
		pick = func(s wavefield.Sample) float64 { return s.PeakDisplacement }
	default:
		return nil
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = pick(s)
	}
	return out
}
