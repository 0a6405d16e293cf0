package wavefield

import "math"

// Sample summarizes the field after the most recent Advance.
type Sample struct {
	Tick             int     `json:"tick"`
	Ripples          int     `json:"ripples"`
	Pulse            float64 `json:"pulse"`
	MinY             float64 `json:"min_y"`
	MaxY             float64 `json:"max_y"`
	MeanY            float64 `json:"mean_y"`
	MeanDisplacement float64 `json:"mean_displacement"`
	PeakDisplacement float64 `json:"peak_displacement"`
}

func (f *Field) Sample() Sample {
	s := Sample{
		Tick:    f.lastTick,
		Ripples: len(f.ripples),
	}
	if f.advanced {
		s.Pulse = Pulse(f.params, f.lastTick)
	}
	if len(f.points) == 0 {
		return s
	}

	s.MinY, s.MaxY = math.Inf(1), math.Inf(-1)
	sum, disp := 0.0, 0.0
	for _, pt := range f.points {
		s.MinY = math.Min(s.MinY, pt.Y)
		s.MaxY = math.Max(s.MaxY, pt.Y)
		sum += pt.Y
		d := math.Abs(pt.Y - pt.BaseY)
		disp += d
		s.PeakDisplacement = math.Max(s.PeakDisplacement, d)
	}
	n := float64(len(f.points))
	s.MeanY = sum / n
	s.MeanDisplacement = disp / n
	return s
}
