package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var ErrShortSeries = errors.New("analysis: series too short")

// PowerSpectrum returns |X[k]|²/n for k in [0, n/2] after removing the mean.
func PowerSpectrum(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
	}

	spectrum := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		mag := cmplx.Abs(spectrum[i])
		ps[i] = mag * mag / float64(n)
	}
	return ps
}

// DominantPeriod is n/k for the non-DC bin k with the most power.
func DominantPeriod(data []float64) (float64, error) {
	if len(data) < 4 {
		return 0, ErrShortSeries
	}
	ps := PowerSpectrum(data)
	best := 0
	for k := 1; k < len(ps); k++ {
		if best == 0 || ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0, errors.New("analysis: flat series has no period")
	}
	return float64(len(data)) / float64(best), nil
}
