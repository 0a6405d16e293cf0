// Package analysis inspects recorded traces of a field.
//
//   - [PowerSpectrum]: one-sided power spectrum of a series, mean removed
//   - [DominantPeriod]: period in ticks of the strongest spectral peak
//   - [PulseWindows]: contiguous runs of ticks where the heartbeat is active
//   - [PulseGate]: 0/1 series of heartbeat activity, suitable for spectra
//   - [HeartbeatPeriod]: dominant period of the gate
//
// # Heartbeat Period
//
// The heartbeat gate opens once per 2π/PulseGate ticks. Both estimators
// should agree on a long enough trace:
//
//	gate := analysis.PulseGate(samples)
//	period, err := analysis.DominantPeriod(gate)
//	windows := analysis.PulseWindows(samples)
//	spacing := analysis.MeanSpacing(windows)
package analysis
