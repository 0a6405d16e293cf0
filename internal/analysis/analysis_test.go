package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pulsefield/internal/wavefield"
)

func heartbeat(n int) []wavefield.Sample {
	p := wavefield.DefaultParams()
	out := make([]wavefield.Sample, n)
	for t := range out {
		out[t] = wavefield.Sample{Tick: t, Pulse: wavefield.Pulse(p, t)}
	}
	return out
}

func TestPowerSpectrumSine(t *testing.T) {
	n := 256
	data := make([]float64, n)
	for i := range data {
		data[i] = 5 + math.Sin(2*math.Pi*float64(i)/32)
	}
	ps := PowerSpectrum(data)
	if len(ps) != n/2+1 {
		t.Fatalf("expected %d bins, got %d", n/2+1, len(ps))
	}
	if ps[0] > 1e-9 {
		t.Errorf("expected mean removed, dc power %f", ps[0])
	}
	period, err := DominantPeriod(data)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(period-32) > 1e-9 {
		t.Errorf("expected period 32, got %f", period)
	}
}

func TestDominantPeriodErrors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}); !errors.Is(err, ErrShortSeries) {
		t.Errorf("expected ErrShortSeries, got %v", err)
	}
	if _, err := DominantPeriod(make([]float64, 64)); err == nil {
		t.Error("expected error for flat series")
	}
}

func TestHeartbeatPeriod(t *testing.T) {
	samples := heartbeat(2048)
	want := 2 * math.Pi / wavefield.DefaultParams().PulseGate

	period, err := DominantPeriod(PulseGate(samples))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(period-want) > 1.5 {
		t.Errorf("expected spectral period near %.2f, got %.2f", want, period)
	}

	spacing := MeanSpacing(PulseWindows(samples))
	if math.Abs(spacing-want) > 1.5 {
		t.Errorf("expected window spacing near %.2f, got %.2f", want, spacing)
	}
}

func TestHeartbeatPeriodIgnoresCarrier(t *testing.T) {
	samples := heartbeat(1000)
	want := 2 * math.Pi / wavefield.DefaultParams().PulseGate

	period, err := HeartbeatPeriod(samples)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(period-want) > 3 {
		t.Errorf("expected heartbeat period near %.2f, got %.2f", want, period)
	}

	carrier, err := DominantPeriod(Series(samples, "pulse"))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(carrier-want) < 10 {
		t.Errorf("signed pulse should peak on the carrier, got %.2f", carrier)
	}
}

func TestPulseWindows(t *testing.T) {
	samples := []wavefield.Sample{
		{Tick: 0}, {Tick: 1, Pulse: 2}, {Tick: 2, Pulse: -1}, {Tick: 3},
		{Tick: 4, Pulse: 1}, {Tick: 7, Pulse: 1},
	}
	windows := PulseWindows(samples)
	want := []Window{{1, 2}, {4, 4}, {7, 7}}
	if len(windows) != len(want) {
		t.Fatalf("expected %v, got %v", want, windows)
	}
	for i := range want {
		if windows[i] != want[i] {
			t.Errorf("window %d: expected %v, got %v", i, want[i], windows[i])
		}
	}
	if windows[0].Len() != 2 {
		t.Errorf("expected length 2, got %d", windows[0].Len())
	}
	if MeanSpacing(windows) != 3 {
		t.Errorf("expected spacing 3, got %f", MeanSpacing(windows))
	}
	if MeanSpacing(windows[:1]) != 0 {
		t.Error("expected zero spacing for a single window")
	}
}

func TestSeries(t *testing.T) {
	samples := []wavefield.Sample{{Ripples: 2, MeanY: 200}, {Ripples: 3, MeanY: 201, Pulse: -4}}
	if got := Series(samples, "gate"); got[0] != 0 || got[1] != 1 {
		t.Errorf("unexpected gate %v", got)
	}
	if got := Series(samples, "ripples"); got[1] != 3 {
		t.Errorf("unexpected ripples %v", got)
	}
	if got := Series(samples, "mean_y"); got[0] != 200 {
		t.Errorf("unexpected mean_y %v", got)
	}
	if Series(samples, "bogus") != nil {
		t.Error("expected nil for unknown column")
	}
}
