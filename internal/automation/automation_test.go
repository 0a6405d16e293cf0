package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pulsefield/internal/metrics"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

func baseParams() wavefield.Params {
	p := wavefield.DefaultParams()
	p.Seed = 3
	return p
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
		ok   bool
	}{
		{"empty", Scenario{Ticks: 10}, true},
		{"zero ticks", Scenario{}, false},
		{"unknown action", Scenario{Ticks: 10, Events: []Event{{Tick: 1, Action: "zoom"}}}, false},
		{"out of order", Scenario{Ticks: 10, Events: []Event{{Tick: 5, Action: ActionDisturb}, {Tick: 2, Action: ActionDisturb}}}, false},
		{"past end", Scenario{Ticks: 10, Events: []Event{{Tick: 10, Action: ActionDisturb}}}, false},
		{"same tick", Scenario{Ticks: 10, Events: []Event{{Tick: 2, Action: ActionDisturb}, {Tick: 2, Action: ActionResize, Width: 10, Height: 10}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			if tt.ok && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidScenario) {
				t.Errorf("expected ErrInvalidScenario, got %v", err)
			}
		})
	}
}

func TestParseScenario(t *testing.T) {
	data := []byte(`
name: click
ticks: 60
width: 400
count: 30
params:
  ripple_decay: 3
events:
  - tick: 5
    action: disturb
    x: 200
`)
	sc, err := ParseScenario(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sc.Name != "click" || sc.Ticks != 60 || len(sc.Events) != 1 {
		t.Errorf("unexpected scenario %+v", sc)
	}
	p, err := sc.FieldParams(baseParams())
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if p.Width != 400 || p.Count != 30 || p.RippleDecay != 3 {
		t.Errorf("overrides not applied: %+v", p)
	}
	if p.Height != wavefield.DefaultHeight {
		t.Errorf("expected default height, got %f", p.Height)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("name: bad\nparams:\n  warp: 1\nticks: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := sc.FieldParams(baseParams()); !errors.Is(err, wavefield.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunQuiet(t *testing.T) {
	sc := &Scenario{Name: "quiet", Ticks: 200}
	res, err := Run(context.Background(), sc, Options{Params: baseParams()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Samples) != 200 {
		t.Fatalf("expected 200 samples, got %d", len(res.Samples))
	}
	for _, s := range res.Samples {
		if s.Ripples != 0 {
			t.Fatalf("tick %d: unexpected ripples", s.Tick)
		}
	}
}

func TestRunRippleLifetime(t *testing.T) {
	sc := &Scenario{
		Name:   "single click",
		Ticks:  60,
		Events: []Event{{Tick: 0, Action: ActionDisturb, X: 400}},
	}
	load := metrics.NewRippleLoad()
	res, err := Run(context.Background(), sc, Options{
		Params:  baseParams(),
		Metrics: []metrics.Metric{load},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Ripples != 1 {
		t.Errorf("expected 1 disturbance, got %d", res.Ripples)
	}
	if res.Samples[0].Ripples != 1 {
		t.Errorf("expected ripple on first frame, got %d", res.Samples[0].Ripples)
	}
	if res.Samples[59].Ripples != 0 {
		t.Errorf("expected ripple gone by tick 59, got %d", res.Samples[59].Ripples)
	}
	if load.Max() != 1 {
		t.Errorf("expected max ripple load 1, got %d", load.Max())
	}
	if _, ok := res.Metrics["ripple_load"]; !ok {
		t.Error("missing ripple_load metric")
	}
}

func TestRunResize(t *testing.T) {
	sc := &Scenario{
		Ticks: 20,
		Events: []Event{
			{Tick: 3, Action: ActionDisturb, X: 100},
			{Tick: 10, Action: ActionResize, Width: 1200, Height: 300},
		},
	}
	var widths []float64
	res, err := Run(context.Background(), sc, Options{
		Params: baseParams(),
		OnFrame: func(f *wavefield.Field) {
			widths = append(widths, f.Width())
		},
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if widths[9] != wavefield.DefaultWidth || widths[10] != 1200 {
		t.Errorf("resize applied at wrong tick: %v", widths[8:12])
	}
	if res.Resizes != 1 {
		t.Errorf("expected 1 resize, got %d", res.Resizes)
	}
	if res.Samples[10].Ripples != 1 {
		t.Error("ripple should survive resize")
	}
}

func TestRunClickBurst(t *testing.T) {
	events := make([]Event, 300)
	for i := range events {
		events[i] = Event{Tick: 0, Action: ActionDisturb, X: float64(i)}
	}
	sc := &Scenario{Ticks: 2, Events: events}
	res, err := Run(context.Background(), sc, Options{Params: baseParams()})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Ripples != 300 {
		t.Errorf("expected 300 disturbances, got %d", res.Ripples)
	}
	if res.Samples[0].Ripples != 300 {
		t.Errorf("expected 300 live ripples, got %d", res.Samples[0].Ripples)
	}
}

func TestRunBadResize(t *testing.T) {
	sc := &Scenario{
		Ticks:  5,
		Events: []Event{{Tick: 2, Action: ActionResize, Width: 0, Height: 300}},
	}
	_, err := Run(context.Background(), sc, Options{Params: baseParams()})
	if !errors.Is(err, wavefield.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, &Scenario{Ticks: 10}, Options{Params: baseParams()})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if len(res.Samples) != 0 {
		t.Errorf("expected no samples, got %d", len(res.Samples))
	}
}

func TestRunRecordsOps(t *testing.T) {
	rec := &wavefield.Recorder{}
	_, err := Run(context.Background(), &Scenario{Ticks: 3}, Options{Params: baseParams(), Surface: rec})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if rec.Count(wavefield.OpFade) != 3 {
		t.Errorf("expected 3 fades, got %d", rec.Count(wavefield.OpFade))
	}
}

func TestRunSweep(t *testing.T) {
	sc := &Scenario{
		Ticks:  60,
		Events: []Event{{Tick: 0, Action: ActionDisturb, X: 400}},
	}
	load := metrics.NewRippleLoad()
	results, err := RunSweep(context.Background(), sc,
		Sweep{Param: "ripple_decay", Min: 1, Max: 6, Steps: 3},
		Options{Params: baseParams(), Metrics: []metrics.Metric{load}})
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[1].Value != 3.5 {
		t.Errorf("expected midpoint 3.5, got %f", results[1].Value)
	}
	// faster decay means fewer ticks with a live ripple
	if results[0].Metrics["ripple_load"] <= results[2].Metrics["ripple_load"] {
		t.Errorf("expected load to fall with decay: %v", results)
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	_, err := RunSweep(context.Background(), &Scenario{Ticks: 1},
		Sweep{Param: "nope", Min: 0, Max: 1, Steps: 2}, Options{Params: baseParams()})
	if !errors.Is(err, wavefield.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}
