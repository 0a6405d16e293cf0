package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/pulsefield/internal/loop"
	"github.com/san-kum/pulsefield/internal/metrics"
	"github.com/san-kum/pulsefield/internal/wavefield"
	"gopkg.in/yaml.v3"
)

const (
	ActionDisturb = "disturb"
	ActionResize  = "resize"
)

var ErrInvalidScenario = errors.New("automation: invalid scenario")

// Scenario is a scripted session: a field, a tick budget and the input
// events to replay at given ticks.
type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Seed        int64              `yaml:"seed"`
	Width       float64            `yaml:"width"`
	Height      float64            `yaml:"height"`
	Count       int                `yaml:"count"`
	Ticks       int                `yaml:"ticks"`
	Params      map[string]float64 `yaml:"params"`
	Events      []Event            `yaml:"events"`
}

// Event is one input applied before the frame of Tick.
type Event struct {
	Tick   int     `yaml:"tick"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidScenario, sc.Ticks)
	}
	last := 0
	for i, ev := range sc.Events {
		switch ev.Action {
		case ActionDisturb, ActionResize:
		default:
			return fmt.Errorf("%w: event %d: unknown action %q", ErrInvalidScenario, i+1, ev.Action)
		}
		if ev.Tick < last {
			return fmt.Errorf("%w: event %d at tick %d precedes tick %d", ErrInvalidScenario, i+1, ev.Tick, last)
		}
		if ev.Tick < 0 || ev.Tick >= sc.Ticks {
			return fmt.Errorf("%w: event %d at tick %d outside [0, %d)", ErrInvalidScenario, i+1, ev.Tick, sc.Ticks)
		}
		last = ev.Tick
	}
	return nil
}

// FieldParams applies the scenario's overrides to base.
func (sc *Scenario) FieldParams(base wavefield.Params) (wavefield.Params, error) {
	p := base
	if sc.Seed != 0 {
		p.Seed = sc.Seed
	}
	if sc.Width > 0 {
		p.Width = sc.Width
	}
	if sc.Height > 0 {
		p.Height = sc.Height
	}
	if sc.Count > 0 {
		p.Count = sc.Count
	}
	for k, v := range sc.Params {
		if err := p.Set(k, v); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

type Options struct {
	Params  wavefield.Params
	Style   *wavefield.Style
	Surface wavefield.Surface
	Metrics []metrics.Metric
	// OnFrame runs after each rendered frame.
	OnFrame func(f *wavefield.Field)
}

type Result struct {
	Scenario string             `json:"scenario"`
	Params   wavefield.Params   `json:"params"`
	Samples  []wavefield.Sample `json:"samples"`
	Metrics  map[string]float64 `json:"metrics"`
	Ripples  int                `json:"ripples"`
	Resizes  int                `json:"resizes"`
}

// Run replays sc headlessly (or onto opt.Surface) and returns one sample
// per tick.
func Run(ctx context.Context, sc *Scenario, opt Options) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	params, err := sc.FieldParams(opt.Params)
	if err != nil {
		return nil, err
	}
	field, err := wavefield.New(params)
	if err != nil {
		return nil, err
	}
	if opt.Style != nil {
		field.SetStyle(*opt.Style)
	}
	surface := opt.Surface
	if surface == nil {
		surface = wavefield.Discard
	}

	for _, m := range opt.Metrics {
		m.Reset()
	}

	result := &Result{
		Scenario: sc.Name,
		Params:   params,
		Samples:  make([]wavefield.Sample, 0, sc.Ticks),
		Metrics:  make(map[string]float64),
	}

	d := loop.New(field, surface, 0)
	d.AddObserver(loop.ObserverFunc(func(s wavefield.Sample) {
		result.Samples = append(result.Samples, s)
		for _, m := range opt.Metrics {
			m.Observe(s)
		}
	}))

	next := 0
	for tick := 0; tick < sc.Ticks; tick++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for ; next < len(sc.Events) && sc.Events[next].Tick == tick; next++ {
			ev := sc.Events[next]
			switch ev.Action {
			case ActionDisturb:
				d.ApplyDisturb(ev.X)
				result.Ripples++
			case ActionResize:
				err = d.ApplyResize(ev.Width, ev.Height)
				result.Resizes++
			}
			if err != nil {
				return result, fmt.Errorf("tick %d: %w", tick, err)
			}
		}

		if err := d.Frame(); err != nil {
			return result, err
		}
		if opt.OnFrame != nil {
			opt.OnFrame(field)
		}
	}

	result.Metrics = metrics.Collect(opt.Metrics)
	return result, nil
}

// Sweep varies one tunable parameter across [Min, Max] in Steps runs.
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
}

// RunSweep replays sc once per sweep value.
func RunSweep(ctx context.Context, sc *Scenario, sw Sweep, opt Options) ([]SweepResult, error) {
	if sw.Steps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one step", ErrInvalidScenario)
	}
	step := 0.0
	if sw.Steps > 1 {
		step = (sw.Max - sw.Min) / float64(sw.Steps-1)
	}

	results := make([]SweepResult, 0, sw.Steps)
	for i := 0; i < sw.Steps; i++ {
		v := sw.Min + float64(i)*step
		run := opt
		if err := run.Params.Set(sw.Param, v); err != nil {
			return results, err
		}
		res, err := Run(ctx, sc, run)
		if err != nil {
			return results, fmt.Errorf("sweep %s=%.4f: %w", sw.Param, v, err)
		}
		results = append(results, SweepResult{Value: v, Metrics: res.Metrics})
	}
	return results, nil
}
