package loop

import (
	"context"
	"math"
	"time"

	"github.com/golang/glog"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

const (
	DefaultFPS       = 60
	MaxFPS           = 1000
	DefaultQueueSize = 256
)

type eventKind int

const (
	eventDisturb eventKind = iota
	eventResize
)

type event struct {
	kind          eventKind
	x             float64
	width, height float64
}

// Observer is called after every frame with a summary of the field.
type Observer interface {
	OnFrame(s wavefield.Sample)
}

type ObserverFunc func(s wavefield.Sample)

func (fn ObserverFunc) OnFrame(s wavefield.Sample) { fn(s) }

type Driver struct {
	field     *wavefield.Field
	surface   wavefield.Surface
	fps       int
	events    chan event
	observers []Observer
	frames    int
}

func New(field *wavefield.Field, surface wavefield.Surface, fps int) *Driver {
	if fps <= 0 {
		fps = DefaultFPS
	}
	fps = min(fps, MaxFPS)
	return &Driver{
		field:   field,
		surface: surface,
		fps:     fps,
		events:  make(chan event, DefaultQueueSize),
	}
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }
func (d *Driver) Frames() int            { return d.frames }
func (d *Driver) FPS() int               { return d.fps }

// Disturb queues a click at x. Safe to call from any goroutine.
func (d *Driver) Disturb(x float64) error {
	return d.enqueue(event{kind: eventDisturb, x: x})
}

// Resize queues a viewport change. Safe to call from any goroutine.
func (d *Driver) Resize(width, height float64) error {
	return d.enqueue(event{kind: eventResize, width: width, height: height})
}

func (d *Driver) enqueue(ev event) error {
	select {
	case d.events <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// ApplyDisturb runs a click right away instead of queueing it. Only the
// goroutine calling Frame may use it; it has no queue limit.
func (d *Driver) ApplyDisturb(x float64) {
	d.apply(event{kind: eventDisturb, x: x})
}

// ApplyResize is the unqueued form of Resize.
func (d *Driver) ApplyResize(width, height float64) error {
	return d.apply(event{kind: eventResize, width: width, height: height})
}

func (d *Driver) apply(ev event) error {
	switch ev.kind {
	case eventDisturb:
		d.field.Disturb(clamp(ev.x, 0, d.field.Width()))
	case eventResize:
		return d.field.Resize(ev.width, ev.height)
	}
	return nil
}

// Frame applies pending events, advances the field one tick and renders it.
// A rejected resize keeps the old point set and is reported after the frame
// has been drawn.
func (d *Driver) Frame() error {
	if d.surface == nil {
		return ErrNoSurface
	}
	tick := d.field.Tick()
	var frameErr error

drain:
	for {
		select {
		case ev := <-d.events:
			if err := d.apply(ev); err != nil && frameErr == nil {
				frameErr = &FrameError{Frame: d.frames, Tick: tick, Wrapped: err}
			}
		default:
			break drain
		}
	}

	d.field.Step()
	d.field.Render(d.surface)
	d.frames++

	if len(d.observers) > 0 {
		s := d.field.Sample()
		for _, o := range d.observers {
			o.OnFrame(s)
		}
	}
	return frameErr
}

// RunFrames runs n frames back to back, stopping at the first error.
func (d *Driver) RunFrames(n int) error {
	for i := 0; i < n; i++ {
		if err := d.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Run paces frames with a ticker until ctx is done. Cancellation is a normal
// stop and returns nil; frame errors are logged and the loop keeps going.
func (d *Driver) Run(ctx context.Context) error {
	if d.surface == nil {
		return ErrNoSurface
	}
	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()

	glog.V(1).Infof("loop: running at %d fps", d.fps)
	for {
		select {
		case <-ctx.Done():
			glog.V(1).Infof("loop: stopped after %d frames", d.frames)
			return nil
		case <-ticker.C:
			if err := d.Frame(); err != nil {
				glog.Warningf("loop: %v", err)
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
