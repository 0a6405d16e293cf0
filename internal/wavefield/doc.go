// Package wavefield implements the pulse waveform: a row of oscillator points
// swaying on independent sine waves, a periodic heartbeat spike shared by all
// points, and click-triggered ripples that spread outward and fade.
//
// The package is host-agnostic. A host owns scheduling and the drawing
// surface and drives the field once per frame:
//
//	f, _ := wavefield.New(wavefield.DefaultParams())
//	for frame := range frames {
//	    f.Step()
//	    f.Render(surface)
//	}
//
// Input arrives through [Field.Disturb] (a click at some x) and
// [Field.Resize] (viewport change).
//
// # Timing
//
// The field is tick-paced: [Field.Step] advances exactly one tick per call, no
// matter how much wall-clock time passed. A host running at 30 fps plays the
// animation at half the speed of one running at 60 fps.
//
// # Thread Safety
//
// A Field is NOT safe for concurrent use. Hosts call it from a single frame
// callback; see package loop for a driver that serializes input events onto
// the frame goroutine.
package wavefield
