package loop

import (
	"errors"
	"fmt"
)

var (
	// ErrQueueFull indicates an input event was dropped.
	ErrQueueFull = errors.New("loop: event queue full")

	// ErrNoSurface indicates a driver was built without a drawing surface.
	ErrNoSurface = errors.New("loop: no surface")
)

// FrameError wraps a failure with the frame it happened on.
type FrameError struct {
	Frame   int
	Tick    int
	Wrapped error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (tick %d): %v", e.Frame, e.Tick, e.Wrapped)
}

func (e *FrameError) Unwrap() error {
	return e.Wrapped
}
