// Package loop drives a wavefield at a fixed frame rate.
//
// A [Driver] owns the only goroutine that touches its field. Clicks and
// resizes from other goroutines are queued with [Driver.Disturb] and
// [Driver.Resize] and applied at the start of the next frame.
package loop
