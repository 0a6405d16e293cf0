// Package raster draws a field into an in-memory RGBA image.
//
// [Canvas] implements wavefield.Surface with golang.org/x/image/vector: the
// waveform is flattened and stroked as a union of segment quads and round
// joins, and glow becomes two wider translucent passes under the core line.
// Fade composites a uniform color over the whole image, so repeated frames
// leave the same trails the interactive hosts show.
//
// Canvases are not safe for concurrent use.
package raster
