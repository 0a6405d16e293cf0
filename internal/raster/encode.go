package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Img)
}

func (c *Canvas) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Palette ramps from bg to accent, then to white for the hottest overlaps.
func Palette(bg, accent color.NRGBA) color.Palette {
	p := make(color.Palette, 0, 256)
	lerp := func(a, b uint8, t float64) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t)
	}
	for i := 0; i < 224; i++ {
		t := float64(i) / 223
		p = append(p, color.RGBA{lerp(bg.R, accent.R, t), lerp(bg.G, accent.G, t), lerp(bg.B, accent.B, t), 0xFF})
	}
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	for i := 1; i <= 32; i++ {
		t := float64(i) / 32
		p = append(p, color.RGBA{lerp(accent.R, white.R, t), lerp(accent.G, white.G, t), lerp(accent.B, white.B, t), 0xFF})
	}
	return p
}

// GIFRecorder collects frames for an animated GIF.
type GIFRecorder struct {
	Palette color.Palette
	// Delay per frame in hundredths of a second.
	Delay int

	anim gif.GIF
}

func NewGIFRecorder(palette color.Palette, fps int) *GIFRecorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &GIFRecorder{Palette: palette, Delay: delay}
}

func (g *GIFRecorder) Add(img image.Image) {
	b := img.Bounds()
	frame := image.NewPaletted(image.Rect(0, 0, b.Dx(), b.Dy()), g.Palette)
	draw.Draw(frame, frame.Bounds(), img, b.Min, draw.Src)
	g.anim.Image = append(g.anim.Image, frame)
	g.anim.Delay = append(g.anim.Delay, g.Delay)
}

func (g *GIFRecorder) Len() int { return len(g.anim.Image) }

func (g *GIFRecorder) Reset() { g.anim = gif.GIF{} }

func (g *GIFRecorder) Encode(w io.Writer) error {
	return gif.EncodeAll(w, &g.anim)
}

func (g *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
