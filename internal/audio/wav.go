package audio

import (
	"errors"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

const bitDepth = 16

// Render plays samples through synth offline, one frame per sample at fps.
func Render(synth *Synth, samples []wavefield.Sample, fps int) []float32 {
	if fps <= 0 {
		fps = 60
	}
	perFrame := SampleRate / fps
	out := make([]float32, perFrame*len(samples))
	for i, s := range samples {
		synth.Observe(s)
		synth.Fill(out[i*perFrame : (i+1)*perFrame])
	}
	return out
}

// EncodeWAV writes mono float samples as 16-bit PCM.
func EncodeWAV(w io.WriteSeeker, pcm []float32) error {
	enc := wav.NewEncoder(w, SampleRate, bitDepth, 1, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           make([]int, len(pcm)),
		SourceBitDepth: bitDepth,
	}
	for i, v := range pcm {
		buf.Data[i] = int(clamp(float64(v), -1, 1) * 32767)
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// WriteWAV sonifies a recorded trace into a WAV file.
func WriteWAV(path string, samples []wavefield.Sample, fps int, synth *Synth) error {
	if len(samples) == 0 {
		return errors.New("audio: empty trace")
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodeWAV(f, Render(synth, samples, fps)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
