package audio

import (
	"fmt"

	"github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

// Processor plays a Synth on the default output device.
type Processor struct {
	Synth  *Synth
	Stream *portaudio.Stream
	Active bool

	mono []float32
}

func NewProcessor(synth *Synth) *Processor {
	return &Processor{Synth: synth, mono: make([]float32, BufferSize)}
}

func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("audio: init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.ProcessAudio)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("audio: start stream: %w", err)
	}

	glog.V(1).Infof("audio: output stream started at %d Hz", SampleRate)
	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
		a.Stream = nil
	}
	portaudio.Terminate()
	a.Active = false
}

// OnFrame lets a Processor observe a frame loop directly.
func (a *Processor) OnFrame(s wavefield.Sample) {
	a.Synth.Observe(s)
}

func (a *Processor) ProcessAudio(out [][]float32) {
	n := len(out[0])
	if cap(a.mono) < n {
		a.mono = make([]float32, n)
	}
	mono := a.mono[:n]
	a.Synth.Fill(mono)
	for ch := range out {
		copy(out[ch], mono)
	}
}
