package dac

import (
	"context"
	"fmt"

	log "github.com/golang/glog"
	"github.com/gordonklaus/portaudio"
)

// PortAudio plays the stream on the default PortAudio output device. The
// device's callback is the sample clock.
type PortAudio struct {
	src   Source
	conv  *Converter
	opts  Options
	codes []uint16
}

// NewPortAudio returns a PortAudio backend.
func NewPortAudio(src Source, conv *Converter, opts Options) *PortAudio {
	return &PortAudio{
		src:   src,
		conv:  conv,
		opts:  opts,
		codes: make([]uint16, opts.FramesPerBuffer),
	}
}

// Run opens the default output stream and plays until ctx is done.
func (p *PortAudio) Run(ctx context.Context) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("initialize portaudio: %w", err)
	}
	defer portaudio.Terminate()

	stream, err := portaudio.OpenDefaultStream(0, 1, p.opts.SampleRate, p.opts.FramesPerBuffer, p.process)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	p.opts.enabled()

	<-ctx.Done()

	if err := stream.Stop(); err != nil {
		return fmt.Errorf("stop stream: %w", err)
	}
	return ctx.Err()
}

func (p *PortAudio) process(out []float32) {
	if cap(p.codes) < len(out) {
		p.codes = make([]uint16, len(out))
	}
	codes := p.codes[:len(out)]

	p.src.Drain(codes)
	if err := p.conv.Convert(codes, out); err != nil {
		clear(out)
		log.Errorf("convert: %v", err)
	}
}
