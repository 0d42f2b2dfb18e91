package dac

import (
	"context"
	"fmt"
)

// Source is the transfer engine side of the converter: every Drain moves
// len(dst) samples forward on the sample clock.
type Source interface {
	Drain(dst []uint16)
}

// Backend runs an output device until ctx is done.
type Backend interface {
	Run(ctx context.Context) error
}

// Options configures a Backend.
type Options struct {
	SampleRate      float64
	FramesPerBuffer int
	// OnEnabled is called once the device is streaming.
	OnEnabled func()
}

func (o Options) validate() error {
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: %v", ErrSampleRate, o.SampleRate)
	}
	if o.FramesPerBuffer <= 0 {
		return fmt.Errorf("%w: %d", ErrFrames, o.FramesPerBuffer)
	}
	return nil
}

func (o Options) enabled() {
	if o.OnEnabled != nil {
		o.OnEnabled()
	}
}

// New returns the backend registered under name: "portaudio", "oto" or
// "null".
func New(name string, src Source, conv *Converter, opts Options) (Backend, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	switch name {
	case "portaudio":
		return NewPortAudio(src, conv, opts), nil
	case "oto":
		return NewOto(src, conv, opts), nil
	case "null", "":
		return NewNull(src, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
