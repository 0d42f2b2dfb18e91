package dac

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"
	log "github.com/golang/glog"
)

// Oto plays the stream through an oto player. The player pulls float32
// samples through Read, which makes its buffer refill the sample clock.
// The player buffer is sized to one burst of FramesPerBuffer samples and
// Read never drains more than that.
type Oto struct {
	src     Source
	conv    *Converter
	opts    Options
	codes   []uint16
	samples []float32
}

const bytesPerSample = 4

// NewOto returns an Oto backend.
func NewOto(src Source, conv *Converter, opts Options) *Oto {
	return &Oto{
		src:     src,
		conv:    conv,
		opts:    opts,
		codes:   make([]uint16, opts.FramesPerBuffer),
		samples: make([]float32, opts.FramesPerBuffer),
	}
}

// Run creates the oto context and plays until ctx is done.
func (o *Oto) Run(ctx context.Context) error {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   int(math.Round(o.opts.SampleRate)),
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(float64(o.opts.FramesPerBuffer) / o.opts.SampleRate * float64(time.Second)),
	})
	if err != nil {
		return fmt.Errorf("create oto context: %w", err)
	}

	select {
	case <-ready:
	case <-ctx.Done():
		return ctx.Err()
	}

	player := otoCtx.NewPlayer(o)
	player.SetBufferSize(o.opts.FramesPerBuffer * bytesPerSample)
	player.Play()
	o.opts.enabled()

	<-ctx.Done()

	if err := player.Close(); err != nil {
		return fmt.Errorf("close player: %w", err)
	}
	return ctx.Err()
}

// Read fills p with up to FramesPerBuffer little-endian float32 samples.
func (o *Oto) Read(p []byte) (int, error) {
	n := min(len(p)/bytesPerSample, len(o.codes))
	codes, samples := o.codes[:n], o.samples[:n]

	o.src.Drain(codes)
	if err := o.conv.Convert(codes, samples); err != nil {
		clear(samples)
		log.Errorf("convert: %v", err)
	}

	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(s))
	}
	return n * bytesPerSample, nil
}
