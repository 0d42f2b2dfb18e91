// Package dac plays the transfer engine's stream of unsigned converter codes
// on a host audio device.
package dac

import (
	"fmt"
	"math/bits"

	"github.com/go-audio/audio"
	"github.com/go-audio/transforms"
)

// Converter turns unipolar converter codes in [0, fullScale] into bipolar
// float samples in [-gain, gain]. Mid-scale maps to silence.
type Converter struct {
	fullScale float64
	gain      float64
	bitDepth  int

	out *audio.FloatBuffer
}

// NewConverter returns a mono Converter at sampleRate.
func NewConverter(fullScale uint16, sampleRate int, gain float64) (*Converter, error) {
	if fullScale == 0 {
		return nil, ErrFullScale
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrSampleRate, sampleRate)
	}

	return &Converter{
		fullScale: float64(fullScale),
		gain:      gain,
		bitDepth:  bits.Len16(fullScale),
		out: &audio.FloatBuffer{
			Format: &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		},
	}, nil
}

// BitDepth returns the converter width in bits.
func (c *Converter) BitDepth() int {
	return c.bitDepth
}

// Format returns the PCM format of the converted stream.
func (c *Converter) Format() *audio.Format {
	return c.out.Format
}

// Convert writes len(codes) samples into dst, which must be at least as long.
func (c *Converter) Convert(codes []uint16, dst []float32) error {
	if len(dst) < len(codes) {
		return fmt.Errorf("dst holds %d samples, need %d", len(dst), len(codes))
	}

	c.stage(len(codes))
	for i, code := range codes {
		c.out.Data[i] = float64(code)/c.fullScale*2 - 1
	}
	if err := transforms.Gain(c.out, c.gain); err != nil {
		return fmt.Errorf("apply gain: %w", err)
	}

	for i, v := range c.out.Data {
		dst[i] = float32(v)
	}
	return nil
}

// stage sizes the output buffer to n samples, growing it only when needed
// so the audio callback does not allocate in steady state.
func (c *Converter) stage(n int) {
	if cap(c.out.Data) < n {
		c.out.Data = make([]float64, n)
	}
	c.out.Data = c.out.Data[:n]
}
