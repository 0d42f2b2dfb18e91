package synth

import (
	"fmt"
	"math"
)

// DefaultFullScale is the maximum code of a 12-bit converter.
const DefaultFullScale = 0xfff

// Params configures a Renderer.
type Params struct {
	SampleRate   float64
	CarrierFreq  float64
	EnvelopeFreq float64
	// FullScale is the converter's maximum input code.
	FullScale uint16
}

// Renderer produces an amplitude-modulated sine: a carrier whose magnitude is
// scaled by a much slower envelope sine. Not safe for concurrent use; it
// belongs to the render loop.
type Renderer struct {
	carrier   *Phase
	envelope  *Phase
	fullScale float64
}

// NewRenderer returns a Renderer with both oscillators at phase 0.
func NewRenderer(p Params) (*Renderer, error) {
	if p.FullScale == 0 {
		return nil, ErrFullScale
	}

	carrier, err := NewPhase(p.CarrierFreq, p.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("carrier: %w", err)
	}

	envelope, err := NewPhase(p.EnvelopeFreq, p.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	return &Renderer{
		carrier:   carrier,
		envelope:  envelope,
		fullScale: float64(p.FullScale),
	}, nil
}

// RenderOneSample returns the quantized sample for the current phases and
// then advances both oscillators by one tick.
func (r *Renderer) RenderOneSample() uint16 {
	c := Evaluate(r.carrier.Value())
	e := Evaluate(r.envelope.Value())
	sample := uint16(math.Round(r.fullScale * c * e))

	r.carrier.Advance()
	r.envelope.Advance()

	return sample
}

// Render fills dst with consecutive samples.
func (r *Renderer) Render(dst []uint16) {
	for i := range dst {
		dst[i] = r.RenderOneSample()
	}
}

// Reset returns both oscillators to phase 0 so the same sequence is rendered
// again.
func (r *Renderer) Reset() {
	r.carrier.Reset()
	r.envelope.Reset()
}

// FullScale returns the maximum code the renderer emits.
func (r *Renderer) FullScale() uint16 {
	return uint16(r.fullScale)
}

// CarrierPeriod returns the carrier period in samples, rounded up.
func (r *Renderer) CarrierPeriod() int {
	inc := math.Abs(r.carrier.Increment())
	if inc == 0 {
		return 1
	}
	return int(math.Ceil(1 / inc))
}
