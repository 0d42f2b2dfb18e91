package synth

import (
	"fmt"
	"math"
)

// Phase is a normalized oscillator phase accumulator. The phase always lies
// in [0, 1) and moves by a fixed increment on every sample tick.
type Phase struct {
	phase     float64
	increment float64
}

// NewPhase returns an accumulator at phase 0 advancing by freq/sampleRate
// per tick. The increment magnitude must stay below one cycle per sample.
func NewPhase(freq, sampleRate float64) (*Phase, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	inc := freq / sampleRate
	if math.IsNaN(inc) || math.Abs(inc) >= 1 {
		return nil, fmt.Errorf("%w: %v Hz at %v Hz gives %v", ErrIncrementRange, freq, sampleRate, inc)
	}

	return &Phase{increment: inc}, nil
}

// Advance moves the phase one tick forward and renormalizes it.
func (p *Phase) Advance() {
	p.phase = wrap(p.phase + p.increment)
}

// Value returns the current phase.
func (p *Phase) Value() float64 {
	return p.phase
}

// Increment returns the per-tick phase step.
func (p *Phase) Increment() float64 {
	return p.increment
}

// Reset puts the phase back to 0.
func (p *Phase) Reset() {
	p.phase = 0
}

// wrap folds x into [0, 1) one whole cycle at a time. With |increment| < 1 a
// single correction step is all that is ever taken.
func wrap(x float64) float64 {
	for x >= 1 {
		x -= 1
	}
	for x < 0 {
		x += 1
	}
	// -tiny + 1 rounds to exactly 1.
	if x >= 1 {
		x = 0
	}
	return x
}
