package dac

import (
	"context"
	"math"
	"time"
)

// TimerRate returns the update rate of a timer counting up to period with
// the given prescaler, clocked at clockHz. This is the sample rate of a
// converter triggered on every timer update.
func TimerRate(clockHz float64, prescaler, period uint32) float64 {
	return clockHz / ((float64(prescaler) + 1) * (float64(period) + 1))
}

// Null is a headless backend. A ticker stands in for the sample clock and
// drains FramesPerBuffer samples per tick into nowhere.
type Null struct {
	src   Source
	opts  Options
	codes []uint16
}

// NewNull returns a Null backend.
func NewNull(src Source, opts Options) *Null {
	return &Null{
		src:   src,
		opts:  opts,
		codes: make([]uint16, opts.FramesPerBuffer),
	}
}

// Period returns the ticker period: one buffer of frames at the sample rate.
func (n *Null) Period() time.Duration {
	d := time.Duration(math.Round(float64(n.opts.FramesPerBuffer) / n.opts.SampleRate * float64(time.Second)))
	return max(d, time.Microsecond)
}

// Run drains the source at the sample rate until ctx is done.
func (n *Null) Run(ctx context.Context) error {
	ticker := time.NewTicker(n.Period())
	defer ticker.Stop()
	n.opts.enabled()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			n.src.Drain(n.codes)
		}
	}
}
