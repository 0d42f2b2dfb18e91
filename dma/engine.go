package dma

import "sync/atomic"

// Notifier receives boundary-crossing notifications.
type Notifier interface {
	HalfBoundaryCrossed(half Half)
}

// TransferEngine streams a DoubleBuffer to a converter in sequence order,
// one sample per sample clock tick, looping over both halves forever. It
// raises HalfBoundaryCrossed(HalfA) after the last sample of half A and
// HalfBoundaryCrossed(HalfB) after the last sample of half B.
//
// A TransferEngine is driven by a single goroutine, the converter's clock.
type TransferEngine struct {
	buf    *DoubleBuffer
	notify Notifier
	tap    func(sample uint16)

	pos         int
	transferred atomic.Uint64
}

// EngineOption configures a TransferEngine.
type EngineOption func(*TransferEngine)

// WithTap registers fn to see every sample handed to the converter.
func WithTap(fn func(sample uint16)) EngineOption {
	return func(e *TransferEngine) {
		e.tap = fn
	}
}

// NewTransferEngine returns an engine positioned at the start of half A.
func NewTransferEngine(buf *DoubleBuffer, notify Notifier, opts ...EngineOption) *TransferEngine {
	e := &TransferEngine{
		buf:    buf,
		notify: notify,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Next transfers one sample.
func (e *TransferEngine) Next() uint16 {
	sample := e.buf.data[e.pos]
	e.pos++
	e.transferred.Add(1)

	if e.tap != nil {
		e.tap(sample)
	}

	switch e.pos {
	case e.buf.halfSize:
		e.notify.HalfBoundaryCrossed(HalfA)
	case len(e.buf.data):
		e.pos = 0
		e.notify.HalfBoundaryCrossed(HalfB)
	}

	return sample
}

// Drain transfers len(dst) samples into dst. The whole burst runs before the
// render loop gets a chance to fill, so len(dst) must not exceed the half
// size: a longer burst crosses a second boundary while the first grant is
// still being filled, and every such crossing is an overrun.
func (e *TransferEngine) Drain(dst []uint16) {
	for i := range dst {
		dst[i] = e.Next()
	}
}

// Reading returns the half the next sample is read from.
func (e *TransferEngine) Reading() Half {
	if e.pos < e.buf.halfSize {
		return HalfA
	}
	return HalfB
}

// Transferred returns the number of samples streamed so far.
func (e *TransferEngine) Transferred() uint64 {
	return e.transferred.Load()
}
