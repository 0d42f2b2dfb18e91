// Package dma implements the double-buffered handoff between a sample
// renderer and a circular transfer engine feeding a converter.
package dma

import "fmt"

// Half names one of the two halves of a DoubleBuffer.
type Half uint32

const (
	HalfA Half = iota + 1
	HalfB
)

func (h Half) String() string {
	switch h {
	case HalfA:
		return "A"
	case HalfB:
		return "B"
	default:
		return fmt.Sprintf("Half(%d)", uint32(h))
	}
}

// Valid reports whether h is HalfA or HalfB.
func (h Half) Valid() bool {
	return h == HalfA || h == HalfB
}

// Other returns the opposite half.
func (h Half) Other() Half {
	if h == HalfA {
		return HalfB
	}
	return HalfA
}

// DoubleBuffer is a fixed-capacity sample buffer split into two equal
// contiguous halves. It is zero-filled on creation and never resized.
type DoubleBuffer struct {
	data     []uint16
	halfSize int
}

// NewDoubleBuffer returns a zeroed buffer of 2*halfSize samples.
func NewDoubleBuffer(halfSize int) (*DoubleBuffer, error) {
	if halfSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrHalfSize, halfSize)
	}

	return &DoubleBuffer{
		data:     make([]uint16, 2*halfSize),
		halfSize: halfSize,
	}, nil
}

// HalfSize returns the number of samples in one half.
func (b *DoubleBuffer) HalfSize() int { return b.halfSize }

// Len returns the total number of samples.
func (b *DoubleBuffer) Len() int { return len(b.data) }

// At returns the sample at absolute index i in sequence order.
func (b *DoubleBuffer) At(i int) uint16 { return b.data[i] }

// View returns the bounds-limited view of half h. It panics on an invalid
// half, which only a programming error can produce.
func (b *DoubleBuffer) View(h Half) HalfView {
	if !h.Valid() {
		panic(fmt.Sprintf("dma: %v: %v", ErrBadHalf, h))
	}

	lo := int(h-HalfA) * b.halfSize
	hi := lo + b.halfSize
	return HalfView{
		half:   h,
		offset: lo,
		s:      b.data[lo:hi:hi],
	}
}

// HalfView is a window onto one half of a DoubleBuffer. Writes through it
// cannot reach the other half.
type HalfView struct {
	half   Half
	offset int
	s      []uint16
}

// Half returns which half the view covers.
func (v HalfView) Half() Half { return v.half }

// Offset returns the absolute index of the view's first sample.
func (v HalfView) Offset() int { return v.offset }

// Len returns the number of samples in the view.
func (v HalfView) Len() int { return len(v.s) }

// Set writes sample at offset i within the half.
func (v HalfView) Set(i int, sample uint16) error {
	if i < 0 || i >= len(v.s) {
		return fmt.Errorf("%w: %d not in [0, %d) of half %v", ErrOutOfRange, i, len(v.s), v.half)
	}
	v.s[i] = sample
	return nil
}

// At reads the sample at offset i within the half.
func (v HalfView) At(i int) (uint16, error) {
	if i < 0 || i >= len(v.s) {
		return 0, fmt.Errorf("%w: %d not in [0, %d) of half %v", ErrOutOfRange, i, len(v.s), v.half)
	}
	return v.s[i], nil
}
