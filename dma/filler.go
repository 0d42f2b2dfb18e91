package dma

import (
	"context"
	"fmt"
	"sync/atomic"

	log "github.com/golang/glog"
)

// SampleRenderer produces one quantized sample per call.
type SampleRenderer interface {
	RenderOneSample() uint16
}

// Filler is the render loop. It waits for a grant, fills the granted half
// sample by sample, and releases the grant.
type Filler struct {
	handoff  *Handoff
	buf      *DoubleBuffer
	renderer SampleRenderer

	filled atomic.Uint64
}

// NewFiller returns a Filler writing r's samples into buf as h grants halves.
func NewFiller(h *Handoff, buf *DoubleBuffer, r SampleRenderer) *Filler {
	return &Filler{
		handoff:  h,
		buf:      buf,
		renderer: r,
	}
}

// fill writes one full half through its view. The caller holds the grant.
func (f *Filler) fill(half Half) error {
	v := f.buf.View(half)
	for i := range v.Len() {
		if err := v.Set(i, f.renderer.RenderOneSample()); err != nil {
			return err
		}
	}
	return nil
}

// Step waits for one grant, fills it and releases it.
func (f *Filler) Step(ctx context.Context) (Half, error) {
	half, err := f.handoff.Acquire(ctx)
	if err != nil {
		return 0, err
	}

	if err := f.fill(half); err != nil {
		return half, fmt.Errorf("fill half %v: %w", half, err)
	}

	if err := f.handoff.Release(); err != nil {
		return half, fmt.Errorf("release half %v: %w", half, err)
	}
	f.filled.Add(1)
	log.V(2).Infof("filled half %v", half)

	return half, nil
}

// Run fills halves until ctx is done. It returns ctx's error.
func (f *Filler) Run(ctx context.Context) error {
	for {
		if _, err := f.Step(ctx); err != nil {
			return err
		}
	}
}

// Filled returns the number of halves filled and released.
func (f *Filler) Filled() uint64 {
	return f.filled.Load()
}
