package dma

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
)

// State is the state of the handoff protocol.
type State int

const (
	// Idle means no half is granted to the renderer.
	Idle State = iota
	// Filling means the renderer owns a half and is writing into it.
	Filling
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Filling:
		return "filling"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// WaitMode selects how the render loop waits for a grant.
type WaitMode int

const (
	// WaitSpin polls the grant, yielding the processor between polls.
	WaitSpin WaitMode = iota
	// WaitBlock parks the render loop until the next notification.
	WaitBlock
)

// ParseWaitMode parses "spin" or "block".
func ParseWaitMode(s string) (WaitMode, error) {
	switch s {
	case "spin":
		return WaitSpin, nil
	case "block", "":
		return WaitBlock, nil
	default:
		return 0, fmt.Errorf("unknown wait mode %q", s)
	}
}

func (m WaitMode) String() string {
	if m == WaitSpin {
		return "spin"
	}
	return "block"
}

// Handoff coordinates which half of a DoubleBuffer the renderer may fill.
//
// The grant is one atomic word: zero for no grant, otherwise the granted
// Half. HalfBoundaryCrossed is the only setter and runs in the notification
// context; Release is the only clearer and runs in the render context.
type Handoff struct {
	grant atomic.Uint32
	wake  chan struct{}
	mode  WaitMode

	grants   atomic.Uint64
	overruns atomic.Uint64
}

// NewHandoff returns a Handoff in the Idle state.
func NewHandoff(mode WaitMode) *Handoff {
	return &Handoff{
		wake: make(chan struct{}, 1),
		mode: mode,
	}
}

// HalfBoundaryCrossed is raised by the transfer engine when it has finished
// consuming half and moves on to the other one. When Idle the renderer is
// granted half. When already Filling the renderer did not keep up: the
// notification is counted as an overrun and the current grant stands.
func (h *Handoff) HalfBoundaryCrossed(half Half) {
	if !half.Valid() {
		return
	}

	if !h.grant.CompareAndSwap(0, uint32(half)) {
		h.overruns.Add(1)
		return
	}
	h.grants.Add(1)

	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// TryAcquire returns the granted half, if any, without waiting.
func (h *Handoff) TryAcquire() (Half, bool) {
	g := Half(h.grant.Load())
	return g, g != 0
}

// Acquire waits until a half is granted and returns it. It only returns
// early when ctx is done.
func (h *Handoff) Acquire(ctx context.Context) (Half, error) {
	for {
		if g, ok := h.TryAcquire(); ok {
			return g, nil
		}

		if h.mode == WaitSpin {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			runtime.Gosched()
			continue
		}

		select {
		case <-h.wake:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
}

// Release clears the grant once the renderer has filled its half.
func (h *Handoff) Release() error {
	if h.grant.Swap(0) == 0 {
		return ErrNotFilling
	}
	return nil
}

// State returns Filling while a half is granted, Idle otherwise.
func (h *Handoff) State() State {
	if h.grant.Load() == 0 {
		return Idle
	}
	return Filling
}

// Grants returns how many grants have been handed out.
func (h *Handoff) Grants() uint64 { return h.grants.Load() }

// Overruns returns how many notifications arrived while still Filling.
func (h *Handoff) Overruns() uint64 { return h.overruns.Load() }

// Mode returns the wait mode used by Acquire.
func (h *Handoff) Mode() WaitMode { return h.mode }
