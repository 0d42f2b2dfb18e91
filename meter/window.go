// Package meter measures the amplitude of the sample stream leaving the
// transfer engine.
package meter

import "fmt"

// Window is a circular buffer holding the most recent samples.
type Window struct {
	data  []int
	head  int
	size  int
	count int
}

// NewWindow returns a new Window holding up to size samples.
func NewWindow(size int) (*Window, error) {
	if size < 1 {
		return nil, fmt.Errorf("window has bad size < 1: %d", size)
	}

	return &Window{
		data: make([]int, size),
		size: size,
	}, nil
}

// Insert inserts the new value into the window and advances the head.
func (w *Window) Insert(val int) {
	w.data[w.head] = val
	w.head = (w.head + 1) % w.size
	if w.count < w.size {
		w.count++
	}
}

// Get returns the value at index relative to the oldest sample.
func (w *Window) Get(index int) int {
	i := (w.head - w.count + w.size + index) % w.size
	return w.data[i]
}

// Len returns the number of samples held, at most Size.
func (w *Window) Len() int {
	return w.count
}

// Size returns the capacity of the window.
func (w *Window) Size() int {
	return w.size
}

// Full reports whether size samples have been inserted.
func (w *Window) Full() bool {
	return w.count == w.size
}

// Reset forgets every inserted sample.
func (w *Window) Reset() {
	clear(w.data)
	w.head = 0
	w.count = 0
}

// Average returns the average of the samples held, or 0 when empty.
func (w *Window) Average() float64 {
	if w.count == 0 {
		return 0
	}

	var sum int64
	for i := range w.count {
		sum += int64(w.Get(i))
	}

	return float64(sum) / float64(w.count)
}

// Min returns the smallest sample held, or 0 when empty.
func (w *Window) Min() int {
	if w.count == 0 {
		return 0
	}

	m := w.Get(0)
	for i := 1; i < w.count; i++ {
		m = min(m, w.Get(i))
	}
	return m
}

// Max returns the largest sample held, or 0 when empty.
func (w *Window) Max() int {
	if w.count == 0 {
		return 0
	}

	m := w.Get(0)
	for i := 1; i < w.count; i++ {
		m = max(m, w.Get(i))
	}
	return m
}

// PeakToPeak returns Max - Min. Over one carrier period this is the local
// envelope of an amplitude-modulated tone.
func (w *Window) PeakToPeak() int {
	return w.Max() - w.Min()
}
