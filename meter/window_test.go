package meter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWindow_BadSize(t *testing.T) {
	t.Parallel()

	_, err := NewWindow(0)
	require.Error(t, err)

	_, err = NewMonitor(-3)
	require.Error(t, err)
}

func TestWindow_InsertWraps(t *testing.T) {
	t.Parallel()

	w, err := NewWindow(3)
	require.NoError(t, err)
	require.False(t, w.Full())

	for _, v := range []int{1, 2, 3, 4, 5} {
		w.Insert(v)
	}
	require.True(t, w.Full())
	require.Equal(t, 3, w.Size())

	// Oldest first.
	require.Equal(t, 3, w.Get(0))
	require.Equal(t, 4, w.Get(1))
	require.Equal(t, 5, w.Get(2))
	require.InDelta(t, 4.0, w.Average(), 1e-12)
}

func TestWindow_PartiallyFilled(t *testing.T) {
	t.Parallel()

	w, err := NewWindow(4)
	require.NoError(t, err)
	require.Zero(t, w.Len())
	require.Zero(t, w.Min())
	require.Zero(t, w.Max())

	w.Insert(100)
	w.Insert(200)

	require.Equal(t, 2, w.Len())
	require.False(t, w.Full())
	require.Equal(t, 100, w.Get(0))
	require.Equal(t, 200, w.Get(1))
	require.Equal(t, 100, w.Min())
	require.Equal(t, 200, w.Max())
	require.Equal(t, 100, w.PeakToPeak())
	require.InDelta(t, 150.0, w.Average(), 1e-12)
}

func TestWindow_PeakToPeak(t *testing.T) {
	t.Parallel()

	w, err := NewWindow(4)
	require.NoError(t, err)
	for _, v := range []int{100, 4000, 7, 2048} {
		w.Insert(v)
	}

	require.Equal(t, 7, w.Min())
	require.Equal(t, 4000, w.Max())
	require.Equal(t, 3993, w.PeakToPeak())

	w.Reset()
	require.False(t, w.Full())
	require.Zero(t, w.PeakToPeak())
	require.Zero(t, w.Average())
}

func TestMonitor_ConcurrentObserve(t *testing.T) {
	t.Parallel()

	m, err := NewMonitor(8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 10000 {
			m.Observe(uint16(i % 4096))
		}
	}()
	for range 100 {
		_ = m.Stats()
	}
	wg.Wait()

	st := m.Stats()
	require.Equal(t, uint64(10000), st.Samples)
	// Last 8 samples: 9992..9999 mod 4096 = 1800..1807.
	require.Equal(t, 7, st.PeakToPeak)
	require.InDelta(t, 1803.5, st.Average, 1e-9)
}
