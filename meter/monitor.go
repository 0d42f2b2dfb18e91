package meter

import "sync"

// Stats is a snapshot of a Monitor.
type Stats struct {
	Samples    uint64
	Average    float64
	PeakToPeak int
}

// Monitor watches the converter stream. Observe runs on the transfer engine's
// goroutine and Stats on any other.
type Monitor struct {
	// mu protects window and samples.
	mu      sync.Mutex
	window  *Window
	samples uint64
}

// NewMonitor returns a Monitor measuring over windows of period samples,
// usually one carrier period.
func NewMonitor(period int) (*Monitor, error) {
	w, err := NewWindow(period)
	if err != nil {
		return nil, err
	}
	return &Monitor{window: w}, nil
}

// Observe records one sample handed to the converter.
func (m *Monitor) Observe(sample uint16) {
	m.mu.Lock()
	m.window.Insert(int(sample))
	m.samples++
	m.mu.Unlock()
}

// Stats returns the current envelope measurement.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Samples:    m.samples,
		Average:    m.window.Average(),
		PeakToPeak: m.window.PeakToPeak(),
	}
}
