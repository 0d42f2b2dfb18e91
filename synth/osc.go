package synth

import "math"

// Evaluate maps a phase to a unipolar sine magnitude in [0, 1].
func Evaluate(phase float64) float64 {
	return (1 + math.Sin(2*math.Pi*phase)) / 2
}
