package synth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Parallel()

	require.InDelta(t, 0.5, Evaluate(0), 1e-12)
	require.InDelta(t, 1.0, Evaluate(0.25), 1e-12)
	require.InDelta(t, 0.5, Evaluate(0.5), 1e-12)
	require.InDelta(t, 0.0, Evaluate(0.75), 1e-12)

	for i := range 10001 {
		m := Evaluate(float64(i) / 10000)
		require.GreaterOrEqual(t, m, 0.0)
		require.LessOrEqual(t, m, 1.0)
	}
}
