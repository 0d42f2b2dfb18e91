package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mondaugen/stm32-dac-dma-test/dma"
)

// slowConfig runs the null output slowly enough that the render loop never
// falls behind.
func slowConfig() *IOConfig {
	cfg := DefaultConfig()
	cfg.SampleRate = 2000
	cfg.BufferHalfSize = 64
	cfg.Output.FramesPerBuffer = 16
	cfg.StatusInterval = 50 * time.Millisecond
	return cfg
}

func TestBringUp_UnknownBackend(t *testing.T) {
	t.Parallel()

	cfg := slowConfig()
	cfg.Output.Backend = "speaker"
	_, err := bringUp(cfg)
	require.ErrorContains(t, err, "unknown output backend")
}

func TestSystem_Run(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"spin", "block"} {
		t.Run(mode, func(t *testing.T) {
			t.Parallel()

			cfg := slowConfig()
			cfg.WaitMode = mode
			sys, err := bringUp(cfg)
			require.NoError(t, err)
			require.Equal(t, dma.Idle, sys.handoff.State())

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- sys.run(ctx) }()

			require.Eventually(t, func() bool { return sys.filler.Filled() >= 3 }, 10*time.Second, 5*time.Millisecond)
			cancel()
			require.ErrorIs(t, <-done, context.Canceled)

			require.Positive(t, sys.engine.Transferred())
			require.Zero(t, sys.handoff.Overruns())
			require.Equal(t, sys.engine.Transferred(), sys.monitor.Stats().Samples)
		})
	}
}

func TestDoMain_Shutdown(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "slow.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
sample_rate = 2000
buffer_half_size = 64
status_interval = "50ms"

[output]
backend = "null"
frames_per_buffer = 16
`), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	// The deadline is reported as a failure; only cancellation is a clean
	// shutdown.
	require.ErrorIs(t, doMain(ctx, file), context.DeadlineExceeded)

	ctx, cancel = context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	require.NoError(t, doMain(ctx, file))

	require.Error(t, doMain(context.Background(), filepath.Join(t.TempDir(), "missing.toml")))
}
