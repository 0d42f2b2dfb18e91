package main

import (
	"context"
	"fmt"
	"math"
	"time"

	log "github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/mondaugen/stm32-dac-dma-test/dac"
	"github.com/mondaugen/stm32-dac-dma-test/dma"
	"github.com/mondaugen/stm32-dac-dma-test/meter"
	"github.com/mondaugen/stm32-dac-dma-test/synth"
)

// system is the tone generator after bring-up.
type system struct {
	cfg      *IOConfig
	handoff  *dma.Handoff
	engine   *dma.TransferEngine
	filler   *dma.Filler
	monitor  *meter.Monitor
	backend  dac.Backend
	interval time.Duration
}

// bringUp builds every component once, zeroed and idle. Nothing runs until
// run is called.
func bringUp(cfg *IOConfig) (*system, error) {
	rate := cfg.EffectiveSampleRate()
	timerRate := dac.TimerRate(cfg.Timer.ClockHz, cfg.Timer.Prescaler, cfg.Timer.Period)
	log.Infof("sample rate %.2f Hz (timer gives %.2f Hz)", rate, timerRate)

	renderer, err := synth.NewRenderer(synth.Params{
		SampleRate:   rate,
		CarrierFreq:  cfg.CarrierFreq,
		EnvelopeFreq: cfg.EnvelopeFreq,
		FullScale:    cfg.FullScale,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	buf, err := dma.NewDoubleBuffer(cfg.BufferHalfSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create output buffer: %w", err)
	}
	log.Infof("output buffer zeroed: 2 x %d samples", buf.HalfSize())

	mode, err := dma.ParseWaitMode(cfg.WaitMode)
	if err != nil {
		return nil, err
	}
	handoff := dma.NewHandoff(mode)

	monitor, err := meter.NewMonitor(renderer.CarrierPeriod())
	if err != nil {
		return nil, fmt.Errorf("failed to create monitor: %w", err)
	}

	engine := dma.NewTransferEngine(buf, handoff, dma.WithTap(monitor.Observe))

	conv, err := dac.NewConverter(cfg.FullScale, int(math.Round(rate)), cfg.Output.Gain)
	if err != nil {
		return nil, fmt.Errorf("failed to create converter: %w", err)
	}

	backend, err := dac.New(cfg.Output.Backend, engine, conv, dac.Options{
		SampleRate:      rate,
		FramesPerBuffer: cfg.Output.FramesPerBuffer,
		OnEnabled: func() {
			log.Infof("transfer engine enabled on %q output (%d-bit)", cfg.Output.Backend, conv.BitDepth())
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create output: %w", err)
	}

	return &system{
		cfg:      cfg,
		handoff:  handoff,
		engine:   engine,
		filler:   dma.NewFiller(handoff, buf, renderer),
		monitor:  monitor,
		backend:  backend,
		interval: cfg.StatusInterval,
	}, nil
}

// run starts the render loop, the output device and the status reporter, and
// returns when ctx is done or one of them fails.
func (s *system) run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.filler.Run(ctx)
	})
	g.Go(func() error {
		return s.backend.Run(ctx)
	})
	g.Go(func() error {
		return s.report(ctx)
	})

	return g.Wait()
}

func (s *system) report(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastOverruns uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		overruns := s.handoff.Overruns()
		if overruns > lastOverruns {
			log.Warningf("renderer overran %d times (%d in the last %v)", overruns, overruns-lastOverruns, s.interval)
		}
		lastOverruns = overruns

		st := s.monitor.Stats()
		log.V(1).Infof("transferred %d samples, filled %d halves, state %v, envelope %d/%d",
			s.engine.Transferred(), s.filler.Filled(), s.handoff.State(), st.PeakToPeak, s.cfg.FullScale)
	}
}
