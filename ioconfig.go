package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mondaugen/stm32-dac-dma-test/dac"
	"github.com/mondaugen/stm32-dac-dma-test/dma"
)

type IOConfig struct {
	// SampleRate is the calibrated converter rate in Hz. Zero derives it
	// from Timer.
	SampleRate     float64       `toml:"sample_rate"`
	BufferHalfSize int           `toml:"buffer_half_size"`
	FullScale      uint16        `toml:"full_scale"`
	CarrierFreq    float64       `toml:"carrier_freq"`
	EnvelopeFreq   float64       `toml:"envelope_freq"`
	WaitMode       string        `toml:"wait_mode"`
	StatusInterval time.Duration `toml:"status_interval"`

	Timer  TimerConfig  `toml:"timer"`
	Output OutputConfig `toml:"output"`
}

// TimerConfig describes the timer that triggers each conversion.
type TimerConfig struct {
	ClockHz   float64 `toml:"clock_hz"`
	Prescaler uint32  `toml:"prescaler"`
	Period    uint32  `toml:"period"`
}

type OutputConfig struct {
	Backend         string  `toml:"backend"`
	Gain            float64 `toml:"gain"`
	FramesPerBuffer int     `toml:"frames_per_buffer"`
}

// DefaultConfig returns the settings of the reference board: a 12-bit
// converter clocked near 45 kHz playing 440 Hz under a 0.1 Hz envelope.
func DefaultConfig() *IOConfig {
	return &IOConfig{
		SampleRate:     45000,
		BufferHalfSize: 256,
		FullScale:      0xfff,
		CarrierFreq:    440,
		EnvelopeFreq:   0.1,
		WaitMode:       "block",
		StatusInterval: 5 * time.Second,
		Timer: TimerConfig{
			ClockHz:   90_000_000,
			Prescaler: 1,
			Period:    1000,
		},
		Output: OutputConfig{
			Backend:         "null",
			Gain:            0.5,
			FramesPerBuffer: 256,
		},
	}
}

// ParseFromFile reads a TOML file over the defaults.
func ParseFromFile(file string) (*IOConfig, error) {
	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file at %q: %w", file, err)
	}

	cfg, err := Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse IOConfig from TOML file %q: %w", file, err)
	}

	return cfg, nil
}

// Parse decodes TOML over the defaults and validates the result.
func Parse(bs []byte) (*IOConfig, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(bs, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EffectiveSampleRate returns SampleRate, or the timer's rate when SampleRate
// is zero.
func (c *IOConfig) EffectiveSampleRate() float64 {
	if c.SampleRate > 0 {
		return c.SampleRate
	}
	return dac.TimerRate(c.Timer.ClockHz, c.Timer.Prescaler, c.Timer.Period)
}

// Validate checks the configuration before anything is brought up.
func (c *IOConfig) Validate() error {
	if math.IsNaN(c.SampleRate) || math.IsInf(c.SampleRate, 0) {
		return fmt.Errorf("sample_rate must be finite, got %v", c.SampleRate)
	}
	if c.SampleRate < 0 {
		return fmt.Errorf("sample_rate must not be negative, got %v", c.SampleRate)
	}
	if c.SampleRate == 0 && c.Timer.ClockHz <= 0 {
		return fmt.Errorf("sample_rate is 0 and timer.clock_hz is %v: no way to derive a rate", c.Timer.ClockHz)
	}

	rate := c.EffectiveSampleRate()
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return fmt.Errorf("sample rate must be finite and positive, got %v", rate)
	}
	if c.BufferHalfSize < 1 {
		return fmt.Errorf("buffer_half_size must be positive, got %d", c.BufferHalfSize)
	}
	if c.FullScale == 0 {
		return fmt.Errorf("full_scale must be positive")
	}
	for name, f := range map[string]float64{"carrier_freq": c.CarrierFreq, "envelope_freq": c.EnvelopeFreq} {
		if !(f >= 0 && f < rate/2) {
			return fmt.Errorf("%s must be in [0, %v), got %v", name, rate/2, f)
		}
	}
	if _, err := dma.ParseWaitMode(c.WaitMode); err != nil {
		return fmt.Errorf("wait_mode: %w", err)
	}
	if c.StatusInterval <= 0 {
		return fmt.Errorf("status_interval must be positive, got %v", c.StatusInterval)
	}
	if c.Output.FramesPerBuffer < 1 {
		return fmt.Errorf("output.frames_per_buffer must be positive, got %d", c.Output.FramesPerBuffer)
	}
	if c.Output.FramesPerBuffer > c.BufferHalfSize {
		return fmt.Errorf("output.frames_per_buffer %d exceeds buffer_half_size %d: each burst may cross at most one half boundary",
			c.Output.FramesPerBuffer, c.BufferHalfSize)
	}
	if !(c.Output.Gain >= 0 && c.Output.Gain <= 1) {
		return fmt.Errorf("output.gain must be in [0, 1], got %v", c.Output.Gain)
	}

	return nil
}
