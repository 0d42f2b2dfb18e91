package dac

import "errors"

var (
	ErrUnknownBackend = errors.New("unknown output backend")
	ErrSampleRate     = errors.New("sample rate must be positive")
	ErrFrames         = errors.New("frames per buffer must be positive")
	ErrFullScale      = errors.New("full scale must be positive")
)
