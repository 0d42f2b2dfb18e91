package synth

import "errors"

var (
	ErrSampleRate     = errors.New("sample rate must be positive")
	ErrIncrementRange = errors.New("phase increment must be in (-1, 1)")
	ErrFullScale      = errors.New("full scale must be positive")
)
