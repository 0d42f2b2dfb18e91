package dma

import "errors"

var (
	ErrHalfSize   = errors.New("half size must be positive")
	ErrOutOfRange = errors.New("offset outside half")
	ErrNotFilling = errors.New("no half is granted")
	ErrBadHalf    = errors.New("unknown half")
)
