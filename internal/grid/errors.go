package grid

import "errors"

// Domain errors for grid construction.
var (
	// ErrInvalidDimensions indicates a non-positive row or column count.
	ErrInvalidDimensions = errors.New("grid: rows and cols must be positive")

	// ErrInvalidWave indicates a wave with a non-positive divisor or negative offset.
	ErrInvalidWave = errors.New("grid: wave divisors must be positive and offset non-negative")
)
