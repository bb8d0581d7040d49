package cubesim

import "errors"

// Sentinel errors for the cubesim package.
var (
	// Construction errors
	ErrInvalidDimension = errors.New("cubesim: cube dimension must be at least 1")

	// Parsing errors
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")
)
