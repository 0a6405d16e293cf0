package wavefield

import "errors"

var (
	// ErrInvalidDimensions indicates a non-positive width, height or point count.
	ErrInvalidDimensions = errors.New("wavefield: invalid dimensions")

	// ErrInvalidParams indicates inverted ranges or non-positive step constants.
	ErrInvalidParams = errors.New("wavefield: invalid parameters")

	// ErrUnknownParam indicates a tunable name that does not exist.
	ErrUnknownParam = errors.New("wavefield: unknown parameter")
)
