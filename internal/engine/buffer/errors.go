package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrRangeInvalid indicates a range outside the buffer or with end < start.
	ErrRangeInvalid = errors.New("invalid range")

	// ErrReadOnly indicates a write was attempted on a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")
)
