package chunker

import "errors"

var (
	// ErrInvalidChunkSize is returned when the chunk size is not positive.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidOverlap is returned when the overlap is negative or would
	// stall the sliding window (overlap >= size).
	ErrInvalidOverlap = errors.New("overlap must satisfy 0 <= overlap < size")

	// ErrUnknownMethod is returned when no strategy is registered for a method name.
	ErrUnknownMethod = errors.New("unknown chunking method")
)
