package chunker

import (
	"fmt"
	"log/slog"

	"github.com/ironleaf/docmind/core"
)

// Method names accepted by Split and the chunking_method configuration key.
const (
	MethodFixed     = "fixed"
	MethodParagraph = "paragraph"
	MethodSentence  = "sentence"
)

// maxTextLength caps input size (~5000 pages). Larger inputs are truncated
// rather than rejected so oversized uploads still ingest their head.
const maxTextLength = 10_000_000

// Strategy turns raw text into ordered chunks under a size budget.
// Implementations must be pure functions of their input.
type Strategy interface {
	// Name returns the method name recorded in chunk facts.
	Name() string

	// Split divides text into chunks of at most size characters with the
	// given overlap between consecutive chunks. Empty or whitespace-only
	// text yields an empty slice, not an error.
	Split(text string, size, overlap int) ([]core.Chunk, error)
}

// strategies maps method names to implementations.
var strategies = map[string]Strategy{
	MethodFixed:     FixedStrategy{},
	MethodParagraph: ParagraphStrategy{},
	MethodSentence:  SentenceStrategy{},
}

// ForMethod returns the strategy registered for the given method name.
func ForMethod(method string) (Strategy, error) {
	s, ok := strategies[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	return s, nil
}

// Split chunks text using the named method. Malformed parameters fail fast
// before any chunk is produced.
func Split(text, method string, size, overlap int) ([]core.Chunk, error) {
	s, err := ForMethod(method)
	if err != nil {
		return nil, err
	}

	if len([]rune(text)) > maxTextLength {
		slog.Warn("text too large, truncating",
			"originalLength", len([]rune(text)),
			"maxLength", maxTextLength)
		text = string([]rune(text)[:maxTextLength])
	}

	return s.Split(text, size, overlap)
}

// validateParams enforces the shared precondition size > overlap >= 0.
func validateParams(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: size=%d overlap=%d", ErrInvalidOverlap, size, overlap)
	}
	return nil
}
