package chunker

import (
	"strings"

	"github.com/ironleaf/docmind/core"
)

// FixedStrategy slides a window of size characters across the text, advancing
// the window start by size-overlap each step. Chunks are whitespace-trimmed;
// chunks that become empty after trimming are discarded. The last chunk may be
// shorter than size.
type FixedStrategy struct{}

var _ Strategy = FixedStrategy{}

// Name implements Strategy.
func (FixedStrategy) Name() string { return MethodFixed }

// Split implements Strategy.
func (FixedStrategy) Split(text string, size, overlap int) ([]core.Chunk, error) {
	if err := validateParams(size, overlap); err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return []core.Chunk{}, nil
	}

	runes := []rune(text)
	chunks := make([]core.Chunk, 0, len(runes)/(size-overlap)+1)

	for start := 0; start < len(runes); start += size - overlap {
		end := min(start+size, len(runes))

		trimmed := strings.TrimSpace(string(runes[start:end]))
		if trimmed != "" {
			chunks = append(chunks, core.Chunk{
				Text:  trimmed,
				Index: len(chunks),
				Start: start,
				End:   end,
			})
		}

		if end == len(runes) {
			break
		}
	}

	return chunks, nil
}
