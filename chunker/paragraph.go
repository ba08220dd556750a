package chunker

import (
	"regexp"
	"strings"

	"github.com/ironleaf/docmind/core"
)

// ParagraphStrategy detects paragraphs and groups them into chunks under the
// size budget. Paragraph boundaries are a blank line, or terminal punctuation
// followed by a line starting with a capital letter, digit, or list marker.
// Overlap is applied at paragraph granularity: trailing paragraphs of the
// previous chunk are repeated at the head of the next one until the overlap
// budget is met. A single paragraph larger than the size budget falls back to
// the fixed-size splitter.
type ParagraphStrategy struct{}

var _ Strategy = ParagraphStrategy{}

var paragraphStart = regexp.MustCompile(`^[A-ZÁÉÍÓÚÑ0-9\-•*]`)

// Name implements Strategy.
func (ParagraphStrategy) Name() string { return MethodParagraph }

// paragraph is a detected paragraph with its rune offsets in the normalized text.
type paragraph struct {
	text  string
	start int
	end   int
}

// Split implements Strategy.
func (ParagraphStrategy) Split(text string, size, overlap int) ([]core.Chunk, error) {
	if err := validateParams(size, overlap); err != nil {
		return nil, err
	}

	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return []core.Chunk{}, nil
	}

	paragraphs := detectParagraphs(text)

	var (
		chunks     []core.Chunk
		group      []paragraph
		groupLen   int
	)

	flush := func() {
		if len(group) == 0 {
			return
		}
		parts := make([]string, len(group))
		for i, p := range group {
			parts[i] = p.text
		}
		chunks = append(chunks, core.Chunk{
			Text:  strings.Join(parts, "\n\n"),
			Start: group[0].start,
			End:   group[len(group)-1].end,
		})
		group = nil
		groupLen = 0
	}

	for _, p := range paragraphs {
		pLen := len([]rune(p.text))

		// Oversized paragraphs cannot be grouped; fixed-split them in place.
		if pLen > size {
			flush()
			sub, err := (FixedStrategy{}).Split(p.text, size, overlap)
			if err != nil {
				return nil, err
			}
			for _, c := range sub {
				c.Start += p.start
				c.End += p.start
				chunks = append(chunks, c)
			}
			continue
		}

		sep := 0
		if len(group) > 0 {
			sep = 2 // "\n\n"
		}

		if groupLen+pLen+sep > size && len(group) > 0 {
			carried := trailingOverlap(group, overlap)
			flush()
			for _, c := range carried {
				group = append(group, c)
				groupLen += len([]rune(c.text)) + 2
			}
			group = append(group, p)
			groupLen += pLen
		} else {
			group = append(group, p)
			groupLen += pLen + sep
		}
	}
	flush()

	for i := range chunks {
		chunks[i].Index = i
	}

	return chunks, nil
}

// trailingOverlap returns the trailing paragraphs of a group whose combined
// length stays under the overlap budget, preserving order.
func trailingOverlap(group []paragraph, overlap int) []paragraph {
	if overlap <= 0 {
		return nil
	}
	var carried []paragraph
	total := 0
	for i := len(group) - 1; i >= 0; i-- {
		pLen := len([]rune(group[i].text))
		if total+pLen >= overlap {
			break
		}
		carried = append([]paragraph{group[i]}, carried...)
		total += pLen
	}
	return carried
}

// detectParagraphs walks the text line by line, merging continuation lines and
// splitting on blank lines or punctuation-then-capital boundaries.
func detectParagraphs(text string) []paragraph {
	runes := []rune(text)

	var (
		paragraphs []paragraph
		current    []string
		curStart   = -1
		curEnd     int
		lineStart  = 0
	)

	endParagraph := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, paragraph{
				text:  strings.Join(current, " "),
				start: curStart,
				end:   curEnd,
			})
			current = nil
			curStart = -1
		}
	}

	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' {
			continue
		}

		line := strings.TrimSpace(string(runes[lineStart:i]))
		switch {
		case line == "":
			endParagraph()
		case len(current) == 0:
			current = []string{line}
			curStart = lineStart
			curEnd = i
		default:
			last := []rune(current[len(current)-1])
			endsWithPunct := strings.ContainsRune(".!?:", last[len(last)-1])
			if endsWithPunct && paragraphStart.MatchString(line) {
				endParagraph()
				current = []string{line}
				curStart = lineStart
				curEnd = i
			} else {
				current = append(current, line)
				curEnd = i
			}
		}
		lineStart = i + 1
	}
	endParagraph()

	return paragraphs
}

// normalizeNewlines converts Windows and old-Mac line endings to \n.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
