package chunker

import (
	"regexp"
	"strings"

	"github.com/ironleaf/docmind/core"
)

// SentenceStrategy detects sentences and groups them into chunks under the
// size budget, repeating trailing sentences of the previous chunk as overlap.
// A single sentence larger than the size budget falls back to the fixed-size
// splitter.
type SentenceStrategy struct{}

var _ Strategy = SentenceStrategy{}

var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// Name implements Strategy.
func (SentenceStrategy) Name() string { return MethodSentence }

// sentence is a detected sentence with its rune offsets.
type sentence struct {
	text  string
	start int
	end   int
}

// Split implements Strategy.
func (SentenceStrategy) Split(text string, size, overlap int) ([]core.Chunk, error) {
	if err := validateParams(size, overlap); err != nil {
		return nil, err
	}

	text = normalizeNewlines(text)
	if strings.TrimSpace(text) == "" {
		return []core.Chunk{}, nil
	}

	sentences := detectSentences(text)

	var (
		chunks   []core.Chunk
		group    []sentence
		groupLen int
	)

	flush := func() {
		if len(group) == 0 {
			return
		}
		parts := make([]string, len(group))
		for i, s := range group {
			parts[i] = s.text
		}
		chunks = append(chunks, core.Chunk{
			Text:  strings.Join(parts, " "),
			Start: group[0].start,
			End:   group[len(group)-1].end,
		})
		group = nil
		groupLen = 0
	}

	for _, s := range sentences {
		sLen := len([]rune(s.text))

		if sLen > size {
			flush()
			sub, err := (FixedStrategy{}).Split(s.text, size, overlap)
			if err != nil {
				return nil, err
			}
			for _, c := range sub {
				c.Start += s.start
				c.End += s.start
				chunks = append(chunks, c)
			}
			continue
		}

		sep := 0
		if len(group) > 0 {
			sep = 1 // joining space
		}

		if groupLen+sLen+sep > size && len(group) > 0 {
			carried := trailingSentenceOverlap(group, overlap)
			flush()
			for _, c := range carried {
				group = append(group, c)
				groupLen += len([]rune(c.text)) + 1
			}
			group = append(group, s)
			groupLen += sLen
		} else {
			group = append(group, s)
			groupLen += sLen + sep
		}
	}
	flush()

	for i := range chunks {
		chunks[i].Index = i
	}

	return chunks, nil
}

// trailingSentenceOverlap mirrors trailingOverlap for sentence groups.
func trailingSentenceOverlap(group []sentence, overlap int) []sentence {
	if overlap <= 0 {
		return nil
	}
	var carried []sentence
	total := 0
	for i := len(group) - 1; i >= 0; i-- {
		sLen := len([]rune(group[i].text))
		if total+sLen >= overlap {
			break
		}
		carried = append([]sentence{group[i]}, carried...)
		total += sLen
	}
	return carried
}

// detectSentences splits text at terminal punctuation followed by whitespace,
// keeping rune offsets for each sentence.
func detectSentences(text string) []sentence {
	runes := []rune(text)

	// Regexp works on byte offsets; map them back to rune offsets.
	byteToRune := make(map[int]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		byteToRune[b] = i
		b += len(string(r))
	}
	byteToRune[b] = len(runes)

	var sentences []sentence
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		end := byteToRune[loc[1]]
		raw := strings.TrimSpace(string(runes[last:end]))
		if raw != "" {
			sentences = append(sentences, sentence{text: raw, start: last, end: end})
		}
		last = end
	}
	if last < len(runes) {
		raw := strings.TrimSpace(string(runes[last:]))
		if raw != "" {
			sentences = append(sentences, sentence{text: raw, start: last, end: len(runes)})
		}
	}

	return sentences
}
