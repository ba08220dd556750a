package search

import "strings"

// Stop words filtered out of lexical query terms. Queries arrive in Spanish
// or English, so both lists are carried.
var stopWords = map[string]bool{
	// Spanish
	"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
	"unos": true, "unas": true, "de": true, "del": true, "en": true, "y": true,
	"o": true, "que": true, "es": true, "son": true, "para": true, "por": true,
	"con": true, "sin": true, "al": true, "se": true, "su": true, "sus": true,
	"como": true, "mas": true, "más": true, "este": true, "esta": true,
	"cual": true, "cuál": true, "sobre": true, "entre": true,
	// English
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words.
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}¿¡"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}
