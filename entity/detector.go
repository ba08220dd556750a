package entity

import (
	"strings"
	"unicode"
)

// defaultMaxVariants bounds the flat variant list so downstream filter
// predicates cannot grow without limit.
const defaultMaxVariants = 20

// Matcher detects equipment or manufacturer references in a query and returns
// spelling-tolerant variants for each. Implementations must be pure functions
// of the query text.
type Matcher interface {
	Detect(query string) []string
}

// HeuristicMatcher combines a pattern matcher for code-like tokens with a
// membership test against a curated list of known entity names.
type HeuristicMatcher struct {
	known       []string
	maxVariants int
}

var _ Matcher = (*HeuristicMatcher)(nil)

// Option configures a HeuristicMatcher.
type Option func(*HeuristicMatcher)

// WithKnownNames replaces the curated list of known entity names.
// Names are matched case-insensitively as substrings of the query.
func WithKnownNames(names []string) Option {
	return func(m *HeuristicMatcher) {
		lowered := make([]string, 0, len(names))
		for _, n := range names {
			n = strings.ToLower(strings.TrimSpace(n))
			if n != "" {
				lowered = append(lowered, n)
			}
		}
		m.known = lowered
	}
}

// WithMaxVariants caps the number of returned variants.
func WithMaxVariants(n int) Option {
	return func(m *HeuristicMatcher) {
		if n > 0 {
			m.maxVariants = n
		}
	}
}

// NewHeuristicMatcher creates a matcher with the built-in known-name list.
func NewHeuristicMatcher(opts ...Option) *HeuristicMatcher {
	m := &HeuristicMatcher{
		known:       defaultKnownNames,
		maxVariants: defaultMaxVariants,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// defaultKnownNames lists entity names seen in production queries that the
// code-token pattern alone cannot catch.
var defaultKnownNames = []string{
	"razon+",
	"vaisala",
	"campbell",
	"thies",
}

// Detect extracts candidate equipment tokens from the query and expands each
// into fuzzy variants. The result is deduplicated, order-stable, and capped.
func (m *HeuristicMatcher) Detect(query string) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	raw := codeTokens(query)

	lower := strings.ToLower(query)
	for _, name := range m.known {
		if strings.Contains(lower, name) {
			raw = append(raw, name)
		}
	}

	seen := make(map[string]bool)
	variants := make([]string, 0, len(raw)*4)
	for _, token := range raw {
		for _, v := range ExpandVariants(token) {
			if !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
			if len(variants) >= m.maxVariants {
				return variants
			}
		}
	}

	if len(variants) == 0 {
		return nil
	}
	return variants
}

// codeTokens returns tokens that look like equipment codes: length >= 3,
// containing a digit or a plus sign, and at least one letter so bare numbers
// (years, quantities) are not treated as equipment.
func codeTokens(query string) []string {
	fields := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '-' && r != '_'
	})

	var tokens []string
	for _, f := range fields {
		f = strings.Trim(f, "-_")
		if len([]rune(f)) < 3 {
			continue
		}
		hasDigit, hasPlus, hasLetter := false, false, false
		for _, r := range f {
			switch {
			case unicode.IsDigit(r):
				hasDigit = true
			case r == '+':
				hasPlus = true
			case unicode.IsLetter(r):
				hasLetter = true
			}
		}
		if hasLetter && (hasDigit || hasPlus) {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
