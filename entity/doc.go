// Package entity extracts equipment and manufacturer references from free-text
// queries and expands them into spelling-tolerant variants.
//
// Detection combines a pattern matcher for code-like tokens with a membership
// test against a curated list of known names. Every raw match is expanded into
// fuzzy variants (separator handling, plus-sign forms, common letter
// confusions) so retrieval can match documents whose metadata spells the same
// equipment differently.
//
// The Matcher interface keeps the heuristic pluggable; a learned matcher can
// replace it without touching the retrieval engine.
package entity
