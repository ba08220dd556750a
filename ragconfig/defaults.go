package ragconfig

import "github.com/ironleaf/docmind/core"

// Configuration keys.
const (
	KeyChunkSize      = "chunk_size"
	KeyChunkOverlap   = "chunk_overlap"
	KeyChunkingMethod = "chunking_method"
	KeyTopK           = "top_k"
	KeyMinSimilarity  = "min_similarity"
	KeyMinHybridScore = "min_hybrid_score"
	KeyVectorWeight   = "vector_weight"
	KeyLexicalWeight  = "lexical_weight"
)

// defaultEntries is the closed catalog of tunable parameters. Updates may
// only touch keys listed here.
var defaultEntries = []core.ConfigEntry{
	{
		Key:         KeyChunkSize,
		Value:       "1000",
		Type:        core.ConfigTypeInt,
		HasBounds:   true,
		Min:         100,
		Max:         5000,
		Description: "characters per chunk",
	},
	{
		Key:         KeyChunkOverlap,
		Value:       "200",
		Type:        core.ConfigTypeInt,
		HasBounds:   true,
		Min:         0,
		Max:         1000,
		Description: "characters shared between consecutive chunks",
	},
	{
		Key:         KeyChunkingMethod,
		Value:       "fixed",
		Type:        core.ConfigTypeString,
		Description: "chunking strategy: fixed, paragraph or sentence",
	},
	{
		Key:         KeyTopK,
		Value:       "5",
		Type:        core.ConfigTypeInt,
		HasBounds:   true,
		Min:         1,
		Max:         50,
		Description: "maximum chunks returned per query",
	},
	{
		Key:         KeyMinSimilarity,
		Value:       "0.3",
		Type:        core.ConfigTypeFloat,
		HasBounds:   true,
		Min:         0,
		Max:         1,
		Description: "vector similarity acceptance threshold",
	},
	{
		Key:         KeyMinHybridScore,
		Value:       "0.25",
		Type:        core.ConfigTypeFloat,
		HasBounds:   true,
		Min:         0,
		Max:         1,
		Description: "hybrid score acceptance threshold",
	},
	{
		Key:         KeyVectorWeight,
		Value:       "0.6",
		Type:        core.ConfigTypeFloat,
		HasBounds:   true,
		Min:         0,
		Max:         1,
		Description: "vector score weight in hybrid fusion",
	},
	{
		Key:         KeyLexicalWeight,
		Value:       "0.4",
		Type:        core.ConfigTypeFloat,
		HasBounds:   true,
		Min:         0,
		Max:         1,
		Description: "lexical score weight in hybrid fusion",
	},
}

// DefaultEntries returns a copy of the default catalog.
func DefaultEntries() []core.ConfigEntry {
	out := make([]core.ConfigEntry, len(defaultEntries))
	copy(out, defaultEntries)
	return out
}

func defaultEntry(key string) (core.ConfigEntry, bool) {
	for _, e := range defaultEntries {
		if e.Key == key {
			return e, true
		}
	}
	return core.ConfigEntry{}, false
}
