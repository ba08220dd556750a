package ingestion

import "math"

// charsPerToken is the documented approximation for mixed Spanish/English
// technical text. Token counts derived from it are estimates, not exact.
const charsPerToken = 3.5

// embeddingCostPerMillion maps embedding model names to USD per 1M tokens.
// Models absent from the table (local models) cost nothing.
var embeddingCostPerMillion = map[string]float64{
	"text-embedding-3-small": 0.02,
	"text-embedding-3-large": 0.13,
	"text-embedding-ada-002": 0.10,
}

// estimateTokens approximates the token count of text from its character length.
func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return int(math.Ceil(float64(len([]rune(text))) / charsPerToken))
}

// embeddingCost returns the estimated USD cost of embedding the given token
// count with the given model.
func embeddingCost(model string, tokens int) float64 {
	rate, ok := embeddingCostPerMillion[model]
	if !ok {
		return 0
	}
	return float64(tokens) / 1_000_000 * rate
}
