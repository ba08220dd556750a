package badger

import "strings"

// dotProduct calculates the dot product of two vectors.
// For normalized embeddings this equals cosine similarity.
func dotProduct(a, b []float32) float32 {
	var sum float32
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// vectorScore maps similarity into [0,1]. Negative similarities carry no
// useful ranking signal for retrieval and are floored at zero.
func vectorScore(queryVector, chunkVector []float32) float32 {
	s := dotProduct(queryVector, chunkVector)
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// lexicalRank computes a bounded rank statistic for the query terms over the
// chunk text: the fraction of terms present, damped by how often they occur.
// Returns 0 when no term matches.
func lexicalRank(terms []string, text string) float32 {
	if len(terms) == 0 {
		return 0
	}

	freq := make(map[string]int)
	for _, w := range tokenizeText(text) {
		freq[w]++
	}

	matched := 0
	occurrences := 0
	for _, term := range terms {
		if c := freq[term]; c > 0 {
			matched++
			occurrences += c
		}
	}
	if matched == 0 {
		return 0
	}

	coverage := float32(matched) / float32(len(terms))
	saturation := float32(occurrences) / float32(occurrences+1)
	return coverage * saturation
}

// tokenizeText splits text into lowercase words with punctuation trimmed.
// Query-side stop word filtering happens before terms reach the store.
func tokenizeText(text string) []string {
	words := strings.Fields(text)
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}¿¡"))
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}
