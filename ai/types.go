package ai

// ModelTier selects which generation model handles a request.
// The standard tier is used for analysis questions where answer quality
// matters most; the mini tier handles cheaper auxiliary work such as
// document metadata extraction.
type ModelTier int

const (
	// TierStandard routes the request to the full-size generation model.
	TierStandard ModelTier = iota + 1
	// TierMini routes the request to the smaller, cheaper model.
	TierMini
)

// String returns the tier name used in logs and stored run statistics.
func (t ModelTier) String() string {
	switch t {
	case TierStandard:
		return "standard"
	case TierMini:
		return "mini"
	default:
		return "unknown"
	}
}

// GenerationResult is the outcome of a single Generate call.
type GenerationResult struct {
	// Text is the raw completion content returned by the model.
	Text string

	// Model is the identifier of the model that produced the completion.
	Model string

	// TokensIn is the prompt token count reported by the service, 0 if unknown.
	TokensIn int

	// TokensOut is the completion token count reported by the service, 0 if unknown.
	TokensOut int
}

// TokensTotal returns the combined prompt and completion token count.
func (r *GenerationResult) TokensTotal() int {
	return r.TokensIn + r.TokensOut
}
