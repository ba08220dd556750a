package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/entity"
	"github.com/ironleaf/docmind/ragconfig"
	"github.com/ironleaf/docmind/storage"
)

// Searcher provides hybrid vector and lexical retrieval over stored chunks.
type Searcher struct {
	chunks   storage.ChunkRepository
	embedder ai.Embedder
	config   *ragconfig.Store
	matcher  entity.Matcher
	auditor  *Auditor
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithEntityMatcher sets the matcher used for entity filtering.
// Default is the heuristic matcher; nil disables entity filtering entirely.
func WithEntityMatcher(matcher entity.Matcher) Option {
	return func(s *Searcher) error {
		s.matcher = matcher
		return nil
	}
}

// WithAuditor attaches a selection auditor. Every scored candidate of every
// search is then recorded off the critical path. Default is no auditing.
func WithAuditor(auditor *Auditor) Option {
	return func(s *Searcher) error {
		s.auditor = auditor
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	chunks storage.ChunkRepository,
	provider ai.Provider,
	config *ragconfig.Store,
	opts ...Option,
) (*Searcher, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if config == nil {
		return nil, ErrConfigStoreRequired
	}

	s := &Searcher{
		chunks:   chunks,
		embedder: provider.Embedder(),
		config:   config,
		matcher:  entity.NewHeuristicMatcher(),
		logger:   slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Options controls one retrieval call.
type Options struct {
	// DocumentScope restricts candidates to the given documents.
	// A non-empty scope disables entity filtering.
	DocumentScope []core.ID

	// TopK overrides the configured top_k when positive.
	TopK int

	// EntityFilter enables fuzzy equipment/manufacturer filtering when no
	// explicit document scope is given.
	EntityFilter bool

	// OperationType and OperationSubtype label the audit rows written for
	// this call. OperationType defaults to "search".
	OperationType    string
	OperationSubtype string
}

// SelectionMetadata reports the parameters a retrieval call evaluated under,
// so callers can audit the decision.
type SelectionMetadata struct {
	TopK             int
	MinSimilarity    float32
	MinHybridScore   float32
	VectorWeight     float32
	LexicalWeight    float32
	DetectedEntities []string
	CandidateCount   int
	AcceptedCount    int
}

// Result is the outcome of one retrieval call.
type Result struct {
	Chunks   []*core.ScoredChunk
	Metadata SelectionMetadata
}

// Search retrieves the chunks most relevant to the query.
//
// The current configuration is read at call time. Candidates are scored by
// the store in one pass, fused as vectorWeight*vector + lexicalWeight*lexical,
// ordered by hybrid score descending (ties keep store row order), cut to
// top-k, and then filtered: a candidate is kept when its vector score meets
// min_similarity OR its hybrid score meets min_hybrid_score.
func (s *Searcher) Search(ctx context.Context, query string, opts *Options) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if opts == nil {
		opts = &Options{}
	}

	settings := s.config.Settings(ctx)
	topK := opts.TopK
	if topK <= 0 {
		topK = settings.TopK
	}

	var variants []string
	if opts.EntityFilter && len(opts.DocumentScope) == 0 && s.matcher != nil {
		variants = s.matcher.Detect(query)
	}
	filters := make([]string, len(variants))
	for i, v := range variants {
		filters[i] = strings.ToLower(v)
	}

	vector, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	scored, err := s.chunks.HybridSearch(ctx, &storage.HybridQuery{
		Vector:          vector,
		Terms:           tokenizeAndFilter(query),
		MetadataFilters: filters,
		DocumentIds:     opts.DocumentScope,
	})
	if err != nil {
		s.logger.Error("error querying candidates", "err", err)
		return nil, err
	}

	vectorWeight := float32(settings.VectorWeight)
	lexicalWeight := float32(settings.LexicalWeight)
	for _, candidate := range scored {
		candidate.HybridScore = fuse(candidate.VectorScore, candidate.LexicalScore, vectorWeight, lexicalWeight)
	}

	// Stable sort keeps store row order on exact score ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].HybridScore > scored[j].HybridScore
	})
	if len(scored) > topK {
		scored = scored[:topK]
	}

	minSimilarity := float32(settings.MinSimilarity)
	minHybrid := float32(settings.MinHybridScore)

	candidates := make([]Candidate, len(scored))
	chunks := make([]*core.ScoredChunk, 0, len(scored))
	for i, candidate := range scored {
		ok := accepted(candidate.VectorScore, candidate.HybridScore, minSimilarity, minHybrid)
		candidates[i] = Candidate{
			Chunk:    candidate,
			Rank:     i + 1,
			Selected: ok,
		}
		if ok {
			chunks = append(chunks, candidate)
		} else {
			candidates[i].RejectionReason = "below_thresholds"
		}
	}

	if s.auditor != nil {
		operationType := opts.OperationType
		if operationType == "" {
			operationType = "search"
		}
		s.auditor.Record(candidates, query, operationType, opts.OperationSubtype, Thresholds{
			MinSimilarity: minSimilarity,
			MinHybrid:     minHybrid,
		})
	}

	s.logger.Debug("search completed",
		"candidates", len(candidates),
		"accepted", len(chunks),
		"entities", len(variants))

	return &Result{
		Chunks: chunks,
		Metadata: SelectionMetadata{
			TopK:             topK,
			MinSimilarity:    minSimilarity,
			MinHybridScore:   minHybrid,
			VectorWeight:     vectorWeight,
			LexicalWeight:    lexicalWeight,
			DetectedEntities: variants,
			CandidateCount:   len(candidates),
			AcceptedCount:    len(chunks),
		},
	}, nil
}

// fuse combines the two retrieval signals. The weights are independently
// configurable and are not forced to sum to 1.
func fuse(vectorScore, lexicalScore, vectorWeight, lexicalWeight float32) float32 {
	return vectorWeight*vectorScore + lexicalWeight*lexicalScore
}

// accepted applies the threshold filter. A candidate passes on either signal
// alone, a logical OR.
func accepted(vectorScore, hybridScore, minSimilarity, minHybrid float32) bool {
	return vectorScore >= minSimilarity || hybridScore >= minHybrid
}
