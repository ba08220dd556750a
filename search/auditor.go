package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// Excerpt bounds keep audit rows small.
const (
	chunkExcerptLen = 500
	queryExcerptLen = 200
)

// Candidate is one scored chunk considered by a retrieval call, with its
// acceptance outcome.
type Candidate struct {
	Chunk           *core.ScoredChunk
	Rank            int
	Selected        bool
	RejectionReason string
}

// Thresholds are the acceptance limits in force at evaluation time.
type Thresholds struct {
	MinSimilarity float32
	MinHybrid     float32
}

// Auditor persists selection records for scored candidates. Writes happen on
// a worker pool off the caller's critical path; failures are logged, never
// propagated.
type Auditor struct {
	selections storage.SelectionRepository
	pool       *ants.Pool
	logger     *slog.Logger
}

// AuditorOption configures an Auditor.
type AuditorOption func(*Auditor) error

// WithAuditorLogger sets a custom logger.
// Default is slog.Default().
func WithAuditorLogger(logger *slog.Logger) AuditorOption {
	return func(a *Auditor) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// WithAuditorPoolSize sets the worker pool size for audit writes.
// Default is 2.
func WithAuditorPoolSize(size int) AuditorOption {
	return func(a *Auditor) error {
		if size < 1 {
			size = 1
		}
		if a.pool != nil {
			a.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		a.pool = pool
		return nil
	}
}

// NewAuditor creates a selection auditor.
func NewAuditor(selections storage.SelectionRepository, opts ...AuditorOption) (*Auditor, error) {
	if selections == nil {
		return nil, ErrSelectionRepositoryRequired
	}

	pool, err := ants.NewPool(2)
	if err != nil {
		return nil, err
	}

	a := &Auditor{
		selections: selections,
		pool:       pool,
		logger:     slog.Default().With("component", "selection-auditor"),
	}

	for _, opt := range opts {
		if optErr := opt(a); optErr != nil {
			a.Release()
			return nil, optErr
		}
	}

	return a, nil
}

// Record writes one selection record per candidate. The write is submitted
// to the worker pool and this call returns immediately; a failed write is
// logged but never fails the retrieval that triggered it.
func (a *Auditor) Record(candidates []Candidate, query, operationType, operationSubtype string, thresholds Thresholds) {
	if len(candidates) == 0 {
		return
	}

	now := time.Now().UTC()
	records := make([]*core.SelectionRecord, len(candidates))
	for i, candidate := range candidates {
		records[i] = &core.SelectionRecord{
			ChunkId:          candidate.Chunk.Chunk.Id,
			DocumentId:       candidate.Chunk.Chunk.DocumentId,
			ChunkExcerpt:     excerpt(candidate.Chunk.Chunk.Text, chunkExcerptLen),
			VectorScore:      candidate.Chunk.VectorScore,
			LexicalScore:     candidate.Chunk.LexicalScore,
			HybridScore:      candidate.Chunk.HybridScore,
			MinSimilarity:    thresholds.MinSimilarity,
			MinHybrid:        thresholds.MinHybrid,
			OperationType:    operationType,
			OperationSubtype: operationSubtype,
			QueryExcerpt:     excerpt(query, queryExcerptLen),
			WasSelected:      candidate.Selected,
			RejectionReason:  candidate.RejectionReason,
			RankPosition:     candidate.Rank,
			RecordedAt:       now,
		}
	}

	err := a.pool.Submit(func() {
		if _, err := a.selections.AddSelectionRecords(context.Background(), records...); err != nil {
			a.logger.Error("error writing selection records", "records", len(records), "err", err)
		}
	})
	if err != nil {
		a.logger.Error("error submitting selection records", "records", len(records), "err", err)
	}
}

// Release releases the worker pool.
// The auditor should not be used after calling Release.
func (a *Auditor) Release() {
	if a.pool != nil {
		a.pool.Release()
	}
}

// excerpt truncates s to at most max runes.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
