package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/chunker"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/ragconfig"
	"github.com/ironleaf/docmind/storage"
)

// embeddingBatchSize is the fixed number of chunks sent to the embedding
// provider per request. Not user-tunable; it bounds request payload size.
const embeddingBatchSize = 10

// defaultIngestTimeout is the wall-clock ceiling for one document's ingestion.
const defaultIngestTimeout = 15 * time.Minute

// Pipeline orchestrates document ingestion: chunking, metadata extraction,
// batched embedding and persistence, with status tracking per document.
type Pipeline struct {
	chunks    storage.ChunkRepository
	documents storage.DocumentRepository
	embedder  ai.Embedder
	generator ai.Generator
	config    *ragconfig.Store
	pool      *ants.Pool
	timeout   time.Duration
	model     string // embedding model recorded in embedding facts
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for asynchronous ingestion.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithTimeout sets the wall-clock ceiling for one document's ingestion.
// Default is 15 minutes.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Pipeline) error {
		if timeout <= 0 {
			return errors.New("ingest timeout must be positive")
		}
		p.timeout = timeout
		return nil
	}
}

// WithEmbeddingModel sets the model name recorded in embedding facts and
// used for cost estimation. Default is the ai package's default model.
func WithEmbeddingModel(model string) Option {
	return func(p *Pipeline) error {
		if model != "" {
			p.model = model
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	chunks storage.ChunkRepository,
	documents storage.DocumentRepository,
	provider ai.Provider,
	config *ragconfig.Store,
	opts ...Option,
) (*Pipeline, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if config == nil {
		return nil, ErrConfigStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		chunks:    chunks,
		documents: documents,
		embedder:  provider.Embedder(),
		generator: provider.Generator(),
		config:    config,
		pool:      pool,
		timeout:   defaultIngestTimeout,
		model:     ai.DefaultConfig().EmbeddingModel,
		logger:    slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// IngestRequest describes one document to ingest.
type IngestRequest struct {
	// Filename identifies the document. Re-ingesting the same filename
	// replaces the document's chunks as a unit.
	Filename string

	// Text is the already-extracted plain text of the document.
	Text string

	// Facts are caller-supplied document facts. Non-empty fields override
	// what metadata extraction infers from the text.
	Facts core.DocumentFacts
}

// IngestResult summarizes one completed ingestion.
type IngestResult struct {
	DocumentId core.ID
	ChunkCount int
	TokensUsed int
	DurationMs int64
}

// Ingest runs the full ingestion flow for one document synchronously.
//
// Chunk batches are embedded and persisted strictly in order; a provider
// error aborts the remaining batches and marks the document failed, but
// chunks from completed batches stay persisted. The whole flow races a
// wall-clock timeout; on expiry the document is forced into failed with a
// timeout message even if embedding work is still in flight.
func (p *Pipeline) Ingest(ctx context.Context, req *IngestRequest) (*IngestResult, error) {
	if req == nil || req.Filename == "" {
		return nil, ErrFilenameRequired
	}

	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	doc, err := p.prepareDocument(ctx, req.Filename)
	if err != nil {
		return nil, err
	}

	if err := p.documents.SetDocumentStatus(ctx, doc.Id, core.IngestStatusProcessing, ""); err != nil {
		return nil, err
	}

	settings := p.config.Settings(ctx)
	pieces, err := chunker.Split(req.Text, settings.ChunkingMethod, settings.ChunkSize, settings.ChunkOverlap)
	if err != nil {
		return nil, p.fail(ctx, doc.Id, err)
	}

	facts := mergeFacts(p.extractDocumentFacts(ctx, req.Filename, req.Text), req.Facts)
	facts.Filename = req.Filename
	if facts.DocId == "" {
		facts.DocId = fmt.Sprintf("%d", doc.Id)
	}

	totalTokens := 0
	for i := range pieces {
		tokens := estimateTokens(pieces[i].Text)
		totalTokens += tokens

		pieces[i].DocumentId = doc.Id
		pieces[i].Metadata = core.ChunkMetadata{
			Doc: facts,
			Chunk: core.ChunkFacts{
				Index:      pieces[i].Index,
				Start:      pieces[i].Start,
				End:        pieces[i].End,
				Page:       core.EstimatePage(pieces[i].Start),
				Method:     settings.ChunkingMethod,
				Length:     len([]rune(pieces[i].Text)),
				TokenCount: tokens,
			},
		}
	}

	if err := p.embedAndPersist(ctx, doc.Id, pieces); err != nil {
		return nil, err
	}

	doc.ChunkCount = len(pieces)
	doc.TokensUsed = totalTokens
	doc.Status = core.IngestStatusCompleted
	doc.StatusError = ""
	if _, err := p.documents.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}

	durationMs := time.Since(started).Milliseconds()

	// One cost record per ingestion, not per chunk
	p.logger.Info("ingestion completed",
		"filename", req.Filename,
		"chunks", len(pieces),
		"tokens", totalTokens,
		"model", p.model,
		"estimated_cost_usd", embeddingCost(p.model, totalTokens),
		"duration_ms", durationMs)

	return &IngestResult{
		DocumentId: doc.Id,
		ChunkCount: len(pieces),
		TokensUsed: totalTokens,
		DurationMs: durationMs,
	}, nil
}

// prepareDocument finds or creates the document record for a filename.
// An existing document is re-ingested: its chunks are deleted as a unit.
func (p *Pipeline) prepareDocument(ctx context.Context, filename string) (*core.Document, error) {
	doc, err := p.documents.GetDocumentByFilename(ctx, filename)
	if err == nil {
		removed, delErr := p.chunks.DeleteChunksByDocument(ctx, doc.Id)
		if delErr != nil {
			return nil, delErr
		}
		if removed > 0 {
			p.logger.Info("re-ingestion replaced existing chunks",
				"filename", filename, "removed", removed)
		}
		return doc, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	doc = &core.Document{
		Id:       core.IDFromContent(filename),
		Filename: filename,
		Status:   core.IngestStatusPending,
	}
	return p.documents.AddDocument(ctx, doc)
}

// embedAndPersist processes chunks in fixed-size batches, strictly in order.
// Batch i+1 does not start until batch i's embeddings are persisted.
func (p *Pipeline) embedAndPersist(ctx context.Context, docID core.ID, pieces []core.Chunk) error {
	for start := 0; start < len(pieces); start += embeddingBatchSize {
		end := start + embeddingBatchSize
		if end > len(pieces) {
			end = len(pieces)
		}
		batch := pieces[start:end]

		texts := make([]string, len(batch))
		for i := range batch {
			texts[i] = batch[i].Text
		}

		vectors, err := p.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			if ctx.Err() != nil {
				return p.fail(ctx, docID, fmt.Errorf("%w after %s", ErrIngestTimeout, p.timeout))
			}
			return p.fail(ctx, docID, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err))
		}
		if len(vectors) != len(batch) {
			return p.fail(ctx, docID,
				fmt.Errorf("%w: expected %d vectors, received %d", ErrEmbeddingFailed, len(batch), len(vectors)))
		}

		now := time.Now().UTC()
		stored := make([]*core.Chunk, len(batch))
		for i := range batch {
			batch[i].Vector = vectors[i]
			batch[i].Metadata.Embedding = core.EmbeddingFacts{
				Model:        p.model,
				VectorizedAt: now,
			}
			stored[i] = &batch[i]
		}

		if _, err := p.chunks.AddChunks(ctx, stored...); err != nil {
			if ctx.Err() != nil {
				return p.fail(ctx, docID, fmt.Errorf("%w after %s", ErrIngestTimeout, p.timeout))
			}
			return p.fail(ctx, docID, err)
		}
	}
	return nil
}

// fail flips the document into the failed status carrying the error text.
// The status write uses a detached context so it lands even when the
// ingestion context already expired.
func (p *Pipeline) fail(ctx context.Context, docID core.ID, cause error) error {
	statusCtx := context.WithoutCancel(ctx)
	if err := p.documents.SetDocumentStatus(statusCtx, docID, core.IngestStatusFailed, cause.Error()); err != nil {
		p.logger.Error("error recording failed ingest status", "document", docID, "err", err)
	}
	return cause
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
