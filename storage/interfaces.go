package storage

import (
	"context"

	"github.com/ironleaf/docmind/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// HybridQuery describes one candidate-scoring request against the chunk store.
// The store computes both scores for every candidate in a single pass; score
// fusion and threshold filtering belong to the caller.
type HybridQuery struct {
	// Vector is the embedded query. Required.
	Vector []float32

	// Terms are the tokenized lexical query words used for the rank statistic.
	Terms []string

	// MetadataFilters are lowercase substrings matched against the equipment
	// and manufacturer facts of each chunk. A chunk passes when any filter
	// matches either fact. Empty means no metadata filtering.
	MetadataFilters []string

	// DocumentIds restricts candidates to the given documents.
	// Empty means all documents.
	DocumentIds []core.ID
}

// ChunkRepository provides operations for managing chunks.
type ChunkRepository interface {
	Repository
	// AddChunks adds one or more chunks to storage.
	// For chunks with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the chunks with generated IDs and timestamps populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// UpdateChunks updates existing chunks.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any chunk doesn't exist.
	UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error)

	// GetChunksByDocument retrieves all chunks of a document ordered by Index.
	GetChunksByDocument(ctx context.Context, documentID core.ID) ([]*core.Chunk, error)

	// DeleteChunksByDocument removes every chunk of a document in one
	// transaction and returns the number removed. Used by re-ingestion.
	DeleteChunksByDocument(ctx context.Context, documentID core.ID) (int, error)

	// UpdateDocumentFacts rewrites the document-level facts on every chunk of
	// a document as one batch. Chunk-level and embedding facts are untouched.
	// Returns the number of chunks rewritten.
	UpdateDocumentFacts(ctx context.Context, documentID core.ID, facts core.DocumentFacts) (int, error)

	// IterateChunks calls fn for every stored chunk. Iteration stops on the
	// first error from fn. Used by reindexing.
	IterateChunks(ctx context.Context, fn func(*core.Chunk) error) error

	// CountChunks returns the total number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// HybridSearch scores every candidate chunk against the query in a single
	// pass, computing the vector similarity and the lexical rank statistic
	// together. Chunks without vectors are skipped. No ordering guarantee.
	HybridSearch(ctx context.Context, query *HybridQuery) ([]*core.ScoredChunk, error)
}

// DocumentRepository provides operations for managing document records.
type DocumentRepository interface {
	Repository
	// AddDocument adds a document record.
	// For documents with ID=0, generates a new ID from sequence.
	// Sets InsertedAt timestamp if not already set.
	AddDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// UpdateDocument updates an existing document record.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if the document doesn't exist.
	UpdateDocument(ctx context.Context, doc *core.Document) (*core.Document, error)

	// SetDocumentStatus transitions a document's ingest status. The statusErr
	// argument is stored only when status is failed.
	SetDocumentStatus(ctx context.Context, id core.ID, status core.IngestStatus, statusErr string) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocumentByFilename retrieves a document by its filename.
	// Returns ErrNotFound if no document has that filename.
	GetDocumentByFilename(ctx context.Context, filename string) (*core.Document, error)

	// ListDocuments retrieves all document records.
	ListDocuments(ctx context.Context) ([]*core.Document, error)

	// DeleteDocument removes a document record.
	// Returns ErrNotFound if the document doesn't exist.
	DeleteDocument(ctx context.Context, id core.ID) error
}

// ConfigRepository provides operations for configuration entries and their
// append-only change history.
type ConfigRepository interface {
	Repository
	// PutConfigEntry stores a configuration entry, overwriting any existing
	// entry with the same key.
	PutConfigEntry(ctx context.Context, entry *core.ConfigEntry) error

	// GetConfigEntry retrieves an entry by key.
	// Returns ErrNotFound if the key doesn't exist.
	GetConfigEntry(ctx context.Context, key string) (*core.ConfigEntry, error)

	// ListConfigEntries retrieves all configuration entries.
	ListConfigEntries(ctx context.Context) ([]*core.ConfigEntry, error)

	// AppendConfigChange appends a history row. Generates the ID from
	// sequence and sets ChangedAt if unset. History rows are never updated
	// or deleted.
	AppendConfigChange(ctx context.Context, change *core.ConfigChange) (*core.ConfigChange, error)

	// ListConfigChanges retrieves history rows, newest first, up to limit.
	// An empty key returns history across all keys.
	ListConfigChanges(ctx context.Context, key string, limit int) ([]*core.ConfigChange, error)
}

// SelectionRepository provides append-only storage for selection audit rows.
type SelectionRepository interface {
	Repository
	// AddSelectionRecords appends audit rows. Generates IDs from sequence
	// and sets RecordedAt if unset. Rows are never updated or deleted.
	AddSelectionRecords(ctx context.Context, records ...*core.SelectionRecord) ([]*core.SelectionRecord, error)

	// GetRecentSelections retrieves the most recent audit rows, newest
	// first, up to limit.
	GetRecentSelections(ctx context.Context, limit int) ([]*core.SelectionRecord, error)
}

// RunRepository provides storage for completed analysis runs.
type RunRepository interface {
	Repository
	// AddRun stores a completed analysis run.
	// For runs with ID=0, generates a new ID from sequence.
	AddRun(ctx context.Context, run *core.AnalysisRun) (*core.AnalysisRun, error)

	// GetRun retrieves a run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id core.ID) (*core.AnalysisRun, error)

	// GetRecentRuns retrieves the most recent runs, newest first, up to limit.
	GetRecentRuns(ctx context.Context, limit int) ([]*core.AnalysisRun, error)
}
