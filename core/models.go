package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// IngestStatus tracks a document through its ingestion lifecycle.
type IngestStatus int

const (
	// IngestStatusPending means the document is queued but not yet processed.
	IngestStatusPending IngestStatus = iota + 1
	// IngestStatusProcessing means chunking and embedding are in flight.
	IngestStatusProcessing
	// IngestStatusCompleted means every chunk batch was embedded and persisted.
	IngestStatusCompleted
	// IngestStatusFailed means ingestion aborted; StatusError carries the cause.
	IngestStatusFailed
)

// String returns the status name used in logs and stored records.
func (s IngestStatus) String() string {
	switch s {
	case IngestStatusPending:
		return "pending"
	case IngestStatusProcessing:
		return "processing"
	case IngestStatusCompleted:
		return "completed"
	case IngestStatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Document represents one ingested source document.
// Chunks reference it by DocumentId; re-ingestion replaces its chunks as a unit.
type Document struct {
	Id          ID
	Filename    string
	Status      IngestStatus
	StatusError string // human-readable cause when Status is failed
	ChunkCount  int
	TokensUsed  int // estimated embedding tokens for the whole ingestion
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// DocumentFacts holds document-level metadata shared by every chunk of a document.
// An administrative correction rewrites these facts across all chunks in one batch.
type DocumentFacts struct {
	DocId        string
	Filename     string
	DocType      string // manual, datasheet, oferta, interno, pliego, informe, otro
	Source       string // interno or externo
	UploadedBy   string
	ProjectId    string
	Equipment    string
	Manufacturer string
}

// ChunkFacts holds chunk-level metadata fixed at chunking time.
type ChunkFacts struct {
	Index      int
	Start      int
	End        int
	Page       int // estimated from Start, ~2000 chars per page
	Method     string
	Length     int
	TokenCount int // estimated, not exact
}

// EmbeddingFacts records how and when the chunk's vector was produced.
type EmbeddingFacts struct {
	Model        string
	VectorizedAt time.Time
}

// ChunkMetadata composes the three fact groups attached to every stored chunk.
type ChunkMetadata struct {
	Doc       DocumentFacts
	Chunk     ChunkFacts
	Embedding EmbeddingFacts
}

// Chunk is a bounded contiguous fragment of a document's text, the unit of retrieval.
// Immutable once written except for full-document metadata corrections.
type Chunk struct {
	Id         ID
	DocumentId ID
	Text       string
	Index      int
	Start      int
	End        int
	Vector     []float32 // embedding, populated by the ingestion pipeline
	Metadata   ChunkMetadata
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// ScoredChunk pairs a chunk with the retrieval scores computed for one query.
type ScoredChunk struct {
	Chunk        *Chunk
	VectorScore  float32 // similarity derived from vector distance, 0..1
	LexicalScore float32 // term rank statistic over the chunk text, 0..1
	HybridScore  float32 // vectorWeight*VectorScore + lexicalWeight*LexicalScore
}

// SelectionRecord is one append-only audit row explaining why a candidate chunk
// was accepted or rejected for a query. Never updated or deleted.
type SelectionRecord struct {
	Id               ID
	ChunkId          ID
	DocumentId       ID
	ChunkExcerpt     string
	VectorScore      float32
	LexicalScore     float32
	HybridScore      float32
	MinSimilarity    float32 // threshold values at evaluation time
	MinHybrid        float32
	OperationType    string
	OperationSubtype string
	QueryExcerpt     string
	WasSelected      bool
	RejectionReason  string
	RankPosition     int
	RecordedAt       time.Time
}

// PromptTask is one sub-question of a structured analysis.
// Stateless; defined by configuration, not runtime state.
type PromptTask struct {
	Id          string
	Question    string
	ResultField string
}

// TaskState tracks one sub-task through the orchestrator.
// Transitions: pending -> in_flight -> succeeded or failed, terminal either way.
type TaskState int

const (
	TaskStatePending TaskState = iota + 1
	TaskStateInFlight
	TaskStateSucceeded
	TaskStateFailed
)

// TaskResult is the outcome of running one PromptTask across the input documents.
type TaskResult struct {
	TaskId      string
	Question    string
	ResultField string
	State       TaskState
	Answer      map[string]any // parsed JSON from the model
	Error       string         // set when State is failed
	DurationMs  int64
	TokensIn    int
	TokensOut   int
	TokensTotal int
	ChunksUsed  int
	Model       string
}

// RunStats aggregates token and timing accounting for one AnalysisRun.
type RunStats struct {
	DurationMs   int64
	TokensIn     int
	TokensOut    int
	TokensTotal  int
	ChunksUsed   int
	SuccessCount int
	FailureCount int
	Model        string
}

// AnalysisRun is the aggregate of executing all prompt tasks across all input
// documents for one analysis request. Created once, never mutated after assembly.
type AnalysisRun struct {
	Id           ID
	AnalysisType string
	TaskResults  []TaskResult
	Consolidated map[string]any // keyed by each task's declared result field
	Stats        RunStats
	StartedAt    time.Time
}

// ConfigType identifies the value type of a configuration entry.
type ConfigType int

const (
	ConfigTypeInt ConfigType = iota + 1
	ConfigTypeFloat
	ConfigTypeString
)

// String returns the type name used in stored entries and per-key results.
func (t ConfigType) String() string {
	switch t {
	case ConfigTypeInt:
		return "int"
	case ConfigTypeFloat:
		return "float"
	case ConfigTypeString:
		return "string"
	default:
		return "unknown"
	}
}

// ConfigEntry is one runtime-mutable retrieval parameter with optional bounds.
// Numeric entries must satisfy Min <= value <= Max when HasBounds is set.
type ConfigEntry struct {
	Key         string
	Value       string
	Type        ConfigType
	HasBounds   bool
	Min         float64
	Max         float64
	Description string
	UpdatedAt   time.Time
	UpdatedBy   string
}

// ConfigChange is one append-only history row for a configuration update.
type ConfigChange struct {
	Id        ID
	Key       string
	OldValue  string
	NewValue  string
	ChangedBy string
	ChangedAt time.Time
}
