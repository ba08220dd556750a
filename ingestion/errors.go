package ingestion

import "errors"

var (
	// ErrChunkRepositoryRequired is returned when a chunk repository is not provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository required")

	// ErrDocumentRepositoryRequired is returned when a document repository is not provided.
	ErrDocumentRepositoryRequired = errors.New("document repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrConfigStoreRequired is returned when a configuration store is not provided.
	ErrConfigStoreRequired = errors.New("config store required")

	// ErrFilenameRequired is returned when an ingest request has no filename.
	ErrFilenameRequired = errors.New("filename required")

	// ErrEmbeddingFailed wraps a provider error that aborted an ingestion.
	ErrEmbeddingFailed = errors.New("embedding failed")

	// ErrIngestTimeout is returned when an ingestion exceeds its wall-clock ceiling.
	ErrIngestTimeout = errors.New("ingestion timed out")
)
