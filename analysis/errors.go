package analysis

import "errors"

var (
	// ErrSearcherRequired is returned when no searcher is provided
	ErrSearcherRequired = errors.New("searcher is required")

	// ErrAIProviderRequired is returned when no AI provider is provided
	ErrAIProviderRequired = errors.New("AI provider is required")

	// ErrRunRepositoryRequired is returned when no run repository is provided
	ErrRunRepositoryRequired = errors.New("run repository is required")

	// ErrUnknownAnalysisType is returned for an analysis type with no task catalog
	ErrUnknownAnalysisType = errors.New("unknown analysis type")

	// ErrNoDocuments is returned when a run is requested without input documents
	ErrNoDocuments = errors.New("at least one document is required")

	// ErrNoTasks is returned when a run is requested with an empty task list
	ErrNoTasks = errors.New("at least one prompt task is required")
)
