package badger

import (
	"errors"

	"github.com/ironleaf/docmind/storage"
)

// Repositories bundles every repository over one shared backend.
type Repositories struct {
	Chunks     storage.ChunkRepository
	Documents  storage.DocumentRepository
	Config     storage.ConfigRepository
	Selections storage.SelectionRepository
	Runs       storage.RunRepository

	backend *Backend
}

// OpenRepositories opens a backend at path and constructs all repositories
// over it. Pass inMemory=true for an ephemeral database.
func OpenRepositories(path string, inMemory bool) (*Repositories, error) {
	backend, err := OpenBackend(path, inMemory)
	if err != nil {
		return nil, err
	}

	chunks, err := NewChunkRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}
	documents, err := NewDocumentRepository(backend)
	if err != nil {
		chunks.Close()
		backend.Close()
		return nil, err
	}
	config, err := NewConfigRepository(backend)
	if err != nil {
		documents.Close()
		chunks.Close()
		backend.Close()
		return nil, err
	}
	selections, err := NewSelectionRepository(backend)
	if err != nil {
		config.Close()
		documents.Close()
		chunks.Close()
		backend.Close()
		return nil, err
	}
	runs, err := NewRunRepository(backend)
	if err != nil {
		selections.Close()
		config.Close()
		documents.Close()
		chunks.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Chunks:     chunks,
		Documents:  documents,
		Config:     config,
		Selections: selections,
		Runs:       runs,
		backend:    backend,
	}, nil
}

// Backend exposes the shared backend, mainly for tests.
func (r *Repositories) Backend() *Backend {
	return r.backend
}

// Close releases every repository and the backend.
func (r *Repositories) Close() error {
	var errs []error
	for _, c := range []interface{ Close() error }{
		r.Chunks, r.Documents, r.Config, r.Selections, r.Runs,
	} {
		if c != nil {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if r.backend != nil {
		if err := r.backend.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
