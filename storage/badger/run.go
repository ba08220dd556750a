package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// RunRepository implements storage.RunRepository for BadgerDB.
type RunRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) (*RunRepository, error) {
	idSeq, err := backend.GetSequence(runIDSeq)
	if err != nil {
		return nil, err
	}

	return &RunRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RunRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RunRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddRun stores a completed analysis run.
func (r *RunRepository) AddRun(ctx context.Context, run *core.AnalysisRun) (*core.AnalysisRun, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		if run.Id == 0 {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			run.Id = core.ID(nextID)
		}

		if run.StartedAt.IsZero() {
			run.StartedAt = time.Now().UTC()
		}

		if err := tx.Set(makeRunKey(run.Id), storage.MarshalAnalysisRun(run)); err != nil {
			return err
		}

		dateKey := makeRunDateKey(run.StartedAt, run.Id)
		if err := tx.Set(dateKey, storage.MarshalID(run.Id)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return run, err
}

// GetRun retrieves a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id core.ID) (*core.AnalysisRun, error) {
	var result *core.AnalysisRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeRunKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalAnalysisRun(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// GetRecentRuns retrieves the most recent runs, newest first, up to limit.
func (r *RunRepository) GetRecentRuns(ctx context.Context, limit int) ([]*core.AnalysisRun, error) {
	var results []*core.AnalysisRun
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(runDatePrefix + ":")
		startKey := makeUpperBoundKey(runDatePrefix)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}

			var runID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				runID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			item, err := tx.Get(makeRunKey(runID))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}
			var run *core.AnalysisRun
			if err := item.Value(func(val []byte) error {
				var unmarshalErr error
				run, unmarshalErr = storage.UnmarshalAnalysisRun(val)
				return unmarshalErr
			}); err != nil {
				return err
			}
			if run != nil {
				results = append(results, run)
			}
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		return nil
	}, false)
	return results, err
}
