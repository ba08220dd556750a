package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// SelectionRepository implements storage.SelectionRepository for BadgerDB.
// Rows are keyed by recording time so history reads are chronological;
// there is no update or delete path.
type SelectionRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.SelectionRepository = (*SelectionRepository)(nil)

// NewSelectionRepository creates a new SelectionRepository.
func NewSelectionRepository(backend *Backend) (*SelectionRepository, error) {
	idSeq, err := backend.GetSequence(selectionIDSeq)
	if err != nil {
		return nil, err
	}

	return &SelectionRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *SelectionRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *SelectionRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddSelectionRecords appends audit rows.
func (r *SelectionRepository) AddSelectionRecords(ctx context.Context, records ...*core.SelectionRecord) ([]*core.SelectionRecord, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
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
			record.Id = core.ID(nextID)

			if record.RecordedAt.IsZero() {
				record.RecordedAt = time.Now().UTC()
			}

			key := makeSelectionKey(record.RecordedAt, record.Id)
			if err := tx.Set(key, storage.MarshalSelectionRecord(record)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetRecentSelections retrieves the most recent audit rows, newest first.
func (r *SelectionRepository) GetRecentSelections(ctx context.Context, limit int) ([]*core.SelectionRecord, error) {
	var results []*core.SelectionRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(selectionPrefix + ":")
		startKey := makeUpperBoundKey(selectionPrefix)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}

			var record *core.SelectionRecord
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalSelectionRecord(val)
				return err
			}); err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		return nil
	}, false)
	return results, err
}
