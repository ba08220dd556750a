package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// ConfigRepository implements storage.ConfigRepository for BadgerDB.
type ConfigRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ConfigRepository = (*ConfigRepository)(nil)

// NewConfigRepository creates a new ConfigRepository.
func NewConfigRepository(backend *Backend) (*ConfigRepository, error) {
	idSeq, err := backend.GetSequence(configChangeIDSeq)
	if err != nil {
		return nil, err
	}

	return &ConfigRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ConfigRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ConfigRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutConfigEntry stores a configuration entry, overwriting any existing one.
func (r *ConfigRepository) PutConfigEntry(ctx context.Context, entry *core.ConfigEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeConfigEntryKey(entry.Key)
		if err := tx.Set(key, storage.MarshalConfigEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetConfigEntry retrieves an entry by key.
func (r *ConfigRepository) GetConfigEntry(ctx context.Context, key string) (*core.ConfigEntry, error) {
	var result *core.ConfigEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeConfigEntryKey(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var unmarshalErr error
			result, unmarshalErr = storage.UnmarshalConfigEntry(val)
			return unmarshalErr
		})
	}, false)
	return result, err
}

// ListConfigEntries retrieves all configuration entries.
func (r *ConfigRepository) ListConfigEntries(ctx context.Context) ([]*core.ConfigEntry, error) {
	var results []*core.ConfigEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(configEntryPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.ConfigEntry
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalConfigEntry(val)
				return err
			}); err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)
	return results, err
}

// AppendConfigChange appends a history row.
func (r *ConfigRepository) AppendConfigChange(ctx context.Context, change *core.ConfigChange) (*core.ConfigChange, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
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
		change.Id = core.ID(nextID)

		if change.ChangedAt.IsZero() {
			change.ChangedAt = time.Now().UTC()
		}

		key := makeConfigChangeKey(change.ChangedAt, change.Id)
		if err := tx.Set(key, storage.MarshalConfigChange(change)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)

	return change, err
}

// ListConfigChanges retrieves history rows, newest first, up to limit.
// An empty key returns history across all keys.
func (r *ConfigRepository) ListConfigChanges(ctx context.Context, key string, limit int) ([]*core.ConfigChange, error) {
	var results []*core.ConfigChange
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(configChangePrefix + ":")
		startKey := makeUpperBoundKey(configChangePrefix)

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			k := iter.Item().Key()
			if !hasPrefix(k, prefix) {
				break
			}

			var change *core.ConfigChange
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				change, err = storage.UnmarshalConfigChange(val)
				return err
			}); err != nil {
				return err
			}
			if change == nil {
				continue
			}
			if key != "" && change.Key != key {
				continue
			}

			results = append(results, change)
			if limit > 0 && len(results) >= limit {
				break
			}
		}
		return nil
	}, false)
	return results, err
}
