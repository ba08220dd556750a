package badger

import (
	"context"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) (*ChunkRepository, error) {
	idSeq, err := backend.GetSequence(chunkIDSeq)
	if err != nil {
		return nil, err
	}

	return &ChunkRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ChunkRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ChunkRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddChunks adds one or more chunks to storage.
func (r *ChunkRepository) AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			if chunk.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				chunk.Id = core.ID(nextID)
			}

			if chunk.InsertedAt.IsZero() {
				chunk.InsertedAt = time.Now().UTC()
			}
			chunk.UpdatedAt = chunk.InsertedAt

			key := makeChunkKey(chunk.Id)
			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			docKey := makeChunkDocumentKey(chunk.DocumentId, chunk.Index)
			if err := tx.Set(docKey, storage.MarshalID(chunk.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// UpdateChunks updates existing chunks.
func (r *ChunkRepository) UpdateChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, chunk := range chunks {
			key := makeChunkKey(chunk.Id)

			old, err := readChunk(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			chunk.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalChunk(chunk)); err != nil {
				return err
			}

			if old.DocumentId != chunk.DocumentId || old.Index != chunk.Index {
				if err := tx.Delete(makeChunkDocumentKey(old.DocumentId, old.Index)); err != nil {
					return err
				}
				docKey := makeChunkDocumentKey(chunk.DocumentId, chunk.Index)
				if err := tx.Set(docKey, storage.MarshalID(chunk.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return chunks, err
}

// GetChunk retrieves a single chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id core.ID) (*core.Chunk, error) {
	var result *core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunksByDocument retrieves all chunks of a document ordered by index.
func (r *ChunkRepository) GetChunksByDocument(ctx context.Context, documentID core.ID) ([]*core.Chunk, error) {
	var results []*core.Chunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return r.forEachDocumentChunk(tx, documentID, func(chunk *core.Chunk) error {
			results = append(results, chunk)
			return nil
		})
	}, false)
	return results, err
}

// DeleteChunksByDocument removes every chunk of a document in one transaction.
func (r *ChunkRepository) DeleteChunksByDocument(ctx context.Context, documentID core.ID) (int, error) {
	deleted := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialChunkDocumentKey(documentID)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)

		var chunkKeys [][]byte
		var indexKeys [][]byte
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if !hasPrefix(key, prefix) {
				break
			}

			var chunkID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunkID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				iter.Close()
				return err
			}

			chunkKeys = append(chunkKeys, makeChunkKey(chunkID))
			indexKeys = append(indexKeys, iter.Item().KeyCopy(nil))
		}
		iter.Close()

		for i := range chunkKeys {
			if err := tx.Delete(chunkKeys[i]); err != nil {
				return err
			}
			if err := tx.Delete(indexKeys[i]); err != nil {
				return err
			}
			deleted++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpdateDocumentFacts rewrites the document-level facts on every chunk of a
// document as one batch.
func (r *ChunkRepository) UpdateDocumentFacts(ctx context.Context, documentID core.ID, facts core.DocumentFacts) (int, error) {
	updated := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var chunks []*core.Chunk
		if err := r.forEachDocumentChunk(tx, documentID, func(chunk *core.Chunk) error {
			chunks = append(chunks, chunk)
			return nil
		}); err != nil {
			return err
		}

		now := time.Now().UTC()
		for _, chunk := range chunks {
			chunk.Metadata.Doc = facts
			chunk.UpdatedAt = now
			if err := tx.Set(makeChunkKey(chunk.Id), storage.MarshalChunk(chunk)); err != nil {
				return err
			}
			updated++
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, err
	}
	return updated, nil
}

// IterateChunks calls fn for every stored chunk.
func (r *ChunkRepository) IterateChunks(ctx context.Context, fn func(*core.Chunk) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var chunk *core.Chunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk == nil {
				continue
			}
			if err := fn(chunk); err != nil {
				return err
			}
		}
		return nil
	}, false)
}

// CountChunks returns the total number of stored chunks.
func (r *ChunkRepository) CountChunks(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// HybridSearch scores every candidate chunk against the query in one pass,
// computing vector similarity and the lexical rank statistic together.
func (r *ChunkRepository) HybridSearch(ctx context.Context, query *storage.HybridQuery) ([]*core.ScoredChunk, error) {
	if query == nil || len(query.Vector) == 0 {
		return nil, storage.ErrInvalidQuery
	}

	scope := make(map[core.ID]bool, len(query.DocumentIds))
	for _, id := range query.DocumentIds {
		scope[id] = true
	}

	var results []*core.ScoredChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(chunkRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var chunk *core.Chunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk == nil || len(chunk.Vector) == 0 {
				continue
			}

			if len(scope) > 0 && !scope[chunk.DocumentId] {
				continue
			}
			if !matchesMetadataFilters(chunk, query.MetadataFilters) {
				continue
			}

			results = append(results, &core.ScoredChunk{
				Chunk:        chunk,
				VectorScore:  vectorScore(query.Vector, chunk.Vector),
				LexicalScore: lexicalRank(query.Terms, chunk.Text),
			})
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return results, nil
}

// matchesMetadataFilters reports whether any filter substring occurs in the
// chunk's equipment or manufacturer facts. No filters means no restriction.
func matchesMetadataFilters(chunk *core.Chunk, filters []string) bool {
	if len(filters) == 0 {
		return true
	}
	equipment := strings.ToLower(chunk.Metadata.Doc.Equipment)
	manufacturer := strings.ToLower(chunk.Metadata.Doc.Manufacturer)
	for _, f := range filters {
		if f == "" {
			continue
		}
		if strings.Contains(equipment, f) || strings.Contains(manufacturer, f) {
			return true
		}
	}
	return false
}

// Helper methods

// forEachDocumentChunk walks a document's chunks in index order.
func (r *ChunkRepository) forEachDocumentChunk(tx *badger.Txn, documentID core.ID, fn func(*core.Chunk) error) error {
	prefix := makePartialChunkDocumentKey(documentID)
	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	for iter.Seek(prefix); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if !hasPrefix(key, prefix) {
			break
		}

		var chunkID core.ID
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			chunkID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		chunk, err := readChunk(tx, makeChunkKey(chunkID))
		if err != nil {
			return err
		}
		if chunk == nil {
			continue
		}
		if err := fn(chunk); err != nil {
			return err
		}
	}
	return nil
}

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readChunk reads a chunk from the transaction.
func readChunk(tx *badger.Txn, key []byte) (*core.Chunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.Chunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}
