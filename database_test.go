package docmind

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironleaf/docmind/ai/mock"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/ragconfig"
	"github.com/ironleaf/docmind/reindex"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		assert.NotNil(t, db.ChunkRepository())
		assert.NotNil(t, db.DocumentRepository())
		assert.NotNil(t, db.SelectionRepository())
		assert.NotNil(t, db.RunRepository())
		assert.NotNil(t, db.Config())
		assert.NotNil(t, db.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		db, err := NewDatabase(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, db)
	})

	t.Run("in-memory database", func(t *testing.T) {
		db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Defaults are seeded on open
		settings := db.Config().Settings(context.Background())
		assert.Equal(t, 1000, settings.ChunkSize)
		assert.Equal(t, 5, settings.TopK)
	})
}

func TestDatabase_Close(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, db)

	err = db.Close()
	assert.NoError(t, err)
}

func TestDatabase_FactoryMethods(t *testing.T) {
	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	require.NotNil(t, db)
	defer db.Close()

	t.Run("can create ingestion pipeline", func(t *testing.T) {
		pipeline, err := db.NewIngestionPipeline()
		require.NoError(t, err)
		require.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("can create searcher", func(t *testing.T) {
		searcher, err := db.NewSearcher()
		require.NoError(t, err)
		require.NotNil(t, searcher)
	})

	t.Run("can create orchestrator", func(t *testing.T) {
		orchestrator, err := db.NewOrchestrator()
		require.NoError(t, err)
		require.NotNil(t, orchestrator)
		orchestrator.Release()
	})

	t.Run("can create reindexer", func(t *testing.T) {
		reindexer, err := db.NewReindexer(reindex.DefaultConfig("embeddinggemma"), io.Discard)
		require.NoError(t, err)
		require.NotNil(t, reindexer)
	})
}

func TestDatabase_ConfigOperations(t *testing.T) {
	ctx := context.Background()

	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	results := db.UpdateConfig(ctx, map[string]string{
		ragconfig.KeyTopK:      "8",
		ragconfig.KeyChunkSize: "999999", // out of bounds
	}, "admin")
	require.Len(t, results, 2)

	byKey := make(map[string]ragconfig.UpdateResult, len(results))
	for _, r := range results {
		byKey[r.Key] = r
	}
	assert.NoError(t, byKey[ragconfig.KeyTopK].Err)
	assert.Error(t, byKey[ragconfig.KeyChunkSize].Err)

	assert.Equal(t, 8, db.Config().Settings(ctx).TopK)

	history, err := db.ConfigHistory(ctx, ragconfig.KeyTopK, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, "8", history[0].NewValue)

	require.NoError(t, db.ResetConfig(ctx, "admin"))
	assert.Equal(t, 5, db.Config().Settings(ctx).TopK)
}

func TestDatabase_CorrectDocumentMetadata(t *testing.T) {
	ctx := context.Background()

	db, err := NewDatabase("", WithInMemory(), WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer db.Close()

	chunks := []*core.Chunk{
		{DocumentId: 7, Index: 0, Text: "primero"},
		{DocumentId: 7, Index: 1, Text: "segundo"},
	}
	_, err = db.ChunkRepository().AddChunks(ctx, chunks...)
	require.NoError(t, err)

	updated, err := db.CorrectDocumentMetadata(ctx, 7, core.DocumentFacts{
		Filename: "manual.pdf",
		DocType:  "manual",
		Source:   "externo",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	stored, err := db.ChunkRepository().GetChunksByDocument(ctx, 7)
	require.NoError(t, err)
	for _, chunk := range stored {
		assert.Equal(t, "manual", chunk.Metadata.Doc.DocType)
	}
}
