package badger

import (
	"context"
	"testing"

	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepository_Lifecycle(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	doc := &core.Document{
		Filename: "pliego_parque_sur.pdf",
		Status:   core.IngestStatusPending,
	}
	added, err := repos.Documents.AddDocument(ctx, doc)
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.InsertedAt.IsZero())

	t.Run("get by id and filename", func(t *testing.T) {
		got, err := repos.Documents.GetDocument(ctx, added.Id)
		require.NoError(t, err)
		assert.Equal(t, "pliego_parque_sur.pdf", got.Filename)

		byName, err := repos.Documents.GetDocumentByFilename(ctx, "pliego_parque_sur.pdf")
		require.NoError(t, err)
		assert.Equal(t, added.Id, byName.Id)

		_, err = repos.Documents.GetDocumentByFilename(ctx, "inexistente.pdf")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("status transitions", func(t *testing.T) {
		err := repos.Documents.SetDocumentStatus(ctx, added.Id, core.IngestStatusProcessing, "")
		require.NoError(t, err)

		err = repos.Documents.SetDocumentStatus(ctx, added.Id, core.IngestStatusFailed, "proveedor no disponible")
		require.NoError(t, err)

		got, err := repos.Documents.GetDocument(ctx, added.Id)
		require.NoError(t, err)
		assert.Equal(t, core.IngestStatusFailed, got.Status)
		assert.Equal(t, "proveedor no disponible", got.StatusError)

		// Error cleared when leaving failed state
		err = repos.Documents.SetDocumentStatus(ctx, added.Id, core.IngestStatusCompleted, "")
		require.NoError(t, err)
		got, err = repos.Documents.GetDocument(ctx, added.Id)
		require.NoError(t, err)
		assert.Empty(t, got.StatusError)
	})

	t.Run("invalid status rejected", func(t *testing.T) {
		err := repos.Documents.SetDocumentStatus(ctx, added.Id, core.IngestStatus(42), "")
		assert.Error(t, err)
	})

	t.Run("update counters", func(t *testing.T) {
		got, err := repos.Documents.GetDocument(ctx, added.Id)
		require.NoError(t, err)
		got.ChunkCount = 12
		got.TokensUsed = 3000

		_, err = repos.Documents.UpdateDocument(ctx, got)
		require.NoError(t, err)

		reread, err := repos.Documents.GetDocument(ctx, added.Id)
		require.NoError(t, err)
		assert.Equal(t, 12, reread.ChunkCount)
	})

	t.Run("list and delete", func(t *testing.T) {
		docs, err := repos.Documents.ListDocuments(ctx)
		require.NoError(t, err)
		assert.Len(t, docs, 1)

		err = repos.Documents.DeleteDocument(ctx, added.Id)
		require.NoError(t, err)

		_, err = repos.Documents.GetDocument(ctx, added.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = repos.Documents.GetDocumentByFilename(ctx, "pliego_parque_sur.pdf")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
