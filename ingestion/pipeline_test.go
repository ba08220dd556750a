package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/ai/mock"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/ragconfig"
	badgerstore "github.com/ironleaf/docmind/storage/badger"
)

const metadataJSON = `{"doc_type": "datasheet", "source": "externo", "equipment": "WS600", "manufacturer": "Lufft"}`

type testEnv struct {
	pipeline  *Pipeline
	repos     *badgerstore.Repositories
	embedder  *mock.MockEmbedder
	generator *mock.MockGenerator
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	store, err := ragconfig.NewStore(context.Background(), repos.Config)
	require.NoError(t, err)

	embedder := mock.NewMockEmbedder()
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(ctx context.Context, system, user string, tier ai.ModelTier) (*ai.GenerationResult, error) {
		return &ai.GenerationResult{Text: metadataJSON, Model: "mock-mini", TokensIn: 100, TokensOut: 20}, nil
	}
	provider := mock.NewMockProviderWithServices(embedder, generator)

	pipeline, err := NewPipeline(repos.Chunks, repos.Documents, provider, store, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)

	return &testEnv{
		pipeline:  pipeline,
		repos:     repos,
		embedder:  embedder,
		generator: generator,
	}
}

// longText builds Spanish-flavored filler long enough for several batches
// under the default chunking settings.
func longText(words int) string {
	var sb strings.Builder
	for i := 0; i < words; i++ {
		sb.WriteString("especificaciones del sensor meteorologico WS600 de Lufft ")
	}
	return sb.String()
}

func TestPipeline_Ingest(t *testing.T) {
	ctx := context.Background()

	t.Run("stores embedded chunks and completes the document", func(t *testing.T) {
		env := newTestEnv(t)

		result, err := env.pipeline.Ingest(ctx, &IngestRequest{
			Filename: "ws600_datasheet.pdf",
			Text:     longText(300),
		})
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Greater(t, result.ChunkCount, 10, "expected more than one embedding batch")
		assert.Greater(t, result.TokensUsed, 0)

		doc, err := env.repos.Documents.GetDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		assert.Equal(t, core.IngestStatusCompleted, doc.Status)
		assert.Equal(t, result.ChunkCount, doc.ChunkCount)
		assert.Equal(t, result.TokensUsed, doc.TokensUsed)
		assert.Empty(t, doc.StatusError)

		chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		require.Len(t, chunks, result.ChunkCount)
		for i, chunk := range chunks {
			assert.Equal(t, i, chunk.Index)
			assert.NotEmpty(t, chunk.Vector)
			assert.Equal(t, "fixed", chunk.Metadata.Chunk.Method)
			assert.Greater(t, chunk.Metadata.Chunk.TokenCount, 0)
			assert.Equal(t, chunk.Start/2000+1, chunk.Metadata.Chunk.Page)
			assert.NotZero(t, chunk.Metadata.Embedding.VectorizedAt)
		}
	})

	t.Run("extracted metadata lands on every chunk", func(t *testing.T) {
		env := newTestEnv(t)

		result, err := env.pipeline.Ingest(ctx, &IngestRequest{
			Filename: "ws600_datasheet.pdf",
			Text:     longText(50),
		})
		require.NoError(t, err)

		chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		facts := chunks[0].Metadata.Doc
		assert.Equal(t, "datasheet", facts.DocType)
		assert.Equal(t, "externo", facts.Source)
		assert.Equal(t, "WS600", facts.Equipment)
		assert.Equal(t, "Lufft", facts.Manufacturer)
		assert.Equal(t, "ws600_datasheet.pdf", facts.Filename)
	})

	t.Run("caller facts override extracted facts", func(t *testing.T) {
		env := newTestEnv(t)

		result, err := env.pipeline.Ingest(ctx, &IngestRequest{
			Filename: "pliego_estacion.pdf",
			Text:     longText(50),
			Facts: core.DocumentFacts{
				DocType:    "pliego",
				UploadedBy: "admin",
				ProjectId:  "PRJ-42",
			},
		})
		require.NoError(t, err)

		chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		facts := chunks[0].Metadata.Doc
		assert.Equal(t, "pliego", facts.DocType)
		assert.Equal(t, "admin", facts.UploadedBy)
		assert.Equal(t, "PRJ-42", facts.ProjectId)
		// Fields the caller left empty keep the extracted values
		assert.Equal(t, "WS600", facts.Equipment)
	})

	t.Run("metadata extraction failure falls back to defaults", func(t *testing.T) {
		env := newTestEnv(t)
		env.generator.GenerateFunc = func(ctx context.Context, system, user string, tier ai.ModelTier) (*ai.GenerationResult, error) {
			return nil, errors.New("model unavailable")
		}

		result, err := env.pipeline.Ingest(ctx, &IngestRequest{
			Filename: "desconocido.pdf",
			Text:     longText(20),
		})
		require.NoError(t, err)

		chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		require.NotEmpty(t, chunks)
		assert.Equal(t, "otro", chunks[0].Metadata.Doc.DocType)
		assert.Equal(t, "externo", chunks[0].Metadata.Doc.Source)
	})

	t.Run("empty text completes with zero chunks", func(t *testing.T) {
		env := newTestEnv(t)

		result, err := env.pipeline.Ingest(ctx, &IngestRequest{
			Filename: "vacio.txt",
			Text:     "   \n\t  ",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.ChunkCount)
		assert.Equal(t, 0, result.TokensUsed)

		doc, err := env.repos.Documents.GetDocument(ctx, result.DocumentId)
		require.NoError(t, err)
		assert.Equal(t, core.IngestStatusCompleted, doc.Status)
	})

	t.Run("missing filename is rejected", func(t *testing.T) {
		env := newTestEnv(t)

		_, err := env.pipeline.Ingest(ctx, &IngestRequest{Text: "algo"})
		assert.ErrorIs(t, err, ErrFilenameRequired)

		_, err = env.pipeline.Ingest(ctx, nil)
		assert.ErrorIs(t, err, ErrFilenameRequired)
	})
}

func TestPipeline_IngestReingestion(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.pipeline.Ingest(ctx, &IngestRequest{
		Filename: "manual.pdf",
		Text:     longText(100),
	})
	require.NoError(t, err)

	second, err := env.pipeline.Ingest(ctx, &IngestRequest{
		Filename: "manual.pdf",
		Text:     longText(30),
	})
	require.NoError(t, err)
	assert.Equal(t, first.DocumentId, second.DocumentId)
	assert.Less(t, second.ChunkCount, first.ChunkCount)

	// Only the second ingestion's chunks remain
	chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, second.DocumentId)
	require.NoError(t, err)
	assert.Len(t, chunks, second.ChunkCount)

	total, err := env.repos.Chunks.CountChunks(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ChunkCount, total)
}

func TestPipeline_IngestEmbeddingFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	calls := 0
	env.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		calls++
		if calls > 1 {
			return nil, errors.New("provider quota exceeded")
		}
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = mock.DeterministicVector(text, 8)
		}
		return vectors, nil
	}

	_, err := env.pipeline.Ingest(ctx, &IngestRequest{
		Filename: "grande.pdf",
		Text:     longText(300),
	})
	require.ErrorIs(t, err, ErrEmbeddingFailed)

	doc, err := env.repos.Documents.GetDocumentByFilename(ctx, "grande.pdf")
	require.NoError(t, err)
	assert.Equal(t, core.IngestStatusFailed, doc.Status)
	assert.Contains(t, doc.StatusError, "quota")

	// Completed batches stay persisted; recovery is re-ingestion
	chunks, err := env.repos.Chunks.GetChunksByDocument(ctx, doc.Id)
	require.NoError(t, err)
	assert.Len(t, chunks, embeddingBatchSize)
}

func TestPipeline_IngestTimeout(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, WithTimeout(50*time.Millisecond))

	env.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, err := env.pipeline.Ingest(ctx, &IngestRequest{
		Filename: "colgado.pdf",
		Text:     longText(50),
	})
	require.ErrorIs(t, err, ErrIngestTimeout)

	doc, err := env.repos.Documents.GetDocumentByFilename(ctx, "colgado.pdf")
	require.NoError(t, err)
	assert.Equal(t, core.IngestStatusFailed, doc.Status)
	assert.Contains(t, doc.StatusError, "timed out")
}

func TestPipeline_IngestAsync(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	handle, err := env.pipeline.IngestAsync(ctx, &IngestRequest{
		Filename: "async.pdf",
		Text:     longText(50),
	})
	require.NoError(t, err)

	result, err := handle.Wait(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Greater(t, result.ChunkCount, 0)

	doc, err := env.repos.Documents.GetDocument(ctx, result.DocumentId)
	require.NoError(t, err)
	assert.Equal(t, core.IngestStatusCompleted, doc.Status)

	t.Run("handle reports failures", func(t *testing.T) {
		env.embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
			return nil, errors.New("boom")
		}

		handle, err := env.pipeline.IngestAsync(ctx, &IngestRequest{
			Filename: "roto.pdf",
			Text:     longText(20),
		})
		require.NoError(t, err)

		_, err = handle.Wait(ctx)
		assert.ErrorIs(t, err, ErrEmbeddingFailed)
	})
}

func TestNewPipeline_Validation(t *testing.T) {
	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	defer repos.Close()

	store, err := ragconfig.NewStore(context.Background(), repos.Config)
	require.NoError(t, err)
	provider := mock.NewMockProvider()

	t.Run("missing chunk repository", func(t *testing.T) {
		_, err := NewPipeline(nil, repos.Documents, provider, store)
		assert.ErrorIs(t, err, ErrChunkRepositoryRequired)
	})

	t.Run("missing document repository", func(t *testing.T) {
		_, err := NewPipeline(repos.Chunks, nil, provider, store)
		assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewPipeline(repos.Chunks, repos.Documents, nil, store)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("missing config store", func(t *testing.T) {
		_, err := NewPipeline(repos.Chunks, repos.Documents, provider, nil)
		assert.ErrorIs(t, err, ErrConfigStoreRequired)
	})
}

func TestEstimateTokens(t *testing.T) {
	assert.Equal(t, 0, estimateTokens(""))
	assert.Equal(t, 1, estimateTokens("abc"))
	assert.Equal(t, 2, estimateTokens("abcdefg")) // 7 / 3.5 = 2
	assert.Equal(t, 100, estimateTokens(strings.Repeat("x", 350)))
}

func TestEmbeddingCost(t *testing.T) {
	assert.InDelta(t, 0.02, embeddingCost("text-embedding-3-small", 1_000_000), 1e-9)
	assert.Zero(t, embeddingCost("embeddinggemma", 1_000_000))
}
