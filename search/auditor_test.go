package search

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironleaf/docmind/core"
	badgerstore "github.com/ironleaf/docmind/storage/badger"
)

func newTestAuditor(t *testing.T) (*Auditor, *badgerstore.Repositories) {
	t.Helper()

	repos, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { repos.Close() })

	auditor, err := NewAuditor(repos.Selections)
	require.NoError(t, err)
	t.Cleanup(auditor.Release)

	return auditor, repos
}

func waitForSelections(t *testing.T, repos *badgerstore.Repositories, count int) []*core.SelectionRecord {
	t.Helper()

	var records []*core.SelectionRecord
	require.Eventually(t, func() bool {
		var err error
		records, err = repos.Selections.GetRecentSelections(context.Background(), count+1)
		require.NoError(t, err)
		return len(records) == count
	}, 2*time.Second, 10*time.Millisecond)
	return records
}

func TestAuditor_Record(t *testing.T) {
	t.Run("persists one row per candidate", func(t *testing.T) {
		auditor, repos := newTestAuditor(t)

		candidates := []Candidate{
			{
				Chunk: &core.ScoredChunk{
					Chunk:        &core.Chunk{Id: 10, DocumentId: 1, Text: "especificaciones del WS600"},
					VectorScore:  0.9,
					LexicalScore: 0.5,
					HybridScore:  0.74,
				},
				Rank:     1,
				Selected: true,
			},
			{
				Chunk: &core.ScoredChunk{
					Chunk:       &core.Chunk{Id: 11, DocumentId: 2, Text: "indice general"},
					VectorScore: 0.1,
					HybridScore: 0.06,
				},
				Rank:            2,
				Selected:        false,
				RejectionReason: "below_thresholds",
			},
		}

		auditor.Record(candidates, "caudal del sensor", "search", "", Thresholds{
			MinSimilarity: 0.3,
			MinHybrid:     0.25,
		})

		records := waitForSelections(t, repos, 2)

		byChunk := make(map[core.ID]*core.SelectionRecord, len(records))
		for _, r := range records {
			byChunk[r.ChunkId] = r
		}

		selected := byChunk[10]
		require.NotNil(t, selected)
		assert.Equal(t, core.ID(1), selected.DocumentId)
		assert.Equal(t, "especificaciones del WS600", selected.ChunkExcerpt)
		assert.InDelta(t, 0.9, selected.VectorScore, 1e-6)
		assert.InDelta(t, 0.74, selected.HybridScore, 1e-6)
		assert.InDelta(t, 0.3, selected.MinSimilarity, 1e-6)
		assert.InDelta(t, 0.25, selected.MinHybrid, 1e-6)
		assert.Equal(t, "search", selected.OperationType)
		assert.Equal(t, "caudal del sensor", selected.QueryExcerpt)
		assert.True(t, selected.WasSelected)
		assert.Empty(t, selected.RejectionReason)
		assert.Equal(t, 1, selected.RankPosition)
		assert.False(t, selected.RecordedAt.IsZero())

		rejected := byChunk[11]
		require.NotNil(t, rejected)
		assert.False(t, rejected.WasSelected)
		assert.Equal(t, "below_thresholds", rejected.RejectionReason)
		assert.Equal(t, 2, rejected.RankPosition)
	})

	t.Run("truncates long excerpts", func(t *testing.T) {
		auditor, repos := newTestAuditor(t)

		longChunk := strings.Repeat("a", 600)
		longQuery := strings.Repeat("q", 250)

		auditor.Record([]Candidate{
			{
				Chunk:    &core.ScoredChunk{Chunk: &core.Chunk{Id: 20, Text: longChunk}},
				Rank:     1,
				Selected: true,
			},
		}, longQuery, "analysis", "consumo", Thresholds{})

		records := waitForSelections(t, repos, 1)

		assert.Len(t, records[0].ChunkExcerpt, chunkExcerptLen)
		assert.Len(t, records[0].QueryExcerpt, queryExcerptLen)
		assert.Equal(t, "analysis", records[0].OperationType)
		assert.Equal(t, "consumo", records[0].OperationSubtype)
	})

	t.Run("empty candidate list records nothing", func(t *testing.T) {
		auditor, repos := newTestAuditor(t)

		auditor.Record(nil, "consulta", "search", "", Thresholds{})

		time.Sleep(50 * time.Millisecond)
		records, err := repos.Selections.GetRecentSelections(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestSearcher_AuditTrail(t *testing.T) {
	searcher, repos := newTestSearcher(t)

	auditor, err := NewAuditor(repos.Selections)
	require.NoError(t, err)
	defer auditor.Release()
	require.NoError(t, WithAuditor(auditor)(searcher))

	addChunk(t, repos, 1, "mantenimiento preventivo anual", []float32{0.9, 0, 0, 0}, "")
	addChunk(t, repos, 1, "indice general", []float32{0.1, 0, 0, 0}, "")

	_, err = searcher.Search(context.Background(), "mantenimiento anual", &Options{
		OperationType:    "analysis",
		OperationSubtype: "garantia",
	})
	require.NoError(t, err)

	records := waitForSelections(t, repos, 2)
	for _, r := range records {
		assert.Equal(t, "analysis", r.OperationType)
		assert.Equal(t, "garantia", r.OperationSubtype)
	}
}
