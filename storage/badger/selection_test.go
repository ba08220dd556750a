package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ironleaf/docmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionRepository_AppendAndRead(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Minute)
	records := []*core.SelectionRecord{
		{ChunkId: 1, DocumentId: 1, WasSelected: true, RankPosition: 1, RecordedAt: base},
		{ChunkId: 2, DocumentId: 1, WasSelected: false, RejectionReason: "below_similarity_threshold", RankPosition: 2, RecordedAt: base.Add(time.Second)},
	}

	added, err := repos.Selections.AddSelectionRecords(ctx, records...)
	require.NoError(t, err)
	for _, r := range added {
		assert.NotZero(t, r.Id)
	}

	recent, err := repos.Selections.GetRecentSelections(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first
	assert.Equal(t, core.ID(2), recent[0].ChunkId)
	assert.Equal(t, "below_similarity_threshold", recent[0].RejectionReason)
	assert.True(t, recent[1].WasSelected)
}

func TestSelectionRepository_SetsRecordedAt(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	added, err := repos.Selections.AddSelectionRecords(ctx, &core.SelectionRecord{ChunkId: 3})
	require.NoError(t, err)
	assert.False(t, added[0].RecordedAt.IsZero())
}
