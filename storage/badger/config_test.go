package badger

import (
	"context"
	"testing"
	"time"

	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRepository_Entries(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	entry := &core.ConfigEntry{
		Key:       "chunk_size",
		Value:     "1000",
		Type:      core.ConfigTypeInt,
		HasBounds: true,
		Min:       100,
		Max:       5000,
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, repos.Config.PutConfigEntry(ctx, entry))

	got, err := repos.Config.GetConfigEntry(ctx, "chunk_size")
	require.NoError(t, err)
	assert.Equal(t, "1000", got.Value)
	assert.True(t, got.HasBounds)

	_, err = repos.Config.GetConfigEntry(ctx, "desconocida")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Overwrite
	entry.Value = "1500"
	require.NoError(t, repos.Config.PutConfigEntry(ctx, entry))
	got, err = repos.Config.GetConfigEntry(ctx, "chunk_size")
	require.NoError(t, err)
	assert.Equal(t, "1500", got.Value)

	all, err := repos.Config.ListConfigEntries(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestConfigRepository_History(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	changes := []*core.ConfigChange{
		{Key: "chunk_size", OldValue: "1000", NewValue: "1500", ChangedBy: "admin", ChangedAt: base},
		{Key: "top_k", OldValue: "5", NewValue: "8", ChangedBy: "admin", ChangedAt: base.Add(time.Minute)},
		{Key: "chunk_size", OldValue: "1500", NewValue: "800", ChangedBy: "amunoz", ChangedAt: base.Add(2 * time.Minute)},
	}
	for _, c := range changes {
		_, err := repos.Config.AppendConfigChange(ctx, c)
		require.NoError(t, err)
	}

	t.Run("newest first across keys", func(t *testing.T) {
		history, err := repos.Config.ListConfigChanges(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, "800", history[0].NewValue)
		assert.Equal(t, "8", history[1].NewValue)
		assert.Equal(t, "1500", history[2].NewValue)
	})

	t.Run("filtered by key", func(t *testing.T) {
		history, err := repos.Config.ListConfigChanges(ctx, "chunk_size", 0)
		require.NoError(t, err)
		require.Len(t, history, 2)
		for _, h := range history {
			assert.Equal(t, "chunk_size", h.Key)
		}
	})

	t.Run("limited", func(t *testing.T) {
		history, err := repos.Config.ListConfigChanges(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "800", history[0].NewValue)
	})
}
