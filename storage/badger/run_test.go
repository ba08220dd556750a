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

func TestRunRepository_AddAndGet(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	run := &core.AnalysisRun{
		AnalysisType: "pliego_tecnico",
		TaskResults: []core.TaskResult{
			{TaskId: "alcance", ResultField: "alcance_suministro", State: core.TaskStateSucceeded,
				Answer: map[string]any{"resumen": "suministro completo"}},
		},
		Consolidated: map[string]any{
			"alcance_suministro": map[string]any{"resumen": "suministro completo"},
		},
		Stats: core.RunStats{SuccessCount: 1, Model: "gpt-4o-mini"},
	}

	added, err := repos.Runs.AddRun(ctx, run)
	require.NoError(t, err)
	assert.NotZero(t, added.Id)
	assert.False(t, added.StartedAt.IsZero())

	got, err := repos.Runs.GetRun(ctx, added.Id)
	require.NoError(t, err)
	assert.Equal(t, "pliego_tecnico", got.AnalysisType)
	assert.Equal(t, run.Consolidated, got.Consolidated)

	_, err = repos.Runs.GetRun(ctx, core.ID(4242))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunRepository_GetRecentRuns(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, typ := range []string{"contrato", "oferta", "pliego_tecnico"} {
		_, err := repos.Runs.AddRun(ctx, &core.AnalysisRun{
			AnalysisType: typ,
			StartedAt:    base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	recent, err := repos.Runs.GetRecentRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "pliego_tecnico", recent[0].AnalysisType)
	assert.Equal(t, "oferta", recent[1].AnalysisType)
}
