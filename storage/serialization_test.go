package storage

import (
	"testing"
	"time"

	"github.com/ironleaf/docmind/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalID(t *testing.T) {
	tests := []struct {
		name string
		id   core.ID
	}{
		{"zero ID", core.ID(0)},
		{"small ID", core.ID(42)},
		{"large ID", core.ID(18446744073709551615)},
		{"content-based ID", core.IDFromContent("manual_ws600.pdf:0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalID(tt.id)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalID(data)
			require.NoError(t, err)
			assert.Equal(t, tt.id, decoded)
		})
	}

	t.Run("empty data", func(t *testing.T) {
		_, err := UnmarshalID([]byte{})
		assert.Error(t, err)
	})
}

func TestMarshalUnmarshalChunk(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	tests := []struct {
		name  string
		chunk *core.Chunk
	}{
		{
			name: "minimal chunk",
			chunk: &core.Chunk{
				Id:         core.ID(1),
				DocumentId: core.ID(7),
				Text:       "El sensor registra la irradiancia global.",
				Index:      0,
				Start:      0,
				End:        41,
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "chunk with vector and metadata",
			chunk: &core.Chunk{
				Id:         core.ID(2),
				DocumentId: core.ID(7),
				Text:       "Mantenimiento anual del WS600.",
				Index:      3,
				Start:      1200,
				End:        1230,
				Vector:     []float32{0.1, -0.2, 0.3, 0.4},
				Metadata: core.ChunkMetadata{
					Doc: core.DocumentFacts{
						DocId:        "7",
						Filename:     "manual_ws600.pdf",
						DocType:      "manual",
						Source:       "externo",
						UploadedBy:   "amunoz",
						ProjectId:    "PV-2025-014",
						Equipment:    "WS600",
						Manufacturer: "Lufft",
					},
					Chunk: core.ChunkFacts{
						Index:      3,
						Start:      1200,
						End:        1230,
						Page:       1,
						Method:     "fixed",
						Length:     30,
						TokenCount: 8,
					},
					Embedding: core.EmbeddingFacts{
						Model:        "text-embedding-3-small",
						VectorizedAt: now,
					},
				},
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
		{
			name: "unicode text",
			chunk: &core.Chunk{
				Id:         core.ID(3),
				DocumentId: core.ID(8),
				Text:       "Señal de años: café ñandú 测试",
				InsertedAt: now,
				UpdatedAt:  now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalChunk(tt.chunk)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalChunk(data)
			require.NoError(t, err)
			require.NotNil(t, decoded)

			assert.Equal(t, tt.chunk.Id, decoded.Id)
			assert.Equal(t, tt.chunk.DocumentId, decoded.DocumentId)
			assert.Equal(t, tt.chunk.Text, decoded.Text)
			assert.Equal(t, tt.chunk.Index, decoded.Index)
			assert.Equal(t, tt.chunk.Start, decoded.Start)
			assert.Equal(t, tt.chunk.End, decoded.End)
			assert.Equal(t, tt.chunk.Metadata.Doc, decoded.Metadata.Doc)
			assert.Equal(t, tt.chunk.Metadata.Chunk, decoded.Metadata.Chunk)
			assert.Equal(t, tt.chunk.Metadata.Embedding.Model, decoded.Metadata.Embedding.Model)
			assert.True(t, tt.chunk.Metadata.Embedding.VectorizedAt.Equal(decoded.Metadata.Embedding.VectorizedAt))
			if len(tt.chunk.Vector) == 0 {
				assert.Empty(t, decoded.Vector)
			} else {
				assert.Equal(t, tt.chunk.Vector, decoded.Vector)
			}
			assert.True(t, tt.chunk.InsertedAt.Equal(decoded.InsertedAt))
			assert.True(t, tt.chunk.UpdatedAt.Equal(decoded.UpdatedAt))
		})
	}

	t.Run("invalid data", func(t *testing.T) {
		for _, data := range [][]byte{{}, {0xFF, 0xFF, 0xFF}} {
			_, err := UnmarshalChunk(data)
			assert.Error(t, err)
		}
	})
}

func TestMarshalUnmarshalDocument(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	doc := &core.Document{
		Id:          core.ID(9),
		Filename:    "pliego_parque_sur.pdf",
		Status:      core.IngestStatusFailed,
		StatusError: "embedding provider unavailable",
		ChunkCount:  12,
		TokensUsed:  3420,
		InsertedAt:  now,
		UpdatedAt:   now,
	}

	data := MarshalDocument(doc)
	decoded, err := UnmarshalDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Id, decoded.Id)
	assert.Equal(t, doc.Filename, decoded.Filename)
	assert.Equal(t, doc.Status, decoded.Status)
	assert.Equal(t, doc.StatusError, decoded.StatusError)
	assert.Equal(t, doc.ChunkCount, decoded.ChunkCount)
	assert.Equal(t, doc.TokensUsed, decoded.TokensUsed)
	assert.True(t, doc.InsertedAt.Equal(decoded.InsertedAt))
}

func TestMarshalUnmarshalSelectionRecord(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	record := &core.SelectionRecord{
		Id:               core.ID(100),
		ChunkId:          core.ID(2),
		DocumentId:       core.ID(7),
		ChunkExcerpt:     "Mantenimiento anual del WS600.",
		VectorScore:      0.42,
		LexicalScore:     0.1,
		HybridScore:      0.292,
		MinSimilarity:    0.3,
		MinHybrid:        0.25,
		OperationType:    "chat",
		OperationSubtype: "",
		QueryExcerpt:     "fallo en WS600",
		WasSelected:      true,
		RankPosition:     1,
		RecordedAt:       now,
	}

	data := MarshalSelectionRecord(record)
	decoded, err := UnmarshalSelectionRecord(data)
	require.NoError(t, err)
	assert.Equal(t, record.Id, decoded.Id)
	assert.Equal(t, record.ChunkExcerpt, decoded.ChunkExcerpt)
	assert.Equal(t, record.VectorScore, decoded.VectorScore)
	assert.Equal(t, record.HybridScore, decoded.HybridScore)
	assert.Equal(t, record.WasSelected, decoded.WasSelected)
	assert.Equal(t, record.RankPosition, decoded.RankPosition)
	assert.True(t, record.RecordedAt.Equal(decoded.RecordedAt))

	t.Run("rejected row", func(t *testing.T) {
		rejected := *record
		rejected.WasSelected = false
		rejected.RejectionReason = "below_similarity_threshold"

		decoded, err := UnmarshalSelectionRecord(MarshalSelectionRecord(&rejected))
		require.NoError(t, err)
		assert.False(t, decoded.WasSelected)
		assert.Equal(t, "below_similarity_threshold", decoded.RejectionReason)
	})
}

func TestMarshalUnmarshalAnalysisRun(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	run := &core.AnalysisRun{
		Id:           core.ID(55),
		AnalysisType: "pliego_tecnico",
		TaskResults: []core.TaskResult{
			{
				TaskId:      "alcance",
				Question:    "¿Cuál es el alcance del suministro?",
				ResultField: "alcance_suministro",
				State:       core.TaskStateSucceeded,
				Answer:      map[string]any{"resumen": "Suministro completo", "confianza": "alta"},
				DurationMs:  1800,
				TokensIn:    950,
				TokensOut:   120,
				TokensTotal: 1070,
				ChunksUsed:  5,
				Model:       "gpt-4o-mini",
			},
			{
				TaskId:      "plazos",
				Question:    "¿Qué plazos de entrega se exigen?",
				ResultField: "plazos",
				State:       core.TaskStateFailed,
				Error:       "model returned malformed JSON",
			},
		},
		Consolidated: map[string]any{
			"alcance_suministro": map[string]any{"resumen": "Suministro completo", "confianza": "alta"},
			"plazos":             map[string]any{"error": "model returned malformed JSON"},
		},
		Stats: core.RunStats{
			DurationMs:   2100,
			TokensIn:     950,
			TokensOut:    120,
			TokensTotal:  1070,
			ChunksUsed:   5,
			SuccessCount: 1,
			FailureCount: 1,
			Model:        "gpt-4o-mini",
		},
		StartedAt: now,
	}

	data := MarshalAnalysisRun(run)
	decoded, err := UnmarshalAnalysisRun(data)
	require.NoError(t, err)
	assert.Equal(t, run.Id, decoded.Id)
	assert.Equal(t, run.AnalysisType, decoded.AnalysisType)
	require.Len(t, decoded.TaskResults, 2)
	assert.Equal(t, run.TaskResults[0].TaskId, decoded.TaskResults[0].TaskId)
	assert.Equal(t, run.TaskResults[0].Answer, decoded.TaskResults[0].Answer)
	assert.Equal(t, run.TaskResults[1].State, decoded.TaskResults[1].State)
	assert.Equal(t, run.TaskResults[1].Error, decoded.TaskResults[1].Error)
	assert.Equal(t, run.Consolidated, decoded.Consolidated)
	assert.Equal(t, run.Stats, decoded.Stats)
	assert.True(t, run.StartedAt.Equal(decoded.StartedAt))
}

func TestMarshalUnmarshalConfig(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("entry", func(t *testing.T) {
		entry := &core.ConfigEntry{
			Key:         "chunk_size",
			Value:       "1000",
			Type:        core.ConfigTypeInt,
			HasBounds:   true,
			Min:         100,
			Max:         5000,
			Description: "characters per chunk",
			UpdatedAt:   now,
			UpdatedBy:   "admin",
		}

		decoded, err := UnmarshalConfigEntry(MarshalConfigEntry(entry))
		require.NoError(t, err)
		assert.Equal(t, entry.Key, decoded.Key)
		assert.Equal(t, entry.Value, decoded.Value)
		assert.Equal(t, entry.Type, decoded.Type)
		assert.Equal(t, entry.HasBounds, decoded.HasBounds)
		assert.Equal(t, entry.Min, decoded.Min)
		assert.Equal(t, entry.Max, decoded.Max)
		assert.Equal(t, entry.Description, decoded.Description)
		assert.True(t, entry.UpdatedAt.Equal(decoded.UpdatedAt))
		assert.Equal(t, entry.UpdatedBy, decoded.UpdatedBy)
	})

	t.Run("change", func(t *testing.T) {
		change := &core.ConfigChange{
			Id:        core.ID(3),
			Key:       "top_k",
			OldValue:  "5",
			NewValue:  "8",
			ChangedBy: "admin",
			ChangedAt: now,
		}

		decoded, err := UnmarshalConfigChange(MarshalConfigChange(change))
		require.NoError(t, err)
		assert.Equal(t, change.Id, decoded.Id)
		assert.Equal(t, change.Key, decoded.Key)
		assert.Equal(t, change.OldValue, decoded.OldValue)
		assert.Equal(t, change.NewValue, decoded.NewValue)
		assert.Equal(t, change.ChangedBy, decoded.ChangedBy)
		assert.True(t, change.ChangedAt.Equal(decoded.ChangedAt))
	})
}
