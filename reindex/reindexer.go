// Copyright 2025 Ironleaf Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/storage"
)

// Config holds configuration for the reindexing operation.
type Config struct {
	// Model is the target embedding model. Chunks whose embedding facts
	// already name this model are skipped unless Force is set.
	Model string

	// Force re-embeds every chunk regardless of its current model
	Force bool

	// BatchSize is the number of chunks to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of chunks)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for failed operations
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults for the given model.
func DefaultConfig(model string) *Config {
	return &Config{
		Model:          model,
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer orchestrates re-embedding of every stored chunk.
type Reindexer struct {
	chunks    storage.ChunkRepository
	config    *Config
	progress  io.Writer
	processor *BatchProcessor
}

// NewReindexer creates a new reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(chunks storage.ChunkRepository, embedder ai.Embedder, config *Config, progress io.Writer) (*Reindexer, error) {
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}
	if config == nil || config.Model == "" {
		return nil, ErrModelRequired
	}

	processor := NewBatchProcessor(chunks, embedder, config.Model, config.MaxRetries, config.RetryDelay)

	return &Reindexer{
		chunks:    chunks,
		config:    config,
		progress:  progress,
		processor: processor,
	}, nil
}

// Run executes the reindexing operation. Chunks are streamed from storage and
// re-embedded in batches; progress is reported to the configured writer.
// Returns the number of chunks re-embedded.
func (r *Reindexer) Run(ctx context.Context) (int, error) {
	total, err := r.chunks.CountChunks(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}

	if total == 0 {
		fmt.Fprintf(r.progress, "No chunks found in database (0 chunks)\n")
		return 0, nil
	}

	fmt.Fprintf(r.progress, "Starting reindex of %d chunks to model %q (batch size: %d)\n",
		total, r.config.Model, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	batchSize := r.config.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	var (
		batch     []*core.Chunk
		processed int
		skipped   int
	)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := r.processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}
		processed += len(batch)
		batch = batch[:0]
		tracker.Update(processed + skipped)
		return nil
	}

	err = r.chunks.IterateChunks(ctx, func(chunk *core.Chunk) error {
		if !r.config.Force && chunk.Metadata.Embedding.Model == r.config.Model {
			skipped++
			tracker.Update(processed + skipped)
			return nil
		}

		batch = append(batch, chunk)
		if len(batch) >= batchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		return processed, err
	}

	if err := flush(); err != nil {
		return processed, err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Re-embedded %d chunks, skipped %d, in %v (%.1f chunks/sec)\n",
		processed, skipped, elapsed.Round(time.Second), float64(processed+skipped)/elapsed.Seconds())

	return processed, nil
}
