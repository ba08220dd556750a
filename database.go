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

package docmind

import (
	"context"
	"io"
	"log/slog"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/ai/openai"
	"github.com/ironleaf/docmind/analysis"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/ingestion"
	"github.com/ironleaf/docmind/ragconfig"
	"github.com/ironleaf/docmind/reindex"
	"github.com/ironleaf/docmind/search"
	"github.com/ironleaf/docmind/storage"
	badgerstore "github.com/ironleaf/docmind/storage/badger"
)

// Database wires the storage backend, the AI provider, and the runtime
// configuration store into one handle. Component factories hang off it.
type Database struct {
	repos    *badgerstore.Repositories
	provider ai.Provider
	config   *ragconfig.Store
	auditor  *search.Auditor
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	provider ai.Provider
	inMemory bool
}

// WithAIConfig sets the AI provider configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithProvider injects an AI provider, bypassing the OpenAI-compatible
// default. Used by tests.
func WithProvider(provider ai.Provider) DatabaseOption {
	return func(o *databaseOptions) {
		o.provider = provider
	}
}

// WithInMemory opens the storage backend in memory. Data is lost on close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	repos, err := badgerstore.OpenRepositories(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	config, err := ragconfig.NewStore(context.Background(), repos.Config)
	if err != nil {
		repos.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			repos.Close()
			return nil, err
		}
	}

	auditor, err := search.NewAuditor(repos.Selections)
	if err != nil {
		provider.Close()
		repos.Close()
		return nil, err
	}

	return &Database{
		repos:    repos,
		provider: provider,
		config:   config,
		auditor:  auditor,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	db.auditor.Release()

	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	if err := db.repos.Close(); err != nil {
		db.logger.Error("error closing storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ChunkRepository() storage.ChunkRepository {
	return db.repos.Chunks
}

func (db *Database) DocumentRepository() storage.DocumentRepository {
	return db.repos.Documents
}

func (db *Database) SelectionRepository() storage.SelectionRepository {
	return db.repos.Selections
}

func (db *Database) RunRepository() storage.RunRepository {
	return db.repos.Runs
}

// Config returns the runtime retrieval configuration store.
func (db *Database) Config() *ragconfig.Store {
	return db.config
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.repos.Chunks, db.repos.Documents, db.provider, db.config, opts...)
}

// NewSearcher creates a searcher wired to the shared selection auditor, so
// every retrieval call leaves its audit trail.
func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	opts = append([]search.Option{search.WithAuditor(db.auditor)}, opts...)
	return search.NewSearcher(db.repos.Chunks, db.provider, db.config, opts...)
}

// NewOrchestrator creates a parallel analysis orchestrator backed by a
// searcher from this database.
func (db *Database) NewOrchestrator(opts ...analysis.Option) (*analysis.Orchestrator, error) {
	searcher, err := db.NewSearcher()
	if err != nil {
		return nil, err
	}
	return analysis.NewOrchestrator(searcher, db.provider, db.repos.Runs, opts...)
}

// NewReindexer creates a reindexer that re-embeds stored chunks with the
// configured target model.
func (db *Database) NewReindexer(config *reindex.Config, progress io.Writer) (*reindex.Reindexer, error) {
	return reindex.NewReindexer(db.repos.Chunks, db.provider.Embedder(), config, progress)
}

// UpdateConfig applies a batch of configuration updates. Each key is
// validated independently; failures are reported per key and never abort
// the rest of the batch.
func (db *Database) UpdateConfig(ctx context.Context, updates map[string]string, changedBy string) []ragconfig.UpdateResult {
	return db.config.Update(ctx, updates, changedBy)
}

// ConfigHistory returns configuration change rows, newest first. An empty
// key spans all keys.
func (db *Database) ConfigHistory(ctx context.Context, key string, limit int) ([]*core.ConfigChange, error) {
	return db.config.History(ctx, key, limit)
}

// ResetConfig restores every configuration key to its default value.
func (db *Database) ResetConfig(ctx context.Context, changedBy string) error {
	return db.config.ResetToDefaults(ctx, changedBy)
}

// CorrectDocumentMetadata rewrites the document-level facts on every chunk
// of a document as one batch. Returns the number of chunks rewritten.
func (db *Database) CorrectDocumentMetadata(ctx context.Context, documentID core.ID, facts core.DocumentFacts) (int, error) {
	return db.repos.Chunks.UpdateDocumentFacts(ctx, documentID, facts)
}
