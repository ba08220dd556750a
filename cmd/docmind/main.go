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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ironleaf/docmind"
	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/analysis"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/ingestion"
	"github.com/ironleaf/docmind/reindex"
	"github.com/ironleaf/docmind/search"
)

func main() {
	app := &cli.App{
		Name:   "docmind",
		Usage:  "Hybrid retrieval and parallel analysis engine for technical documents",
		Flags:  appFlags(),
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Chunk, embed, and store a document",
				ArgsUsage: "FILE",
				Action:    ingestCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:  "filename",
						Usage: "Stored filename (defaults to the base name of FILE)",
					},
					&cli.StringFlag{
						Name:  "doc-type",
						Usage: "Document type (manual, datasheet, oferta, interno, pliego, informe, otro)",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Document source (interno, externo)",
					},
					&cli.StringFlag{
						Name:  "project",
						Usage: "Project identifier attached to the document facts",
					},
					&cli.StringFlag{
						Name:  "uploaded-by",
						Usage: "User recorded as the uploader",
					},
				),
			},
			{
				Name:      "search",
				Usage:     "Run a hybrid retrieval query",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(dbFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Override the configured candidate window size",
					},
					&cli.BoolFlag{
						Name:  "entity-filter",
						Usage: "Restrict candidates by detected equipment names",
					},
				),
			},
			{
				Name:      "analyze",
				Usage:     "Run a parallel analysis over ingested documents",
				ArgsUsage: "FILENAME [FILENAME...]",
				Action:    analyzeCommand,
				Flags: append(dbFlags(),
					&cli.StringFlag{
						Name:     "type",
						Usage:    "Analysis type (pliego_tecnico, contrato, oferta, documentacion)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "tier",
						Usage: "Generation model tier (standard, mini)",
						Value: "mini",
					},
					&cli.IntFlag{
						Name:  "concurrency",
						Usage: "Maximum tasks executing concurrently",
						Value: 4,
					},
				),
			},
			{
				Name:  "config",
				Usage: "Inspect and tune retrieval parameters",
				Subcommands: []*cli.Command{
					{
						Name:      "get",
						Usage:     "Print one key, or every key when omitted",
						ArgsUsage: "[KEY]",
						Action:    configGetCommand,
						Flags:     dbFlags(),
					},
					{
						Name:      "set",
						Usage:     "Apply KEY=VALUE updates with per-key validation",
						ArgsUsage: "KEY=VALUE [KEY=VALUE...]",
						Action:    configSetCommand,
						Flags: append(dbFlags(),
							&cli.StringFlag{
								Name:  "changed-by",
								Usage: "Operator recorded in the change history",
								Value: "cli",
							},
						),
					},
					{
						Name:      "history",
						Usage:     "Print change history, newest first",
						ArgsUsage: "[KEY]",
						Action:    configHistoryCommand,
						Flags: append(dbFlags(),
							&cli.IntFlag{
								Name:  "limit",
								Usage: "Maximum rows to print",
								Value: 20,
							},
						),
					},
					{
						Name:   "reset",
						Usage:  "Restore every key to its default value",
						Action: configResetCommand,
						Flags: append(dbFlags(),
							&cli.StringFlag{
								Name:  "changed-by",
								Usage: "Operator recorded in the change history",
								Value: "cli",
							},
						),
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed stored chunks with a new embedding model",
				Action: reindexCommand,
				Flags: append(dbFlags(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed chunks already on the target model",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N chunks",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func appFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Set logging level (debug, info, warn, error)",
			Value:   "info",
		},
	}
}

func dbFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "generation-host",
			Usage: "Generation service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "standard-model",
			Usage: "Standard-tier generation model name",
			Value: "qwen2.5:7b",
		},
		&cli.StringFlag{
			Name:  "mini-model",
			Usage: "Mini-tier generation model name",
			Value: "qwen2.5:3b",
		},
	}
}

func openDatabase(c *cli.Context) (*docmind.Database, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithGenerationHost(c.String("generation-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithStandardModel(c.String("standard-model")),
		ai.WithMiniModel(c.String("mini-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	db, err := docmind.NewDatabase(c.String("db"), docmind.WithAIConfig(aiConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one FILE argument")
	}
	path := c.Args().First()

	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	filename := c.String("filename")
	if filename == "" {
		filename = filepath.Base(path)
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	pipeline, err := db.NewIngestionPipeline(ingestion.WithEmbeddingModel(c.String("embedding-model")))
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Release()

	result, err := pipeline.Ingest(ctx, &ingestion.IngestRequest{
		Filename: filename,
		Text:     string(text),
		Facts: core.DocumentFacts{
			DocType:    c.String("doc-type"),
			Source:     c.String("source"),
			ProjectId:  c.String("project"),
			UploadedBy: c.String("uploaded-by"),
		},
	})
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	return printJSON(result)
}

func searchCommand(c *cli.Context) error {
	ctx := context.Background()

	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("expected a QUERY argument")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	searcher, err := db.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	result, err := searcher.Search(ctx, query, &search.Options{
		TopK:         c.Int("top-k"),
		EntityFilter: c.Bool("entity-filter"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	type hit struct {
		ChunkId      core.ID `json:"chunk_id"`
		DocumentId   core.ID `json:"document_id"`
		Filename     string  `json:"filename,omitempty"`
		Page         int     `json:"page"`
		VectorScore  float32 `json:"vector_score"`
		LexicalScore float32 `json:"lexical_score"`
		HybridScore  float32 `json:"hybrid_score"`
		Text         string  `json:"text"`
	}

	out := struct {
		Query    string                   `json:"query"`
		Hits     []hit                    `json:"hits"`
		Metadata search.SelectionMetadata `json:"metadata"`
	}{Query: query, Metadata: result.Metadata, Hits: make([]hit, 0, len(result.Chunks))}

	for _, scored := range result.Chunks {
		out.Hits = append(out.Hits, hit{
			ChunkId:      scored.Chunk.Id,
			DocumentId:   scored.Chunk.DocumentId,
			Filename:     scored.Chunk.Metadata.Doc.Filename,
			Page:         scored.Chunk.Metadata.Chunk.Page,
			VectorScore:  scored.VectorScore,
			LexicalScore: scored.LexicalScore,
			HybridScore:  scored.HybridScore,
			Text:         scored.Chunk.Text,
		})
	}

	return printJSON(out)
}

func analyzeCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("expected at least one ingested FILENAME argument")
	}

	var tier ai.ModelTier
	switch c.String("tier") {
	case "standard":
		tier = ai.TierStandard
	case "mini":
		tier = ai.TierMini
	default:
		return fmt.Errorf("invalid tier %q: must be standard or mini", c.String("tier"))
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	documents := make([]analysis.Document, 0, c.NArg())
	for _, filename := range c.Args().Slice() {
		doc, err := db.DocumentRepository().GetDocumentByFilename(ctx, filename)
		if err != nil {
			return fmt.Errorf("document %q: %w", filename, err)
		}
		documents = append(documents, analysis.Document{Id: doc.Id, Filename: doc.Filename})
	}

	orchestrator, err := db.NewOrchestrator(analysis.WithPoolSize(c.Int("concurrency")))
	if err != nil {
		return fmt.Errorf("failed to create orchestrator: %w", err)
	}
	defer orchestrator.Release()

	run, err := orchestrator.Run(ctx, analysis.Request{
		Documents:    documents,
		AnalysisType: c.String("type"),
		Tier:         tier,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	out := struct {
		RunId        core.ID        `json:"run_id"`
		AnalysisType string         `json:"analysis_type"`
		Consolidated map[string]any `json:"consolidated"`
		Stats        core.RunStats  `json:"stats"`
	}{run.Id, run.AnalysisType, run.Consolidated, run.Stats}

	return printJSON(out)
}

func configGetCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if c.NArg() > 0 {
		entry, err := db.Config().Get(ctx, c.Args().First())
		if err != nil {
			return err
		}
		fmt.Printf("%s=%s\n", entry.Key, entry.Value)
		return nil
	}

	settings := db.Config().Settings(ctx)
	return printJSON(settings)
}

func configSetCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("expected KEY=VALUE arguments")
	}

	updates := make(map[string]string, c.NArg())
	for _, arg := range c.Args().Slice() {
		key, value, found := strings.Cut(arg, "=")
		if !found || key == "" {
			return fmt.Errorf("invalid update %q: expected KEY=VALUE", arg)
		}
		updates[key] = value
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	failures := 0
	for _, result := range db.UpdateConfig(ctx, updates, c.String("changed-by")) {
		if result.Err != nil {
			failures++
			fmt.Printf("%s: %v\n", result.Key, result.Err)
			continue
		}
		fmt.Printf("%s: %s -> %s\n", result.Key, result.OldValue, result.NewValue)
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d updates rejected", failures, len(updates))
	}
	return nil
}

func configHistoryCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	key := ""
	if c.NArg() > 0 {
		key = c.Args().First()
	}

	changes, err := db.ConfigHistory(ctx, key, c.Int("limit"))
	if err != nil {
		return err
	}

	for _, change := range changes {
		fmt.Printf("%s  %s: %q -> %q (by %s)\n",
			change.ChangedAt.Format(time.RFC3339), change.Key, change.OldValue, change.NewValue, change.ChangedBy)
	}
	return nil
}

func configResetCommand(c *cli.Context) error {
	ctx := context.Background()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ResetConfig(ctx, c.String("changed-by")); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	fmt.Println("configuration restored to defaults")
	return nil
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	config := &reindex.Config{
		Model:          c.String("embedding-model"),
		Force:          c.Bool("force"),
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	reindexer, err := db.NewReindexer(config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if _, err := reindexer.Run(ctx); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}
	return nil
}

func printJSON(v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
