package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/ironleaf/docmind/ai"
	"github.com/ironleaf/docmind/core"
	"github.com/ironleaf/docmind/search"
	"github.com/ironleaf/docmind/storage"
)

// defaultPoolSize bounds concurrent task execution so a run with a large
// catalog does not flood the generation provider.
const defaultPoolSize = 4

// Document identifies one input document of an analysis run.
type Document struct {
	Id       core.ID
	Filename string
}

// Request describes one analysis run.
type Request struct {
	Documents    []Document
	AnalysisType string
	// Tier selects the generation model. Defaults to the mini tier.
	Tier ai.ModelTier
}

// Orchestrator executes prompt task catalogs across document sets.
type Orchestrator struct {
	searcher  *search.Searcher
	generator ai.Generator
	runs      storage.RunRepository
	pool      *ants.Pool
	logger    *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		o.logger = logger
		return nil
	}
}

// WithPoolSize sets the maximum number of tasks executing concurrently.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size <= 0 {
			return nil
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.pool.Release()
		o.pool = pool
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the given searcher, AI
// provider, and run repository.
func NewOrchestrator(searcher *search.Searcher, provider ai.Provider, runs storage.RunRepository, opts ...Option) (*Orchestrator, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if runs == nil {
		return nil, ErrRunRepositoryRequired
	}

	pool, err := ants.NewPool(defaultPoolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		searcher:  searcher,
		generator: provider.Generator(),
		runs:      runs,
		pool:      pool,
		logger:    slog.Default().With("component", "analysis"),
	}

	for _, opt := range opts {
		if err := opt(o); err != nil {
			o.pool.Release()
			return nil, err
		}
	}

	return o, nil
}

// Run resolves the task catalog for the request's analysis type and executes
// it. The run always completes: individual task failures land in their own
// result fields and never abort the other tasks.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*core.AnalysisRun, error) {
	tasks, err := TasksFor(req.AnalysisType)
	if err != nil {
		return nil, err
	}
	return o.RunTasks(ctx, req, tasks)
}

// RunTasks executes an explicit task list, bypassing the built-in catalogs.
func (o *Orchestrator) RunTasks(ctx context.Context, req Request, tasks []core.PromptTask) (*core.AnalysisRun, error) {
	if len(req.Documents) == 0 {
		return nil, ErrNoDocuments
	}
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}

	tier := req.Tier
	if tier == 0 {
		tier = ai.TierMini
	}

	startedAt := time.Now().UTC()
	start := time.Now()

	o.logger.Info("starting analysis run",
		"analysis_type", req.AnalysisType,
		"tasks", len(tasks),
		"documents", len(req.Documents),
		"tier", tier.String())

	results := make([]core.TaskResult, len(tasks))
	for i, task := range tasks {
		results[i] = pendingResult(task)
	}

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		submitErr := o.pool.Submit(func() {
			defer wg.Done()
			results[i].State = core.TaskStateInFlight
			results[i] = o.runTask(ctx, task, req.Documents, tier)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = failedResult(task, time.Now(), fmt.Errorf("submitting task: %w", submitErr))
		}
	}
	wg.Wait()

	run := assembleRun(req.AnalysisType, results, startedAt, time.Since(start))

	stored, err := o.runs.AddRun(ctx, run)
	if err != nil {
		// Persistence is accounting; the caller still gets the full result.
		o.logger.Error("error storing analysis run", "analysis_type", req.AnalysisType, "err", err)
		stored = run
	}

	o.logger.Info("analysis run completed",
		"analysis_type", req.AnalysisType,
		"duration_ms", stored.Stats.DurationMs,
		"tokens", stored.Stats.TokensTotal,
		"succeeded", stored.Stats.SuccessCount,
		"failed", stored.Stats.FailureCount)

	return stored, nil
}

// runTask executes one prompt task: scoped retrieval per document, combined
// context assembly, one generation call, JSON parse.
func (o *Orchestrator) runTask(ctx context.Context, task core.PromptTask, documents []Document, tier ai.ModelTier) core.TaskResult {
	start := time.Now()

	contexts := make([]documentContext, 0, len(documents))
	chunksUsed := 0
	for _, doc := range documents {
		found, err := o.searcher.Search(ctx, task.Question, &search.Options{
			DocumentScope:    []core.ID{doc.Id},
			OperationType:    "analysis",
			OperationSubtype: task.Id,
		})
		if err != nil {
			o.logger.Error("error retrieving context", "task", task.Id, "document", doc.Id, "err", err)
			return failedResult(task, start, fmt.Errorf("retrieving context for %s: %w", doc.Filename, err))
		}

		texts := make([]string, len(found.Chunks))
		for i, scored := range found.Chunks {
			texts[i] = scored.Chunk.Text
		}
		contexts = append(contexts, documentContext{
			filename: doc.Filename,
			text:     strings.Join(texts, "\n\n"),
			chunks:   len(found.Chunks),
		})
		chunksUsed += len(found.Chunks)
	}

	prompt := buildTaskPrompt(combineContexts(contexts), task.Question)

	generated, err := o.generator.Generate(ctx, taskSystemPrompt, prompt, tier)
	if err != nil {
		o.logger.Error("error generating answer", "task", task.Id, "err", err)
		return failedResult(task, start, fmt.Errorf("generating answer: %w", err))
	}

	var answer map[string]any
	if err := ai.DecodeJSON(generated.Text, &answer); err != nil {
		o.logger.Error("error parsing answer", "task", task.Id, "err", err)
		return failedResult(task, start, fmt.Errorf("parsing answer: %w", err))
	}

	o.logger.Debug("task completed", "task", task.Id, "tokens", generated.TokensTotal(), "chunks", chunksUsed)

	return core.TaskResult{
		TaskId:      task.Id,
		Question:    task.Question,
		ResultField: task.ResultField,
		State:       core.TaskStateSucceeded,
		Answer:      answer,
		DurationMs:  time.Since(start).Milliseconds(),
		TokensIn:    generated.TokensIn,
		TokensOut:   generated.TokensOut,
		TokensTotal: generated.TokensTotal(),
		ChunksUsed:  chunksUsed,
		Model:       generated.Model,
	}
}

// Release releases the worker pool.
// The orchestrator should not be used after calling Release.
func (o *Orchestrator) Release() {
	if o.pool != nil {
		o.pool.Release()
	}
}

func pendingResult(task core.PromptTask) core.TaskResult {
	return core.TaskResult{
		TaskId:      task.Id,
		Question:    task.Question,
		ResultField: task.ResultField,
		State:       core.TaskStatePending,
	}
}

func failedResult(task core.PromptTask, start time.Time, err error) core.TaskResult {
	return core.TaskResult{
		TaskId:      task.Id,
		Question:    task.Question,
		ResultField: task.ResultField,
		State:       core.TaskStateFailed,
		Error:       err.Error(),
		DurationMs:  time.Since(start).Milliseconds(),
	}
}

// assembleRun consolidates task results into one flat map keyed by each
// task's declared result field. Consolidation depends only on the field
// names, never on completion order. Every task contributes exactly one
// field; failed tasks contribute an error marker.
func assembleRun(analysisType string, results []core.TaskResult, startedAt time.Time, elapsed time.Duration) *core.AnalysisRun {
	consolidated := make(map[string]any, len(results))
	stats := core.RunStats{DurationMs: elapsed.Milliseconds()}

	for _, result := range results {
		if result.State == core.TaskStateFailed {
			consolidated[result.ResultField] = map[string]any{"error": result.Error}
			stats.FailureCount++
			continue
		}

		// Unwrap when the model nested its answer under the field name
		if value, ok := result.Answer[result.ResultField]; ok {
			consolidated[result.ResultField] = value
		} else {
			consolidated[result.ResultField] = result.Answer
		}

		stats.SuccessCount++
		stats.TokensIn += result.TokensIn
		stats.TokensOut += result.TokensOut
		stats.TokensTotal += result.TokensTotal
		stats.ChunksUsed += result.ChunksUsed
		if stats.Model == "" {
			stats.Model = result.Model
		}
	}

	return &core.AnalysisRun{
		AnalysisType: analysisType,
		TaskResults:  results,
		Consolidated: consolidated,
		Stats:        stats,
		StartedAt:    startedAt,
	}
}
