package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"code-summarizer/internal/llm"
	"code-summarizer/internal/prompt"
	"code-summarizer/internal/scanner"
	"code-summarizer/internal/store"
)

// Error kinds distinguish which stage a file failed in. Result errors wrap
// one of these, so callers can use errors.Is.
var (
	ErrFileAccess  = errors.New("file access failed")
	ErrInference   = errors.New("inference failed")
	ErrOutputWrite = errors.New("output write failed")
)

// Status classifies a per-file outcome.
type Status string

const (
	StatusSummarized Status = "summarized"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Result is the outcome for one input file. Exactly one Result is produced
// per input, in input order.
type Result struct {
	Path       string
	Summary    string
	Status     Status
	SkipReason string
	Err        error
}

// Stats aggregates a finished run.
type Stats struct {
	Total      int
	Summarized int
	Skipped    int
	Failed     int
}

// Sink receives each summary as soon as it is produced. Writes complete
// before the next file is processed.
type Sink interface {
	WriteSummary(path, summary string) error
}

// Options configures a Pipeline.
type Options struct {
	LLM             llm.Client
	Store           store.Store // nil means no run history
	Log             *slog.Logger
	Sinks           []Sink
	Model           string
	MaxFileSize     int64
	MaxPromptTokens int
	OnStart         func(total int)
	OnProgress      func(i, total int, path string)
}

// Pipeline runs the read → prompt → generate → write loop over a batch of
// inputs, sequentially and single-threaded. A failure in one file never
// aborts the batch.
type Pipeline struct {
	opts Options
}

func New(opts Options) (*Pipeline, error) {
	if opts.LLM == nil {
		return nil, fmt.Errorf("llm client required")
	}
	if opts.Log == nil {
		opts.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Store == nil {
		opts.Store = store.NewNoop()
	}
	return &Pipeline{opts: opts}, nil
}

// Run processes every input named by args and returns one Result per input,
// in input order. The only error it returns itself is context cancellation;
// per-file failures live in the Results.
func (p *Pipeline) Run(ctx context.Context, args []string) ([]Result, Stats, error) {
	runID := uuid.New()
	log := p.opts.Log.With("run_id", runID)

	entries := scanner.Collect(args)
	if p.opts.OnStart != nil {
		p.opts.OnStart(len(entries))
	}
	log.Info("run starting", "inputs", len(entries), "model", p.opts.Model)

	root := ""
	if len(args) > 0 {
		root = args[0]
	}
	if err := p.opts.Store.CreateRun(ctx, store.Run{
		ID:        runID,
		Root:      root,
		Args:      args,
		Model:     p.opts.Model,
		StartedAt: time.Now(),
	}); err != nil {
		log.Warn("failed to record run", "err", err)
	}

	var results []Result
	var stats Stats
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return results, stats, err
		}
		if p.opts.OnProgress != nil {
			p.opts.OnProgress(i+1, len(entries), entry.Path)
		}

		res := p.processOne(ctx, log, entry)
		if res.Status == StatusSummarized {
			if err := p.write(res); err != nil {
				res = Result{
					Path:   res.Path,
					Status: StatusFailed,
					Err:    err,
				}
			}
		}

		switch res.Status {
		case StatusSummarized:
			stats.Summarized++
		case StatusSkipped:
			stats.Skipped++
			log.Warn("skipping file", "path", res.Path, "reason", res.SkipReason)
		case StatusFailed:
			stats.Failed++
			log.Error("file failed", "path", res.Path, "err", res.Err)
		}
		stats.Total++
		results = append(results, res)

		p.saveResult(ctx, log, runID, res)
	}

	if err := p.opts.Store.FinishRun(ctx, runID, store.RunStats{
		Total:      stats.Total,
		Summarized: stats.Summarized,
		Skipped:    stats.Skipped,
		Failed:     stats.Failed,
	}); err != nil {
		log.Warn("failed to finish run record", "err", err)
	}
	log.Info("run finished",
		"total", stats.Total,
		"summarized", stats.Summarized,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return results, stats, nil
}

func (p *Pipeline) processOne(ctx context.Context, log *slog.Logger, entry scanner.Entry) Result {
	if entry.Err != nil {
		return Result{
			Path:   entry.Path,
			Status: StatusFailed,
			Err:    fmt.Errorf("%w: %w", ErrFileAccess, entry.Err),
		}
	}

	content, err := scanner.Read(entry.Path, p.opts.MaxFileSize)
	if errors.Is(err, scanner.ErrTooLarge) {
		return Result{
			Path:       entry.Path,
			Status:     StatusSkipped,
			SkipReason: err.Error(),
		}
	}
	if err != nil {
		return Result{
			Path:   entry.Path,
			Status: StatusFailed,
			Err:    fmt.Errorf("%w: %w", ErrFileAccess, err),
		}
	}

	content, cut := prompt.Truncate(content, p.opts.MaxPromptTokens)
	if cut > 0 {
		log.Warn("prompt truncated", "path", entry.Path, "words_cut", cut)
	}

	summary, err := p.opts.LLM.Generate(ctx, prompt.Build(entry.Path, content))
	if err != nil {
		return Result{
			Path:   entry.Path,
			Status: StatusFailed,
			Err:    fmt.Errorf("%w: %w", ErrInference, err),
		}
	}

	return Result{
		Path:    entry.Path,
		Summary: summary,
		Status:  StatusSummarized,
	}
}

func (p *Pipeline) write(res Result) error {
	for _, sink := range p.opts.Sinks {
		if err := sink.WriteSummary(res.Path, res.Summary); err != nil {
			return fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
	}
	return nil
}

// saveResult records the outcome best-effort; store failures never affect
// the batch.
func (p *Pipeline) saveResult(ctx context.Context, log *slog.Logger, runID uuid.UUID, res Result) {
	fs := store.FileSummary{
		Path:    res.Path,
		Status:  string(res.Status),
		Summary: res.Summary,
	}
	if res.Err != nil {
		fs.Error = res.Err.Error()
	} else if res.SkipReason != "" {
		fs.Error = res.SkipReason
	}
	if err := p.opts.Store.SaveFileSummary(ctx, runID, fs); err != nil {
		log.Warn("failed to save file summary", "path", res.Path, "err", err)
	}
}
