package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is one invocation of the summarizer batch.
type Run struct {
	ID        uuid.UUID
	Root      string
	Args      []string
	Model     string
	StartedAt time.Time
}

// FileSummary is the recorded outcome for one input file.
type FileSummary struct {
	Path    string
	Status  string // summarized | skipped | failed
	Summary string
	Error   string
}

// RunStats aggregates per-file outcomes for a finished run.
type RunStats struct {
	Total      int
	Summarized int
	Skipped    int
	Failed     int
}

// Store persists run history; an external DB implementation can replace this.
// All writes are best-effort from the pipeline's point of view.
type Store interface {
	CreateRun(ctx context.Context, run Run) error
	SaveFileSummary(ctx context.Context, runID uuid.UUID, fs FileSummary) error
	FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error
	Close() error
}
