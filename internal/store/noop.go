package store

import (
	"context"

	"github.com/google/uuid"
)

// NoopStore is a Store implementation that does nothing. It is the default
// when no run-history database is configured; all operations succeed and
// nothing is persisted.
type NoopStore struct{}

// NewNoop creates a new no-op store instance.
func NewNoop() *NoopStore {
	return &NoopStore{}
}

func (s *NoopStore) CreateRun(ctx context.Context, run Run) error {
	return nil
}

func (s *NoopStore) SaveFileSummary(ctx context.Context, runID uuid.UUID, fs FileSummary) error {
	return nil
}

func (s *NoopStore) FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error {
	return nil
}

func (s *NoopStore) Close() error {
	return nil
}
