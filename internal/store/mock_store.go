package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockStore is a mock implementation of Store using testify/mock.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateRun(ctx context.Context, run Run) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockStore) SaveFileSummary(ctx context.Context, runID uuid.UUID, fs FileSummary) error {
	args := m.Called(ctx, runID, fs)
	return args.Error(0)
}

func (m *MockStore) FinishRun(ctx context.Context, runID uuid.UUID, stats RunStats) error {
	args := m.Called(ctx, runID, stats)
	return args.Error(0)
}

func (m *MockStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
