package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnpulse/internal/models"
)

// MockJobQueue is a mock implementation of jobs.JobQueue
type MockJobQueue struct {
	mock.Mock
}

func (m *MockJobQueue) EnqueueRetention(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockRetentionApplier is a mock implementation of worker.RetentionApplier
type MockRetentionApplier struct {
	mock.Mock
}

func (m *MockRetentionApplier) ApplyRetention(ctx context.Context, userID string) (*models.RetentionResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RetentionResult), args.Error(1)
}
