package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnpulse/internal/models"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Insert(ctx context.Context, event models.ProgressEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockProgressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.ProgressEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProgressEvent), args.Error(1)
}

func (m *MockProgressRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, studentID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
