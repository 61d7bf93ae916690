package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnpulse/internal/models"
)

// MockMetricsRepository is a mock implementation of repository.MetricsRepository
type MockMetricsRepository struct {
	mock.Mock
}

func (m *MockMetricsRepository) Get(ctx context.Context, studentID string) (*models.PerformanceMetrics, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PerformanceMetrics), args.Error(1)
}

func (m *MockMetricsRepository) Put(ctx context.Context, metrics models.PerformanceMetrics) error {
	args := m.Called(ctx, metrics)
	return args.Error(0)
}

// MockGapRepository is a mock implementation of repository.GapRepository
type MockGapRepository struct {
	mock.Mock
}

func (m *MockGapRepository) Merge(ctx context.Context, gaps []models.LearningGap) error {
	args := m.Called(ctx, gaps)
	return args.Error(0)
}

func (m *MockGapRepository) ListByStudent(ctx context.Context, studentID string) ([]models.LearningGap, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LearningGap), args.Error(1)
}
