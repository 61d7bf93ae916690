package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnpulse/internal/models"
)

// MockReportRepository is a mock implementation of repository.ReportRepository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Insert(ctx context.Context, report models.StudentReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) Get(ctx context.Context, reportID string) (*models.StudentReport, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StudentReport), args.Error(1)
}

func (m *MockReportRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentReport, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudentReport), args.Error(1)
}

func (m *MockReportRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, studentID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockInsightRepository is a mock implementation of repository.InsightRepository
type MockInsightRepository struct {
	mock.Mock
}

func (m *MockInsightRepository) Get(ctx context.Context, studentID string) (*models.InsightBatch, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InsightBatch), args.Error(1)
}

func (m *MockInsightRepository) Put(ctx context.Context, batch models.InsightBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockInsightRepository) DeleteBefore(ctx context.Context, studentID string, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, studentID, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

// MockMatchRepository is a mock implementation of repository.MatchRepository
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) SaveAll(ctx context.Context, matches []models.StudyMatch) error {
	args := m.Called(ctx, matches)
	return args.Error(0)
}

func (m *MockMatchRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudyMatch, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.StudyMatch), args.Error(1)
}
