package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/learnpulse/internal/models"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Upsert(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepository) ListByRole(ctx context.Context, role models.Role, excludeUID string) ([]models.User, error) {
	args := m.Called(ctx, role, excludeUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

// MockPrivacyRepository is a mock implementation of repository.PrivacyRepository
type MockPrivacyRepository struct {
	mock.Mock
}

func (m *MockPrivacyRepository) Get(ctx context.Context, userID string) (*models.PrivacySettings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PrivacySettings), args.Error(1)
}

func (m *MockPrivacyRepository) Put(ctx context.Context, settings models.PrivacySettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}
