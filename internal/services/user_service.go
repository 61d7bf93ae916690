package services

import (
	"context"

	"github.com/vytor/learnpulse/internal/errors"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

// UserService handles user profiles derived from identity tokens
type UserService interface {
	EnsureUser(ctx context.Context, uid string, role models.Role, displayName, email string) (*models.User, error)
	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListStudents(ctx context.Context) ([]models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	now      Clock
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, now Clock) UserService {
	return &userService{userRepo: userRepo, now: orNow(now)}
}

func (s *userService) EnsureUser(ctx context.Context, uid string, role models.Role, displayName, email string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("users")

	if uid == "" {
		return nil, errors.NewValidationError("uid", "cannot be empty")
	}
	if role != models.RoleStudent && role != models.RoleTeacher {
		return nil, errors.NewValidationError("role", "must be student or teacher")
	}

	user, err := s.userRepo.Upsert(ctx, models.User{
		UID:         uid,
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		CreatedAt:   s.now(),
	})
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("users")
	log.Debug("getting user: uid=%s", uid)

	user, err := s.userRepo.Get(ctx, uid)
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if user == nil {
		return nil, errors.NewNotFoundError("user", uid)
	}
	return user, nil
}

func (s *userService) ListStudents(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("users")

	users, err := s.userRepo.ListByRole(ctx, models.RoleStudent, "")
	if err != nil {
		log.Error("failed to list students: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("users")

	users, err := s.userRepo.List(ctx)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return users, nil
}
