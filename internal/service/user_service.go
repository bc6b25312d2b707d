package service

import (
	"context"
	"errors"

	"pyforge/internal/model"
	"pyforge/internal/repository"
)

// ErrUserNotFound is returned when no profile exists for the requested user.
var ErrUserNotFound = errors.New("user not found")

// UserService manages learner profiles.
type UserService interface {
	// Sync creates the profile on first login and refreshes the identity
	// fields afterwards. Plan and counters are untouched.
	Sync(ctx context.Context, u *model.User) (*model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Sync(ctx context.Context, u *model.User) (*model.User, error) {
	if err := s.userRepo.UpsertUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}
