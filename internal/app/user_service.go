package app

import (
	"context"

	"github.com/abhis0101/ShareIT/internal/clock"
	"github.com/abhis0101/ShareIT/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user domain.User) error
	UpdateUser(ctx context.Context, user domain.User) error
	GetUser(ctx context.Context, userID string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// UserService manages user accounts. Email uniqueness is enforced by the
// store and surfaces as domain.ErrEmailExists.
type UserService struct {
	repo  UserRepository
	clock clock.Clock
}

func NewUserService(repo UserRepository, clk clock.Clock) *UserService {
	return &UserService{
		repo:  repo,
		clock: clk,
	}
}

type CreateUserInput struct {
	Name  string
	Email string
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (domain.User, error) {
	user := domain.User{
		ID:        newUUID(),
		Name:      in.Name,
		Email:     in.Email,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

type UpdateUserInput struct {
	UserID string
	Name   *string
	Email  *string
}

// UpdateUser applies a partial update; nil fields keep their stored
// value.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (domain.User, error) {
	user, err := s.repo.GetUser(ctx, in.UserID)
	if err != nil {
		return domain.User{}, err
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	return s.repo.DeleteUser(ctx, userID)
}
