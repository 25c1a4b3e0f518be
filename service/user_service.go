package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/daniil-5/hotelbooking/model"
	"github.com/daniil-5/hotelbooking/repository"
)

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.GetUserByID(ctx, id)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetUserByEmail(ctx, email)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.repo.GetUserByUsername(ctx, username)
}

func (s *userService) GetAll(ctx context.Context) ([]model.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email %q: %w", req.Email, model.ErrValidation)
	}
	if req.Username == "" {
		return nil, fmt.Errorf("username is required: %w", model.ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", model.ErrValidation)
	}
	return s.repo.CreateUser(ctx, req)
}

func (s *userService) Update(ctx context.Context, req model.UpdateUserRequest) (*model.User, error) {
	if req.ID == "" {
		return nil, fmt.Errorf("user id is required: %w", model.ErrValidation)
	}
	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email %q: %w", req.Email, model.ErrValidation)
	}
	return s.repo.UpdateUser(ctx, req)
}

func (s *userService) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}
