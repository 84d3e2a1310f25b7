package service

import (
	"context"
	"strings"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"

	"github.com/google/uuid"
)

type UserService interface {
	// Ensure mirrors a token subject into the users table and returns the stored row.
	Ensure(ctx context.Context, id, username string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Promote(ctx context.Context, username string) (*models.User, error)
	Demote(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Ensure(ctx context.Context, id, username string) (*models.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, invalid("user_id", "user_id must be a uuid")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username", "username is required")
	}
	user, err := s.userRepo.Ensure(ctx, id, username)
	if err != nil {
		return nil, storage(err)
	}
	return user, nil
}

func (s *userService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) Promote(ctx context.Context, username string) (*models.User, error) {
	return s.setRole(ctx, username, models.RoleAdmin)
}

func (s *userService) Demote(ctx context.Context, username string) (*models.User, error) {
	return s.setRole(ctx, username, models.RoleUser)
}

func (s *userService) setRole(ctx context.Context, username, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, invalid("username", "username is required")
	}
	user, err := s.userRepo.SetRole(ctx, username, role)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storage(err)
	}
	return users, nil
}
