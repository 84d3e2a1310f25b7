package repository

import (
	"context"
	"errors"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Ensure(ctx context.Context, id, username string) (*models.User, error)
	SetRole(ctx context.Context, username, role string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	// return nil on error so a zero-value user is never mistaken for a hit
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Ensure returns the user with the given id, creating it on first sight. Two requests
// racing on the same new account both end up with the stored row.
func (r *userRepository) Ensure(ctx context.Context, id, username string) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err == nil {
		if username != "" && user.Username != username {
			if err := r.db.WithContext(ctx).Model(user).Update("username", username).Error; err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &models.User{ID: id, Username: username, Role: models.RoleUser}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.FindByID(ctx, id)
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SetRole(ctx context.Context, username, role string) (*models.User, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Update("role", role)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByUsername(ctx, username)
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).Order("username ASC").Find(&users).Error
	return users, err
}
