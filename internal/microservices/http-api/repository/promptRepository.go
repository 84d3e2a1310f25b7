package repository

import (
	"context"
	"time"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type PromptRepository interface {
	List(ctx context.Context) ([]models.PromptClick, error)
	Get(ctx context.Context, promptID int) (*models.PromptClick, error)
	IncrementClick(ctx context.Context, promptID int, at time.Time) (*models.PromptClick, error)
	Count(ctx context.Context) (int64, error)
}

type promptRepository struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) PromptRepository {
	return &promptRepository{db: db}
}

func (r *promptRepository) List(ctx context.Context) ([]models.PromptClick, error) {
	var prompts []models.PromptClick
	err := r.db.WithContext(ctx).Order("prompt_id ASC").Find(&prompts).Error
	return prompts, err
}

func (r *promptRepository) Get(ctx context.Context, promptID int) (*models.PromptClick, error) {
	var prompt models.PromptClick
	if err := r.db.WithContext(ctx).Where("prompt_id = ?", promptID).First(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

// IncrementClick bumps the counter with a single UPDATE so concurrent clicks never
// overwrite each other, then reads the row back in the same transaction.
func (r *promptRepository) IncrementClick(ctx context.Context, promptID int, at time.Time) (*models.PromptClick, error) {
	var prompt models.PromptClick
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PromptClick{}).
			Where("prompt_id = ?", promptID).
			Updates(map[string]any{
				"clicks":          gorm.Expr("clicks + 1"),
				"last_clicked_at": at,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("prompt_id = ?", promptID).First(&prompt).Error
	})
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (r *promptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PromptClick{}).Count(&count).Error
	return count, err
}
