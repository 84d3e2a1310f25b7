package repository

import (
	"context"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MoodRepository interface {
	Create(ctx context.Context, mood *models.Mood) error
	Counts(ctx context.Context) (map[string]int64, error)
}

type moodRepository struct {
	db *gorm.DB
}

func NewMoodRepository(db *gorm.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, mood *models.Mood) error {
	return r.db.WithContext(ctx).Create(mood).Error
}

func (r *moodRepository) Counts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Mood  string
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&models.Mood{}).
		Select("mood, COUNT(*) AS total").
		Group("mood").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Mood] = row.Total
	}
	return counts, nil
}
