package repository

import (
	"context"
	"errors"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/stats"

	"gorm.io/gorm"
)

type MediaRepository interface {
	FindPersonByName(ctx context.Context, name string) (*models.MediaPerson, error)
	RegisterPerson(ctx context.Context, name string) (person *models.MediaPerson, created bool, err error)
	CreateScore(ctx context.Context, score *models.GameScore) error
	UpdateScore(ctx context.Context, id int64, seconds int) (*models.GameScore, error)
	DeleteScore(ctx context.Context, id int64) error
	Leaderboard(ctx context.Context, limit int) ([]stats.PlayerBest, error)
	ScoresByUser(ctx context.Context, userID string) ([]models.GameScore, error)
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) FindPersonByName(ctx context.Context, name string) (*models.MediaPerson, error) {
	var person models.MediaPerson
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// RegisterPerson returns the existing player with this name or creates it. The unique
// index on name settles concurrent registrations.
func (r *mediaRepository) RegisterPerson(ctx context.Context, name string) (*models.MediaPerson, bool, error) {
	person, err := r.FindPersonByName(ctx, name)
	if err == nil {
		return person, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	person = &models.MediaPerson{Name: name}
	if err := r.db.WithContext(ctx).Create(person).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, findErr := r.FindPersonByName(ctx, name)
			return existing, false, findErr
		}
		return nil, false, err
	}
	return person, true, nil
}

func (r *mediaRepository) CreateScore(ctx context.Context, score *models.GameScore) error {
	return r.db.WithContext(ctx).Create(score).Error
}

// UpdateScore corrects the time of one run inside a transaction and returns the stored
// row with its player.
func (r *mediaRepository) UpdateScore(ctx context.Context, id int64, seconds int) (*models.GameScore, error) {
	var score models.GameScore
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&score, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&score).Update("seconds", seconds).Error; err != nil {
			return err
		}
		return tx.Preload("Player").First(&score, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *mediaRepository) DeleteScore(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.GameScore{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Leaderboard returns each player's best time, fastest first. Players tied on time keep
// the order of their first submission.
func (r *mediaRepository) Leaderboard(ctx context.Context, limit int) ([]stats.PlayerBest, error) {
	best := make([]stats.PlayerBest, 0)
	err := r.db.WithContext(ctx).
		Table("game_scores AS s").
		Select("p.name AS player, MIN(s.seconds) AS best_time, MIN(s.id) AS first_id").
		Joins("JOIN media_persons AS p ON p.id = s.player_id").
		Group("p.id, p.name").
		Order("best_time ASC").
		Order("first_id ASC").
		Limit(limit).
		Scan(&best).Error
	if err != nil {
		return nil, err
	}
	return best, nil
}

func (r *mediaRepository) ScoresByUser(ctx context.Context, userID string) ([]models.GameScore, error) {
	var scores []models.GameScore
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&scores).Error
	return scores, err
}
