package repository

import (
	"context"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// RatingFilter narrows List. A nil UserID lists every rating.
type RatingFilter struct {
	UserID *string
}

// RatingSummary is the rating histogram read in one statement, so count, sum and
// distribution always agree with each other.
type RatingSummary struct {
	Count        int64
	Sum          int64
	Distribution map[int]int64
}

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	GetByID(ctx context.Context, id int64) (*models.Rating, error)
	List(ctx context.Context, filter RatingFilter) ([]models.Rating, error)
	UpdateValue(ctx context.Context, id int64, value int) (*models.Rating, error)
	Delete(ctx context.Context, id int64) error
	Summary(ctx context.Context, filter RatingFilter) (*RatingSummary, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a rating; the id comes from the database sequence.
func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&rating, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// List returns ratings newest first.
func (r *ratingRepository) List(ctx context.Context, filter RatingFilter) ([]models.Rating, error) {
	var ratings []models.Rating
	q := r.db.WithContext(ctx).Preload("User")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&ratings).Error
	return ratings, err
}

// UpdateValue changes a rating inside a transaction and returns the stored row.
func (r *ratingRepository) UpdateValue(ctx context.Context, id int64, value int) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rating, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&rating).Update("rating", value).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&rating, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// Delete a rating by id
func (r *ratingRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Rating{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) Summary(ctx context.Context, filter RatingFilter) (*RatingSummary, error) {
	var rows []struct {
		Rating int
		Total  int64
	}
	q := r.db.WithContext(ctx).Model(&models.Rating{}).Select("rating, COUNT(*) AS total")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if err := q.Group("rating").Scan(&rows).Error; err != nil {
		return nil, err
	}

	summary := &RatingSummary{Distribution: make(map[int]int64, len(rows))}
	for _, row := range rows {
		summary.Distribution[row.Rating] = row.Total
		summary.Count += row.Total
		summary.Sum += int64(row.Rating) * row.Total
	}
	return summary, nil
}
