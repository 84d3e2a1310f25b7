package repository

import (
	"context"

	"medialit/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type MultiRatingRepository interface {
	Create(ctx context.Context, rating *models.MultiRating) error
	List(ctx context.Context, filter RatingFilter) ([]models.MultiRating, error)
	Sums(ctx context.Context) (sums [5]int64, total int64, err error)
}

type multiRatingRepository struct {
	db *gorm.DB
}

func NewMultiRatingRepository(db *gorm.DB) MultiRatingRepository {
	return &multiRatingRepository{db: db}
}

// Create stores all five answers as one row, so a survey is never partially saved.
func (r *multiRatingRepository) Create(ctx context.Context, rating *models.MultiRating) error {
	return r.db.WithContext(ctx).Create(rating).Error
}

func (r *multiRatingRepository) List(ctx context.Context, filter RatingFilter) ([]models.MultiRating, error) {
	var ratings []models.MultiRating
	q := r.db.WithContext(ctx).Preload("User")
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	err := q.Order("created_at DESC").Order("id DESC").Find(&ratings).Error
	return ratings, err
}

// Sums returns SUM(q1)..SUM(q5) and the row count from a single statement.
func (r *multiRatingRepository) Sums(ctx context.Context) ([5]int64, int64, error) {
	var row struct {
		S1, S2, S3, S4, S5 int64
		Total              int64
	}
	err := r.db.WithContext(ctx).Model(&models.MultiRating{}).
		Select("COALESCE(SUM(q1),0) AS s1, COALESCE(SUM(q2),0) AS s2, COALESCE(SUM(q3),0) AS s3, " +
			"COALESCE(SUM(q4),0) AS s4, COALESCE(SUM(q5),0) AS s5, COUNT(*) AS total").
		Scan(&row).Error
	if err != nil {
		return [5]int64{}, 0, err
	}
	return [5]int64{row.S1, row.S2, row.S3, row.S4, row.S5}, row.Total, nil
}
