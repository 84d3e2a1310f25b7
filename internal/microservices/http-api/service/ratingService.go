package service

import (
	"context"
	"fmt"
	"math"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/stats"
)

type RatingService interface {
	Submit(ctx context.Context, value *int, owner *Actor) (*dto.SubmitRatingResponse, error)
	Get(ctx context.Context, id int64) (*dto.RatingResponse, error)
	List(ctx context.Context, owner *string) (*dto.RatingListResponse, error)
	Update(ctx context.Context, id int64, value *int) (*dto.RatingResponse, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (*dto.RatingStatsResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
}

func NewRatingService(ratingRepo repository.RatingRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo}
}

// validateRating checks a 1..5 answer and names the field it came from.
func validateRating(field string, value *int) (int, error) {
	if value == nil {
		return 0, invalid(field, "%s is required", field)
	}
	if !stats.InRange(*value) {
		return 0, invalid(field, "%s must be %d-%d", field, stats.MinRating, stats.MaxRating)
	}
	return *value, nil
}

// Submit stores a performance rating and compares it with the rounded population average,
// which already includes the new rating.
func (s *ratingService) Submit(ctx context.Context, value *int, owner *Actor) (*dto.SubmitRatingResponse, error) {
	v, err := validateRating("rating", value)
	if err != nil {
		return nil, err
	}

	rating := &models.Rating{UserID: owner.OwnerID(), Rating: v}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, storage(err)
	}

	summary, err := s.ratingRepo.Summary(ctx, repository.RatingFilter{})
	if err != nil {
		return nil, storage(err)
	}
	avg := int(math.Round(stats.AverageOf(summary.Sum, summary.Count)))

	resp := feedback(v, avg)
	resp.Rating = dto.FromModelToRatingResponse(rating)
	if owner != nil {
		resp.Rating.Username = owner.Username
	}
	return resp, nil
}

func feedback(rating, avg int) *dto.SubmitRatingResponse {
	resp := &dto.SubmitRatingResponse{YourRating: rating, AverageRating: avg}
	switch {
	case rating < avg:
		resp.Status = dto.StatusUnderprepared
		resp.Message = fmt.Sprintf("The majority felt %d/5 prepared. You rated %d/5, so you may be underprepared.", avg, rating)
		resp.Resources = []string{"Review the study guide", "Practice more examples", "Watch tutorial videos"}
	case rating > avg:
		resp.Status = dto.StatusOverprepared
		resp.Message = fmt.Sprintf("Great! You rated %d/5 while most felt %d/5. You're well-prepared!", rating, avg)
		resp.Resources = []string{"Help others who need it", "Try advanced challenges", "Keep up the great work"}
	default:
		resp.Status = dto.StatusAverage
		resp.Message = fmt.Sprintf("You're right on track! Most people also felt %d/5 prepared.", avg)
		resp.Resources = []string{"Continue your current pace", "Review any weak areas", "Stay consistent"}
	}
	return resp
}

func (s *ratingService) Get(ctx context.Context, id int64) (*dto.RatingResponse, error) {
	rating, err := s.ratingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "rating")
	}
	resp := dto.FromModelToRatingResponse(rating)
	return &resp, nil
}

// List returns ratings newest first, optionally only those owned by one user.
func (s *ratingService) List(ctx context.Context, owner *string) (*dto.RatingListResponse, error) {
	ratings, err := s.ratingRepo.List(ctx, repository.RatingFilter{UserID: owner})
	if err != nil {
		return nil, storage(err)
	}
	out := dto.FromModelsToRatingResponses(ratings)
	return &dto.RatingListResponse{Ratings: out, Total: len(out)}, nil
}

func (s *ratingService) Update(ctx context.Context, id int64, value *int) (*dto.RatingResponse, error) {
	v, err := validateRating("rating", value)
	if err != nil {
		return nil, err
	}
	rating, err := s.ratingRepo.UpdateValue(ctx, id, v)
	if err != nil {
		return nil, notFound(err, "rating")
	}
	resp := dto.FromModelToRatingResponse(rating)
	return &resp, nil
}

func (s *ratingService) Delete(ctx context.Context, id int64) error {
	if err := s.ratingRepo.Delete(ctx, id); err != nil {
		return notFound(err, "rating")
	}
	return nil
}

// Stats never fails on an empty store: the average is neutral and every bucket is present.
func (s *ratingService) Stats(ctx context.Context) (*dto.RatingStatsResponse, error) {
	summary, err := s.ratingRepo.Summary(ctx, repository.RatingFilter{})
	if err != nil {
		return nil, storage(err)
	}
	dist := stats.CompleteDistribution(summary.Distribution)
	return &dto.RatingStatsResponse{
		TotalResponses:     summary.Count,
		AverageRating:      stats.Round(stats.AverageOf(summary.Sum, summary.Count), 2),
		RatingDistribution: dto.DistributionKeys(dist),
		MostCommon:         stats.MostCommon(dist),
	}, nil
}
