package service

import (
	"context"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/stats"
)

type MultiRatingService interface {
	Submit(ctx context.Context, req dto.SubmitMultiRatingRequest, owner *Actor) (*dto.MultiRatingResponse, error)
	Stats(ctx context.Context) (*dto.MultiRatingStatsResponse, error)
	Responses(ctx context.Context) (*dto.MultiRatingListResponse, error)
	MyRatings(ctx context.Context, userID string) (*dto.MyMultiRatingsResponse, error)
}

type multiRatingService struct {
	repo repository.MultiRatingRepository
}

func NewMultiRatingService(repo repository.MultiRatingRepository) MultiRatingService {
	return &multiRatingService{repo: repo}
}

// Submit validates q1..q5 in order and reports the first bad one. Nothing is written
// unless all five pass.
func (s *multiRatingService) Submit(ctx context.Context, req dto.SubmitMultiRatingRequest, owner *Actor) (*dto.MultiRatingResponse, error) {
	var answers [5]int
	for i, v := range req.Answers() {
		a, err := validateRating(stats.Questions[i], v)
		if err != nil {
			return nil, err
		}
		answers[i] = a
	}

	m := &models.MultiRating{
		UserID: owner.OwnerID(),
		Q1:     answers[0],
		Q2:     answers[1],
		Q3:     answers[2],
		Q4:     answers[3],
		Q5:     answers[4],
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, storage(err)
	}
	resp := dto.FromModelToMultiRatingResponse(m)
	if owner != nil {
		resp.Username = owner.Username
	}
	return &resp, nil
}

func (s *multiRatingService) Stats(ctx context.Context) (*dto.MultiRatingStatsResponse, error) {
	sums, total, err := s.repo.Sums(ctx)
	if err != nil {
		return nil, storage(err)
	}
	return &dto.MultiRatingStatsResponse{
		TotalResponses: total,
		Questions:      stats.QuestionAveragesFromSums(sums, total),
	}, nil
}

func (s *multiRatingService) Responses(ctx context.Context) (*dto.MultiRatingListResponse, error) {
	rows, err := s.repo.List(ctx, repository.RatingFilter{})
	if err != nil {
		return nil, storage(err)
	}
	out := dto.FromModelsToMultiRatingResponses(rows)
	return &dto.MultiRatingListResponse{Responses: out, Total: len(out)}, nil
}

// MyRatings averages the per-survey averages to one decimal; zero when the user has none.
func (s *multiRatingService) MyRatings(ctx context.Context, userID string) (*dto.MyMultiRatingsResponse, error) {
	rows, err := s.repo.List(ctx, repository.RatingFilter{UserID: &userID})
	if err != nil {
		return nil, storage(err)
	}
	out := dto.FromModelsToMultiRatingResponses(rows)

	var avg float64
	if len(rows) > 0 {
		var sum float64
		for i := range rows {
			a := rows[i].Answers()
			for _, v := range a {
				sum += float64(v)
			}
		}
		avg = stats.Round(sum/float64(len(rows)*len(stats.Questions)), 1)
	}
	return &dto.MyMultiRatingsResponse{Ratings: out, Total: len(out), Average: avg}, nil
}
