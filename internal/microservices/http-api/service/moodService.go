package service

import (
	"context"
	"strings"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"
)

const (
	MoodHappy = "happy"
	MoodSad   = "sad"
)

type MoodService interface {
	Record(ctx context.Context, mood string) (*dto.MoodResponse, error)
	Summary(ctx context.Context) (*dto.MoodSummaryResponse, error)
}

type moodService struct {
	moodRepo repository.MoodRepository
}

func NewMoodService(moodRepo repository.MoodRepository) MoodService {
	return &moodService{moodRepo: moodRepo}
}

func (s *moodService) Record(ctx context.Context, mood string) (*dto.MoodResponse, error) {
	mood = strings.ToLower(strings.TrimSpace(mood))
	if mood != MoodHappy && mood != MoodSad {
		return nil, invalid("mood", "mood must be %q or %q", MoodHappy, MoodSad)
	}
	m := &models.Mood{Mood: mood}
	if err := s.moodRepo.Create(ctx, m); err != nil {
		return nil, storage(err)
	}
	return &dto.MoodResponse{ID: m.ID, Mood: m.Mood, CreatedAt: m.CreatedAt}, nil
}

func (s *moodService) Summary(ctx context.Context) (*dto.MoodSummaryResponse, error) {
	counts, err := s.moodRepo.Counts(ctx)
	if err != nil {
		return nil, storage(err)
	}
	return &dto.MoodSummaryResponse{Happy: counts[MoodHappy], Sad: counts[MoodSad]}, nil
}
