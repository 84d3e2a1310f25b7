package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"medialit/internal/citation"
	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/stats"
)

const minPersonNameLen = 2

// MetaFetcher reads citation metadata for a URL.
type MetaFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*citation.Meta, error)
}

type MediaService interface {
	RegisterPerson(ctx context.Context, name string) (person *dto.PersonResponse, created bool, err error)
	GetPerson(ctx context.Context, name string) (*dto.PersonResponse, error)
	SubmitScore(ctx context.Context, player string, seconds *int, owner *Actor) (*dto.ScoreResponse, error)
	UpdateScore(ctx context.Context, id int64, seconds *int) (*dto.ScoreResponse, error)
	DeleteScore(ctx context.Context, id int64) error
	Leaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error)
	FetchMeta(ctx context.Context, rawURL string) (*dto.CitationMetaResponse, error)
}

type mediaService struct {
	mediaRepo repository.MediaRepository
	fetcher   MetaFetcher
}

func NewMediaService(mediaRepo repository.MediaRepository, fetcher MetaFetcher) MediaService {
	return &mediaService{mediaRepo: mediaRepo, fetcher: fetcher}
}

// normalizeName trims a player name and enforces the minimum length.
func normalizeName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid(field, "%s is required", field)
	}
	if utf8.RuneCountInString(name) < minPersonNameLen {
		return "", invalid(field, "%s must be at least %d characters", field, minPersonNameLen)
	}
	return name, nil
}

// RegisterPerson returns the player with this name, creating it when new.
func (s *mediaService) RegisterPerson(ctx context.Context, name string) (*dto.PersonResponse, bool, error) {
	name, err := normalizeName("name", name)
	if err != nil {
		return nil, false, err
	}
	person, created, err := s.mediaRepo.RegisterPerson(ctx, name)
	if err != nil {
		return nil, false, storage(err)
	}
	resp := dto.FromModelToPersonResponse(person)
	return &resp, created, nil
}

func (s *mediaService) GetPerson(ctx context.Context, name string) (*dto.PersonResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}
	person, err := s.mediaRepo.FindPersonByName(ctx, name)
	if err != nil {
		return nil, notFound(err, "person")
	}
	resp := dto.FromModelToPersonResponse(person)
	return &resp, nil
}

// SubmitScore records a game run. The elapsed time is checked before the player is
// resolved, so a bad time never registers a new player.
func (s *mediaService) SubmitScore(ctx context.Context, player string, seconds *int, owner *Actor) (*dto.ScoreResponse, error) {
	name, err := normalizeName("user", player)
	if err != nil {
		return nil, err
	}
	secs, err := validateGameTime(seconds)
	if err != nil {
		return nil, err
	}

	person, _, err := s.mediaRepo.RegisterPerson(ctx, name)
	if err != nil {
		return nil, storage(err)
	}

	score := &models.GameScore{PlayerID: person.ID, UserID: owner.OwnerID(), Seconds: secs}
	if err := s.mediaRepo.CreateScore(ctx, score); err != nil {
		return nil, storage(err)
	}
	resp := dto.FromModelToScoreResponse(score, person.Name)
	return &resp, nil
}

// validateGameTime rejects missing and implausible run times.
func validateGameTime(seconds *int) (int, error) {
	if seconds == nil {
		return 0, invalid("time", "time is required")
	}
	if *seconds < 1 || *seconds > stats.MaxGameSeconds {
		return 0, invalid("time", "time must be between 1 and %d seconds", stats.MaxGameSeconds)
	}
	return *seconds, nil
}

// UpdateScore corrects a recorded run. Admin only, enforced by the route.
func (s *mediaService) UpdateScore(ctx context.Context, id int64, seconds *int) (*dto.ScoreResponse, error) {
	secs, err := validateGameTime(seconds)
	if err != nil {
		return nil, err
	}
	score, err := s.mediaRepo.UpdateScore(ctx, id, secs)
	if err != nil {
		return nil, notFound(err, "score")
	}
	player := ""
	if score.Player != nil {
		player = score.Player.Name
	}
	resp := dto.FromModelToScoreResponse(score, player)
	return &resp, nil
}

// DeleteScore removes a run from the leaderboard. Admin only, enforced by the route.
func (s *mediaService) DeleteScore(ctx context.Context, id int64) error {
	if err := s.mediaRepo.DeleteScore(ctx, id); err != nil {
		return notFound(err, "score")
	}
	return nil
}

// Leaderboard lists each player's best time, fastest first.
func (s *mediaService) Leaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	limit = stats.ClampLimit(limit)
	best, err := s.mediaRepo.Leaderboard(ctx, limit)
	if err != nil {
		return nil, storage(err)
	}
	// the query already sorts; this pins the tie-break to the same rule the pure ranking uses
	stats.SortBest(best)
	entries := stats.Rank(best, limit)
	return &dto.LeaderboardResponse{Entries: entries, Total: len(entries)}, nil
}

func (s *mediaService) FetchMeta(ctx context.Context, rawURL string) (*dto.CitationMetaResponse, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, invalid("url", "url is required")
	}
	meta, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		if errors.Is(err, citation.ErrInvalidURL) {
			return nil, invalid("url", "%s", err.Error())
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
	return &dto.CitationMetaResponse{
		Title:     meta.Title,
		Author:    meta.Author,
		Published: meta.Published,
		Site:      meta.Site,
		URL:       meta.URL,
	}, nil
}
