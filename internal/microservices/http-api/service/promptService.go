package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"medialit/internal/cache"
	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/stats"
)

// PromptUsageStore keeps the optional per-section and per-user click breakdown.
type PromptUsageStore interface {
	Enabled() bool
	RecordPromptUsage(ctx context.Context, promptID int, section, userID string) error
	PromptUsage(ctx context.Context, promptID int) (*cache.PromptUsage, error)
}

type PromptService interface {
	List(ctx context.Context) ([]dto.PromptResponse, error)
	Get(ctx context.Context, id int) (*dto.PromptResponse, error)
	Clicks(ctx context.Context) (map[string]int64, error)
	Count(ctx context.Context) (int64, error)
	Trending(ctx context.Context) ([]dto.PromptResponse, error)
	Click(ctx context.Context, id int, section string, actor *Actor) (*dto.PromptResponse, error)
	Usage(ctx context.Context, id int) (*dto.PromptUsageResponse, error)
}

type promptService struct {
	promptRepo repository.PromptRepository
	usage      PromptUsageStore
	now        func() time.Time
	logger     *slog.Logger
}

func NewPromptService(promptRepo repository.PromptRepository, usage PromptUsageStore, now func() time.Time, logger *slog.Logger) PromptService {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &promptService{promptRepo: promptRepo, usage: usage, now: now, logger: logger}
}

// List returns every prompt with its trending score computed at read time.
func (s *promptService) List(ctx context.Context) ([]dto.PromptResponse, error) {
	prompts, err := s.promptRepo.List(ctx)
	if err != nil {
		return nil, storage(err)
	}
	now := s.now().UTC()
	out := make([]dto.PromptResponse, 0, len(prompts))
	for i := range prompts {
		p := &prompts[i]
		out = append(out, dto.FromModelToPromptResponse(p, stats.TrendingScore(p.Clicks, p.LastClickedAt, now)))
	}
	return out, nil
}

func (s *promptService) Get(ctx context.Context, id int) (*dto.PromptResponse, error) {
	p, err := s.promptRepo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "prompt")
	}
	resp := dto.FromModelToPromptResponse(p, stats.TrendingScore(p.Clicks, p.LastClickedAt, s.now().UTC()))
	return &resp, nil
}

// Clicks maps prompt id to click count.
func (s *promptService) Clicks(ctx context.Context) (map[string]int64, error) {
	prompts, err := s.promptRepo.List(ctx)
	if err != nil {
		return nil, storage(err)
	}
	out := make(map[string]int64, len(prompts))
	for _, p := range prompts {
		out[strconv.Itoa(p.PromptID)] = p.Clicks
	}
	return out, nil
}

func (s *promptService) Count(ctx context.Context) (int64, error) {
	n, err := s.promptRepo.Count(ctx)
	if err != nil {
		return 0, storage(err)
	}
	return n, nil
}

// Trending orders prompts by trending score, then clicks, then id.
func (s *promptService) Trending(ctx context.Context) ([]dto.PromptResponse, error) {
	out, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TrendingScore != out[j].TrendingScore {
			return out[i].TrendingScore > out[j].TrendingScore
		}
		if out[i].Clicks != out[j].Clicks {
			return out[i].Clicks > out[j].Clicks
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Click counts one click. The database counter is the source of truth; a failure to
// record the Redis breakdown is logged and does not fail the click.
func (s *promptService) Click(ctx context.Context, id int, section string, actor *Actor) (*dto.PromptResponse, error) {
	now := s.now().UTC()
	p, err := s.promptRepo.IncrementClick(ctx, id, now)
	if err != nil {
		return nil, notFound(err, "prompt")
	}

	var userID string
	if actor != nil {
		userID = actor.UserID
	}
	if s.usage != nil {
		if err := s.usage.RecordPromptUsage(ctx, id, section, userID); err != nil {
			s.logger.Warn("prompt_usage_record_failed", "prompt_id", id, "error", err)
		}
	}

	resp := dto.FromModelToPromptResponse(p, stats.TrendingScore(p.Clicks, p.LastClickedAt, now))
	return &resp, nil
}

func (s *promptService) Usage(ctx context.Context, id int) (*dto.PromptUsageResponse, error) {
	p, err := s.promptRepo.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "prompt")
	}
	resp := &dto.PromptUsageResponse{ID: p.PromptID, Clicks: p.Clicks, Sections: map[string]int64{}}
	if s.usage == nil || !s.usage.Enabled() {
		return resp, nil
	}

	usage, err := s.usage.PromptUsage(ctx, id)
	if err != nil {
		return nil, storage(err)
	}
	resp.Sections = usage.Sections
	resp.DistinctUsers = usage.DistinctUsers
	resp.Tracked = true
	return resp, nil
}
