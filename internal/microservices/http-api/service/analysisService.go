package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"medialit/internal/gemini"
	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/stats"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// AnalysisRepos groups the stores a learner snapshot is read from.
type AnalysisRepos struct {
	Users   repository.UserRepository
	Ratings repository.RatingRepository
	Surveys repository.MultiRatingRepository
	Media   repository.MediaRepository
	Prompts repository.PromptRepository
	Chat    repository.ChatHistoryRepository
}

type AnalysisService interface {
	AnalyzeBias(ctx context.Context, actor *Actor, username string, activity dto.FrontendActivity) (*dto.BiasAnalysisResponse, error)
}

type analysisService struct {
	repos     AnalysisRepos
	generator TextGenerator
	validate  *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

func NewAnalysisService(repos AnalysisRepos, generator TextGenerator, validate *validator.Validate, now func() time.Time, logger *slog.Logger) AnalysisService {
	if validate == nil {
		validate = validator.New()
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &analysisService{repos: repos, generator: generator, validate: validate, now: now, logger: logger}
}

// AnalyzeBias builds the learner snapshot and asks the model to assess it. When the model
// is unavailable or answers with something unusable, a deterministic assessment built from
// the snapshot is returned instead and Fallback is set.
func (s *analysisService) AnalyzeBias(ctx context.Context, actor *Actor, username string, activity dto.FrontendActivity) (*dto.BiasAnalysisResponse, error) {
	user, err := resolveOwned(ctx, s.repos.Users, actor, username)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.snapshot(ctx, user.ID, user.Username, activity)
	if err != nil {
		return nil, err
	}

	resp := &dto.BiasAnalysisResponse{Success: true, User: user.Username, Snapshot: *snapshot}

	analysis, err := s.askModel(ctx, snapshot)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.logger.Warn("bias_analysis_fallback", "username", user.Username, "error", err)
		resp.Analysis = FallbackAnalysis(snapshot)
		resp.Fallback = true
		return resp, nil
	}
	resp.Analysis = *analysis
	return resp, nil
}

// snapshot reads every source concurrently. Any storage failure fails the whole snapshot.
func (s *analysisService) snapshot(ctx context.Context, userID, username string, activity dto.FrontendActivity) (*dto.UserSnapshot, error) {
	snap := &dto.UserSnapshot{
		Username: username,
		Citations: dto.CitationSnapshot{
			TotalSaved:    activity.CitationCount,
			FormatsUsed:   activity.CitationFormats,
			HasWorksCited: activity.HasWorksCited,
		},
		Chat:      dto.ChatSnapshot{MessagesSent: activity.ChatMessages, Questions: activity.ChatQuestions},
		Thesis:    dto.ThesisSnapshot{Generated: activity.ThesisCount, Topics: activity.ThesisTopics},
		Timestamp: s.now().UTC(),
	}
	snap.Game.PromptsUsed = activity.GamePrompts

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ratings, err := s.repos.Ratings.List(gctx, repository.RatingFilter{UserID: &userID})
		if err != nil {
			return err
		}
		values := make([]int, 0, len(ratings))
		for _, r := range ratings {
			values = append(values, r.Rating)
		}
		dist := stats.Distribution(values)
		snap.Performance.Ratings = values
		snap.Performance.Distribution = dist
		snap.Performance.MostCommon = stats.MostCommon(dist)
		snap.Performance.TotalAttempts = int(stats.Count(dist))
		if len(values) > 0 {
			snap.Performance.Average = stats.Round(stats.Average(values), 2)
		}
		return nil
	})

	g.Go(func() error {
		surveys, err := s.repos.Surveys.List(gctx, repository.RatingFilter{UserID: &userID})
		if err != nil {
			return err
		}
		answers := make([][5]int, 0, len(surveys))
		for i := range surveys {
			answers = append(answers, surveys[i].Answers())
		}
		snap.Surveys = len(surveys)
		snap.SurveyScores = stats.QuestionAverages(answers)
		return nil
	})

	g.Go(func() error {
		scores, err := s.repos.Media.ScoresByUser(gctx, userID)
		if err != nil {
			return err
		}
		times := make([]int, 0, len(scores))
		attempts := make([]stats.Attempt, 0, len(scores))
		for _, sc := range scores {
			times = append(times, sc.Seconds)
			attempts = append(attempts, stats.Attempt{ID: sc.ID, Player: username, Seconds: sc.Seconds})
		}
		// every attempt belongs to the same user, so there is at most one row
		if best := stats.BestTimes(attempts); len(best) > 0 {
			snap.Game.BestTime = &best[0].BestTime
		}
		snap.Game.AllTimes = times
		snap.Game.Attempts = len(times)
		return nil
	})

	g.Go(func() error {
		prompts, err := s.repos.Prompts.List(gctx)
		if err != nil {
			return err
		}
		clicks := make(map[string]int64, len(prompts))
		for _, p := range prompts {
			clicks[strconv.Itoa(p.PromptID)] = p.Clicks
		}
		snap.PromptClicks = clicks
		return nil
	})

	g.Go(func() error {
		msgs, err := s.repos.Chat.ListByUser(gctx, userID)
		if err != nil {
			return err
		}
		snap.Chat.StoredMessages = len(msgs)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, storage(err)
	}
	return snap, nil
}

func (s *analysisService) askModel(ctx context.Context, snap *dto.UserSnapshot) (*dto.BiasAnalysis, error) {
	if s.generator == nil || !s.generator.Configured() {
		return nil, ErrAssistantNotConfigured
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}

	text, err := s.generator.GenerateText(ctx, analysisPrompt(data))
	if err != nil {
		return nil, upstream(err)
	}

	var analysis dto.BiasAnalysis
	if err := gemini.DecodeJSON(text, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	if err := s.validate.Struct(analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamMalformed, err)
	}
	return &analysis, nil
}

func analysisPrompt(snapshot []byte) string {
	return `You are an educational assistant reviewing a student's activity in a media literacy course.
Assess how likely the student is to be influenced by media bias and how well they understand the material.

Student data:
` + string(snapshot) + `

Reply with JSON only, no markdown, in exactly this shape:
{
  "bias_likelihood": <1-10>,
  "bias_explanation": "<2-3 sentences>",
  "knowledge_score": <1-10>,
  "knowledge_explanation": "<assessment>",
  "learning_patterns": {"strengths": ["..."], "weaknesses": ["..."]},
  "personalized_insights": {
    "left_leaning_tendencies": <0-10>,
    "right_leaning_tendencies": <0-10>,
    "center_preference": <0-10>,
    "explanation": "<why>"
  },
  "recommendations": ["...", "...", "..."],
  "interesting_observation": "<one insight>"
}`
}

// FallbackAnalysis is the assessment used when the model cannot provide one. It depends
// only on the snapshot, so the same data always yields the same answer.
func FallbackAnalysis(snap *dto.UserSnapshot) dto.BiasAnalysis {
	knowledge := 5.0
	if snap.Performance.Average > 0 {
		knowledge = snap.Performance.Average
	}

	strengths := []string{"Getting started with media literacy", "Learning citation formats"}
	if snap.Game.Attempts > 0 {
		strengths[0] = fmt.Sprintf("Completed %d game attempts", snap.Game.Attempts)
	}
	if snap.Citations.TotalSaved > 0 {
		strengths[1] = fmt.Sprintf("Saved %d citations", snap.Citations.TotalSaved)
	}

	return dto.BiasAnalysis{
		BiasLikelihood:       5,
		BiasExplanation:      "A full analysis was not available. This is a basic assessment based on the data on record.",
		KnowledgeScore:       knowledge,
		KnowledgeExplanation: fmt.Sprintf("Based on a self-reported performance rating of %g/5.", snap.Performance.Average),
		LearningPatterns: dto.LearningPatterns{
			Strengths:  strengths,
			Weaknesses: []string{"Continue practicing with diverse news sources", "Expand critical thinking skills"},
		},
		PersonalizedInsights: dto.PersonalizedInsights{
			LeftLeaning:  5,
			RightLeaning: 5,
			Center:       5,
			Explanation:  "Not enough data for a political lean analysis. Keep engaging with sources across the spectrum.",
		},
		Recommendations: []string{
			"Complete more activities to generate deeper insights",
			"Ask the chat assistant about sources you are unfamiliar with",
			"Practice identifying bias in different citation styles",
		},
		InterestingObservation: "You're building foundational media literacy skills. Keep exploring!",
	}
}
