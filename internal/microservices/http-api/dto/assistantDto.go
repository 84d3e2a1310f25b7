package dto

import (
	"time"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/stats"
)

type ChatRequest struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ChatResponse struct {
	Success  bool   `json:"success"`
	Type     string `json:"type"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type ChatMessageResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

func FromModelsToChatMessageResponses(msgs []models.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, ChatMessageResponse{
			ID:        m.ID,
			Type:      m.Type,
			Question:  m.Question,
			Answer:    m.Answer,
			Timestamp: m.CreatedAt,
		})
	}
	return out
}

type ChatHistoryResponse struct {
	Username string                `json:"username"`
	Messages []ChatMessageResponse `json:"messages"`
	Total    int                   `json:"total"`
}

type ClearHistoryResponse struct {
	Cleared         bool  `json:"cleared"`
	MessagesDeleted int64 `json:"messages_deleted"`
}

type ThesisRequest struct {
	Topic            string   `json:"topic"`
	Position         string   `json:"position"`
	SupportingPoints []string `json:"supportingPoints"`
	ThesisType       string   `json:"thesisType"`
	Audience         string   `json:"audience"`
}

// Thesis is one generated statement as the model returns it.
type Thesis struct {
	Statement           string   `json:"statement" validate:"required"`
	Strength            int      `json:"strength" validate:"min=1,max=10"`
	StrengthExplanation string   `json:"strengthExplanation"`
	SupportingArguments []string `json:"supportingArguments"`
	Counterarguments    []string `json:"counterarguments"`
}

type ThesisResult struct {
	Theses          []Thesis `json:"theses" validate:"required,min=1,dive"`
	Recommendations string   `json:"recommendations"`
}

type ThesisResponse struct {
	Success bool         `json:"success"`
	Data    ThesisResult `json:"data"`
}

type AssistantHealthResponse struct {
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// FrontendActivity is the client-side activity the browser reports with a bias analysis request.
type FrontendActivity struct {
	GamePrompts     []string       `json:"game_prompts"`
	CitationCount   int            `json:"citation_count"`
	CitationFormats map[string]int `json:"citation_formats"`
	HasWorksCited   bool           `json:"has_works_cited"`
	ChatMessages    int            `json:"chat_messages"`
	ChatQuestions   []string       `json:"chat_questions"`
	ThesisCount     int            `json:"thesis_count"`
	ThesisTopics    []string       `json:"thesis_topics"`
}

type PerformanceSnapshot struct {
	Ratings       []int         `json:"ratings"`
	Average       float64       `json:"average"`
	TotalAttempts int           `json:"total_attempts"`
	Distribution  map[int]int64 `json:"distribution"`
	MostCommon    int           `json:"most_common"`
}

type GameSnapshot struct {
	Attempts    int      `json:"attempts"`
	BestTime    *int     `json:"best_time"`
	AllTimes    []int    `json:"all_times"`
	PromptsUsed []string `json:"prompts_used"`
}

type CitationSnapshot struct {
	TotalSaved    int            `json:"total_saved"`
	FormatsUsed   map[string]int `json:"formats_used"`
	HasWorksCited bool           `json:"has_works_cited"`
}

type ChatSnapshot struct {
	MessagesSent   int      `json:"messages_sent"`
	StoredMessages int      `json:"stored_messages"`
	Questions      []string `json:"questions_asked"`
}

type ThesisSnapshot struct {
	Generated int      `json:"generated"`
	Topics    []string `json:"topics"`
}

// UserSnapshot is everything known about one learner, sent to the model for analysis.
type UserSnapshot struct {
	Username     string                        `json:"username"`
	Performance  PerformanceSnapshot           `json:"performance"`
	Surveys      int                           `json:"surveys_completed"`
	SurveyScores map[string]stats.QuestionStat `json:"survey_averages"`
	Game         GameSnapshot                  `json:"game"`
	Citations    CitationSnapshot              `json:"citations"`
	Chat         ChatSnapshot                  `json:"chat"`
	Thesis       ThesisSnapshot                `json:"thesis"`
	PromptClicks map[string]int64              `json:"prompt_clicks"`
	Timestamp    time.Time                     `json:"timestamp"`
}

type LearningPatterns struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

type PersonalizedInsights struct {
	LeftLeaning  float64 `json:"left_leaning_tendencies" validate:"min=0,max=10"`
	RightLeaning float64 `json:"right_leaning_tendencies" validate:"min=0,max=10"`
	Center       float64 `json:"center_preference" validate:"min=0,max=10"`
	Explanation  string  `json:"explanation"`
}

// BiasAnalysis is the structured assessment, produced by the model or by the fallback.
type BiasAnalysis struct {
	BiasLikelihood         float64              `json:"bias_likelihood" validate:"min=1,max=10"`
	BiasExplanation        string               `json:"bias_explanation" validate:"required"`
	KnowledgeScore         float64              `json:"knowledge_score" validate:"min=1,max=10"`
	KnowledgeExplanation   string               `json:"knowledge_explanation"`
	LearningPatterns       LearningPatterns     `json:"learning_patterns"`
	PersonalizedInsights   PersonalizedInsights `json:"personalized_insights"`
	Recommendations        []string             `json:"recommendations"`
	InterestingObservation string               `json:"interesting_observation"`
}

type BiasAnalysisResponse struct {
	Success  bool         `json:"success"`
	User     string       `json:"user"`
	Analysis BiasAnalysis `json:"analysis"`
	Snapshot UserSnapshot `json:"raw_data"`
	Fallback bool         `json:"fallback"`
}

type MoodRequest struct {
	Mood string `json:"mood"`
}

type MoodResponse struct {
	ID        int64     `json:"id"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"created_at"`
}

type MoodSummaryResponse struct {
	Happy int64 `json:"happy"`
	Sad   int64 `json:"sad"`
}
