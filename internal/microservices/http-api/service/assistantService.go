package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"medialit/internal/gemini"
	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/repository"

	"github.com/go-playground/validator/v10"
)

// storedAnswerLimit caps how much of an answer is kept in chat history.
const storedAnswerLimit = 200

// TextGenerator is the generative language model behind the assistant endpoints.
type TextGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type AssistantService interface {
	Chat(ctx context.Context, req dto.ChatRequest, actor *Actor) (*dto.ChatResponse, error)
	GenerateThesis(ctx context.Context, req dto.ThesisRequest) (*dto.ThesisResponse, error)
	Health() dto.AssistantHealthResponse
}

type assistantService struct {
	generator TextGenerator
	chatRepo  repository.ChatHistoryRepository
	validate  *validator.Validate
	logger    *slog.Logger
}

func NewAssistantService(generator TextGenerator, chatRepo repository.ChatHistoryRepository, validate *validator.Validate, logger *slog.Logger) AssistantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &assistantService{generator: generator, chatRepo: chatRepo, validate: validate, logger: logger}
}

// Chat answers a hint or info question. Signed-in callers get the exchange appended to
// their chat history; failing to store it does not fail the answer.
func (s *assistantService) Chat(ctx context.Context, req dto.ChatRequest, actor *Actor) (*dto.ChatResponse, error) {
	msgType := strings.ToLower(strings.TrimSpace(req.Type))
	message := strings.TrimSpace(req.Message)
	if msgType == "" {
		return nil, invalid("type", "missing required fields: type and message")
	}
	if message == "" {
		return nil, invalid("message", "missing required fields: type and message")
	}
	if msgType != models.ChatTypeHint && msgType != models.ChatTypeInfo {
		return nil, invalid("type", "type must be %q or %q", models.ChatTypeHint, models.ChatTypeInfo)
	}
	if !s.generator.Configured() {
		return nil, ErrAssistantNotConfigured
	}

	answer, err := s.generator.GenerateText(ctx, chatPrompt(msgType, message))
	if err != nil {
		return nil, upstream(err)
	}

	if actor != nil && actor.UserID != "" {
		entry := &models.ChatMessage{
			UserID:   actor.UserID,
			Type:     msgType,
			Question: message,
			Answer:   truncate(answer, storedAnswerLimit),
		}
		if err := s.chatRepo.Create(ctx, entry); err != nil {
			s.logger.Warn("chat_history_store_failed", "user_id", actor.UserID, "error", err)
		}
	}

	return &dto.ChatResponse{Success: true, Type: msgType, Question: message, Answer: answer}, nil
}

func chatPrompt(msgType, message string) string {
	if msgType == models.ChatTypeHint {
		return fmt.Sprintf(`You help students learn media literacy. Give a helpful hint, not the full answer, for this question: %s

Rules:
- Explain how to evaluate the source.
- Do not state whether the source leans left, center or right.`, message)
	}
	return fmt.Sprintf(`You are an educational assistant for media literacy. Give factual, neutral information about: %s
Keep the answer near 200 characters.

Rules:
- Do not classify sources as left, center or right, liberal or conservative.
- Focus on verifiable facts students can use to judge the source themselves.`, message)
}

// GenerateThesis asks the model for thesis statements and checks the shape of its answer.
func (s *assistantService) GenerateThesis(ctx context.Context, req dto.ThesisRequest) (*dto.ThesisResponse, error) {
	req.Topic = strings.TrimSpace(req.Topic)
	req.Position = strings.TrimSpace(req.Position)
	req.Audience = strings.TrimSpace(req.Audience)
	if req.Topic == "" {
		return nil, invalid("topic", "topic and position are required")
	}
	if req.Position == "" {
		return nil, invalid("position", "topic and position are required")
	}
	if req.ThesisType == "" {
		req.ThesisType = "Argumentative"
	}
	if !s.generator.Configured() {
		return nil, ErrAssistantNotConfigured
	}

	text, err := s.generator.GenerateText(ctx, thesisPrompt(req))
	if err != nil {
		return nil, upstream(err)
	}

	var result dto.ThesisResult
	if err := gemini.DecodeJSON(text, &result); err != nil {
		s.logger.Warn("thesis_parse_failed", "error", err)
		return nil, ErrUpstreamMalformed
	}
	if err := s.validate.Struct(result); err != nil {
		s.logger.Warn("thesis_invalid", "error", err)
		return nil, fmt.Errorf("%w: invalid response structure", ErrUpstreamMalformed)
	}
	return &dto.ThesisResponse{Success: true, Data: result}, nil
}

func thesisPrompt(req dto.ThesisRequest) string {
	var sb strings.Builder
	sb.WriteString("Write 3 clear, natural sounding thesis statements for an essay.\n\n")
	fmt.Fprintf(&sb, "Topic: %s\nPosition: %s\nThesis type: %s\n", req.Topic, req.Position, req.ThesisType)
	if len(req.SupportingPoints) > 0 {
		fmt.Fprintf(&sb, "Supporting points: %s\n", strings.Join(req.SupportingPoints, ", "))
	}
	if req.Audience != "" {
		fmt.Fprintf(&sb, "Audience: %s\n", req.Audience)
	}
	sb.WriteString(`
For each statement give a strength from 1 to 10, a short explanation of the strength,
2-3 supporting arguments and 2-3 counterarguments. Add overall recommendations.

Reply with JSON only, no markdown, in exactly this shape:
{"theses":[{"statement":"...","strength":8,"strengthExplanation":"...","supportingArguments":["..."],"counterarguments":["..."]}],"recommendations":"..."}`)
	return sb.String()
}

func (s *assistantService) Health() dto.AssistantHealthResponse {
	if s.generator.Configured() {
		return dto.AssistantHealthResponse{Configured: true, Message: "Gemini API is configured"}
	}
	return dto.AssistantHealthResponse{Configured: false, Message: "Gemini API key not found"}
}

// upstream maps a generator failure onto the service taxonomy. Upstream 429 and 503 keep
// their meaning; everything else is a generic upstream failure.
func upstream(err error) error {
	var httpErr *gemini.HTTPError
	switch {
	case errors.Is(err, gemini.ErrNotConfigured):
		return ErrAssistantNotConfigured
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", ErrUpstreamRateLimited, err)
	case errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusServiceUnavailable:
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrUpstreamFailed, err)
	}
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
