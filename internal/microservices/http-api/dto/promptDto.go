package dto

import (
	"time"

	"medialit/internal/microservices/http-api/models"
)

// PromptResponse is a prompt template with its live trending score.
type PromptResponse struct {
	ID            int        `json:"id"`
	Text          string     `json:"text"`
	Clicks        int64      `json:"clicks"`
	LastClickedAt *time.Time `json:"last_clicked_at"`
	TrendingScore float64    `json:"trending_score"`
}

func FromModelToPromptResponse(p *models.PromptClick, score float64) PromptResponse {
	return PromptResponse{
		ID:            p.PromptID,
		Text:          p.Text,
		Clicks:        p.Clicks,
		LastClickedAt: p.LastClickedAt,
		TrendingScore: score,
	}
}

type ClickPromptRequest struct {
	Section string `json:"section"`
}

type PromptUsageResponse struct {
	ID            int              `json:"id"`
	Clicks        int64            `json:"clicks"`
	Sections      map[string]int64 `json:"sections"`
	DistinctUsers int64            `json:"distinct_users"`
	Tracked       bool             `json:"tracked"`
}
