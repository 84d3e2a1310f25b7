package dto

import (
	"time"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/stats"
)

// SubmitMultiRatingRequest carries the five survey answers. Missing answers stay nil.
type SubmitMultiRatingRequest struct {
	Q1 *int `json:"q1"`
	Q2 *int `json:"q2"`
	Q3 *int `json:"q3"`
	Q4 *int `json:"q4"`
	Q5 *int `json:"q5"`
}

// Answers returns the answers in question order.
func (r SubmitMultiRatingRequest) Answers() [5]*int {
	return [5]*int{r.Q1, r.Q2, r.Q3, r.Q4, r.Q5}
}

type MultiRatingResponse struct {
	ID        int64     `json:"id"`
	Q1        int       `json:"q1"`
	Q2        int       `json:"q2"`
	Q3        int       `json:"q3"`
	Q4        int       `json:"q4"`
	Q5        int       `json:"q5"`
	Average   float64   `json:"average"`
	UserID    *string   `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToMultiRatingResponse(m *models.MultiRating) MultiRatingResponse {
	resp := MultiRatingResponse{
		ID:        m.ID,
		Q1:        m.Q1,
		Q2:        m.Q2,
		Q3:        m.Q3,
		Q4:        m.Q4,
		Q5:        m.Q5,
		Average:   stats.RowAverage(m.Answers()),
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		resp.Username = m.User.Username
	}
	return resp
}

func FromModelsToMultiRatingResponses(ms []models.MultiRating) []MultiRatingResponse {
	out := make([]MultiRatingResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelToMultiRatingResponse(&ms[i]))
	}
	return out
}

// MultiRatingStatsResponse holds per-question averages.
type MultiRatingStatsResponse struct {
	TotalResponses int64                         `json:"total_responses"`
	Questions      map[string]stats.QuestionStat `json:"questions"`
}

// MultiRatingListResponse is the admin listing.
type MultiRatingListResponse struct {
	Responses []MultiRatingResponse `json:"responses"`
	Total     int                   `json:"total"`
}

// MyMultiRatingsResponse lists the caller's surveys with their overall average.
type MyMultiRatingsResponse struct {
	Ratings []MultiRatingResponse `json:"ratings"`
	Total   int                   `json:"total"`
	Average float64               `json:"average"`
}
