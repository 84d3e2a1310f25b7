package dto

import (
	"strconv"
	"time"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/stats"
)

// SubmitRatingRequest is the body of POST /api/performance/submit and PUT /api/performance/:id.
// Rating is a pointer so a missing field can be told apart from zero.
type SubmitRatingRequest struct {
	Rating *int `json:"rating"`
}

// RatingResponse for returning one stored rating
type RatingResponse struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	UserID    *string   `json:"user_id"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToRatingResponse converts a Rating model to RatingResponse DTO. The username is
// read through the user relation, never copied onto the rating row.
func FromModelToRatingResponse(rating *models.Rating) RatingResponse {
	resp := RatingResponse{
		ID:        rating.ID,
		Rating:    rating.Rating,
		UserID:    rating.UserID,
		CreatedAt: rating.CreatedAt,
		UpdatedAt: rating.UpdatedAt,
	}
	if rating.User != nil {
		resp.Username = rating.User.Username
	}
	return resp
}

func FromModelsToRatingResponses(ratings []models.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, FromModelToRatingResponse(&ratings[i]))
	}
	return out
}

// RatingListResponse wraps a rating listing.
type RatingListResponse struct {
	Ratings []RatingResponse `json:"ratings"`
	Total   int              `json:"total"`
}

// Feedback statuses relative to the rounded population average.
const (
	StatusUnderprepared = "underprepared"
	StatusOverprepared  = "overprepared"
	StatusAverage       = "average"
)

// SubmitRatingResponse is returned after a performance rating is stored.
type SubmitRatingResponse struct {
	Rating        RatingResponse `json:"rating"`
	YourRating    int            `json:"your_rating"`
	AverageRating int            `json:"average_rating"`
	Status        string         `json:"status"`
	Message       string         `json:"message"`
	Resources     []string       `json:"resources"`
}

// RatingStatsResponse summarises every stored rating.
type RatingStatsResponse struct {
	TotalResponses     int64            `json:"total_responses"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	MostCommon         int              `json:"most_common"`
}

// DistributionKeys renders a 1..5 histogram with string keys for JSON.
func DistributionKeys(dist map[int]int64) map[string]int64 {
	out := make(map[string]int64, stats.MaxRating)
	for v := stats.MinRating; v <= stats.MaxRating; v++ {
		out[strconv.Itoa(v)] = dist[v]
	}
	return out
}
