package dto

import (
	"time"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/stats"
)

type RegisterPersonRequest struct {
	Name string `json:"name"`
}

type PersonResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToPersonResponse(p *models.MediaPerson) PersonResponse {
	return PersonResponse{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

// SubmitScoreRequest accepts the player under either "user" or "username".
type SubmitScoreRequest struct {
	User     string `json:"user"`
	Username string `json:"username"`
	Time     *int   `json:"time"`
}

// Player returns whichever player field was set, preferring "user".
func (r SubmitScoreRequest) Player() string {
	if r.User != "" {
		return r.User
	}
	return r.Username
}

// UpdateScoreRequest is the admin correction of a recorded run.
type UpdateScoreRequest struct {
	Time *int `json:"time"`
}

type ScoreResponse struct {
	ID        int64     `json:"id"`
	Player    string    `json:"player"`
	Time      int       `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToScoreResponse(s *models.GameScore, player string) ScoreResponse {
	return ScoreResponse{ID: s.ID, Player: player, Time: s.Seconds, CreatedAt: s.CreatedAt}
}

type LeaderboardResponse struct {
	Entries []stats.Entry `json:"entries"`
	Total   int           `json:"total"`
}

// CitationMetaResponse is what fetch_meta could read from an article page.
type CitationMetaResponse struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Published string `json:"published"`
	Site      string `json:"site"`
	URL       string `json:"url"`
}
