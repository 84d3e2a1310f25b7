package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/handler"
	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/service"
	"medialit/internal/stats"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) RegisterPerson(ctx context.Context, name string) (*dto.PersonResponse, bool, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*dto.PersonResponse), args.Bool(1), args.Error(2)
}

func (m *MockMediaService) GetPerson(ctx context.Context, name string) (*dto.PersonResponse, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PersonResponse), args.Error(1)
}

func (m *MockMediaService) SubmitScore(ctx context.Context, player string, seconds *int, owner *service.Actor) (*dto.ScoreResponse, error) {
	args := m.Called(ctx, player, seconds, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScoreResponse), args.Error(1)
}

func (m *MockMediaService) UpdateScore(ctx context.Context, id int64, seconds *int) (*dto.ScoreResponse, error) {
	args := m.Called(ctx, id, seconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ScoreResponse), args.Error(1)
}

func (m *MockMediaService) DeleteScore(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockMediaService) Leaderboard(ctx context.Context, limit int) (*dto.LeaderboardResponse, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LeaderboardResponse), args.Error(1)
}

func (m *MockMediaService) FetchMeta(ctx context.Context, rawURL string) (*dto.CitationMetaResponse, error) {
	args := m.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CitationMetaResponse), args.Error(1)
}

func setupMediaRouter(svc *MockMediaService) *gin.Engine {
	r := newEngine()
	handler.NewMediaHandler(svc).RegisterRoutes(r.Group("/api/media"), testGuards())
	return r
}

func TestMediaHandler_RegisterPerson(t *testing.T) {
	svc := new(MockMediaService)
	r := setupMediaRouter(svc)

	svc.On("RegisterPerson", mock.Anything, "Ada").Return(&dto.PersonResponse{ID: 1, Name: "Ada"}, true, nil).Once()
	w := doRequest(t, r, http.MethodPost, "/api/media/person/get", gin.H{"name": "Ada"})
	assert.Equal(t, http.StatusCreated, w.Code)

	svc.On("RegisterPerson", mock.Anything, "Ada").Return(&dto.PersonResponse{ID: 1, Name: "Ada"}, false, nil).Once()
	w = doRequest(t, r, http.MethodPost, "/api/media/person/get", gin.H{"name": "Ada"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ada", decode(t, w)["name"])

	svc.On("GetPerson", mock.Anything, "Nobody").Return(nil, fmt.Errorf("person %w", service.ErrNotFound))
	w = doRequest(t, r, http.MethodGet, "/api/media/person/get?name=Nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	svc.AssertExpectations(t)
}

func TestMediaHandler_SubmitScore(t *testing.T) {
	t.Run("BodyAcceptsUsernameField", func(t *testing.T) {
		svc := new(MockMediaService)
		svc.On("SubmitScore", mock.Anything, "Ada", intPtr(42), (*service.Actor)(nil)).
			Return(&dto.ScoreResponse{ID: 3, Player: "Ada", Time: 42}, nil)

		w := doRequest(t, setupMediaRouter(svc), http.MethodPost, "/api/media/score", gin.H{"username": "Ada", "time": 42})
		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("PathForm", func(t *testing.T) {
		svc := new(MockMediaService)
		svc.On("SubmitScore", mock.Anything, "Ada", intPtr(17), mock.Anything).
			Return(&dto.ScoreResponse{ID: 4, Player: "Ada", Time: 17}, nil)

		w := doRequest(t, setupMediaRouter(svc), http.MethodPost, "/api/media/score/Ada/17", nil)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 17.0, decode(t, w)["time"])
	})

	t.Run("PathTimeNotANumber", func(t *testing.T) {
		svc := new(MockMediaService)
		w := doRequest(t, setupMediaRouter(svc), http.MethodPost, "/api/media/score/Ada/fast", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "time", decode(t, w)["field"])
		svc.AssertNotCalled(t, "SubmitScore", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("TimeOutOfRange", func(t *testing.T) {
		svc := new(MockMediaService)
		svc.On("SubmitScore", mock.Anything, "Ada", intPtr(0), mock.Anything).
			Return(nil, &service.ValidationError{Field: "time", Message: "time must be between 1 and 3600 seconds"})

		w := doRequest(t, setupMediaRouter(svc), http.MethodPost, "/api/media/score", gin.H{"user": "Ada", "time": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMediaHandler_ScoreAdminRoutes(t *testing.T) {
	svc := new(MockMediaService)
	r := setupMediaRouter(svc)
	admin := requestOpts{user: "root", role: models.RoleAdmin}

	w := doRequest(t, r, http.MethodDelete, "/api/media/score/1", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/media/score/1", gin.H{"time": 20}, requestOpts{user: "alice"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	svc.On("DeleteScore", mock.Anything, int64(1)).Return(fmt.Errorf("score %w", service.ErrNotFound))
	w = doRequest(t, r, http.MethodDelete, "/api/media/score/1", nil, admin)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "score not found", decode(t, w)["error"])

	svc.On("DeleteScore", mock.Anything, int64(2)).Return(nil)
	w = doRequest(t, r, http.MethodDelete, "/api/media/score/2", nil, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2.0, decode(t, w)["id"])

	svc.On("UpdateScore", mock.Anything, int64(3), intPtr(25)).Return(&dto.ScoreResponse{ID: 3, Player: "Ada", Time: 25}, nil)
	w = doRequest(t, r, http.MethodPut, "/api/media/score/3", gin.H{"time": 25}, admin)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25.0, decode(t, w)["time"])

	svc.On("UpdateScore", mock.Anything, int64(3), intPtr(9000)).
		Return(nil, &service.ValidationError{Field: "time", Message: "time must be between 1 and 3600 seconds"})
	w = doRequest(t, r, http.MethodPut, "/api/media/score/3", gin.H{"time": 9000}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPut, "/api/media/score/abc", gin.H{"time": 25}, admin)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestMediaHandler_Leaderboard(t *testing.T) {
	svc := new(MockMediaService)
	r := setupMediaRouter(svc)
	board := &dto.LeaderboardResponse{Entries: []stats.Entry{{Rank: 1, Player: "Ada", BestTime: 30}}, Total: 1}

	svc.On("Leaderboard", mock.Anything, 5).Return(board, nil).Once()
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/media/leaderboard?limit=5", nil).Code)

	// unparsable limits fall back to the default
	svc.On("Leaderboard", mock.Anything, 0).Return(board, nil).Twice()
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/media/leaderboard?limit=lots", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/media/", nil).Code)
	svc.AssertExpectations(t)
}

func TestMediaHandler_FetchMeta(t *testing.T) {
	svc := new(MockMediaService)
	r := setupMediaRouter(svc)

	svc.On("FetchMeta", mock.Anything, "ftp://example.com").
		Return(nil, &service.ValidationError{Field: "url", Message: "url must be an absolute http(s) url"})
	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodGet, "/api/media/fetch_meta?url=ftp://example.com", nil).Code)

	svc.On("FetchMeta", mock.Anything, "https://down.example").
		Return(nil, fmt.Errorf("%w: connection refused", service.ErrUpstreamFailed))
	assert.Equal(t, http.StatusBadGateway, doRequest(t, r, http.MethodGet, "/api/media/fetch_meta?url=https://down.example", nil).Code)
}
