package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/handler"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPromptService struct {
	mock.Mock
}

func (m *MockPromptService) List(ctx context.Context) ([]dto.PromptResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.PromptResponse), args.Error(1)
}

func (m *MockPromptService) Get(ctx context.Context, id int) (*dto.PromptResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PromptResponse), args.Error(1)
}

func (m *MockPromptService) Clicks(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockPromptService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPromptService) Trending(ctx context.Context) ([]dto.PromptResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).([]dto.PromptResponse), args.Error(1)
}

func (m *MockPromptService) Click(ctx context.Context, id int, section string, actor *service.Actor) (*dto.PromptResponse, error) {
	args := m.Called(ctx, id, section, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PromptResponse), args.Error(1)
}

func (m *MockPromptService) Usage(ctx context.Context, id int) (*dto.PromptUsageResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PromptUsageResponse), args.Error(1)
}

func setupPromptRouter(svc *MockPromptService) *gin.Engine {
	r := newEngine()
	handler.NewPromptHandler(svc).RegisterRoutes(r.Group("/api/prompts"), testGuards())
	return r
}

func TestPromptHandler_Click(t *testing.T) {
	svc := new(MockPromptService)
	r := setupPromptRouter(svc)

	svc.On("Click", mock.Anything, 2, "", (*service.Actor)(nil)).Return(&dto.PromptResponse{ID: 2, Clicks: 1}, nil)
	w := doRequest(t, r, http.MethodPost, "/api/prompts/2/click", nil)
	assert.Equal(t, http.StatusOK, w.Code, "body is optional")
	assert.Equal(t, 1.0, decode(t, w)["clicks"])

	svc.On("Click", mock.Anything, 3, "sources", mock.Anything).Return(&dto.PromptResponse{ID: 3, Clicks: 5}, nil)
	w = doRequest(t, r, http.MethodPost, "/api/prompts/3/click", gin.H{"section": "sources"}, requestOpts{user: "alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	svc.On("Click", mock.Anything, 99, "", mock.Anything).Return(nil, fmt.Errorf("prompt %w", service.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, doRequest(t, r, http.MethodPost, "/api/prompts/99/click", nil).Code)

	assert.Equal(t, http.StatusBadRequest, doRequest(t, r, http.MethodPost, "/api/prompts/two/click", nil).Code)
	svc.AssertExpectations(t)
}

func TestPromptHandler_Reads(t *testing.T) {
	svc := new(MockPromptService)
	r := setupPromptRouter(svc)

	svc.On("Count", mock.Anything).Return(int64(12), nil)
	w := doRequest(t, r, http.MethodGet, "/api/prompts/count", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 12.0, decode(t, w)["count"])

	svc.On("Clicks", mock.Anything).Return(map[string]int64{"1": 4, "2": 0}, nil)
	w = doRequest(t, r, http.MethodGet, "/api/prompts/clicks", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4.0, decode(t, w)["1"])

	svc.On("Trending", mock.Anything).Return([]dto.PromptResponse{{ID: 2}, {ID: 1}}, nil)
	assert.Equal(t, http.StatusOK, doRequest(t, r, http.MethodGet, "/api/prompts/trending", nil).Code)

	svc.On("Usage", mock.Anything, 1).Return(&dto.PromptUsageResponse{ID: 1, Tracked: false}, nil)
	w = doRequest(t, r, http.MethodGet, "/api/prompts/1/usage", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}
