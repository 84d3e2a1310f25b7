package handler

import (
	"net/http"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// AssistantHandler fronts the generative language model.
type AssistantHandler struct {
	assistant service.AssistantService
	analysis  service.AnalysisService
}

func NewAssistantHandler(assistant service.AssistantService, analysis service.AnalysisService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, analysis: analysis}
}

// RegisterRoutes registers assistant routes under /api
func (h *AssistantHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.POST("/chat", g.OptionalAuth, g.Throttle, h.Chat)
	rg.POST("/thesis/generate", g.OptionalAuth, g.Throttle, h.GenerateThesis)
	rg.GET("/thesis/health", h.Health)
	rg.POST("/analyze-bias/:username", g.RequireAuth, g.Throttle, h.AnalyzeBias)
}

// POST /api/chat
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if !bindJSON(c, &req, false) {
		return
	}
	resp, err := h.assistant.Chat(c.Request.Context(), req, middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/thesis/generate
func (h *AssistantHandler) GenerateThesis(c *gin.Context) {
	var req dto.ThesisRequest
	if !bindJSON(c, &req, false) {
		return
	}
	resp, err := h.assistant.GenerateThesis(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/thesis/health
func (h *AssistantHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.assistant.Health())
}

// AnalyzeBias assesses one learner. The body carries activity only the browser knows about
// and may be empty.
// POST /api/analyze-bias/:username
func (h *AssistantHandler) AnalyzeBias(c *gin.Context) {
	var activity dto.FrontendActivity
	if !bindJSON(c, &activity, true) {
		return
	}
	resp, err := h.analysis.AnalyzeBias(c.Request.Context(), middleware.CurrentActor(c), c.Param("username"), activity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
