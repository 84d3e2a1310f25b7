package handler

import (
	"net/http"
	"strconv"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type PromptHandler struct {
	svc service.PromptService
}

func NewPromptHandler(svc service.PromptService) *PromptHandler {
	return &PromptHandler{svc: svc}
}

// RegisterRoutes registers prompt analytics routes under /api/prompts
func (h *PromptHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.GET("", h.List)
	rg.GET("/clicks", h.Clicks)
	rg.GET("/count", h.Count)
	rg.GET("/trending", h.Trending)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/usage", h.Usage)
	rg.POST("/:id/click", g.OptionalAuth, h.Click)
}

func parsePromptID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, &service.ValidationError{Field: "id", Message: "invalid prompt id"})
		return 0, false
	}
	return id, true
}

func (h *PromptHandler) List(c *gin.Context) {
	prompts, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

func (h *PromptHandler) Get(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}
	prompt, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) Clicks(c *gin.Context) {
	clicks, err := h.svc.Clicks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clicks)
}

func (h *PromptHandler) Count(c *gin.Context) {
	n, err := h.svc.Count(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h *PromptHandler) Trending(c *gin.Context) {
	prompts, err := h.svc.Trending(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompts)
}

// Click counts one use of a prompt. The body and its section are optional.
// POST /api/prompts/:id/click
func (h *PromptHandler) Click(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}
	var req dto.ClickPromptRequest
	if !bindJSON(c, &req, true) {
		return
	}
	prompt, err := h.svc.Click(c.Request.Context(), id, req.Section, middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prompt)
}

func (h *PromptHandler) Usage(c *gin.Context) {
	id, ok := parsePromptID(c)
	if !ok {
		return
	}
	usage, err := h.svc.Usage(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, usage)
}
