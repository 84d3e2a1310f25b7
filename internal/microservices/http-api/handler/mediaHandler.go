package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	svc service.MediaService
}

func NewMediaHandler(svc service.MediaService) *MediaHandler {
	return &MediaHandler{svc: svc}
}

// RegisterRoutes registers the media bias game routes under /api/media
func (h *MediaHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.POST("/person/get", h.RegisterPerson)
	rg.GET("/person/get", h.GetPerson)
	rg.POST("/score", g.OptionalAuth, h.SubmitScore)
	rg.POST("/score/:username/:time", g.OptionalAuth, h.SubmitScorePath)
	rg.PUT("/score/:id", g.RequireAuth, g.RequireAdmin, h.UpdateScore)
	rg.DELETE("/score/:id", g.RequireAuth, g.RequireAdmin, h.DeleteScore)
	rg.GET("/leaderboard", h.Leaderboard)
	rg.GET("/", h.Leaderboard)
	rg.GET("/fetch_meta", h.FetchMeta)
}

// RegisterPerson returns 201 for a new player and 200 when the name already exists
// POST /api/media/person/get
func (h *MediaHandler) RegisterPerson(c *gin.Context) {
	var req dto.RegisterPersonRequest
	if !bindJSON(c, &req, false) {
		return
	}
	person, created, err := h.svc.RegisterPerson(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, person)
}

// GET /api/media/person/get?name=
func (h *MediaHandler) GetPerson(c *gin.Context) {
	person, err := h.svc.GetPerson(c.Request.Context(), c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, person)
}

// POST /api/media/score
func (h *MediaHandler) SubmitScore(c *gin.Context) {
	var req dto.SubmitScoreRequest
	if !bindJSON(c, &req, false) {
		return
	}
	h.submitScore(c, req.Player(), req.Time)
}

// POST /api/media/score/:username/:time
func (h *MediaHandler) SubmitScorePath(c *gin.Context) {
	secs, err := strconv.Atoi(c.Param("time"))
	if err != nil {
		respondError(c, &service.ValidationError{Field: "time", Message: "time must be an integer number of seconds"})
		return
	}
	h.submitScore(c, c.Param("username"), &secs)
}

func (h *MediaHandler) submitScore(c *gin.Context, player string, secs *int) {
	score, err := h.svc.SubmitScore(c.Request.Context(), player, secs, middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, score)
}

// PUT /api/media/score/:id
func (h *MediaHandler) UpdateScore(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateScoreRequest
	if !bindJSON(c, &req, false) {
		return
	}
	score, err := h.svc.UpdateScore(c.Request.Context(), id, req.Time)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, score)
}

// DELETE /api/media/score/:id
func (h *MediaHandler) DeleteScore(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteScore(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Score deleted successfully", "id": id})
}

// Leaderboard lists best times; limit defaults to 50 and is capped at 100
// GET /api/media/leaderboard?limit=
func (h *MediaHandler) Leaderboard(c *gin.Context) {
	limit := 0
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}
	resp, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/media/fetch_meta?url=
func (h *MediaHandler) FetchMeta(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	meta, err := h.svc.FetchMeta(ctx, c.Query("url"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}
