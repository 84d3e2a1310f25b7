package handler

import (
	"net/http"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MultiRatingHandler struct {
	svc service.MultiRatingService
}

func NewMultiRatingHandler(svc service.MultiRatingService) *MultiRatingHandler {
	return &MultiRatingHandler{svc: svc}
}

// RegisterRoutes registers survey routes under /api/multirating
func (h *MultiRatingHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.GET("/stats", h.Stats)
	rg.POST("/submit", g.RequireAuth, h.Submit)
	rg.GET("/my-ratings", g.RequireAuth, h.MyRatings)
	rg.GET("/responses", g.RequireAuth, g.RequireAdmin, h.Responses)
}

func (h *MultiRatingHandler) Submit(c *gin.Context) {
	var req dto.SubmitMultiRatingRequest
	if !bindJSON(c, &req, false) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req, middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MultiRatingHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MultiRatingHandler) Responses(c *gin.Context) {
	resp, err := h.svc.Responses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MultiRatingHandler) MyRatings(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	resp, err := h.svc.MyRatings(c.Request.Context(), actor.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
