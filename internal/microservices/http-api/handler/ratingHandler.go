package handler

import (
	"context"
	"net/http"
	"time"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// RatingHandler serves the performance self-rating endpoints.
type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes registers rating routes under /api/performance
func (h *RatingHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.POST("/submit", g.OptionalAuth, h.Submit)
	rg.GET("", g.OptionalAuth, h.List)
	rg.GET("/stats", h.Stats)
	rg.GET("/:id", h.Get)

	// admin only
	rg.PUT("/:id", g.RequireAuth, g.RequireAdmin, h.Update)
	rg.DELETE("/:id", g.RequireAuth, g.RequireAdmin, h.Delete)
}

// Submit stores a rating and returns feedback against the class average
// POST /api/performance/submit
func (h *RatingHandler) Submit(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var req dto.SubmitRatingRequest
	if !bindJSON(c, &req, false) {
		return
	}

	resp, err := h.ratingService.Submit(ctx, req.Rating, middleware.CurrentActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns ratings newest first; ?mine=true narrows to the caller's own
// GET /api/performance
func (h *RatingHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var owner *string
	if c.Query("mine") == "true" {
		actor := middleware.CurrentActor(c)
		if actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		owner = actor.OwnerID()
	}

	resp, err := h.ratingService.List(ctx, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/performance/:id
func (h *RatingHandler) Get(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	resp, err := h.ratingService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /api/performance/:id
func (h *RatingHandler) Update(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	var req dto.SubmitRatingRequest
	if !bindJSON(c, &req, false) {
		return
	}
	resp, err := h.ratingService.Update(c.Request.Context(), id, req.Rating)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DELETE /api/performance/:id
func (h *RatingHandler) Delete(c *gin.Context) {
	id, ok := parseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.ratingService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted successfully", "id": id})
}

// Stats summarises every rating; never fails on an empty store
// GET /api/performance/stats
func (h *RatingHandler) Stats(c *gin.Context) {
	resp, err := h.ratingService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
