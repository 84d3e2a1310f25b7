package handler

import (
	"net/http"

	"medialit/internal/microservices/http-api/dto"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type MoodHandler struct {
	svc service.MoodService
}

func NewMoodHandler(svc service.MoodService) *MoodHandler {
	return &MoodHandler{svc: svc}
}

func (h *MoodHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Record)
	rg.GET("/summary", h.Summary)
}

func (h *MoodHandler) Record(c *gin.Context) {
	var req dto.MoodRequest
	if !bindJSON(c, &req, false) {
		return
	}
	resp, err := h.svc.Record(c.Request.Context(), req.Mood)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *MoodHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
