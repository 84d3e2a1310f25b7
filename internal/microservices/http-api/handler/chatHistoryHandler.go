package handler

import (
	"net/http"

	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ChatHistoryHandler struct {
	svc service.ChatHistoryService
}

func NewChatHistoryHandler(svc service.ChatHistoryService) *ChatHistoryHandler {
	return &ChatHistoryHandler{svc: svc}
}

// RegisterRoutes registers chat history routes under /api/chat-history. Owner-or-admin
// checks for a named user happen in the service.
func (h *ChatHistoryHandler) RegisterRoutes(rg *gin.RouterGroup, g Guards) {
	rg.GET("", g.RequireAuth, g.RequireAdmin, h.Counts)
	rg.GET("/:username", g.RequireAuth, h.History)
	rg.DELETE("/:username", g.RequireAuth, h.Clear)
}

func (h *ChatHistoryHandler) Counts(c *gin.Context) {
	counts, err := h.svc.Counts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *ChatHistoryHandler) History(c *gin.Context) {
	resp, err := h.svc.History(c.Request.Context(), middleware.CurrentActor(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ChatHistoryHandler) Clear(c *gin.Context) {
	resp, err := h.svc.Clear(c.Request.Context(), middleware.CurrentActor(c), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
