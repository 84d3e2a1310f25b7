package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check can probe.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler takes named checks; a nil check is reported as disabled.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/check-conn", h.CheckConn)
	r.GET("/health", h.Health)
}

// GET /check-conn
func (h *HealthHandler) CheckConn(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "API is alive"})
}

// Health probes every dependency and answers 503 if any of them fails.
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if check == nil {
			results[name] = "disabled"
			continue
		}
		if err := check(ctx); err != nil {
			results[name] = "down"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "up"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	c.JSON(status, gin.H{"status": overall, "checks": results})
}
