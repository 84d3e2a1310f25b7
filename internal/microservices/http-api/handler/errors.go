package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"medialit/internal/logger"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto a status code and an {"error": ...} body.
// Storage and unexpected failures are logged and reported without internals.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		body := gin.H{"error": ve.Message}
		if ve.Field != "" {
			body["field"] = ve.Field
		}
		c.JSON(http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstreamRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "AI service is rate limited, try again shortly"})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI service is temporarily unavailable"})
	case errors.Is(err, service.ErrAssistantNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrAssistantNotConfigured.Error()})
	case errors.Is(err, service.ErrUpstreamMalformed), errors.Is(err, service.ErrUpstreamFailed):
		logger.L().Warn("upstream_failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": upstreamMessage(err)})
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		c.Status(499)
	default:
		logger.L().Error("request_failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.ErrStorageUnavailable.Error()})
	}
}

func upstreamMessage(err error) string {
	if errors.Is(err, service.ErrUpstreamMalformed) {
		return service.ErrUpstreamMalformed.Error()
	}
	return service.ErrUpstreamFailed.Error()
}

// bindJSON decodes the request body into req. An empty body leaves req at its zero value
// when allowEmpty is set.
func bindJSON(c *gin.Context, req any, allowEmpty bool) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return true
		}
		respondError(c, &service.ValidationError{Field: "body", Message: "invalid JSON body"})
		return false
	}
	return true
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, &service.ValidationError{Field: name, Message: "invalid " + name})
		return 0, false
	}
	return id, true
}
