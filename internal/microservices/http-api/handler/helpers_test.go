package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medialit/internal/microservices/http-api/handler"
	"medialit/internal/microservices/http-api/middleware"
	"medialit/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const (
	aliceID = "7f0c1a52-2d7e-4f5a-9a57-3f3f0c2b9a01"
	adminID = "0b8e0d6c-5b0e-4d34-8a55-1c1f4a6f2b02"
)

func intPtr(i int) *int { return &i }

// testGuards authenticate from X-Test-User / X-Test-Role headers instead of a token.
func testGuards() handler.Guards {
	setFromHeaders := func(c *gin.Context) bool {
		username := c.GetHeader("X-Test-User")
		if username == "" {
			return false
		}
		id := aliceID
		role := c.GetHeader("X-Test-Role")
		if role == models.RoleAdmin {
			id = adminID
		}
		if role == "" {
			role = models.RoleUser
		}
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUsername, username)
		c.Set(middleware.ContextRole, role)
		return true
	}
	return handler.Guards{
		RequireAuth: func(c *gin.Context) {
			if !setFromHeaders(c) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
				return
			}
			c.Next()
		},
		OptionalAuth: func(c *gin.Context) {
			setFromHeaders(c)
			c.Next()
		},
		RequireAdmin: middleware.RequireAdmin(),
		Throttle:     func(c *gin.Context) { c.Next() },
	}
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

type requestOpts struct {
	user string
	role string
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, opts ...requestOpts) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, o := range opts {
		if o.user != "" {
			req.Header.Set("X-Test-User", o.user)
		}
		if o.role != "" {
			req.Header.Set("X-Test-Role", o.role)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
