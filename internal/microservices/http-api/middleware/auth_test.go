package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medialit/internal/logger"
	"medialit/internal/microservices/http-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Ensure(ctx context.Context, id, username string) (*models.User, error) {
	args := m.Called(ctx, id, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Promote(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Demote(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(id, username, role string) Claims {
	return Claims{
		UserID:   id,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func setupAuthRouter(users *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	auth := NewAuthenticator(testSecret, "jwt_python_flask", users, logger.Discard())
	r := gin.New()
	whoami := func(c *gin.Context) {
		actor := CurrentActor(c)
		if actor == nil {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": actor.UserID, "username": actor.Username, "role": actor.Role})
	}
	r.GET("/private", auth.RequireAuth(), whoami)
	r.GET("/optional", auth.OptionalAuth(), whoami)
	r.GET("/admin", auth.RequireAuth(), RequireAdmin(), whoami)
	return r
}

func TestRequireAuth(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)
	id := uuid.NewString()
	users.On("Ensure", mock.Anything, id, "alice").
		Return(&models.User{ID: id, Username: "alice", Role: models.RoleUser}, nil)

	t.Run("MissingToken", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(id, "alice", "Admin")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, models.RoleUser, body["role"], "the claimed role is ignored")
	})

	t.Run("Cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: "jwt_python_flask", Value: signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(id, "alice", ""))})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("WrongSecret", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, "another-secret-another-secret-xx", validClaims(id, "alice", "")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("WrongAlgorithm", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS384, testSecret, validClaims(id, "alice", "")))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		claims := validClaims(id, "alice", "")
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, claims))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/optional", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"anonymous":true}`, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/optional", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "a bad token is not silently ignored")

	users.AssertNotCalled(t, "Ensure", mock.Anything, mock.Anything, mock.Anything)
}

func TestRequireAdmin(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)
	userID, adminID := uuid.NewString(), uuid.NewString()
	users.On("Ensure", mock.Anything, userID, "bob").
		Return(&models.User{ID: userID, Username: "bob", Role: models.RoleUser}, nil)
	users.On("Ensure", mock.Anything, adminID, "root").
		Return(&models.User{ID: adminID, Username: "root", Role: models.RoleAdmin}, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(userID, "bob", "Admin")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(adminID, "root", "")))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
