package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"medialit/internal/microservices/http-api/models"
	"medialit/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
)

// Claims are the fields this service reads from an access token. Tokens are issued elsewhere.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator validates HS256 tokens and mirrors their subject into the users table.
type Authenticator struct {
	secret     []byte
	cookieName string
	users      service.UserService
	logger     *slog.Logger
}

func NewAuthenticator(secret, cookieName string, users service.UserService, logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Authenticator{
		secret:     []byte(secret),
		cookieName: cookieName,
		users:      users,
		logger:     logger.With("component", "auth"),
	}
}

// ParseToken checks the signature, algorithm and expiry of a token and returns its claims.
func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Username == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// extractToken reads "Authorization: Bearer <token>" and falls back to the session cookie.
func (a *Authenticator) extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if a.cookieName != "" {
		if cookie, err := c.Cookie(a.cookieName); err == nil {
			return cookie
		}
	}
	return ""
}

// authenticate resolves the caller. The stored role is used, never the role claimed in the token.
func (a *Authenticator) authenticate(c *gin.Context) (*service.Actor, error) {
	tokenString := a.extractToken(c)
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims, err := a.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := a.users.Ensure(c.Request.Context(), claims.UserID, claims.Username)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return &service.Actor{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func setActor(c *gin.Context, actor *service.Actor) {
	c.Set(ContextUserID, actor.UserID)
	c.Set(ContextUsername, actor.Username)
	c.Set(ContextRole, actor.Role)
}

func (a *Authenticator) abort(c *gin.Context, err error) {
	if errors.Is(err, ErrMissingToken) || errors.Is(err, ErrInvalidToken) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	a.logger.Error("auth_user_sync_failed", "error", err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
}

// RequireAuth rejects requests without a valid token.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := a.authenticate(c)
		if err != nil {
			a.abort(c, err)
			return
		}
		setActor(c, actor)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through but still rejects a token that is present
// and invalid.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := a.authenticate(c)
		if errors.Is(err, ErrMissingToken) {
			c.Next()
			return
		}
		if err != nil {
			a.abort(c, err)
			return
		}
		setActor(c, actor)
		c.Next()
	}
}

// RequireRole checks the role set by RequireAuth.
func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if role != requiredRole {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "insufficient permissions",
				"required": requiredRole,
			})
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(models.RoleAdmin)
}

// CurrentActor returns the caller set by the auth middleware, or nil for anonymous requests.
func CurrentActor(c *gin.Context) *service.Actor {
	id := c.GetString(ContextUserID)
	if id == "" {
		return nil
	}
	return &service.Actor{
		UserID:   id,
		Username: c.GetString(ContextUsername),
		Role:     c.GetString(ContextRole),
	}
}
