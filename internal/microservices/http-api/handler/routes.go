package handler

import "github.com/gin-gonic/gin"

// Guards are the access checks routes are registered with. All four must be set.
type Guards struct {
	RequireAuth  gin.HandlerFunc
	OptionalAuth gin.HandlerFunc
	RequireAdmin gin.HandlerFunc
	// Throttle limits calls to the generative assistant. Runs after authentication.
	Throttle gin.HandlerFunc
}
