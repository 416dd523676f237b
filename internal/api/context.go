package api

import (
	"errors" // Sentinel for a missing identity

	"contacts_system/internal/middleware" // Context keys set by the auth middleware
	"contacts_system/internal/utils"      // JWT claims type

	"github.com/gin-gonic/gin" // Gin web framework
)

// errNoIdentity indicates the auth middleware did not attach an identity
var errNoIdentity = errors.New("no verified identity in request context")

// callerClaims returns the decoded token claims attached by the auth middleware
func callerClaims(c *gin.Context) (*utils.Claims, error) {
	v, exists := c.Get(middleware.ContextClaims) // Get claims from context
	if !exists {
		return nil, errNoIdentity // Middleware did not run
	}
	claims, ok := v.(*utils.Claims) // Assert the stored type
	if !ok {
		return nil, errNoIdentity // Unexpected value in context
	}
	return claims, nil
}

// callerID returns the verified caller's user ID attached by the auth middleware
func callerID(c *gin.Context) (uint, error) {
	v, exists := c.Get(middleware.ContextUserID) // Get userID from context
	if !exists {
		return 0, errNoIdentity // Middleware did not run
	}
	id, ok := v.(uint) // Assert the stored type
	if !ok {
		return 0, errNoIdentity // Unexpected value in context
	}
	return id, nil
}
