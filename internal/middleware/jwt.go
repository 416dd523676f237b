package middleware

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"contacts_system/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Context keys set by the middleware for downstream handlers
const (
	ContextUserID = "userID" // Verified caller's user ID
	ContextClaims = "claims" // Full decoded token claims
	ContextToken  = "token"  // Raw bearer token string
)

// JWTAuthMiddleware validates bearer tokens and attaches the verified
// identity to the request context. Every request re-verifies independently;
// nothing is carried over between requests. Revoked tokens are rejected
// even when otherwise valid.
func JWTAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// Report expiration distinctly from the other verification failures
			msg := "Invalid token"
			switch {
			case errors.Is(err, utils.ErrTokenExpired):
				msg = "Token expired"
			case errors.Is(err, utils.ErrTokenMalformed):
				msg = "Malformed token"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		// Reject tokens that were explicitly invalidated via logout
		revoked, err := utils.IsTokenRevoked(c.Request.Context(), rdb, claims.ID)
		if err != nil {
			// Redis failure must not let a possibly revoked token through
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Could not verify token"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Set(ContextClaims, claims)        // Store full claims in context
		c.Set(ContextToken, tokenStr)       // Store raw token for logout
		c.Next()                            // Proceed to the next handler
	}
}
