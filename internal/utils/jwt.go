package utils

import (
	"errors" // Error matching
	"time"   // Time for token expiration

	"contacts_system/internal/domain" // Importing domain models

	"github.com/golang-jwt/jwt/v5" // JWT library
	"github.com/google/uuid"       // Unique token IDs (jti)
)

// Token verification errors, one per failure mode
var (
	ErrTokenMalformed = errors.New("token is malformed")           // Token cannot be parsed at all
	ErrTokenExpired   = errors.New("token is expired")             // Token is past its expiration
	ErrTokenInvalid   = errors.New("token signature is not valid") // Signature or claims do not check out
)

// JWT Claims
type Claims struct {
	UserID               uint   `json:"user_id"`  // Custom claim for user ID
	Username             string `json:"username"` // Custom claim for username
	Email                string `json:"email"`    // Custom claim for email
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateJWT creates a JWT token carrying the user's identity claims.
// Expiry is set by the caller; config.DefaultTokenExpiry is the documented default.
func GenerateJWT(user *domain.User, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID:   user.ID,       // Custom claim for user ID
		Username: user.Username, // Custom claim for username
		Email:    user.Email,    // Custom claim for email
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),                    // Unique token ID, used for revocation
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)), // Token expiration
			IssuedAt:  jwt.NewNumericDate(now),             // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a JWT token string. Verification is pure
// computation: no state is read or written. Failures map to exactly one of
// ErrTokenMalformed, ErrTokenExpired or ErrTokenInvalid.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	})
	// Map library errors onto the verification taxonomy
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, ErrTokenMalformed // Not a parsable token
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired // Past expiration
		default:
			return nil, ErrTokenInvalid // Bad signature or otherwise invalid
		}
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, ErrTokenInvalid
}
