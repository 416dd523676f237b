package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Remaining token lifetime

	"contacts_system/internal/domain" // Importing domain models
	"contacts_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`    // Username must be provided
	Email    string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Email must be provided
	Password string `json:"password" binding:"required"`    // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	Token string       `json:"token"` // JWT token
	User  IdentityInfo `json:"user"`  // Authenticated user's identity
}

// Identity fields exposed to clients; never includes the password hash
type IdentityInfo struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email
}

// RegisterHandler creates a new user with a hashed password
func RegisterHandler(db *gorm.DB, hasher utils.PasswordHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are mandatory"})
			return
		}
		email := strings.ToLower(req.Email) // Lowercase email to ensure uniqueness
		// Reject duplicate registrations up front
		var existing domain.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
			return
		}
		// Hash the password and create the user
		hash, err := hasher.Hash(req.Password)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: req.Username, Email: email, Password: hash}
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// Unique index on email catches registrations racing past the lookup
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already registered"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // User ID
			"email":   user.Email, // Email
		}).Info("User registered")
		// Return the new user's identifiers
		c.JSON(http.StatusCreated, gin.H{
			"id":      user.ID,                        // User ID
			"email":   user.Email,                     // Email
			"message": "User registered successfully", // Confirmation message
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, hasher utils.PasswordHasher, jwtSecret string, jwtExpiry time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are mandatory"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email or password is not valid"})
			return
		}
		// Compare provided password with stored hash
		if err := hasher.Compare(user.Password, req.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Email or password is not valid"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(&user, jwtSecret, jwtExpiry)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful login
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID, // User ID
		}).Info("User logged in")
		// Return the token and the user's identity in the response
		c.JSON(http.StatusOK, AuthResponse{
			Token: token, // JWT token
			User: IdentityInfo{
				ID:       user.ID,       // User ID
				Username: user.Username, // Username
				Email:    user.Email,    // Email
			},
		})
	}
}

// CurrentUserHandler returns the verified identity claims of the caller
func CurrentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := callerClaims(c) // Claims attached by the auth middleware
		if err != nil {
			// If missing, the middleware did not run; return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Return the identity embedded in the token
		c.JSON(http.StatusOK, IdentityInfo{
			ID:       claims.UserID,   // User ID
			Username: claims.Username, // Username
			Email:    claims.Email,    // Email
		})
	}
}

// LogoutHandler invalidates the caller's token for its remaining lifetime
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := callerClaims(c) // Claims attached by the auth middleware
		if err != nil {
			// If missing, the middleware did not run; return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// The denylist entry only needs to outlive the token itself
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := utils.RevokeToken(c.Request.Context(), rdb, claims.ID, ttl); err != nil {
			// Log the failure with context
			logrus.WithFields(logrus.Fields{
				"user_id": claims.UserID, // User ID
				"error":   err.Error(),   // Error message
			}).Error("Logout failed")
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
			return
		}
		// Log successful logout
		logrus.WithFields(logrus.Fields{
			"user_id": claims.UserID, // User ID
		}).Info("User logged out")
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
	}
}
