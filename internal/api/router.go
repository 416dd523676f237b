package api

import (
	"net/http" // HTTP status codes
	"time"     // Token lifetime

	"contacts_system/internal/middleware" // Custom package for middleware
	"contacts_system/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// RegisterRoutes wires all user and contact routes onto the router.
// Registration and login are public; everything else sits behind the
// JWT middleware.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, hasher utils.PasswordHasher, jwtSecret string, jwtExpiry time.Duration) {
	auth := middleware.JWTAuthMiddleware(jwtSecret, rdb) // Shared auth middleware

	// User routes
	users := r.Group("/users")
	users.POST("/register", RegisterHandler(db, hasher))                  // Registration endpoint
	users.POST("/login", LoginHandler(db, hasher, jwtSecret, jwtExpiry))  // Login endpoint
	usersAuth := users.Group("")                                          // Protected user routes
	usersAuth.Use(auth)                                                   // Require a valid token
	usersAuth.GET("/current", CurrentUserHandler())                       // Current identity endpoint
	usersAuth.POST("/logout", LogoutHandler(rdb))                         // Token invalidation endpoint

	// Contact routes (all protected by JWT)
	contacts := r.Group("/contacts")
	contacts.Use(auth)                                 // Require a valid token
	contacts.GET("", GetContactsHandler(db))           // List owned contacts endpoint
	contacts.POST("", CreateContactHandler(db))        // Create contact endpoint
	contacts.GET("/:id", GetContactHandler(db))        // Get single contact endpoint
	contacts.PUT("/:id", UpdateContactHandler(db))     // Update contact endpoint
	contacts.DELETE("/:id", DeleteContactHandler(db))  // Delete contact endpoint

	// Unknown routes still get a JSON error body, never an empty response
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
}
