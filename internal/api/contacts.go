package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"contacts_system/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for creating a contact
type CreateContactRequest struct {
	Name  string `json:"name" binding:"required"`        // Name must be provided
	Email string `json:"email" binding:"required,email"` // Email must be provided and well-formed
	Phone string `json:"phone" binding:"required"`       // Phone must be provided
}

// Request struct for updating a contact; all fields optional, absent
// fields keep their stored value
type UpdateContactRequest struct {
	Name  *string `json:"name"`                            // New name, if supplied
	Email *string `json:"email" binding:"omitempty,email"` // New email, if supplied
	Phone *string `json:"phone"`                           // New phone, if supplied
}

// loadOwnedContact fetches a contact by ID and checks ownership.
// Existence is checked before ownership so a nonexistent ID reports 404
// to everyone, never 403. Writes the failure response itself and reports
// whether the caller may proceed.
func loadOwnedContact(c *gin.Context, db *gorm.DB, userID uint, contact *domain.Contact) bool {
	// Look up the contact by path parameter
	if err := db.First(contact, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Contact does not exist
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			// Any other lookup failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact"})
		}
		return false
	}
	// Compare the verified caller against the owning-user reference
	if contact.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not permitted to access another user's contact"})
		return false
	}
	return true
}

// GetContactsHandler returns all contacts owned by the authenticated user
func GetContactsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := callerID(c) // Get userID from context
		if err != nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		contacts := []domain.Contact{} // Slice to hold contacts; empty list, not null, when none exist
		// The query itself is scoped to the caller, so no per-row ownership check is needed
		if err := db.Where("user_id = ?", userID).Order("id").Find(&contacts).Error; err != nil {
			// If fetching fails, return error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contacts"})
			return
		}
		c.JSON(http.StatusOK, contacts) // Return the caller's contacts
	}
}

// CreateContactHandler creates a contact owned by the authenticated user
func CreateContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := callerID(c) // Get userID from context
		if err != nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are mandatory"})
			return
		}
		// The owning-user reference always comes from the verified caller,
		// never from the request body
		contact := domain.Contact{
			Name:   req.Name,  // Contact name
			Email:  req.Email, // Contact email
			Phone:  req.Phone, // Contact phone
			UserID: userID,    // Owning-user reference
		}
		// Save the new contact
		if err := db.Create(&contact).Error; err != nil {
			// Log the failure with context
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create contact")
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,     // User ID
			"contact_id": contact.ID, // Contact ID
		}).Info("Contact created")
		c.JSON(http.StatusCreated, contact) // Return the created contact
	}
}

// GetContactHandler returns a single contact owned by the authenticated user
func GetContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := callerID(c) // Get userID from context
		if err != nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var contact domain.Contact // Fetch and authorize the contact
		if !loadOwnedContact(c, db, userID, &contact) {
			return // Failure response already written
		}
		c.JSON(http.StatusOK, contact) // Return the contact
	}
}

// UpdateContactHandler merges a partial field set into an owned contact
func UpdateContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := callerID(c) // Get userID from context
		if err != nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateContactRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var contact domain.Contact // Fetch and authorize the contact
		if !loadOwnedContact(c, db, userID, &contact) {
			return // Failure response already written
		}
		// Merge supplied fields into the stored record
		if req.Name != nil {
			contact.Name = *req.Name
		}
		if req.Email != nil {
			contact.Email = *req.Email
		}
		if req.Phone != nil {
			contact.Phone = *req.Phone
		}
		// The merged record must still satisfy the required-field invariants
		if contact.Name == "" || contact.Email == "" || contact.Phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are mandatory"})
			return
		}
		// Conditional update keyed on both ID and owner in one statement,
		// so a contact deleted since the lookup affects zero rows instead
		// of resurrecting the record
		res := db.Model(&domain.Contact{}).
			Where("id = ? AND user_id = ?", contact.ID, userID).
			Updates(map[string]any{
				"name":  contact.Name,  // Merged name
				"email": contact.Email, // Merged email
				"phone": contact.Phone, // Merged phone
			})
		if res.Error != nil {
			// Log the failure with context
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,            // User ID
				"contact_id": contact.ID,        // Contact ID
				"error":      res.Error.Error(), // Error message
			}).Error("Failed to update contact")
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
			return
		}
		if res.RowsAffected == 0 {
			// Contact disappeared between lookup and update
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		// Re-read so the response carries the stored timestamps
		if err := db.First(&contact, contact.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch contact"})
			return
		}
		// Log successful update
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,     // User ID
			"contact_id": contact.ID, // Contact ID
		}).Info("Contact updated")
		c.JSON(http.StatusOK, contact) // Return the updated contact
	}
}

// DeleteContactHandler deletes an owned contact and returns it
func DeleteContactHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := callerID(c) // Get userID from context
		if err != nil {
			// If not, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var contact domain.Contact // Fetch and authorize the contact
		if !loadOwnedContact(c, db, userID, &contact) {
			return // Failure response already written
		}
		// Conditional delete keyed on both ID and owner in one statement
		res := db.Where("id = ? AND user_id = ?", contact.ID, userID).Delete(&domain.Contact{})
		if res.Error != nil {
			// Log the failure with context
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,            // User ID
				"contact_id": contact.ID,        // Contact ID
				"error":      res.Error.Error(), // Error message
			}).Error("Failed to delete contact")
			// Return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
			return
		}
		if res.RowsAffected == 0 {
			// Contact disappeared between lookup and delete
			c.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"user_id":    userID,     // User ID
			"contact_id": contact.ID, // Contact ID
		}).Info("Contact deleted")
		c.JSON(http.StatusOK, contact) // Return the deleted contact
	}
}
