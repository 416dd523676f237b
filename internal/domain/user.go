package domain

import "time"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                                   // Primary key
	Username  string    `gorm:"not null" json:"username"`                               // Display name, not unique
	Email     string    `gorm:"unique;not null" json:"email"`                           // Login email, stored lowercase
	Password  string    `gorm:"not null" json:"-"`                                      // Hashed password, never serialized
	CreatedAt time.Time `json:"created_at"`                                             // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                                             // Timestamp of last update
	Contacts  []Contact `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Contact
}
