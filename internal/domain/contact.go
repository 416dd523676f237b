package domain

import "time"

// Contact Model
type Contact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`          // Primary key
	Name      string    `gorm:"not null" json:"name"`          // Contact name
	Email     string    `gorm:"not null" json:"email"`         // Contact email
	Phone     string    `gorm:"not null" json:"phone"`         // Contact phone number
	UserID    uint      `gorm:"not null;index" json:"user_id"` // Foreign key to the owning User, set at creation
	CreatedAt time.Time `json:"created_at"`                    // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                    // Timestamp of last update
}
