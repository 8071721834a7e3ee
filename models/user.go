package models

import (
	"time"

	"gorm.io/gorm"
)

// User is the minimal identity bookings reference. Authentication, sessions
// and role management live in a separate service; this table only carries
// what booking ownership checks and seeding need.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"fullName"`
	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned
	Role     string `gorm:"size:50;default:Guest" json:"role"`
	IsActive bool   `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
