package models

import (
	"time"

	"gorm.io/gorm"
)

// RoomStatus is an operational projection for dashboards. Availability for
// booking purposes is always derived from the bookings table; this field is a
// cache maintained by booking transitions and staff task lifecycle.
type RoomStatus string

const (
	RoomAvailable   RoomStatus = "Available"
	RoomOccupied    RoomStatus = "Occupied"
	RoomCleaning    RoomStatus = "Cleaning"
	RoomMaintenance RoomStatus = "Maintenance"
)

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber    string     `gorm:"column:room_number;uniqueIndex;size:50" json:"roomNumber"`
	Type          string     `gorm:"size:50" json:"type"` // Single, Double, Suite
	PricePerNight float64    `gorm:"type:decimal(18,2)" json:"pricePerNight"`
	Status        RoomStatus `gorm:"size:32;default:Available" json:"status"`
	Floor         string     `gorm:"type:varchar(10)" json:"floor"`
	Description   string     `gorm:"type:text" json:"description"`

	// Rooms are never hard-deleted, only deactivated. An inactive room
	// cannot accept new bookings.
	IsActive bool `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
