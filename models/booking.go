package models

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending    BookingStatus = "Pending"
	BookingConfirmed  BookingStatus = "Confirmed"
	BookingCheckedIn  BookingStatus = "CheckedIn"
	BookingCheckedOut BookingStatus = "CheckedOut"
	BookingCancelled  BookingStatus = "Cancelled"
)

// Terminal reports whether the status accepts no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCheckedOut || s == BookingCancelled
}

// Booking is a guest's claim on a room for [CheckInDate, CheckOutDate).
// Dates are calendar days normalized to midnight UTC; check-out is exclusive,
// so touching stays (one's check-out equals another's check-in) never overlap.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"index;column:room_id" json:"roomId"`
	Room   Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	UserID uint `gorm:"index;column:user_id" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CheckInDate  time.Time     `gorm:"column:check_in_date;index" json:"checkInDate"`
	CheckOutDate time.Time     `gorm:"column:check_out_date;index" json:"checkOutDate"`
	Status       BookingStatus `gorm:"size:32;index" json:"status"`

	// Computed once at creation (and at move when recomputation is enabled),
	// immutable otherwise.
	TotalPrice float64 `gorm:"type:decimal(18,2)" json:"totalPrice"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
