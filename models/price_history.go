package models

import (
	"time"

	"gorm.io/datatypes"
)

// PriceHistory records one computed nightly price, with the names of the
// rules that contributed, so invoices and UI breakdowns can be audited later.
type PriceHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID    uint  `gorm:"index" json:"roomId"`
	BookingID *uint `gorm:"index" json:"bookingId,omitempty"`

	BasePrice       float64 `gorm:"type:decimal(18,2)" json:"basePrice"`
	CalculatedPrice float64 `gorm:"type:decimal(18,2)" json:"calculatedPrice"`

	// JSON array of rule names applied for this night.
	AppliedRules datatypes.JSON `gorm:"column:applied_rules" json:"appliedRules,omitempty"`

	ForDate   time.Time `gorm:"index" json:"forDate"`
	AppliedAt time.Time `json:"appliedAt"`
}
