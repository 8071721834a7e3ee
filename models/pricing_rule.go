package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PricingRuleType string

const (
	RuleSeasonal       PricingRuleType = "Seasonal"
	RuleDayOfWeek      PricingRuleType = "DayOfWeek"
	RuleOccupancyBased PricingRuleType = "OccupancyBased"
	RuleSpecialEvent   PricingRuleType = "SpecialEvent"
)

type AdjustmentType string

const (
	AdjustPercentage AdjustmentType = "Percentage"
	AdjustFlatAmount AdjustmentType = "FlatAmount"
)

// PricingRule adjusts a room's base rate for dates it matches. All matching
// rules apply additively against the original base rate, never compounded.
type PricingRule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name           string          `gorm:"size:255" json:"name"`
	RuleType       PricingRuleType `gorm:"size:32" json:"ruleType"`
	AdjustmentType AdjustmentType  `gorm:"size:32" json:"adjustmentType"`

	// 0.20 for +20% (Percentage) or 50 for +$50 (FlatAmount).
	AdjustmentValue float64 `gorm:"type:decimal(18,4)" json:"adjustmentValue"`

	// Seasonal: inclusive [StartDate, EndDate]. SpecialEvent: StartDate only.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	// DayOfWeek rules: JSON array of weekday names, e.g. ["Saturday","Sunday"].
	ApplyToDays datatypes.JSON `gorm:"column:apply_to_days" json:"applyToDays,omitempty"`

	// OccupancyBased rules: fraction in [0,1]; the rule applies when
	// occupied/active rooms >= threshold for the target date.
	OccupancyThreshold *float64 `json:"occupancyThreshold,omitempty"`

	// Nil applies to all room types.
	TargetRoomType *string `gorm:"size:50" json:"targetRoomType,omitempty"`

	IsActive bool `gorm:"default:true;index" json:"isActive"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Days decodes ApplyToDays. A malformed or empty column yields no days, which
// simply means the rule matches nothing.
func (r *PricingRule) Days() []string {
	if len(r.ApplyToDays) == 0 {
		return nil
	}
	var days []string
	if err := json.Unmarshal(r.ApplyToDays, &days); err != nil {
		return nil
	}
	return days
}
