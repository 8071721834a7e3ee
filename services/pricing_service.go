package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

// NightQuote is the computed price for a single (room, date) pair with the
// names of the rules that contributed.
type NightQuote struct {
	Date         time.Time `json:"date"`
	BasePrice    float64   `json:"basePrice"`
	Price        float64   `json:"price"`
	AppliedRules []string  `json:"appliedRules"`
}

// StayQuote is the total for a [checkIn, checkOut) stay plus the per-night
// breakdown the UI renders.
type StayQuote struct {
	Total  float64      `json:"total"`
	Nights []NightQuote `json:"nights"`
}

// PricingService computes nightly prices by applying every matching active
// rule additively against the room's base rate. Rule evaluation itself never
// fails; only a missing room is fatal for the request.
type PricingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewPricingService(db *gorm.DB, availability *AvailabilityService) *PricingService {
	return &PricingService{DB: db, Availability: availability}
}

// roundCurrency rounds to 2 decimals, half away from zero.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// NightlyQuote prices a room for one calendar date. Pass nil to use the
// service's own handle, or a transaction handle to price inside it.
func (s *PricingService) NightlyQuote(db *gorm.DB, roomID uint, date time.Time) (NightQuote, error) {
	if db == nil {
		db = s.DB
	}
	date = utils.NormalizeDay(date)

	var room models.Room
	if err := db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NightQuote{}, ErrRoomNotFound
		}
		return NightQuote{}, err
	}

	rules, err := s.activeRulesForDate(db, date, room.Type)
	if err != nil {
		return NightQuote{}, err
	}

	base := room.PricePerNight
	final := base
	names := make([]string, 0, len(rules))
	for _, rule := range rules {
		// Adjustments are computed against the original base rate, so the
		// order rules apply in does not matter.
		if rule.AdjustmentType == models.AdjustPercentage {
			final += base * rule.AdjustmentValue
		} else {
			final += rule.AdjustmentValue
		}
		names = append(names, rule.Name)
	}

	return NightQuote{
		Date:         date,
		BasePrice:    base,
		Price:        roundCurrency(final),
		AppliedRules: names,
	}, nil
}

// NightlyPrice is NightlyQuote without the breakdown.
func (s *PricingService) NightlyPrice(db *gorm.DB, roomID uint, date time.Time) (float64, error) {
	quote, err := s.NightlyQuote(db, roomID, date)
	if err != nil {
		return 0, err
	}
	return quote.Price, nil
}

// StayQuote prices every night in [checkIn, checkOut). A range of less than
// one night is charged as one night.
func (s *PricingService) StayQuote(db *gorm.DB, roomID uint, checkIn, checkOut time.Time) (StayQuote, error) {
	var quote StayQuote
	err := utils.EachNight(checkIn, checkOut, func(date time.Time) error {
		night, err := s.NightlyQuote(db, roomID, date)
		if err != nil {
			return err
		}
		quote.Nights = append(quote.Nights, night)
		quote.Total += night.Price
		return nil
	})
	if err != nil {
		return StayQuote{}, err
	}
	quote.Total = roundCurrency(quote.Total)
	return quote, nil
}

// StayTotal sums the nightly prices over [checkIn, checkOut).
func (s *PricingService) StayTotal(db *gorm.DB, roomID uint, checkIn, checkOut time.Time) (float64, error) {
	quote, err := s.StayQuote(db, roomID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	return quote.Total, nil
}

// activeRulesForDate selects the active rules matching a date and room type.
// Types are a closed set, so matching is one switch rather than dispatch.
func (s *PricingService) activeRulesForDate(db *gorm.DB, date time.Time, roomType string) ([]models.PricingRule, error) {
	var rules []models.PricingRule
	if err := db.Where("is_active = ?", true).Find(&rules).Error; err != nil {
		return nil, err
	}

	// Occupancy is the same for every rule on a given date; compute at most once.
	var occupancy *float64

	matched := make([]models.PricingRule, 0, len(rules))
	for _, rule := range rules {
		if rule.TargetRoomType != nil && *rule.TargetRoomType != "" && *rule.TargetRoomType != roomType {
			continue
		}

		matches := false
		switch rule.RuleType {
		case models.RuleSeasonal:
			// Inclusive on both ends, whole-day granularity.
			if rule.StartDate != nil && rule.EndDate != nil {
				start := utils.NormalizeDay(*rule.StartDate)
				end := utils.NormalizeDay(*rule.EndDate)
				matches = !date.Before(start) && !date.After(end)
			}

		case models.RuleDayOfWeek:
			weekday := date.Weekday().String()
			for _, day := range rule.Days() {
				if day == weekday {
					matches = true
					break
				}
			}

		case models.RuleOccupancyBased:
			if rule.OccupancyThreshold == nil {
				break
			}
			if occupancy == nil {
				frac, err := s.occupancyForDate(db, date)
				if err != nil {
					return nil, err
				}
				occupancy = &frac
			}
			matches = *occupancy >= *rule.OccupancyThreshold

		case models.RuleSpecialEvent:
			// Single-day rule keyed on the start date.
			if rule.StartDate != nil {
				matches = utils.NormalizeDay(*rule.StartDate).Equal(date)
			}
		}

		if matches {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

// occupancyForDate returns occupied active rooms / total active rooms for the
// date, using the same overlap test as the availability check.
func (s *PricingService) occupancyForDate(db *gorm.DB, date time.Time) (float64, error) {
	total, err := s.Availability.ActiveRoomCount(db)
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	occupied, err := s.Availability.OccupiedRoomCount(db, date)
	if err != nil {
		return 0, err
	}
	return float64(occupied) / float64(total), nil
}
