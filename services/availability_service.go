package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

// AvailabilityService answers the one question admission control depends on:
// does any non-cancelled booking overlap a [checkIn, checkOut) range for a
// room. The predicate runs on the caller's transaction handle so the check
// and the eventual insert share one isolation boundary.
type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// HasOverlap reports whether a non-cancelled booking for roomID overlaps
// [checkIn, checkOut). Touching intervals (one stay's check-out equals
// another's check-in) do not overlap. excludeBookingID, when non-zero, leaves
// that booking out of the test so a booking can be moved within its own range.
func (s *AvailabilityService) HasOverlap(db *gorm.DB, roomID uint, checkIn, checkOut time.Time, excludeBookingID uint) (bool, error) {
	if db == nil {
		db = s.DB
	}
	var count int64
	q := db.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", roomID, models.BookingCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeBookingID != 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// OccupiedRoomCount counts distinct active rooms holding a non-cancelled
// booking that covers the given date.
func (s *AvailabilityService) OccupiedRoomCount(db *gorm.DB, date time.Time) (int64, error) {
	if db == nil {
		db = s.DB
	}
	date = utils.NormalizeDay(date)
	var count int64
	err := db.Model(&models.Booking{}).
		Joins("JOIN rooms ON rooms.id = bookings.room_id AND rooms.is_active = ? AND rooms.deleted_at IS NULL", true).
		Where("bookings.status <> ?", models.BookingCancelled).
		Where("bookings.check_in_date <= ? AND bookings.check_out_date > ?", date, date).
		Distinct("bookings.room_id").
		Count(&count).Error
	return count, err
}

// ActiveRoomCount counts rooms that can take bookings at all.
func (s *AvailabilityService) ActiveRoomCount(db *gorm.DB) (int64, error) {
	if db == nil {
		db = s.DB
	}
	var count int64
	err := db.Model(&models.Room{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// AvailableRooms lists active rooms free for the whole [checkIn, checkOut)
// range, for the guest-facing availability grid.
func (s *AvailabilityService) AvailableRooms(checkIn, checkOut time.Time) ([]models.Room, error) {
	checkIn = utils.NormalizeDay(checkIn)
	checkOut = utils.NormalizeDay(checkOut)

	busy := s.DB.Model(&models.Booking{}).
		Select("room_id").
		Where("status <> ?", models.BookingCancelled).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)

	var rooms []models.Room
	err := s.DB.
		Where("is_active = ?", true).
		Where("id NOT IN (?)", busy).
		Order("room_number").
		Find(&rooms).Error
	return rooms, err
}

// BlockedDates returns the dates in [from, to] on which no active room is
// free for even a single night.
func (s *AvailabilityService) BlockedDates(from, to time.Time) ([]time.Time, error) {
	total, err := s.ActiveRoomCount(nil)
	if err != nil {
		return nil, err
	}

	var blocked []time.Time
	from = utils.NormalizeDay(from)
	to = utils.NormalizeDay(to)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		occupied, err := s.OccupiedRoomCount(nil, d)
		if err != nil {
			return nil, err
		}
		if total == 0 || occupied >= total {
			blocked = append(blocked, d)
		}
	}
	return blocked, nil
}
