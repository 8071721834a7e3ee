package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mysqldrv "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

// BookingService is the admission-control core: it decides, under concurrent
// requests, whether a room is free for a date range, prices the stay, and
// commits the booking as one atomic unit. The invariant it protects: no two
// committed non-cancelled bookings for the same room ever have overlapping
// [check-in, check-out) ranges.
//
// Enforcement: every check-then-write runs in a serializable transaction that
// first takes a FOR UPDATE lock on the room row, so concurrent requests for
// the same room serialize on the row for the duration of check+insert.
type BookingService struct {
	DB           *gorm.DB
	Pricing      *PricingService
	Availability *AvailabilityService
	Staff        *StaffService
	Events       EventEmitter
}

func NewBookingService(db *gorm.DB, pricing *PricingService, availability *AvailabilityService, staff *StaffService, events EventEmitter) *BookingService {
	if events == nil {
		events = NopEmitter{}
	}
	return &BookingService{DB: db, Pricing: pricing, Availability: availability, Staff: staff, Events: events}
}

var serializableTx = &sql.TxOptions{Isolation: sql.LevelSerializable}

// txOpts returns the explicit isolation level for stores that need it.
// SQLite (embedded deployments and tests) has a single writer and fully
// serialized transactions already, and rejects explicit isolation levels.
func (s *BookingService) txOpts() []*sql.TxOptions {
	if s.DB.Dialector.Name() == "sqlite" {
		return nil
	}
	return []*sql.TxOptions{serializableTx}
}

// lockForUpdate adds the room-row lock where the dialect supports it.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// normalizeStay clamps the range to whole UTC days with a 1-night minimum.
func normalizeStay(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return time.Time{}, time.Time{}, ErrInvalidDates
	}
	in := utils.NormalizeDay(checkIn)
	out := utils.NormalizeDay(checkOut)
	if !out.After(in) {
		out = in.AddDate(0, 0, 1)
	}
	return in, out, nil
}

// classifyTxError maps store-level serialization failures onto the retryable
// conflict error; sentinel errors pass through untouched.
func classifyTxError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRoomNotFound),
		errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrRoomUnavailable),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidDates):
		return err
	}

	var mysqlErr *mysqldrv.MySQLError
	if errors.As(err, &mysqlErr) {
		// 1213 deadlock, 1205 lock wait timeout: the transaction rolled
		// back because of a concurrent writer.
		if mysqlErr.Number == 1213 || mysqlErr.Number == 1205 {
			return fmt.Errorf("%w: %v", ErrTxConflict, err)
		}
	}
	// SQLite (tests) reports writer contention as a busy/locked error.
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy") {
		return fmt.Errorf("%w: %v", ErrTxConflict, err)
	}
	return err
}

// Create books a room for a guest. The availability check, price computation
// and insert commit or roll back together; on overlap the caller gets
// ErrRoomUnavailable and no partial state.
func (s *BookingService) Create(userID, roomID uint, checkIn, checkOut time.Time) (models.Booking, error) {
	in, out, err := normalizeStay(checkIn, checkOut)
	if err != nil {
		return models.Booking{}, err
	}

	var booking models.Booking
	var room models.Room
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// Room row lock scopes the exclusive section per room.
		if err := lockForUpdate(tx).First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !room.IsActive {
			return ErrRoomNotFound
		}

		overlap, err := s.Availability.HasOverlap(tx, roomID, in, out, 0)
		if err != nil {
			return err
		}
		if overlap {
			return ErrRoomUnavailable
		}

		quote, err := s.Pricing.StayQuote(tx, roomID, in, out)
		if err != nil {
			return err
		}

		booking = models.Booking{
			RoomID:       roomID,
			UserID:       userID,
			CheckInDate:  in,
			CheckOutDate: out,
			Status:       models.BookingConfirmed, // auto-confirm, no approval step
			TotalPrice:   quote.Total,
			CreatedAt:    time.Now().UTC(),
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		return s.recordPriceHistory(tx, booking.ID, roomID, room.PricePerNight, quote)
	}, s.txOpts()...)
	if err != nil {
		return models.Booking{}, classifyTxError(err)
	}

	s.Events.RoomAvailabilityChanged(roomID, false)
	s.Events.BookingEvent(
		fmt.Sprintf("Room %s booked from %s to %s",
			room.RoomNumber, in.Format("2006-01-02"), out.Format("2006-01-02")),
		booking.ID, roomID)
	return booking, nil
}

// recordPriceHistory persists one row per night with the rules that applied.
func (s *BookingService) recordPriceHistory(tx *gorm.DB, bookingID, roomID uint, basePrice float64, quote StayQuote) error {
	now := time.Now().UTC()
	for _, night := range quote.Nights {
		applied, err := json.Marshal(night.AppliedRules)
		if err != nil {
			return err
		}
		entry := models.PriceHistory{
			RoomID:          roomID,
			BookingID:       &bookingID,
			BasePrice:       basePrice,
			CalculatedPrice: night.Price,
			AppliedRules:    applied,
			ForDate:         night.Date,
			AppliedAt:       now,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// Cancel sets a booking to Cancelled. userID scopes ownership for the guest
// path; pass 0 for staff/admin paths, which bypass ownership. Cancelling an
// already-cancelled booking is a successful no-op.
func (s *BookingService) Cancel(bookingID, userID uint) (models.Booking, error) {
	var booking models.Booking
	q := s.DB.Preload("Room").Where("id = ?", bookingID)
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}

	if booking.Status == models.BookingCancelled {
		return booking, nil
	}
	if booking.Status != models.BookingPending && booking.Status != models.BookingConfirmed {
		return models.Booking{}, ErrInvalidStatus
	}

	if err := s.DB.Model(&booking).Update("status", models.BookingCancelled).Error; err != nil {
		return models.Booking{}, err
	}
	booking.Status = models.BookingCancelled

	s.Events.RoomAvailabilityChanged(booking.RoomID, true)
	s.Events.BookingEvent(
		fmt.Sprintf("Booking %d for Room %s was cancelled.", booking.ID, booking.Room.RoomNumber),
		booking.ID, booking.RoomID)
	return booking, nil
}

// CheckIn transitions Confirmed -> CheckedIn and marks the room occupied.
func (s *BookingService) CheckIn(bookingID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status != models.BookingConfirmed {
			return ErrInvalidStatus
		}
		if err := tx.Model(&booking).Update("status", models.BookingCheckedIn).Error; err != nil {
			return err
		}
		booking.Status = models.BookingCheckedIn
		return tx.Model(&models.Room{}).Where("id = ?", booking.RoomID).
			Update("status", models.RoomOccupied).Error
	})
	if err != nil {
		return models.Booking{}, classifyTxError(err)
	}

	s.Events.BookingEvent(
		fmt.Sprintf("Guest checked in to Room %s.", booking.Room.RoomNumber),
		booking.ID, booking.RoomID)
	return booking, nil
}

// CheckOut transitions CheckedIn -> CheckedOut, dispatches the housekeeping
// task for the room and announces the checkout.
func (s *BookingService) CheckOut(bookingID uint) (models.Booking, error) {
	var booking models.Booking
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status != models.BookingCheckedIn {
			return ErrInvalidStatus
		}
		if err := tx.Model(&booking).Update("status", models.BookingCheckedOut).Error; err != nil {
			return err
		}
		booking.Status = models.BookingCheckedOut
		return nil
	})
	if err != nil {
		return models.Booking{}, classifyTxError(err)
	}

	if _, err := s.Staff.CreateTask(booking.RoomID, models.TaskCleaning, "Automatic task generated upon guest checkout."); err != nil {
		// The checkout itself committed; a failed task dispatch is logged,
		// not surfaced to the guest.
		slog.Warn("failed to create cleaning task after checkout", "bookingId", booking.ID, "roomId", booking.RoomID, "err", err)
	}

	s.Events.CheckoutCompleted(booking.RoomID)
	s.Events.BookingEvent(
		fmt.Sprintf("Guest checked out from Room %s. Cleaning task dispatched.", booking.Room.RoomNumber),
		booking.ID, booking.RoomID)
	return booking, nil
}

// Move reassigns a booking to a new room and/or date range under the same
// transactional overlap check as Create, excluding the booking itself so a
// stay can be shifted within its own range. By default the historical
// behavior is kept and TotalPrice is NOT recomputed; the
// RecomputePriceOnMove hotel setting switches recomputation on.
func (s *BookingService) Move(bookingID, newRoomID uint, checkIn, checkOut time.Time) (models.Booking, error) {
	in, out, err := normalizeStay(checkIn, checkOut)
	if err != nil {
		return models.Booking{}, err
	}

	var booking models.Booking
	var oldRoomID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if booking.Status.Terminal() {
			return ErrInvalidStatus
		}

		var newRoom models.Room
		if err := lockForUpdate(tx).First(&newRoom, newRoomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if !newRoom.IsActive {
			return ErrRoomNotFound
		}

		overlap, err := s.Availability.HasOverlap(tx, newRoomID, in, out, booking.ID)
		if err != nil {
			return err
		}
		if overlap {
			return ErrRoomUnavailable
		}

		oldRoomID = booking.RoomID
		updates := map[string]interface{}{
			"room_id":        newRoomID,
			"check_in_date":  in,
			"check_out_date": out,
		}

		if s.recomputeOnMove(tx) {
			quote, err := s.Pricing.StayQuote(tx, newRoomID, in, out)
			if err != nil {
				return err
			}
			updates["total_price"] = quote.Total
			if err := s.recordPriceHistory(tx, booking.ID, newRoomID, newRoom.PricePerNight, quote); err != nil {
				return err
			}
			booking.TotalPrice = quote.Total
		}

		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return err
		}
		booking.RoomID = newRoomID
		booking.CheckInDate = in
		booking.CheckOutDate = out
		return nil
	}, s.txOpts()...)
	if err != nil {
		return models.Booking{}, classifyTxError(err)
	}

	s.Events.RoomAvailabilityChanged(oldRoomID, true)
	s.Events.RoomAvailabilityChanged(newRoomID, false)
	s.Events.BookingEvent(fmt.Sprintf("Booking %d moved successfully.", booking.ID), booking.ID, newRoomID)
	return booking, nil
}

func (s *BookingService) recomputeOnMove(tx *gorm.DB) bool {
	var setting models.HotelSetting
	if err := tx.First(&setting).Error; err != nil {
		return false
	}
	return setting.RecomputePriceOnMove
}

// GetUserBookings lists a guest's bookings, newest first.
func (s *BookingService) GetUserBookings(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.DB.Preload("Room").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	return bookings, err
}

// GetByID loads one booking with its room.
func (s *BookingService) GetByID(bookingID uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Room").First(&booking, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, err
	}
	return booking, nil
}
