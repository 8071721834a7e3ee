package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateBookingRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type MoveBookingRequest struct {
	RoomID   uint   `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type CancelBookingRequest struct {
	// Guest path: scopes the cancel to the owner. Staff paths send 0/omit.
	UserID uint `json:"user_id"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{BookingSvc: svc}
}

// respondServiceError maps the services error taxonomy onto HTTP statuses.
// Conflict (409) tells the caller different dates may succeed; 400 state
// errors need a state change first; 500 is retryable as a whole.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRoomNotFound), errors.Is(err, services.ErrBookingNotFound), errors.Is(err, services.ErrTaskNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRoomUnavailable), errors.Is(err, services.ErrTxConflict):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidDates):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "an internal error occurred")
	}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil || v == 0 {
		utils.JSONError(c, http.StatusBadRequest, name+" query parameter is required")
		return 0, false
	}
	return uint(v), true
}

func parseStay(c *gin.Context, checkIn, checkOut string) (time.Time, time.Time, bool) {
	in, err := utils.ParseDate(checkIn)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	out, err := utils.ParseDate(checkOut)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return time.Time{}, time.Time{}, false
	}
	return in, out, true
}

// POST /api/bookings
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, out, ok := parseStay(c, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.Create(req.UserID, req.RoomID, in, out)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

// GET /api/bookings?userId=
func (ctrl *BookingController) GetUserBookings(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("userId"), 10, 32)
	if err != nil || userID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}
	bookings, err := ctrl.BookingSvc.GetUserBookings(uint(userID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

// GET /api/bookings/:id
func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// POST /api/bookings/:id/cancel
func (ctrl *BookingController) CancelBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CancelBookingRequest
	_ = c.ShouldBindJSON(&req) // body optional for staff cancels

	booking, err := ctrl.BookingSvc.Cancel(id, req.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking cancelled successfully.", "booking": booking})
}

// PUT /api/bookings/:id/checkin
func (ctrl *BookingController) CheckIn(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Checked in successfully.", "booking": booking})
}

// PUT /api/bookings/:id/checkout
func (ctrl *BookingController) CheckOut(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Checked out successfully.", "booking": booking})
}

// PUT /api/bookings/:id/modify
// Guest-initiated move: the 24-hour-before-check-in lock is enforced here,
// at the caller layer, not in the transaction manager.
func (ctrl *BookingController) ModifyBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MoveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, out, ok := parseStay(c, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if time.Until(booking.CheckInDate) < 24*time.Hour {
		utils.JSONError(c, http.StatusBadRequest, "Modifications are locked within 24 hours of check-in.")
		return
	}

	moved, err := ctrl.BookingSvc.Move(id, req.RoomID, in, out)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking modified successfully", "booking": moved})
}

// PUT /api/bookings/:id/move
// Administrator variant: same operation, 24-hour lock bypassed.
func (ctrl *BookingController) MoveBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req MoveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	in, out, ok := parseStay(c, req.CheckIn, req.CheckOut)
	if !ok {
		return
	}

	moved, err := ctrl.BookingSvc.Move(id, req.RoomID, in, out)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Booking moved by administrator", "booking": moved})
}

// GET /api/bookings/:id/invoice
func (ctrl *BookingController) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"invoiceId":  fmt.Sprintf("INV-%d-%s", booking.ID, booking.CreatedAt.Format("20060102")),
		"roomNumber": booking.Room.RoomNumber,
		"roomType":   booking.Room.Type,
		"checkIn":    booking.CheckInDate,
		"checkOut":   booking.CheckOutDate,
		"totalPrice": booking.TotalPrice,
		"status":     booking.Status,
		"issuedAt":   time.Now().UTC(),
	})
}
