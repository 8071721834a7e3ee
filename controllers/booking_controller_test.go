package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/config"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
)

var testDBSeq atomic.Int64

type bookingTestEnv struct {
	db     *gorm.DB
	svc    *services.BookingService
	router *gin.Engine
}

func newBookingTestEnv(t *testing.T) *bookingTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:ctrltest%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	availability := services.NewAvailabilityService(db)
	pricing := services.NewPricingService(db, availability)
	staff := services.NewStaffService(db, services.NopEmitter{})
	svc := services.NewBookingService(db, pricing, availability, staff, services.NopEmitter{})
	ctrl := NewBookingController(svc)

	router := gin.New()
	api := router.Group("/api")
	bookings := api.Group("/bookings")
	{
		bookings.POST("", ctrl.CreateBooking)
		bookings.GET("", ctrl.GetUserBookings)
		bookings.GET("/:id", ctrl.GetBooking)
		bookings.GET("/:id/invoice", ctrl.GetInvoice)
		bookings.POST("/:id/cancel", ctrl.CancelBooking)
		bookings.PUT("/:id/checkin", ctrl.CheckIn)
		bookings.PUT("/:id/checkout", ctrl.CheckOut)
		bookings.PUT("/:id/modify", ctrl.ModifyBooking)
		bookings.PUT("/:id/move", ctrl.MoveBooking)
	}

	return &bookingTestEnv{db: db, svc: svc, router: router}
}

func (env *bookingTestEnv) seedRoom(t *testing.T, number string, price float64) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:    number,
		Type:          "Standard",
		PricePerNight: price,
		Status:        models.RoomAvailable,
		IsActive:      true,
	}
	if err := env.db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room: %v", err)
	}
	return room
}

func (env *bookingTestEnv) seedUser(t *testing.T) models.User {
	t.Helper()
	user := models.User{
		FullName: "Test Guest",
		Email:    fmt.Sprintf("guest%d@test.local", testDBSeq.Add(1)),
		Role:     "Guest",
		IsActive: true,
	}
	if err := env.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func (env *bookingTestEnv) request(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func futureDate(days int) string {
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateBookingEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	w := env.request(t, http.MethodPost, "/api/bookings", gin.H{
		"user_id":   user.ID,
		"room_id":   room.ID,
		"check_in":  futureDate(10),
		"check_out": futureDate(13),
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool           `json:"success"`
		Data    models.Booking `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.Status != models.BookingConfirmed {
		t.Errorf("expected Confirmed, got %s", resp.Data.Status)
	}
	if resp.Data.TotalPrice != 300 {
		t.Errorf("expected 300.00 total, got %.2f", resp.Data.TotalPrice)
	}
}

func TestCreateBookingEndpointRejectsBadPayload(t *testing.T) {
	env := newBookingTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/bookings", gin.H{"room_id": 1})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", w.Code)
	}

	w = env.request(t, http.MethodPost, "/api/bookings", gin.H{
		"user_id":   1,
		"room_id":   1,
		"check_in":  "not-a-date",
		"check_out": futureDate(3),
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a malformed date, got %d", w.Code)
	}
}

func TestCreateBookingEndpointConflict(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	payload := gin.H{
		"user_id":   user.ID,
		"room_id":   room.ID,
		"check_in":  futureDate(10),
		"check_out": futureDate(13),
	}
	if w := env.request(t, http.MethodPost, "/api/bookings", payload); w.Code != http.StatusCreated {
		t.Fatalf("first booking failed: %d %s", w.Code, w.Body.String())
	}

	w := env.request(t, http.MethodPost, "/api/bookings", payload)
	if w.Code != http.StatusConflict {
		t.Errorf("expected 409 for an overlapping booking, got %d: %s", w.Code, w.Body.String())
	}
}

func TestModifyBookingLockedNearCheckIn(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	other := env.seedRoom(t, "102", 100)
	user := env.seedUser(t)

	// Check-in is today: inside the 24-hour guest lock window.
	booking, err := env.svc.Create(user.ID, room.ID, time.Now().UTC(), time.Now().UTC().AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	payload := gin.H{
		"room_id":   other.ID,
		"check_in":  futureDate(5),
		"check_out": futureDate(8),
	}
	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/modify", booking.ID), payload)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 inside the lock window, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "locked within 24 hours") {
		t.Errorf("expected the lock message, got %s", w.Body.String())
	}

	// The administrator route performs the same move without the lock.
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/move", booking.ID), payload)
	if w.Code != http.StatusOK {
		t.Errorf("expected the admin move to bypass the lock, got %d: %s", w.Code, w.Body.String())
	}
}

func TestModifyBookingAllowedOutsideLockWindow(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	booking, err := env.svc.Create(user.ID, room.ID,
		time.Now().UTC().AddDate(0, 0, 10), time.Now().UTC().AddDate(0, 0, 13))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/modify", booking.ID), gin.H{
		"room_id":   room.ID,
		"check_in":  futureDate(11),
		"check_out": futureDate(14),
	})
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 outside the lock window, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckInCheckOutEndpoints(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	booking, err := env.svc.Create(user.ID, room.ID, time.Now().UTC(), time.Now().UTC().AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Checkout before checkin is a state error.
	w := env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/checkout", booking.ID), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 checking out a confirmed booking, got %d", w.Code)
	}

	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/checkin", booking.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-in failed: %d %s", w.Code, w.Body.String())
	}
	w = env.request(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/checkout", booking.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("check-out failed: %d %s", w.Code, w.Body.String())
	}

	// Unknown booking maps to 404.
	w = env.request(t, http.MethodPut, "/api/bookings/9999/checkin", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown booking, got %d", w.Code)
	}
}

func TestCancelBookingEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	booking, err := env.svc.Create(user.ID, room.ID, time.Now().UTC().AddDate(0, 0, 5), time.Now().UTC().AddDate(0, 0, 8))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), gin.H{"user_id": user.ID})
	if w.Code != http.StatusOK {
		t.Fatalf("cancel failed: %d %s", w.Code, w.Body.String())
	}

	// Repeating the cancel still succeeds.
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/bookings/%d/cancel", booking.ID), nil)
	if w.Code != http.StatusOK {
		t.Errorf("expected idempotent cancel, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetInvoiceEndpoint(t *testing.T) {
	env := newBookingTestEnv(t)
	room := env.seedRoom(t, "101", 100)
	user := env.seedUser(t)

	booking, err := env.svc.Create(user.ID, room.ID, time.Now().UTC().AddDate(0, 0, 5), time.Now().UTC().AddDate(0, 0, 8))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/bookings/%d/invoice", booking.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("invoice failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			InvoiceID  string  `json:"invoiceId"`
			RoomNumber string  `json:"roomNumber"`
			TotalPrice float64 `json:"totalPrice"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode invoice: %v", err)
	}
	if !strings.HasPrefix(resp.Data.InvoiceID, fmt.Sprintf("INV-%d-", booking.ID)) {
		t.Errorf("unexpected invoice id %q", resp.Data.InvoiceID)
	}
	if resp.Data.RoomNumber != "101" {
		t.Errorf("expected room number on the invoice, got %q", resp.Data.RoomNumber)
	}
	if resp.Data.TotalPrice != 300 {
		t.Errorf("expected 300.00 on the invoice, got %.2f", resp.Data.TotalPrice)
	}
}

func TestGetUserBookingsEndpointRequiresUserID(t *testing.T) {
	env := newBookingTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/bookings", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without userId, got %d", w.Code)
	}
}
