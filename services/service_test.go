package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/config"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory database. The shared-cache name keeps
// every pooled connection on the same database; the busy timeout makes
// concurrent writers wait instead of failing immediately.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_pragma=busy_timeout(10000)", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// A single pooled connection serializes writers the way the embedded
	// engine expects; concurrent callers queue instead of hitting lock errors.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func newBookingService(db *gorm.DB, events EventEmitter) *BookingService {
	if events == nil {
		events = NopEmitter{}
	}
	availability := NewAvailabilityService(db)
	pricing := NewPricingService(db, availability)
	staff := NewStaffService(db, events)
	return NewBookingService(db, pricing, availability, staff, events)
}

func seedRoom(t *testing.T, db *gorm.DB, number, roomType string, price float64) models.Room {
	t.Helper()
	room := models.Room{
		RoomNumber:    number,
		Type:          roomType,
		PricePerNight: price,
		Status:        models.RoomAvailable,
		IsActive:      true,
	}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("failed to seed room %s: %v", number, err)
	}
	return room
}

func seedUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{
		FullName: name,
		Email:    fmt.Sprintf("%s-%d@test.local", name, testDBSeq.Add(1)),
		Role:     "Guest",
		IsActive: true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", name, err)
	}
	return user
}

func seedRule(t *testing.T, db *gorm.DB, rule models.PricingRule) models.PricingRule {
	t.Helper()
	if err := db.Create(&rule).Error; err != nil {
		t.Fatalf("failed to seed rule %s: %v", rule.Name, err)
	}
	return rule
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func weekdays(t *testing.T, days ...string) datatypes.JSON {
	t.Helper()
	raw, err := json.Marshal(days)
	if err != nil {
		t.Fatalf("marshal weekdays: %v", err)
	}
	return datatypes.JSON(raw)
}

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingEmitter) record(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingEmitter) RoomAvailabilityChanged(roomID uint, available bool) {
	r.record(Event{Type: "RoomUpdated", Payload: map[string]interface{}{"roomId": roomID, "isAvailable": available}})
}

func (r *recordingEmitter) BookingEvent(message string, bookingID, roomID uint) {
	r.record(Event{Type: "ReceiveBookingUpdate", Payload: message})
}

func (r *recordingEmitter) CheckoutCompleted(roomID uint) {
	r.record(Event{Type: "CheckoutCompleted", Payload: roomID})
}

func (r *recordingEmitter) TaskCreated(task models.StaffTask) {
	r.record(Event{Type: "TaskCreated", Payload: task})
}

func (r *recordingEmitter) TaskUpdated(task models.StaffTask) {
	r.record(Event{Type: "TaskUpdated", Payload: task})
}

func (r *recordingEmitter) countByType(eventType string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Type == eventType {
			n++
		}
	}
	return n
}
