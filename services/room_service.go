package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
)

// RoomService is plain inventory CRUD. Rooms are only ever deactivated,
// never removed, so past bookings keep a valid room reference.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) Create(room *models.Room) error {
	if room.Status == "" {
		room.Status = models.RoomAvailable
	}
	return s.DB.Create(room).Error
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrRoomNotFound
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(id uint, updates map[string]interface{}) (models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return models.Room{}, err
	}
	if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
		return models.Room{}, err
	}
	return s.GetByID(id)
}

// Deactivate soft-deletes from the booking flow's point of view: the row
// stays, but new bookings are refused.
func (s *RoomService) Deactivate(id uint) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}
	return s.DB.Model(&room).Update("is_active", false).Error
}
