package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
)

// StaffService owns the housekeeping task board and the room-status
// projection tied to it: creating a task marks the room Cleaning or
// Maintenance, completing one marks it Available again.
type StaffService struct {
	DB     *gorm.DB
	Events EventEmitter
}

func NewStaffService(db *gorm.DB, events EventEmitter) *StaffService {
	return &StaffService{DB: db, Events: events}
}

type StaffStats struct {
	CriticalTasks     int64  `json:"criticalTasks"`
	TaskEfficiency    string `json:"taskEfficiency"`
	TotalTasksHandled int64  `json:"totalTasksHandled"`
	OpenTasks         int64  `json:"openTasks"`
}

func (s *StaffService) CreateTask(roomID uint, taskType models.StaffTaskType, notes string) (models.StaffTask, error) {
	task := models.StaffTask{
		RoomID:    roomID,
		Type:      taskType,
		Status:    models.TaskPending,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		status := models.RoomCleaning
		if taskType == models.TaskMaintenance {
			status = models.RoomMaintenance
		}
		return tx.Model(&room).Update("status", status).Error
	})
	if err != nil {
		return models.StaffTask{}, err
	}

	s.Events.TaskCreated(task)
	s.Events.RoomAvailabilityChanged(roomID, false)
	return task, nil
}

func (s *StaffService) UpdateTaskStatus(taskID uint, status models.StaffTaskStatus, assignedTo string) (models.StaffTask, error) {
	var task models.StaffTask
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Room").First(&task, taskID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTaskNotFound
			}
			return err
		}

		task.Status = status
		if assignedTo != "" {
			task.AssignedTo = assignedTo
		}
		if status == models.TaskCompleted {
			now := time.Now().UTC()
			task.CompletedAt = &now
			// Cleaning or maintenance done: room goes back into service.
			if err := tx.Model(&models.Room{}).Where("id = ?", task.RoomID).
				Update("status", models.RoomAvailable).Error; err != nil {
				return err
			}
		}
		return tx.Save(&task).Error
	})
	if err != nil {
		return models.StaffTask{}, err
	}

	s.Events.TaskUpdated(task)
	if status == models.TaskCompleted {
		s.Events.RoomAvailabilityChanged(task.RoomID, true)
	}
	return task, nil
}

func (s *StaffService) ListTasks() ([]models.StaffTask, error) {
	var tasks []models.StaffTask
	err := s.DB.Preload("Room").Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (s *StaffService) Stats() (StaffStats, error) {
	var stats StaffStats
	var total int64

	if err := s.DB.Model(&models.StaffTask{}).Count(&total).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.StaffTask{}).
		Where("status = ?", models.TaskCompleted).
		Count(&stats.TotalTasksHandled).Error; err != nil {
		return stats, err
	}
	if err := s.DB.Model(&models.StaffTask{}).
		Where("status = ? AND type = ?", models.TaskPending, models.TaskMaintenance).
		Count(&stats.CriticalTasks).Error; err != nil {
		return stats, err
	}
	stats.OpenTasks = total - stats.TotalTasksHandled

	if total == 0 {
		stats.TaskEfficiency = "100%"
	} else {
		stats.TaskEfficiency = fmt.Sprintf("%d%%", int(float64(stats.TotalTasksHandled)/float64(total)*100))
	}
	return stats, nil
}
