package models

import (
	"time"

	"gorm.io/gorm"
)

type StaffTaskType string

const (
	TaskCleaning    StaffTaskType = "Cleaning"
	TaskMaintenance StaffTaskType = "Maintenance"
	TaskInspection  StaffTaskType = "Inspection"
)

type StaffTaskStatus string

const (
	TaskPending    StaffTaskStatus = "Pending"
	TaskInProgress StaffTaskStatus = "InProgress"
	TaskCompleted  StaffTaskStatus = "Completed"
)

type StaffTask struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomID uint `gorm:"index" json:"roomId"`
	Room   Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	Type   StaffTaskType   `gorm:"size:32" json:"type"`
	Status StaffTaskStatus `gorm:"size:32;index" json:"status"`

	AssignedTo string `gorm:"size:150" json:"assignedTo,omitempty"`
	Notes      string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
