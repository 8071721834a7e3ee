package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

type StaffController struct {
	StaffSvc *services.StaffService
}

func NewStaffController(svc *services.StaffService) *StaffController {
	return &StaffController{StaffSvc: svc}
}

type createTaskPayload struct {
	RoomID uint                 `json:"room_id" binding:"required"`
	Type   models.StaffTaskType `json:"type" binding:"required"`
	Notes  string               `json:"notes"`
}

type updateTaskPayload struct {
	Status     models.StaffTaskStatus `json:"status" binding:"required"`
	AssignedTo string                 `json:"assignedTo"`
}

// GET /api/staff/tasks
func (ctrl *StaffController) GetTasks(c *gin.Context) {
	tasks, err := ctrl.StaffSvc.ListTasks()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tasks)
}

// POST /api/staff/tasks
func (ctrl *StaffController) CreateTask(c *gin.Context) {
	var payload createTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := ctrl.StaffSvc.CreateTask(payload.RoomID, payload.Type, payload.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, task)
}

// PUT /api/staff/tasks/:id/status
func (ctrl *StaffController) UpdateTaskStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload updateTaskPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	task, err := ctrl.StaffSvc.UpdateTaskStatus(id, payload.Status, payload.AssignedTo)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, task)
}

// GET /api/staff/stats
func (ctrl *StaffController) GetStats(c *gin.Context) {
	stats, err := ctrl.StaffSvc.Stats()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stats)
}
