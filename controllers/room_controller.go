package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

type RoomController struct {
	RoomSvc         *services.RoomService
	AvailabilitySvc *services.AvailabilityService
}

func NewRoomController(roomSvc *services.RoomService, availabilitySvc *services.AvailabilityService) *RoomController {
	return &RoomController{RoomSvc: roomSvc, AvailabilitySvc: availabilitySvc}
}

type roomPayload struct {
	RoomNumber    string  `json:"roomNumber" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	PricePerNight float64 `json:"pricePerNight" binding:"required"`
	Floor         string  `json:"floor"`
	Description   string  `json:"description"`
}

// GET /api/rooms
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	rooms, err := ctrl.RoomSvc.GetAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// POST /api/rooms
func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	room := models.Room{
		RoomNumber:    payload.RoomNumber,
		Type:          payload.Type,
		PricePerNight: payload.PricePerNight,
		Floor:         payload.Floor,
		Description:   payload.Description,
		Status:        models.RoomAvailable,
		IsActive:      true,
	}
	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// PUT /api/rooms/:id
func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	// Only whitelisted columns are updatable through this endpoint.
	updates := map[string]interface{}{}
	for key, column := range map[string]string{
		"roomNumber":    "room_number",
		"type":          "type",
		"pricePerNight": "price_per_night",
		"floor":         "floor",
		"description":   "description",
		"status":        "status",
	} {
		if v, present := payload[key]; present {
			updates[column] = v
		}
	}
	if len(updates) == 0 {
		utils.JSONError(c, http.StatusBadRequest, "no updatable fields in payload")
		return
	}

	room, err := ctrl.RoomSvc.Update(id, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DELETE /api/rooms/:id — deactivates, never deletes.
func (ctrl *RoomController) DeactivateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Deactivate(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deactivated"})
}

// GET /api/rooms/available?checkIn=YYYY-MM-DD&checkOut=YYYY-MM-DD
func (ctrl *RoomController) GetAvailableRooms(c *gin.Context) {
	in, out, ok := parseStay(c, c.Query("checkIn"), c.Query("checkOut"))
	if !ok {
		return
	}
	rooms, err := ctrl.AvailabilitySvc.AvailableRooms(in, out)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GET /api/rooms/blocked-dates?from=YYYY-MM-DD&to=YYYY-MM-DD
func (ctrl *RoomController) GetBlockedDates(c *gin.Context) {
	from, to, ok := parseStay(c, c.Query("from"), c.Query("to"))
	if !ok {
		return
	}
	dates, err := ctrl.AvailabilitySvc.BlockedDates(from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"blockedDates": dates})
}
