package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

type hotelSettingsPayload struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	Website              string `json:"website"`
	RecomputePriceOnMove *bool  `json:"recomputePriceOnMove"`
}

// GET /api/settings
func (ctrl *SettingsController) GetSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := ctrl.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONSuccess(c, http.StatusOK, models.HotelSetting{})
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

// PUT /api/settings
func (ctrl *SettingsController) UpdateSettings(c *gin.Context) {
	var payload hotelSettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var setting models.HotelSetting
	err := ctrl.DB.First(&setting).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		respondServiceError(c, err)
		return
	}

	setting.Name = payload.Name
	setting.Address = payload.Address
	setting.Phone = payload.Phone
	setting.Email = payload.Email
	setting.Website = payload.Website
	if payload.RecomputePriceOnMove != nil {
		setting.RecomputePriceOnMove = *payload.RecomputePriceOnMove
	}

	if err := ctrl.DB.Save(&setting).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
