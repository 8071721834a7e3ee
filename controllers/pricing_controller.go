package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/models"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/services"
	"github.com/Developer-Rizwan-Zahid/Smart-Hotel-Management-Booking-Platform/utils"
)

// PricingController exposes rule administration (a separate write path from
// the rate engine, which only ever reads rules) and the stay estimate the
// booking UI shows before committing.
type PricingController struct {
	DB         *gorm.DB
	PricingSvc *services.PricingService
}

func NewPricingController(db *gorm.DB, pricingSvc *services.PricingService) *PricingController {
	return &PricingController{DB: db, PricingSvc: pricingSvc}
}

// GET /api/pricing/rules
func (ctrl *PricingController) GetRules(c *gin.Context) {
	var rules []models.PricingRule
	if err := ctrl.DB.Find(&rules).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rules)
}

// POST /api/pricing/rules
func (ctrl *PricingController) CreateRule(c *gin.Context) {
	var rule models.PricingRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := ctrl.DB.Create(&rule).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rule)
}

// PUT /api/pricing/rules/:id
func (ctrl *PricingController) UpdateRule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var rule models.PricingRule
	if err := ctrl.DB.First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.JSONError(c, http.StatusNotFound, "pricing rule not found")
			return
		}
		respondServiceError(c, err)
		return
	}

	var payload models.PricingRule
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	payload.ID = rule.ID
	payload.CreatedAt = rule.CreatedAt
	if err := ctrl.DB.Save(&payload).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payload)
}

// DELETE /api/pricing/rules/:id
func (ctrl *PricingController) DeleteRule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result := ctrl.DB.Delete(&models.PricingRule{}, id)
	if result.Error != nil {
		respondServiceError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "pricing rule not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Pricing rule deleted"})
}

// GET /api/pricing/estimate?roomId=&checkIn=&checkOut=
// Returns the total plus the per-night breakdown with applied rule names.
func (ctrl *PricingController) GetEstimate(c *gin.Context) {
	roomID, ok := parseUintQuery(c, "roomId")
	if !ok {
		return
	}
	in, out, ok := parseStay(c, c.Query("checkIn"), c.Query("checkOut"))
	if !ok {
		return
	}

	quote, err := ctrl.PricingSvc.StayQuote(nil, roomID, in, out)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}
