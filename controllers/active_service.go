// controllers/active_service.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

type StartActiveServiceInput struct {
	BarberID uuid.UUID `json:"barberId" binding:"required"`
}

// GetActiveServices lists the timers currently running; the kiosk screens
// poll this.
func GetActiveServices(c *gin.Context) {
	var active []models.ActiveService
	if err := config.DB.Preload("Barber").Find(&active).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve active services")
		return
	}

	c.JSON(http.StatusOK, active)
}

// StartActiveService begins a cut for a barber. Uniqueness per barber is
// enforced by the unique index on barber_id: the insert itself fails if a
// timer is already running, so two simultaneous starts cannot both succeed.
func StartActiveService(c *gin.Context) {
	var input StartActiveServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "barberId is required")
		return
	}

	var barber models.User
	if err := config.DB.Where("id = ? AND role = ?", input.BarberID, models.RoleBarber).First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	active := models.ActiveService{
		BarberID:  input.BarberID,
		StartTime: time.Now().UTC(),
	}

	if err := config.DB.Create(&active).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusBadRequest, "Barber already has an active service")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to start service")
		}
		return
	}

	active.Barber = barber
	c.JSON(http.StatusCreated, active)
}

// StopActiveService ends a barber's running timer and returns the elapsed
// duration in whole seconds. The caller hands {startTime, duration} back to
// payment creation; nothing about the stopped timer is persisted here.
//
// The delete is keyed on (barber_id, start_time) and checked for rows
// affected, so two concurrent stops cannot both claim the same timing data.
func StopActiveService(c *gin.Context) {
	barberID := c.Query("barberId")
	if barberID == "" {
		utils.RespondWithError(c, http.StatusBadRequest, "barberId is required")
		return
	}

	barberUUID, err := uuid.Parse(barberID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barberId format")
		return
	}

	var active models.ActiveService
	if err := config.DB.Where("barber_id = ?", barberUUID).First(&active).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "No active service for this barber")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	duration := int(time.Now().UTC().Sub(active.StartTime).Seconds())
	if duration < 0 {
		duration = 0
	}

	result := config.DB.Where("barber_id = ? AND start_time = ?", barberUUID, active.StartTime).
		Delete(&models.ActiveService{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to stop service")
		return
	}
	if result.RowsAffected == 0 {
		// A concurrent stop or restart already consumed this timer.
		utils.RespondWithError(c, http.StatusNotFound, "No active service for this barber")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Service stopped",
		"startTime": active.StartTime,
		"duration":  duration,
	})
}
