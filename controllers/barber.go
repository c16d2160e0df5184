// controllers/barber.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

type CreateBarberInput struct {
	Email          string   `json:"email" binding:"required,email"`
	Name           string   `json:"name" binding:"required"`
	Phone          string   `json:"phone"`
	Password       string   `json:"password" binding:"required,min=8"`
	CommissionRate *float64 `json:"commissionRate" binding:"omitempty,min=0,max=100"`
}

type UpdateBarberInput struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	CommissionRate *float64 `json:"commissionRate" binding:"omitempty,min=0,max=100"`
	IsActive       *bool    `json:"isActive"`
}

func GetBarbers(c *gin.Context) {
	var barbers []models.User
	if err := config.DB.Where("role = ?", models.RoleBarber).Order("name ASC").Find(&barbers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve barbers")
		return
	}

	c.JSON(http.StatusOK, barbers)
}

func CreateBarber(c *gin.Context) {
	var input CreateBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	barber := models.User{
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Password: input.Password, // Hashed in BeforeCreate hook
		Role:     models.RoleBarber,
		IsActive: true,
	}
	if input.CommissionRate != nil {
		barber.CommissionRate = *input.CommissionRate
	} else {
		barber.CommissionRate = 50
	}

	if err := config.DB.Create(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create barber")
		}
		return
	}

	c.JSON(http.StatusCreated, barber)
}

// UpdateBarber edits the registry. Changing CommissionRate only affects
// payments recorded from now on; existing rows keep their snapshot.
func UpdateBarber(c *gin.Context) {
	barberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	var input UpdateBarberInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var barber models.User
	if err := config.DB.Where("id = ? AND role = ?", barberUUID, models.RoleBarber).First(&barber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		barber.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
			return
		}
		barber.Phone = *input.Phone
	}
	if input.CommissionRate != nil {
		barber.CommissionRate = *input.CommissionRate
	}
	if input.IsActive != nil {
		barber.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&barber).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update barber")
		return
	}

	c.JSON(http.StatusOK, barber)
}

// DeleteBarber deactivates rather than deletes; payment history references
// the row forever.
func DeleteBarber(c *gin.Context) {
	barberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	result := config.DB.Model(&models.User{}).
		Where("id = ? AND role = ?", barberUUID, models.RoleBarber).
		Update("is_active", false)
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to deactivate barber")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Barber deactivated"})
}
