// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

// CreatePaymentInput defines the expected JSON structure for recording a payment
type CreatePaymentInput struct {
	BarberID  uuid.UUID  `json:"barberId" binding:"required"`
	ServiceID uuid.UUID  `json:"serviceId" binding:"required"`
	Amount    float64    `json:"amount" binding:"required,gt=0"`
	Tip       float64    `json:"tip" binding:"min=0"`
	Method    string     `json:"method" binding:"required"`
	ClientID  *uuid.UUID `json:"clientId"`

	// Timing hand-off from a stopped service timer, if one preceded this
	// payment. Duration is in seconds.
	ServiceStartTime *time.Time `json:"serviceStartTime"`
	ServiceDuration  *int       `json:"serviceDuration" binding:"omitempty,min=0"`
}

// UpdatePaymentInput corrects a payment that was recorded against the wrong
// service (or client).
type UpdatePaymentInput struct {
	ServiceID uuid.UUID  `json:"serviceId" binding:"required"`
	ClientID  *uuid.UUID `json:"clientId"`
}

// CreatePayment records a payment and snapshots the financial facts —
// service price, effective commission rate, cut flag — as they are right
// now. Later edits to the Service or Barber have no effect on this row.
func CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
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

	// Per-service override wins over the barber's default rate
	commissionRate := barber.CommissionRate
	if service.BarberCommissionRate != nil {
		commissionRate = *service.BarberCommissionRate
	}

	servicePrice := service.Price
	isServiceCut := service.IsServiceCut

	payment := models.Payment{
		BarberID:       input.BarberID,
		ServiceID:      input.ServiceID,
		ClientID:       input.ClientID,
		Amount:         input.Amount,
		Tip:            input.Tip,
		Method:         strings.ToUpper(input.Method),
		Status:         models.PaymentCompleted,
		ServicePrice:   &servicePrice,
		CommissionRate: &commissionRate,
		IsServiceCut:   &isServiceCut,
	}

	if input.ServiceStartTime != nil && input.ServiceDuration != nil {
		endTime := input.ServiceStartTime.Add(time.Duration(*input.ServiceDuration) * time.Second)
		payment.ServiceStartTime = input.ServiceStartTime
		payment.ServiceEndTime = &endTime
		payment.ServiceDuration = input.ServiceDuration
	}

	// Start transaction: the payment and the client stats move together
	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&payment).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	if input.ClientID != nil {
		if err := tx.Model(&models.Client{}).Where("id = ?", *input.ClientID).
			Updates(map[string]interface{}{
				"total_visits": gorm.Expr("total_visits + ?", 1),
				"total_spent":  gorm.Expr("total_spent + ?", input.Amount+input.Tip),
				"last_visit":   time.Now().UTC(),
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client stats")
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		return
	}

	config.DB.Preload("Barber").Preload("Service").Preload("Client").First(&payment, "id = ?", payment.ID)
	c.JSON(http.StatusCreated, payment)
}

// UpdatePayment is the explicit correction path: "I recorded the wrong
// service, fix it." The snapshot is fully re-derived from the NEW service's
// current price/rate/cut flag — not merged with the old one — while the
// original timing fields are preserved.
func UpdatePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var input UpdatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var payment models.Payment
	if err := config.DB.First(&payment, "id = ?", paymentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", input.ServiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var barber models.User
	if err := config.DB.First(&barber, "id = ?", payment.BarberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Barber not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	commissionRate := barber.CommissionRate
	if service.BarberCommissionRate != nil {
		commissionRate = *service.BarberCommissionRate
	}

	updates := map[string]interface{}{
		"service_id":      input.ServiceID,
		"client_id":       input.ClientID,
		"amount":          service.Price,
		"service_price":   service.Price,
		"commission_rate": commissionRate,
		"is_service_cut":  service.IsServiceCut,
	}

	if err := config.DB.Model(&payment).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment")
		return
	}

	config.DB.Preload("Barber").Preload("Service").Preload("Client").First(&payment, "id = ?", payment.ID)
	c.JSON(http.StatusOK, payment)
}

// GetPayments lists payments, optionally restricted to one local day
// (?date=2025-08-14).
func GetPayments(c *gin.Context) {
	q := config.DB.Preload("Barber").Preload("Service").Preload("Client").
		Order("created_at DESC")

	if date := c.Query("date"); date != "" {
		loc := config.Timezone()
		day, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		start, end := utils.DayRange(day, loc)
		q = q.Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC())
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}

// GetBarberPayments lists one barber's payment history, newest first.
func GetBarberPayments(c *gin.Context) {
	barberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
		return
	}

	var payments []models.Payment
	if err := config.DB.Preload("Barber").Preload("Service").Preload("Client").
		Where("barber_id = ?", barberUUID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, payments)
}
