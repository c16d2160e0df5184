// controllers/weekly_closing.go
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
	"github.com/rplutino-work/barbershop-brothers/services"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

type WeeklyClosingController struct {
	closings *services.ClosingService
}

func NewWeeklyClosingController(closings *services.ClosingService) *WeeklyClosingController {
	return &WeeklyClosingController{closings: closings}
}

// RunAutoClosing settles the current week, or the week containing ?date=.
// The cron job hits the same code path every Sunday night; running both, or
// running twice, upserts rather than duplicates.
func (wc *WeeklyClosingController) RunAutoClosing(c *gin.Context) {
	ref := time.Now()
	if date := c.Query("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, config.Timezone())
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	summary, err := wc.closings.GenerateForWeek(ref)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate weekly closings")
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// ListClosings returns closings newest week first, optionally only the week
// containing ?date=.
func (wc *WeeklyClosingController) ListClosings(c *gin.Context) {
	q := config.DB.Preload("Barber").Order("week_start DESC")

	if date := c.Query("date"); date != "" {
		loc := config.Timezone()
		parsed, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		weekStart := utils.StartOfWeek(parsed, loc)
		q = q.Where("week_start = ?", weekStart)
	}

	var closings []models.WeeklyClosing
	if err := q.Find(&closings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve closings")
		return
	}

	c.JSON(http.StatusOK, closings)
}

// MarkClosingPaid settles a closing with the barber.
func (wc *WeeklyClosingController) MarkClosingPaid(c *gin.Context) {
	closingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid closing ID format")
		return
	}

	var closing models.WeeklyClosing
	if err := config.DB.First(&closing, "id = ?", closingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Closing not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&closing).Update("status", models.ClosingPaid).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update closing")
		return
	}

	c.JSON(http.StatusOK, closing)
}
