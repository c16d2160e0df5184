// controllers/stats.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/services"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

// StatsController exposes the dashboards. Every figure comes out of the
// Revenue Aggregator; nothing here re-derives the cut or commission rules.
type StatsController struct {
	aggregator *services.Aggregator
}

func NewStatsController(aggregator *services.Aggregator) *StatsController {
	return &StatsController{aggregator: aggregator}
}

// BarberStats is the barber dashboard payload
type BarberStats struct {
	TodayEarnings   float64                  `json:"todayEarnings"`
	WeekEarnings    float64                  `json:"weekEarnings"`
	MonthEarnings   float64                  `json:"monthEarnings"`
	TodayServices   int                      `json:"todayServices"`
	WeekServices    int                      `json:"weekServices"`
	MonthServices   int                      `json:"monthServices"`
	AverageEarnings float64                  `json:"averageEarnings"`
	RecentServices  []services.RecentService `json:"recentServices"`
}

type ShopGeneralStats struct {
	TotalBarbers     int64   `json:"totalBarbers"`
	TotalServices    int64   `json:"totalServices"` // active catalog entries
	TodayRevenue     float64 `json:"todayRevenue"`
	WeekRevenue      float64 `json:"weekRevenue"`
	MonthRevenue     float64 `json:"monthRevenue"`
	LastMonthRevenue float64 `json:"lastMonthRevenue"`
	TodayServiceCnt  int     `json:"todayServices"`
	WeekServiceCnt   int     `json:"weekServices"`
	MonthServiceCnt  int     `json:"monthServices"`
}

type ShopStats struct {
	General        ShopGeneralStats         `json:"general"`
	BarberStats    []services.BarberTotals  `json:"barberStats"` // current week
	RecentActivity []services.RecentService `json:"recentActivity"`
}

// GetBarberStats returns one barber's earnings and service counts over the
// canonical periods. Earnings are commission + tips from snapshot fields;
// the service counts include service cuts (a cut is still work done).
func (sc *StatsController) GetBarberStats(c *gin.Context) {
	barberUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid barber ID format")
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

	dayStart, dayEnd := sc.aggregator.Today()
	weekStart, weekEnd := sc.aggregator.ThisWeek()
	monthStart, monthEnd := sc.aggregator.ThisMonth()
	windowStart, windowEnd := sc.aggregator.Trailing30d()

	today, err := sc.aggregator.Aggregate(dayStart, dayEnd, &barberUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate today")
		return
	}
	week, err := sc.aggregator.Aggregate(weekStart, weekEnd, &barberUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate week")
		return
	}
	month, err := sc.aggregator.Aggregate(monthStart, monthEnd, &barberUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate month")
		return
	}
	window, err := sc.aggregator.Aggregate(windowStart, windowEnd, &barberUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate trailing window")
		return
	}

	var average float64
	if window.TotalServices > 0 {
		average = window.Earnings / float64(window.TotalServices)
	}

	recent, err := sc.aggregator.RecentServices(&barberUUID, 10)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve recent services")
		return
	}

	c.JSON(http.StatusOK, BarberStats{
		TodayEarnings:   today.Earnings,
		WeekEarnings:    week.Earnings,
		MonthEarnings:   month.Earnings,
		TodayServices:   today.TotalServices,
		WeekServices:    week.TotalServices,
		MonthServices:   month.TotalServices,
		AverageEarnings: average,
		RecentServices:  recent,
	})
}

// GetShopStats returns the shop dashboard: revenue excludes service cuts,
// as do the shop-wide service counts, and the weekly per-barber breakdown
// uses the same aggregation the closing generator does.
func (sc *StatsController) GetShopStats(c *gin.Context) {
	var totalBarbers int64
	config.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ?", models.RoleBarber, true).
		Count(&totalBarbers)

	var totalServices int64
	config.DB.Model(&models.Service{}).Where("is_active = ?", true).Count(&totalServices)

	dayStart, dayEnd := sc.aggregator.Today()
	weekStart, weekEnd := sc.aggregator.ThisWeek()
	monthStart, monthEnd := sc.aggregator.ThisMonth()
	lastMonthStart, lastMonthEnd := sc.aggregator.LastMonth()

	today, err := sc.aggregator.Aggregate(dayStart, dayEnd, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate today")
		return
	}
	week, err := sc.aggregator.Aggregate(weekStart, weekEnd, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate week")
		return
	}
	month, err := sc.aggregator.Aggregate(monthStart, monthEnd, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate month")
		return
	}
	lastMonth, err := sc.aggregator.Aggregate(lastMonthStart, lastMonthEnd, nil)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate last month")
		return
	}

	perBarber, err := sc.aggregator.PerBarber(weekStart, weekEnd)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to aggregate barbers")
		return
	}

	recent, err := sc.aggregator.RecentServices(nil, 10)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve recent activity")
		return
	}

	c.JSON(http.StatusOK, ShopStats{
		General: ShopGeneralStats{
			TotalBarbers:     totalBarbers,
			TotalServices:    totalServices,
			TodayRevenue:     today.ShopRevenue,
			WeekRevenue:      week.ShopRevenue,
			MonthRevenue:     month.ShopRevenue,
			LastMonthRevenue: lastMonth.ShopRevenue,
			TodayServiceCnt:  today.ShopServices,
			WeekServiceCnt:   week.ShopServices,
			MonthServiceCnt:  month.ShopServices,
		},
		BarberStats:    perBarber,
		RecentActivity: recent,
	})
}
