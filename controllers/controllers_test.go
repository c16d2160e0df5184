package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/config"
	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/services"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

// Handler tests run the real handlers against an in-memory sqlite DB wired
// into config.DB, on a router without the auth middleware.

var testZone = time.FixedZone("ART", -3*60*60)

// Wednesday; week is Mon 2025-08-11 .. Sun 2025-08-17 local
var testNow = time.Date(2025, time.August, 13, 15, 0, 0, 0, testZone)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Client{},
		&models.ActiveService{},
		&models.Payment{},
		&models.WeeklyClosing{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	config.DB = db
	return db
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := setupTestDB(t)

	clock := utils.FixedClock{Instant: testNow}
	aggregator := services.NewAggregator(db, testZone, clock)
	closings := services.NewClosingService(db, aggregator, testZone, clock)
	statsController := NewStatsController(aggregator)
	closingController := NewWeeklyClosingController(closings)

	r := gin.New()
	r.GET("/api/active-service", GetActiveServices)
	r.POST("/api/active-service", StartActiveService)
	r.DELETE("/api/active-service", StopActiveService)
	r.POST("/api/payment", CreatePayment)
	r.PUT("/api/payment/:id", UpdatePayment)
	r.GET("/api/payments", GetPayments)
	r.GET("/api/payments/barber/:id", GetBarberPayments)
	r.GET("/api/stats", statsController.GetShopStats)
	r.GET("/api/stats/barber/:id", statsController.GetBarberStats)
	r.GET("/api/weekly-closing", closingController.ListClosings)
	r.POST("/api/weekly-closing/auto", closingController.RunAutoClosing)
	r.PUT("/api/weekly-closing/:id/pay", closingController.MarkClosingPaid)

	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func seedBarber(t *testing.T, db *gorm.DB, name string, commissionRate float64) models.User {
	t.Helper()

	barber := models.User{
		ID:             uuid.New(),
		Email:          fmt.Sprintf("%s@test.local", name),
		Password:       "not-a-real-hash",
		Name:           name,
		Role:           models.RoleBarber,
		CommissionRate: commissionRate,
		IsActive:       true,
	}
	if err := db.Session(&gorm.Session{SkipHooks: true}).Create(&barber).Error; err != nil {
		t.Fatalf("seed barber %s: %v", name, err)
	}
	return barber
}

func seedService(t *testing.T, db *gorm.DB, name string, price float64, isCut bool, override *float64) models.Service {
	t.Helper()

	service := models.Service{
		Name:                 name,
		Price:                price,
		Duration:             30,
		IsServiceCut:         isCut,
		BarberCommissionRate: override,
		IsActive:             true,
	}
	if err := db.Create(&service).Error; err != nil {
		t.Fatalf("seed service %s: %v", name, err)
	}
	return service
}

func seedPayment(t *testing.T, db *gorm.DB, barber models.User, svc models.Service, amount, tip float64, createdAt time.Time) models.Payment {
	t.Helper()

	rate := barber.CommissionRate
	if svc.BarberCommissionRate != nil {
		rate = *svc.BarberCommissionRate
	}
	price := svc.Price
	cut := svc.IsServiceCut

	payment := models.Payment{
		BarberID:       barber.ID,
		ServiceID:      svc.ID,
		Amount:         amount,
		Tip:            tip,
		Method:         "CASH",
		Status:         models.PaymentCompleted,
		ServicePrice:   &price,
		CommissionRate: &rate,
		IsServiceCut:   &cut,
		CreatedAt:      createdAt.UTC(),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}
	return payment
}

func floatPtr(v float64) *float64 { return &v }

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
