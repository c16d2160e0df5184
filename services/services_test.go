package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/models"
)

// Shared fixtures. Storage-backed tests run on an in-memory sqlite DB with
// the same GORM models and error translation the postgres deployment uses.

var testZone = time.FixedZone("ART", -3*60*60)

// A Wednesday afternoon; its week is Mon 2025-08-11 .. Sun 2025-08-17 local.
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

	return db
}

func seedBarber(t *testing.T, db *gorm.DB, name string, commissionRate float64) models.User {
	t.Helper()

	// SkipHooks: fixtures don't need a real bcrypt hash
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

// seedPayment snapshots the service/barber state at seed time, the way the
// payment recorder does.
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

// seedLegacyPayment inserts a row the way pre-migration code did: no
// snapshot columns at all.
func seedLegacyPayment(t *testing.T, db *gorm.DB, barber models.User, svc models.Service, amount float64, createdAt time.Time) models.Payment {
	t.Helper()

	payment := models.Payment{
		BarberID:  barber.ID,
		ServiceID: svc.ID,
		Amount:    amount,
		Method:    "CASH",
		Status:    models.PaymentCompleted,
		CreatedAt: createdAt.UTC(),
	}
	if err := db.Create(&payment).Error; err != nil {
		t.Fatalf("seed legacy payment: %v", err)
	}
	return payment
}

func floatPtr(v float64) *float64 { return &v }
