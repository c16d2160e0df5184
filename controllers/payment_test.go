package controllers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rplutino-work/barbershop-brothers/models"
)

func TestCreatePaymentSnapshotsFinancials(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)

	w := doRequest(t, r, http.MethodPost, "/api/payment", map[string]interface{}{
		"barberId":  barber.ID,
		"serviceId": corte.ID,
		"amount":    2500,
		"tip":       300,
		"method":    "cash",
	})
	requireStatus(t, w, http.StatusCreated)

	var payment models.Payment
	decodeBody(t, w, &payment)

	if payment.ServicePrice == nil || *payment.ServicePrice != 2500 {
		t.Errorf("servicePrice snapshot = %v, want 2500", payment.ServicePrice)
	}
	if payment.CommissionRate == nil || *payment.CommissionRate != 50 {
		t.Errorf("commissionRate snapshot = %v, want barber default 50", payment.CommissionRate)
	}
	if payment.IsServiceCut == nil || *payment.IsServiceCut {
		t.Errorf("isServiceCut snapshot = %v, want false", payment.IsServiceCut)
	}
	if payment.Method != "CASH" {
		t.Errorf("method = %q, want upper-cased CASH", payment.Method)
	}
	if payment.Status != models.PaymentCompleted {
		t.Errorf("status = %q, want COMPLETED", payment.Status)
	}
}

func TestCreatePaymentUsesServiceOverrideRate(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	cut := seedService(t, db, "Corte de Servicio", 1000, true, floatPtr(80))

	w := doRequest(t, r, http.MethodPost, "/api/payment", map[string]interface{}{
		"barberId":  barber.ID,
		"serviceId": cut.ID,
		"amount":    1000,
		"method":    "CASH",
	})
	requireStatus(t, w, http.StatusCreated)

	var payment models.Payment
	decodeBody(t, w, &payment)

	if payment.CommissionRate == nil || *payment.CommissionRate != 80 {
		t.Errorf("commissionRate = %v, want override 80", payment.CommissionRate)
	}
	if payment.IsServiceCut == nil || !*payment.IsServiceCut {
		t.Errorf("isServiceCut = %v, want true", payment.IsServiceCut)
	}
}

func TestCreatePaymentWithTimerHandoff(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)

	startTime := time.Date(2025, time.August, 13, 17, 0, 0, 0, time.UTC)
	w := doRequest(t, r, http.MethodPost, "/api/payment", map[string]interface{}{
		"barberId":         barber.ID,
		"serviceId":        corte.ID,
		"amount":           2500,
		"method":           "CASH",
		"serviceStartTime": startTime,
		"serviceDuration":  1530,
	})
	requireStatus(t, w, http.StatusCreated)

	var payment models.Payment
	decodeBody(t, w, &payment)

	if payment.ServiceStartTime == nil || !payment.ServiceStartTime.Equal(startTime) {
		t.Errorf("serviceStartTime = %v, want %v", payment.ServiceStartTime, startTime)
	}
	if payment.ServiceDuration == nil || *payment.ServiceDuration != 1530 {
		t.Errorf("serviceDuration = %v, want 1530", payment.ServiceDuration)
	}
	wantEnd := startTime.Add(1530 * time.Second)
	if payment.ServiceEndTime == nil || !payment.ServiceEndTime.Equal(wantEnd) {
		t.Errorf("serviceEndTime = %v, want startTime + duration = %v", payment.ServiceEndTime, wantEnd)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing barberId", map[string]interface{}{"serviceId": corte.ID, "amount": 2500, "method": "CASH"}},
		{"missing serviceId", map[string]interface{}{"barberId": barber.ID, "amount": 2500, "method": "CASH"}},
		{"missing amount", map[string]interface{}{"barberId": barber.ID, "serviceId": corte.ID, "method": "CASH"}},
		{"missing method", map[string]interface{}{"barberId": barber.ID, "serviceId": corte.ID, "amount": 2500}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, http.MethodPost, "/api/payment", tc.body)
			requireStatus(t, w, http.StatusBadRequest)
		})
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("invalid requests persisted %d payments", count)
	}
}

func TestCreatePaymentUnknownReferences(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)

	w := doRequest(t, r, http.MethodPost, "/api/payment", map[string]interface{}{
		"barberId":  barber.ID,
		"serviceId": uuid.New(),
		"amount":    2500,
		"method":    "CASH",
	})
	requireStatus(t, w, http.StatusNotFound)

	w = doRequest(t, r, http.MethodPost, "/api/payment", map[string]interface{}{
		"barberId":  uuid.New(),
		"serviceId": corte.ID,
		"amount":    2500,
		"method":    "CASH",
	})
	requireStatus(t, w, http.StatusNotFound)
}

// Correcting a payment to another service re-derives the whole snapshot
// from that service's current values; nothing of the old snapshot survives,
// while timing fields do.
func TestUpdatePaymentResnapshots(t *testing.T) {
	r, db := setupRouter(t)

	barber := seedBarber(t, db, "valen", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)
	cut := seedService(t, db, "Corte de Servicio", 1000, true, floatPtr(80))

	startTime := time.Date(2025, time.August, 13, 17, 0, 0, 0, time.UTC)
	duration := 900
	endTime := startTime.Add(time.Duration(duration) * time.Second)
	original := seedPayment(t, db, barber, corte, 2500, 0, testNow)
	if err := db.Model(&original).Updates(map[string]interface{}{
		"service_start_time": startTime,
		"service_end_time":   endTime,
		"service_duration":   duration,
	}).Error; err != nil {
		t.Fatalf("attach timing: %v", err)
	}

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/payment/%s", original.ID), map[string]interface{}{
		"serviceId": cut.ID,
	})
	requireStatus(t, w, http.StatusOK)

	var updated models.Payment
	if err := db.First(&updated, "id = ?", original.ID).Error; err != nil {
		t.Fatalf("reload payment: %v", err)
	}

	if updated.ServiceID != cut.ID {
		t.Errorf("serviceId = %v, want %v", updated.ServiceID, cut.ID)
	}
	if updated.Amount != 1000 {
		t.Errorf("amount = %v, want new service price 1000", updated.Amount)
	}
	if updated.ServicePrice == nil || *updated.ServicePrice != 1000 {
		t.Errorf("servicePrice = %v, want 1000", updated.ServicePrice)
	}
	if updated.CommissionRate == nil || *updated.CommissionRate != 80 {
		t.Errorf("commissionRate = %v, want new service override 80", updated.CommissionRate)
	}
	if updated.IsServiceCut == nil || !*updated.IsServiceCut {
		t.Errorf("isServiceCut = %v, want true from the new service", updated.IsServiceCut)
	}
	if updated.ServiceStartTime == nil || !updated.ServiceStartTime.Equal(startTime) {
		t.Errorf("timing fields must be preserved; got start %v", updated.ServiceStartTime)
	}
	if updated.ServiceDuration == nil || *updated.ServiceDuration != duration {
		t.Errorf("serviceDuration = %v, want preserved %d", updated.ServiceDuration, duration)
	}
}

func TestUpdatePaymentNotFound(t *testing.T) {
	r, db := setupRouter(t)

	corte := seedService(t, db, "Corte", 2500, false, nil)

	w := doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/payment/%s", uuid.New()), map[string]interface{}{
		"serviceId": corte.ID,
	})
	requireStatus(t, w, http.StatusNotFound)

	barber := seedBarber(t, db, "valen", 50)
	payment := seedPayment(t, db, barber, corte, 2500, 0, testNow)

	w = doRequest(t, r, http.MethodPut, fmt.Sprintf("/api/payment/%s", payment.ID), map[string]interface{}{
		"serviceId": uuid.New(),
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestGetBarberPayments(t *testing.T) {
	r, db := setupRouter(t)

	valen := seedBarber(t, db, "valen", 50)
	tomi := seedBarber(t, db, "tomi", 50)
	corte := seedService(t, db, "Corte", 2500, false, nil)

	seedPayment(t, db, valen, corte, 2500, 0, testNow)
	seedPayment(t, db, valen, corte, 2500, 0, testNow.Add(-time.Hour))
	seedPayment(t, db, tomi, corte, 2500, 0, testNow)

	w := doRequest(t, r, http.MethodGet, fmt.Sprintf("/api/payments/barber/%s", valen.ID), nil)
	requireStatus(t, w, http.StatusOK)

	var payments []models.Payment
	decodeBody(t, w, &payments)

	if len(payments) != 2 {
		t.Fatalf("got %d payments, want 2", len(payments))
	}
	for _, p := range payments {
		if p.BarberID != valen.ID {
			t.Errorf("payment %v belongs to %v, want only valen's", p.ID, p.BarberID)
		}
	}
	if payments[0].CreatedAt.Before(payments[1].CreatedAt) {
		t.Error("payments not ordered newest first")
	}
}
