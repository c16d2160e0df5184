// services/aggregator.go
package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/models"
	"github.com/rplutino-work/barbershop-brothers/utils"
)

// Totals is the result of aggregating COMPLETED payments over one period.
//
// The cut rule is applied here and nowhere else: a service cut counts as
// work done by the barber (TotalServices, Commission) but its price is not
// shop revenue (ShopServices, ShopRevenue). Every reporting surface —
// barber dashboard, shop dashboard, weekly closings — goes through
// Aggregate/PerBarber instead of recomputing inline.
type Totals struct {
	TotalServices int     `json:"totalServices"` // all payments, cuts included
	ShopServices  int     `json:"shopServices"`  // non-cut payments only
	ShopRevenue   float64 `json:"shopRevenue"`   // sum of amount where not a cut
	Commission    float64 `json:"commission"`    // sum of amount * rate / 100, cuts included
	Tips          float64 `json:"tips"`
	Earnings      float64 `json:"earnings"` // commission + tips
}

type BarberTotals struct {
	BarberID   uuid.UUID `json:"barberId"`
	BarberName string    `json:"barberName"`
	Totals
}

type RecentService struct {
	ID          uuid.UUID `json:"id"`
	BarberName  string    `json:"barberName"`
	ServiceName string    `json:"serviceName"`
	Amount      float64   `json:"amount"`
	Tip         float64   `json:"tip"`
	Method      string    `json:"method"`
	ClientName  string    `json:"clientName,omitempty"`
	ClientPhone string    `json:"clientPhone,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Aggregator is the single read path over persisted payment snapshots.
// It never locks and never writes.
type Aggregator struct {
	db    *gorm.DB
	loc   *time.Location
	clock utils.Clock
}

func NewAggregator(db *gorm.DB, loc *time.Location, clock utils.Clock) *Aggregator {
	return &Aggregator{db: db, loc: loc, clock: clock}
}

// Canonical periods, computed from the injected clock in the shop timezone.

func (a *Aggregator) Today() (time.Time, time.Time) {
	return utils.DayRange(a.clock.Now(), a.loc)
}

func (a *Aggregator) ThisWeek() (time.Time, time.Time) {
	return utils.WeekRange(a.clock.Now(), a.loc)
}

func (a *Aggregator) ThisMonth() (time.Time, time.Time) {
	return utils.MonthRange(a.clock.Now(), a.loc)
}

func (a *Aggregator) LastMonth() (time.Time, time.Time) {
	end := utils.StartOfMonth(a.clock.Now(), a.loc)
	return end.AddDate(0, -1, 0), end
}

// Trailing30d is the rolling window behind "average earnings per service".
func (a *Aggregator) Trailing30d() (time.Time, time.Time) {
	now := a.clock.Now()
	return now.AddDate(0, 0, -30), now
}

// Aggregate folds the COMPLETED payments with createdAt in [start, end) —
// all of them, or one barber's — into Totals using only snapshot fields.
func (a *Aggregator) Aggregate(start, end time.Time, barberID *uuid.UUID) (Totals, error) {
	payments, err := a.completedBetween(start, end, barberID)
	if err != nil {
		return Totals{}, err
	}
	return fold(payments), nil
}

// PerBarber groups one period's COMPLETED payments by barber. The weekly
// closing generator and the shop dashboard both build on this.
func (a *Aggregator) PerBarber(start, end time.Time) ([]BarberTotals, error) {
	payments, err := a.completedBetween(start, end, nil)
	if err != nil {
		return nil, err
	}

	byBarber := make(map[uuid.UUID][]models.Payment)
	names := make(map[uuid.UUID]string)
	for _, p := range payments {
		byBarber[p.BarberID] = append(byBarber[p.BarberID], p)
		names[p.BarberID] = p.Barber.Name
	}

	totals := make([]BarberTotals, 0, len(byBarber))
	for id, rows := range byBarber {
		totals = append(totals, BarberTotals{
			BarberID:   id,
			BarberName: names[id],
			Totals:     fold(rows),
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].BarberName < totals[j].BarberName })
	return totals, nil
}

// RecentServices returns the latest COMPLETED payments, shop-wide when
// barberID is nil, newest first.
func (a *Aggregator) RecentServices(barberID *uuid.UUID, limit int) ([]RecentService, error) {
	q := a.db.
		Preload("Barber").
		Preload("Service").
		Preload("Client").
		Where("status = ?", models.PaymentCompleted).
		Order("created_at DESC").
		Limit(limit)
	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var payments []models.Payment
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}

	recent := make([]RecentService, 0, len(payments))
	for _, p := range payments {
		r := RecentService{
			ID:          p.ID,
			BarberName:  p.Barber.Name,
			ServiceName: p.Service.Name,
			Amount:      p.Amount,
			Tip:         p.Tip,
			Method:      p.Method,
			CreatedAt:   p.CreatedAt,
		}
		if p.Client != nil {
			r.ClientName = p.Client.Name
			r.ClientPhone = p.Client.Phone
		}
		recent = append(recent, r)
	}
	return recent, nil
}

func (a *Aggregator) completedBetween(start, end time.Time, barberID *uuid.UUID) ([]models.Payment, error) {
	// Service and Barber are preloaded so legacy rows with NULL snapshot
	// columns can resolve a presentation rate; nothing is written back.
	// Bounds are normalized to UTC to match the persisted instants.
	q := a.db.
		Preload("Barber").
		Preload("Service").
		Where("status = ? AND created_at >= ? AND created_at < ?", models.PaymentCompleted, start.UTC(), end.UTC())
	if barberID != nil {
		q = q.Where("barber_id = ?", *barberID)
	}

	var payments []models.Payment
	err := q.Find(&payments).Error
	return payments, err
}

func fold(payments []models.Payment) Totals {
	var t Totals
	for _, p := range payments {
		t.TotalServices++
		t.Commission += p.CommissionOwed()
		t.Tips += p.Tip
		if !p.ResolveIsServiceCut() {
			t.ShopServices++
			t.ShopRevenue += p.Amount
		}
	}
	t.Earnings = t.Commission + t.Tips
	return t
}
