package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentCancelled PaymentStatus = "CANCELLED"
)

// Payment is the system of record. ServicePrice, CommissionRate and
// IsServiceCut are snapshots taken when the payment was created (or last
// corrected via the edit endpoint); all commission and revenue math reads
// these columns and never the current Service/Barber configuration. The
// pointer fields are nullable because rows created before the snapshot
// migration lack them — see the Resolve helpers below.
type Payment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BarberID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_payments_barber_created,priority:1" json:"barberId"`
	ServiceID uuid.UUID  `gorm:"type:uuid;index;not null" json:"serviceId"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"clientId"`

	Amount float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Tip    float64       `gorm:"type:decimal(10,2);default:0.0" json:"tip"`
	Method string        `gorm:"not null" json:"method"`
	Status PaymentStatus `gorm:"type:varchar(20);default:'COMPLETED'" json:"status"`

	// snapshot fields
	ServicePrice   *float64 `gorm:"type:decimal(10,2)" json:"servicePrice"`
	CommissionRate *float64 `gorm:"type:decimal(5,2)" json:"commissionRate"`
	IsServiceCut   *bool    `json:"isServiceCut"`

	// timing fields, present only when a stopped timer was handed in
	ServiceStartTime *time.Time `json:"serviceStartTime"`
	ServiceEndTime   *time.Time `json:"serviceEndTime"`
	ServiceDuration  *int       `json:"serviceDuration"` // seconds

	CreatedAt time.Time `gorm:"index:idx_payments_barber_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Barber  User     `gorm:"foreignKey:BarberID" json:"barber,omitempty"`
	Service Service  `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// ResolveIsServiceCut is the one place the legacy NULL is interpreted.
// Pre-migration rows predate the cut feature and were never cuts.
func (p *Payment) ResolveIsServiceCut() bool {
	return p.IsServiceCut != nil && *p.IsServiceCut
}

// ResolvedCommissionRate falls back through the snapshot, the current
// service override and the barber default, in that order. The fallbacks are
// for displaying legacy rows only; they are never written back. Callers must
// have Service and Barber preloaded for legacy rows to resolve correctly.
func (p *Payment) ResolvedCommissionRate() float64 {
	if p.CommissionRate != nil {
		return *p.CommissionRate
	}
	if p.Service.BarberCommissionRate != nil {
		return *p.Service.BarberCommissionRate
	}
	return p.Barber.CommissionRate
}

// CommissionOwed is the commission invariant: amount * rate / 100, using the
// row's own rate regardless of later catalog or registry changes.
func (p *Payment) CommissionOwed() float64 {
	return p.Amount * p.ResolvedCommissionRate() / 100
}

// SnapshotPrice is the price recorded at payment time, falling back to the
// charged amount on legacy rows.
func (p *Payment) SnapshotPrice() float64 {
	if p.ServicePrice != nil {
		return *p.ServicePrice
	}
	return p.Amount
}
