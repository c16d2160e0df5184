package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClosingPending = "PENDING"
	ClosingPaid    = "PAID"
)

// WeeklyClosing is one barber's settlement for one Monday–Sunday local week.
// Commission holds the full amount owed to the barber: per-payment commission
// plus tips. The composite unique index makes closing generation an upsert,
// so re-running a week refreshes it instead of duplicating it.
type WeeklyClosing struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	WeekStart time.Time `gorm:"not null;uniqueIndex:idx_closings_barber_week,priority:2" json:"weekStart"`
	WeekEnd   time.Time `gorm:"not null" json:"weekEnd"`
	BarberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_closings_barber_week,priority:1" json:"barberId"`

	TotalServices int     `json:"totalServices"`
	TotalRevenue  float64 `gorm:"type:decimal(10,2)" json:"totalRevenue"`
	TotalTips     float64 `gorm:"type:decimal(10,2)" json:"totalTips"`
	Commission    float64 `gorm:"type:decimal(10,2)" json:"commission"`

	Status    string    `gorm:"type:varchar(20);default:'PENDING'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Barber User `gorm:"foreignKey:BarberID" json:"barber,omitempty"`
}

func (w *WeeklyClosing) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return
}
