package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveService marks a cut in progress for one barber. The unique index on
// BarberID is what enforces "at most one running timer per barber": starting
// a second timer fails on insert, not on an application-level check. Rows are
// ephemeral and deleted on stop; history lives in Payment.
type ActiveService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BarberID  uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"barberId"`
	StartTime time.Time `gorm:"not null" json:"startTime"`

	Barber User `gorm:"foreignKey:BarberID" json:"barber,omitempty"`
}

func (a *ActiveService) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
