package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the catalog entry for something a barber can charge. Price,
// commission override and the cut flag are snapshotted into each Payment at
// creation time; editing a Service never changes recorded history.
type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int       `gorm:"default:30" json:"duration"` // nominal, in minutes

	// IsServiceCut marks services whose price is excluded from shop revenue
	// (the shop pays the barber directly) while still generating commission.
	IsServiceCut         bool     `gorm:"default:false" json:"isServiceCut"`
	BarberCommissionRate *float64 `gorm:"type:decimal(5,2)" json:"barberCommissionRate"`

	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
