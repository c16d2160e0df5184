package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Client struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Phone string    `gorm:"uniqueIndex" json:"phone"`
	Email string    `json:"email"`
	Notes string    `json:"notes"`

	TotalVisits int        `gorm:"default:0" json:"totalVisits"`
	TotalSpent  float64    `gorm:"type:decimal(10,2);default:0.0" json:"totalSpent"`
	LastVisit   *time.Time `json:"lastVisit"`

	gorm.Model `json:"-"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
