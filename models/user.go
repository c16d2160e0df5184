package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rplutino-work/barbershop-brothers/utils"
)

const (
	RoleAdmin  = "ADMIN"
	RoleBarber = "BARBER"
)

// User is both an auth principal and, when Role is BARBER, an entry in the
// barber registry. CommissionRate is the barber's default percentage; a
// service may override it per cut (see Service.BarberCommissionRate).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`

	Role           string  `gorm:"type:varchar(20);not null;default:'BARBER'" json:"role"`
	CommissionRate float64 `gorm:"type:decimal(5,2);default:50" json:"commissionRate"`

	LastLogin *time.Time `json:"lastLogin"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	gorm.Model `json:"-"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
