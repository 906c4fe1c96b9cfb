package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Vehicle is a truck or van of the delivery fleet.
type Vehicle struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	PlateNumber string          `json:"plate_number" gorm:"not null;uniqueIndex" binding:"required"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Capacity    decimal.Decimal `json:"capacity" gorm:"type:decimal(14,3);default:0"` // tons
	DriverID    *uint           `json:"driver_id" gorm:"index"`
	PhotoURL    string          `json:"photo_url"`
	Status      string          `json:"status" gorm:"default:'available'"` // available, on_delivery, maintenance
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}
