package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// HeavyEquipment is an excavator, loader, crane... rented out by the day.
type HeavyEquipment struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	Name         string          `json:"name" gorm:"not null" binding:"required"`
	Kind         string          `json:"kind"`
	SerialNumber string          `json:"serial_number" gorm:"uniqueIndex"`
	DailyRate    decimal.Decimal `json:"daily_rate" gorm:"type:decimal(14,2);not null;default:0"`
	OperatorID   *uint           `json:"operator_id" gorm:"index"`
	PhotoURL     string          `json:"photo_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `json:"-" gorm:"index"`
}

func (HeavyEquipment) TableName() string {
	return "heavy_equipment"
}
