package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelDelivery is fuel bought from a supplier into the company tank.
type FuelDelivery struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	SupplierID  uint            `json:"supplier_id" gorm:"not null;index"`
	Liters      decimal.Decimal `json:"liters" gorm:"type:decimal(14,3);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:decimal(14,3);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	Reference   string          `json:"reference"`
	DeliveredAt time.Time       `json:"delivered_at" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (d *FuelDelivery) Recompute() {
	d.Total = d.Liters.Mul(d.UnitPrice).Round(2)
}

// FuelUsage is fuel drawn by a vehicle or a piece of heavy equipment.
type FuelUsage struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	MachineKind MachineKind     `json:"machine_kind" gorm:"type:varchar(20);not null;index:idx_fuel_machine"`
	MachineID   uint            `json:"machine_id" gorm:"not null;index:idx_fuel_machine"`
	EmployeeID  *uint           `json:"employee_id" gorm:"index"`
	Liters      decimal.Decimal `json:"liters" gorm:"type:decimal(14,3);not null"`
	Odometer    *int64          `json:"odometer"`
	UsedAt      time.Time       `json:"used_at" gorm:"not null"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FuelConsumption totals the fuel drawn by one machine.
type FuelConsumption struct {
	MachineKind MachineKind     `json:"machine_kind"`
	MachineID   uint            `json:"machine_id"`
	Liters      decimal.Decimal `json:"liters"`
	Usages      int             `json:"usages"`
}
