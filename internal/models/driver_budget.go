package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DriverBudget is cash handed to a driver for a trip (tolls, food, small
// repairs). It moves allocated -> used -> settled.
type DriverBudget struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	DriverID    uint            `json:"driver_id" gorm:"not null;index"`
	VehicleID   *uint           `json:"vehicle_id" gorm:"index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	UsedAmount  decimal.Decimal `json:"used_amount" gorm:"type:decimal(14,2);not null;default:0"`
	Status      BudgetStatus    `json:"status" gorm:"type:varchar(20);default:'allocated'"`
	Purpose     string          `json:"purpose"`
	AllocatedAt time.Time       `json:"allocated_at" gorm:"not null"`
	UsedAt      *time.Time      `json:"used_at"`
	SettledAt   *time.Time      `json:"settled_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type BudgetStatus string

const (
	BudgetAllocated BudgetStatus = "allocated"
	BudgetUsed      BudgetStatus = "used"
	BudgetSettled   BudgetStatus = "settled"
)

// budgetTransitions lists the only forward moves allowed.
var budgetTransitions = map[BudgetStatus]BudgetStatus{
	BudgetAllocated: BudgetUsed,
	BudgetUsed:      BudgetSettled,
}

func (b *DriverBudget) CanMoveTo(next BudgetStatus) bool {
	return budgetTransitions[b.Status] == next
}

// Remainder is the unused part the driver hands back on settlement.
func (b *DriverBudget) Remainder() decimal.Decimal {
	return b.Amount.Sub(b.UsedAmount)
}
