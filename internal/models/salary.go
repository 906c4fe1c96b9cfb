package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryPayment is one monthly pay of an employee. Period is YYYY-MM.
type SalaryPayment struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	EmployeeID uint            `json:"employee_id" gorm:"not null;uniqueIndex:idx_salary_period"`
	Period     string          `json:"period" gorm:"type:varchar(7);not null;uniqueIndex:idx_salary_period"`
	BaseAmount decimal.Decimal `json:"base_amount" gorm:"type:decimal(14,2);not null"`
	Bonus      decimal.Decimal `json:"bonus" gorm:"type:decimal(14,2);not null;default:0"`
	Deductions decimal.Decimal `json:"deductions" gorm:"type:decimal(14,2);not null;default:0"`
	NetAmount  decimal.Decimal `json:"net_amount" gorm:"type:decimal(14,2);not null"`
	PaidAt     time.Time       `json:"paid_at" gorm:"not null"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (s *SalaryPayment) Recompute() {
	s.NetAmount = s.BaseAmount.Add(s.Bonus).Sub(s.Deductions)
}
