package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	FirstName  string          `json:"first_name" gorm:"not null" binding:"required"`
	LastName   string          `json:"last_name" gorm:"not null" binding:"required"`
	Phone      string          `json:"phone"`
	Role       string          `json:"role" gorm:"default:'driver'"` // driver, operator, mechanic, office
	BaseSalary decimal.Decimal `json:"base_salary" gorm:"type:decimal(14,2);not null;default:0"`
	HiredAt    *time.Time      `json:"hired_at"`
	IsActive   bool            `json:"is_active" gorm:"default:true"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `json:"-" gorm:"index"`
}

type EmployeeRole string

const (
	RoleDriver   EmployeeRole = "driver"
	RoleOperator EmployeeRole = "operator"
	RoleMechanic EmployeeRole = "mechanic"
	RoleOffice   EmployeeRole = "office"
)

func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e *Employee) IsDriver() bool {
	return e.Role == string(RoleDriver)
}
