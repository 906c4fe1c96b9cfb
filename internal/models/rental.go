package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquipmentRental rents a piece of heavy equipment to a client at a daily
// price. EndDate stays nil while the rental is open-ended; ClosedAt is set
// once the rental has been billed.
type EquipmentRental struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	HeavyEquipmentID uint            `json:"heavy_equipment_id" gorm:"not null;index"`
	ClientID         uint            `json:"client_id" gorm:"not null;index"`
	StartDate        time.Time       `json:"start_date" gorm:"type:date;not null"`
	EndDate          *time.Time      `json:"end_date" gorm:"type:date"`
	DailyPrice       decimal.Decimal `json:"daily_price" gorm:"type:decimal(14,2);not null"`
	BilledAmount     decimal.Decimal `json:"billed_amount" gorm:"type:decimal(14,2);not null;default:0"`
	ClosedAt         *time.Time      `json:"closed_at"`
	Notes            string          `json:"notes" gorm:"type:text"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InProgress reports whether today falls inside the rental period.
func (r *EquipmentRental) InProgress(today time.Time) bool {
	if DaysBetween(r.StartDate, today) < 0 {
		return false
	}
	return r.EndDate == nil || DaysBetween(today, *r.EndDate) >= 0
}

// Days counts rented days with both endpoints included. An open rental
// runs up to today. A period that has not started yet counts zero days.
func (r *EquipmentRental) Days(today time.Time) int {
	end := today
	if r.EndDate != nil {
		end = *r.EndDate
	}
	days := DaysBetween(r.StartDate, end) + 1
	if days < 0 {
		return 0
	}
	return days
}

// Billed is the amount owed for the rental as of today.
func (r *EquipmentRental) Billed(today time.Time) decimal.Decimal {
	return r.DailyPrice.Mul(decimal.NewFromInt(int64(r.Days(today))))
}

// Overlaps reports whether the rental period intersects [start, end].
// A nil end is open-ended.
func (r *EquipmentRental) Overlaps(start time.Time, end *time.Time) bool {
	if end != nil && DaysBetween(r.StartDate, *end) < 0 {
		return false
	}
	if r.EndDate != nil && DaysBetween(start, *r.EndDate) < 0 {
		return false
	}
	return true
}

func (r *EquipmentRental) IsClosed() bool {
	return r.ClosedAt != nil
}

// RentalView carries the computed duration next to the stored rental.
type RentalView struct {
	EquipmentRental
	Days       int             `json:"days"`
	Billed     decimal.Decimal `json:"billed"`
	InProgress bool            `json:"in_progress"`
}

func (r *EquipmentRental) ToView(today time.Time) RentalView {
	return RentalView{
		EquipmentRental: *r,
		Days:            r.Days(today),
		Billed:          r.Billed(today),
		InProgress:      r.InProgress(today),
	}
}
