package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrUnknownOwnerKind = errors.New("unknown ledger owner kind")
	ErrInvalidDirection = errors.New("invalid ledger direction")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrImmutable        = errors.New("record is append-only")
)

type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

func ParseDirection(s string) (Direction, error) {
	switch d := Direction(s); d {
	case Inflow, Outflow:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// OwnerKind is the discriminator stored next to OwnerID on a ledger entry.
type OwnerKind string

const (
	OwnerSalaryPayment  OwnerKind = "salary-payment"
	OwnerClientOrder    OwnerKind = "client-order"
	OwnerHeavyEquipment OwnerKind = "heavy-equipment"
	OwnerDriverBudget   OwnerKind = "driver-budget"
	OwnerFuelDelivery   OwnerKind = "fuel-delivery"
	OwnerMachineExpense OwnerKind = "machine-expense"
	OwnerSupplierOrder  OwnerKind = "supplier-order"
)

// OwnerKinds lists every kind a ledger entry may belong to.
var OwnerKinds = []OwnerKind{
	OwnerSalaryPayment,
	OwnerClientOrder,
	OwnerHeavyEquipment,
	OwnerDriverBudget,
	OwnerFuelDelivery,
	OwnerMachineExpense,
	OwnerSupplierOrder,
}

func ParseOwnerKind(s string) (OwnerKind, error) {
	for _, k := range OwnerKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOwnerKind, s)
}

// LedgerOwner is the closed set of records a ledger entry can be attached
// to. Only the types in this file implement it.
type LedgerOwner interface {
	OwnerKind() OwnerKind
	OwnerID() uint
	ledgerOwner()
}

type SalaryPaymentOwner struct{ ID uint }
type ClientOrderOwner struct{ ID uint }
type HeavyEquipmentOwner struct{ ID uint }
type DriverBudgetOwner struct{ ID uint }
type FuelDeliveryOwner struct{ ID uint }
type MachineExpenseOwner struct{ ID uint }
type SupplierOrderOwner struct{ ID uint }

func (o SalaryPaymentOwner) OwnerKind() OwnerKind  { return OwnerSalaryPayment }
func (o ClientOrderOwner) OwnerKind() OwnerKind    { return OwnerClientOrder }
func (o HeavyEquipmentOwner) OwnerKind() OwnerKind { return OwnerHeavyEquipment }
func (o DriverBudgetOwner) OwnerKind() OwnerKind   { return OwnerDriverBudget }
func (o FuelDeliveryOwner) OwnerKind() OwnerKind   { return OwnerFuelDelivery }
func (o MachineExpenseOwner) OwnerKind() OwnerKind { return OwnerMachineExpense }
func (o SupplierOrderOwner) OwnerKind() OwnerKind  { return OwnerSupplierOrder }

func (o SalaryPaymentOwner) OwnerID() uint  { return o.ID }
func (o ClientOrderOwner) OwnerID() uint    { return o.ID }
func (o HeavyEquipmentOwner) OwnerID() uint { return o.ID }
func (o DriverBudgetOwner) OwnerID() uint   { return o.ID }
func (o FuelDeliveryOwner) OwnerID() uint   { return o.ID }
func (o MachineExpenseOwner) OwnerID() uint { return o.ID }
func (o SupplierOrderOwner) OwnerID() uint  { return o.ID }

func (SalaryPaymentOwner) ledgerOwner()  {}
func (ClientOrderOwner) ledgerOwner()    {}
func (HeavyEquipmentOwner) ledgerOwner() {}
func (DriverBudgetOwner) ledgerOwner()   {}
func (FuelDeliveryOwner) ledgerOwner()   {}
func (MachineExpenseOwner) ledgerOwner() {}
func (SupplierOrderOwner) ledgerOwner()  {}

// NewLedgerOwner builds the typed owner for a stored discriminator and id.
func NewLedgerOwner(kind OwnerKind, id uint) (LedgerOwner, error) {
	switch kind {
	case OwnerSalaryPayment:
		return SalaryPaymentOwner{ID: id}, nil
	case OwnerClientOrder:
		return ClientOrderOwner{ID: id}, nil
	case OwnerHeavyEquipment:
		return HeavyEquipmentOwner{ID: id}, nil
	case OwnerDriverBudget:
		return DriverBudgetOwner{ID: id}, nil
	case OwnerFuelDelivery:
		return FuelDeliveryOwner{ID: id}, nil
	case OwnerMachineExpense:
		return MachineExpenseOwner{ID: id}, nil
	case OwnerSupplierOrder:
		return SupplierOrderOwner{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOwnerKind, kind)
}

// LedgerEntry is an immutable movement of money in or out of the company.
// Entries are only ever inserted; the gorm hooks below refuse updates and
// deletes.
type LedgerEntry struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Direction   Direction       `json:"direction" gorm:"type:varchar(10);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	Description string          `json:"description" gorm:"type:text"`
	OwnerKind   OwnerKind       `json:"owner_kind" gorm:"type:varchar(30);not null;index:idx_ledger_owner"`
	OwnerID     uint            `json:"owner_id" gorm:"not null;index:idx_ledger_owner"`
	RecordedAt  time.Time       `json:"recorded_at" gorm:"not null;index"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewLedgerEntry validates and builds an entry for owner.
func NewLedgerEntry(owner LedgerOwner, dir Direction, amount decimal.Decimal, description string, at time.Time) (*LedgerEntry, error) {
	if owner == nil {
		return nil, ErrUnknownOwnerKind
	}
	if dir != Inflow && dir != Outflow {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDirection, dir)
	}
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	return &LedgerEntry{
		Direction:   dir,
		Amount:      amount,
		Description: description,
		OwnerKind:   owner.OwnerKind(),
		OwnerID:     owner.OwnerID(),
		RecordedAt:  at,
	}, nil
}

// Owner decodes the stored discriminator.
func (e *LedgerEntry) Owner() (LedgerOwner, error) {
	return NewLedgerOwner(e.OwnerKind, e.OwnerID)
}

// Signed returns the amount with outflows negative.
func (e *LedgerEntry) Signed() decimal.Decimal {
	if e.Direction == Outflow {
		return e.Amount.Neg()
	}
	return e.Amount
}

func (e *LedgerEntry) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (e *LedgerEntry) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}

// LedgerFilter narrows ledger reads. Nil fields do not filter.
type LedgerFilter struct {
	Direction *Direction
	OwnerKind *OwnerKind
	OwnerID   *uint
	From      *time.Time
	To        *time.Time
}

// Matches applies the filter to an entry in memory.
func (f LedgerFilter) Matches(e *LedgerEntry) bool {
	if f.Direction != nil && e.Direction != *f.Direction {
		return false
	}
	if f.OwnerKind != nil && e.OwnerKind != *f.OwnerKind {
		return false
	}
	if f.OwnerID != nil && e.OwnerID != *f.OwnerID {
		return false
	}
	if f.From != nil && e.RecordedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.RecordedAt.After(*f.To) {
		return false
	}
	return true
}

// LedgerSummary holds running totals per direction.
type LedgerSummary struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
	Net     decimal.Decimal `json:"net"`
	Count   int64           `json:"count"`
}

// Summarize totals entries by direction.
func Summarize(entries []LedgerEntry) LedgerSummary {
	s := LedgerSummary{Inflow: decimal.Zero, Outflow: decimal.Zero}
	for i := range entries {
		s.Add(entries[i].Direction, entries[i].Amount)
		s.Count++
	}
	return s
}

func (s *LedgerSummary) Add(dir Direction, amount decimal.Decimal) {
	switch dir {
	case Inflow:
		s.Inflow = s.Inflow.Add(amount)
	case Outflow:
		s.Outflow = s.Outflow.Add(amount)
	}
	s.Net = s.Inflow.Sub(s.Outflow)
}
