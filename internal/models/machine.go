package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnknownMachineKind = errors.New("unknown machine kind")

// MachineKind discriminates the two kinds of machine that burn fuel and
// incur expenses.
type MachineKind string

const (
	MachineVehicle   MachineKind = "vehicle"
	MachineEquipment MachineKind = "heavy-equipment"
)

// MachineRef is a vehicle or a piece of heavy equipment.
type MachineRef interface {
	MachineKind() MachineKind
	MachineID() uint
	machineRef()
}

type VehicleRef struct{ ID uint }
type EquipmentRef struct{ ID uint }

func (r VehicleRef) MachineKind() MachineKind   { return MachineVehicle }
func (r EquipmentRef) MachineKind() MachineKind { return MachineEquipment }
func (r VehicleRef) MachineID() uint            { return r.ID }
func (r EquipmentRef) MachineID() uint          { return r.ID }
func (VehicleRef) machineRef()                  {}
func (EquipmentRef) machineRef()                {}

func NewMachineRef(kind string, id uint) (MachineRef, error) {
	switch MachineKind(kind) {
	case MachineVehicle:
		return VehicleRef{ID: id}, nil
	case MachineEquipment:
		return EquipmentRef{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMachineKind, kind)
}

// MachineExpense is a repair, maintenance or other cost on a machine.
type MachineExpense struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	MachineKind MachineKind     `json:"machine_kind" gorm:"type:varchar(20);not null;index:idx_expense_machine"`
	MachineID   uint            `json:"machine_id" gorm:"not null;index:idx_expense_machine"`
	Category    string          `json:"category" gorm:"default:'other'"` // repair, maintenance, tyres, insurance, other
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null"`
	SpentAt     time.Time       `json:"spent_at" gorm:"not null"`
	Description string          `json:"description" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseReportKind is the snapshot kind for expenses on m, so vehicle and
// equipment ids never share a subject.
func ExpenseReportKind(m MachineRef) ReportKind {
	if _, ok := m.(EquipmentRef); ok {
		return ReportEquipmentExpense
	}
	return ReportVehicleExpense
}
