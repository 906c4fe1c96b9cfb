package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReportKind names the rollups kept for audit.
type ReportKind string

const (
	ReportOrder            ReportKind = "order"
	ReportStock            ReportKind = "stock"
	ReportSalary           ReportKind = "salary"
	ReportDebt             ReportKind = "debt"
	ReportVehicleExpense   ReportKind = "vehicle-expense"
	ReportEquipmentExpense ReportKind = "equipment-expense"
	ReportEquipmentRental  ReportKind = "equipment-rental"
)

var ReportKinds = []ReportKind{
	ReportOrder,
	ReportStock,
	ReportSalary,
	ReportDebt,
	ReportVehicleExpense,
	ReportEquipmentExpense,
	ReportEquipmentRental,
}

func ParseReportKind(s string) (ReportKind, error) {
	for _, k := range ReportKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown report kind %q", s)
}

// ReportSnapshot is an append-only picture of a record after a change.
// Data holds the kind specific fields as jsonb.
type ReportSnapshot struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Kind       ReportKind      `json:"kind" gorm:"type:varchar(30);not null;index:idx_report_subject"`
	SubjectID  uint            `json:"subject_id" gorm:"not null;index:idx_report_subject"`
	Event      string          `json:"event" gorm:"not null"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:decimal(14,2);not null;default:0"`
	Data       datatypes.JSON  `json:"data" gorm:"type:jsonb"`
	RecordedAt time.Time       `json:"recorded_at" gorm:"not null;index"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (r *ReportSnapshot) BeforeUpdate(tx *gorm.DB) error {
	return ErrImmutable
}

func (r *ReportSnapshot) BeforeDelete(tx *gorm.DB) error {
	return ErrImmutable
}

type ReportFilter struct {
	Kind      *ReportKind
	SubjectID *uint
	From      *time.Time
	To        *time.Time
}

func (f ReportFilter) Matches(r *ReportSnapshot) bool {
	if f.Kind != nil && r.Kind != *f.Kind {
		return false
	}
	if f.SubjectID != nil && r.SubjectID != *f.SubjectID {
		return false
	}
	if f.From != nil && r.RecordedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.RecordedAt.After(*f.To) {
		return false
	}
	return true
}
