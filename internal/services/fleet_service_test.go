package services

import (
	"testing"

	"transport_manager/internal/models"
)

func TestMachineExpenseSnapshotsKeepMachinesApart(t *testing.T) {
	f := newFixture(t)
	fleet := NewFleetService(f.store, nil, fixedClock)
	if f.vehicle.ID != f.crane.ID {
		t.Fatalf("fixture ids differ (%d, %d); the test needs a vehicle and a crane sharing an id", f.vehicle.ID, f.crane.ID)
	}

	_, err := fleet.RecordMachineExpense(f.ctx, MachineExpenseInput{MachineKind: "vehicle", MachineID: f.vehicle.ID, Category: "tires", Amount: dec("400")})
	must(t, err)
	_, err = fleet.RecordMachineExpense(f.ctx, MachineExpenseInput{MachineKind: "heavy-equipment", MachineID: f.crane.ID, Category: "hydraulics", Amount: dec("900")})
	must(t, err)

	reports := NewReportService(f.store)
	tests := []struct {
		kind     models.ReportKind
		category string
		amount   string
	}{
		{models.ReportVehicleExpense, "tires", "400"},
		{models.ReportEquipmentExpense, "hydraulics", "900"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			kind, subject := tt.kind, f.vehicle.ID
			got, err := reports.List(f.ctx, models.ReportFilter{Kind: &kind, SubjectID: &subject})
			must(t, err)
			if len(got) != 1 {
				t.Fatalf("got %d snapshots, want 1", len(got))
			}
			if got[0].Event != tt.category {
				t.Errorf("event = %q, want %q", got[0].Event, tt.category)
			}
			assertDec(t, "amount", got[0].Amount, tt.amount)
		})
	}
}
