package export

import (
	"bytes"
	"testing"
	"time"

	"transport_manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestLedgerWorkbook(t *testing.T) {
	at := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	entries := []models.LedgerEntry{
		{Direction: models.Inflow, Amount: decimal.RequireFromString("100"), OwnerKind: models.OwnerClientOrder, OwnerID: 1, RecordedAt: at},
		{Direction: models.Outflow, Amount: decimal.RequireFromString("30.5"), OwnerKind: models.OwnerFuelDelivery, OwnerID: 2, RecordedAt: at, Description: "diesel"},
	}
	data, err := Ledger(entries)
	if err != nil {
		t.Fatal(err)
	}

	f := open(t, data)
	rows, err := f.GetRows("Ledger")
	if err != nil {
		t.Fatal(err)
	}
	// title, generated, blank, header, 2 entries, blank, 3 totals
	if len(rows) != 10 {
		t.Fatalf("got %d rows: %v", len(rows), rows)
	}
	if rows[3][0] != "Date" || rows[5][1] != "outflow" || rows[5][5] != "diesel" {
		t.Errorf("unexpected rows %v", rows[3:6])
	}
	if net := rows[9]; net[0] != "Net" || net[2] != "69.5" {
		t.Errorf("net row = %v", net)
	}
}

func TestReportsWorkbook(t *testing.T) {
	data, err := Reports([]models.ReportSnapshot{{
		Kind:       models.ReportSalary,
		SubjectID:  3,
		Event:      "2024-01",
		Amount:     decimal.RequireFromString("1300"),
		Data:       datatypes.JSON(`{"net_amount":"1300"}`),
		RecordedAt: time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
	}})
	if err != nil {
		t.Fatal(err)
	}

	f := open(t, data)
	if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
		t.Error("default sheet left in workbook")
	}
	kind, err := f.GetCellValue("Reports", "B5")
	if err != nil {
		t.Fatal(err)
	}
	if kind != "salary" {
		t.Errorf("B5 = %q, want salary", kind)
	}
}

func TestRenderClosesFileOnRowError(t *testing.T) {
	var written *sheet
	_, err := render("Ledger", "Ledger", []column{{"Date", 12}}, func(s *sheet) error {
		written = s
		s.next = 0
		return s.row("before the first row")
	})
	if err == nil {
		t.Fatal("expected an error writing row 0")
	}
	if written == nil || !written.closed {
		t.Error("workbook left open after a row error")
	}
}
