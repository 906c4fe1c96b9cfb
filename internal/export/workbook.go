// Package export renders ledger entries and report snapshots as xlsx
// workbooks.
package export

import (
	"fmt"
	"time"

	"transport_manager/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type column struct {
	label string
	width float64
}

// sheet writes a title, a header row at row 4 and one row per record.
type sheet struct {
	f      *excelize.File
	name   string
	next   int
	closed bool
}

// render builds a sheet, lets fill write its rows and serializes the
// workbook. The file is closed on every path.
func render(title, name string, columns []column, fill func(*sheet) error) ([]byte, error) {
	s, err := newSheet(title, name, columns)
	if err != nil {
		return nil, err
	}
	defer s.close()

	if err := fill(s); err != nil {
		return nil, err
	}
	buf, err := s.f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newSheet(title, name string, columns []column) (*sheet, error) {
	f := excelize.NewFile()
	index, err := f.NewSheet(name)
	if err != nil {
		f.Close()
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"305496"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	f.SetCellValue(name, "A1", title)
	f.SetCellStyle(name, "A1", "A1", titleStyle)
	f.SetCellValue(name, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 4)
		f.SetCellValue(name, cell, col.label)
		f.SetCellStyle(name, cell, cell, headerStyle)
		letter, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(name, letter, letter, col.width)
	}
	return &sheet{f: f, name: name, next: 5}, nil
}

func (s *sheet) row(values ...any) error {
	cell, err := excelize.CoordinatesToCellName(1, s.next)
	if err != nil {
		return err
	}
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		return err
	}
	s.next++
	return nil
}

func (s *sheet) close() {
	if s.closed {
		return
	}
	s.closed = true
	s.f.Close()
}

func money(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// Ledger renders entries followed by their inflow, outflow and net totals.
func Ledger(entries []models.LedgerEntry) ([]byte, error) {
	columns := []column{
		{"Date", 12}, {"Direction", 10}, {"Amount", 14}, {"Owner", 18}, {"Owner ID", 10}, {"Description", 40},
	}
	return render("Ledger", "Ledger", columns, func(s *sheet) error {
		for _, e := range entries {
			err := s.row(e.RecordedAt.Format("2006-01-02"), string(e.Direction), money(e.Amount), string(e.OwnerKind), e.OwnerID, e.Description)
			if err != nil {
				return err
			}
		}

		summary := models.Summarize(entries)
		s.next++
		for _, total := range []struct {
			label string
			value float64
		}{
			{"Inflow", money(summary.Inflow)},
			{"Outflow", money(summary.Outflow)},
			{"Net", money(summary.Net)},
		} {
			if err := s.row(total.label, "", total.value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reports renders report snapshots with their raw JSON payload.
func Reports(snapshots []models.ReportSnapshot) ([]byte, error) {
	columns := []column{
		{"Date", 18}, {"Kind", 18}, {"Subject", 10}, {"Event", 16}, {"Amount", 14}, {"Data", 60},
	}
	return render("Reports", "Reports", columns, func(s *sheet) error {
		for _, r := range snapshots {
			err := s.row(r.RecordedAt.Format("2006-01-02 15:04"), string(r.Kind), r.SubjectID, r.Event, money(r.Amount), string(r.Data))
			if err != nil {
				return err
			}
		}
		return nil
	})
}
