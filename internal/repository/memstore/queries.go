package memstore

import (
	"context"
	"errors"
	"sort"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

var ErrDuplicateUsername = errors.New("username already taken")

type userRepo struct{ *memRepo[models.User] }

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	return r.with(func(t *table[models.User]) error {
		for _, existing := range t.rows {
			if existing.Username == u.Username {
				return ErrDuplicateUsername
			}
		}
		t.insert(u, r.db.now())
		return nil
	})
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.first(func(u *models.User) bool { return u.Username == username })
}

type orderRepo struct{ *memRepo[models.ClientOrder] }

func (r *orderRepo) Find(ctx context.Context, f repository.OrderFilter) ([]models.ClientOrder, error) {
	return r.where(func(o *models.ClientOrder) bool {
		if f.ClientID != nil && o.ClientID != *f.ClientID {
			return false
		}
		if f.From != nil && o.OrderDate.Before(*f.From) {
			return false
		}
		if f.To != nil && o.OrderDate.After(*f.To) {
			return false
		}
		return true
	})
}

type orderLineRepo struct{ *memRepo[models.OrderLine] }

func (r *orderLineRepo) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	return r.where(func(l *models.OrderLine) bool { return l.OrderID == orderID })
}

type paymentRepo struct{ *memRepo[models.Payment] }

func (r *paymentRepo) GetByOrderID(ctx context.Context, orderID uint) (*models.Payment, error) {
	return r.first(func(p *models.Payment) bool { return p.OrderID == orderID })
}

type stockLotRepo struct{ *memRepo[models.StockLot] }

func (r *stockLotRepo) GetByProductID(ctx context.Context, productID uint) ([]models.StockLot, error) {
	return r.where(func(l *models.StockLot) bool { return l.ProductID == productID })
}

type supplierOrderRepo struct{ *memRepo[models.SupplierOrder] }

func (r *supplierOrderRepo) GetBySupplierID(ctx context.Context, supplierID uint) ([]models.SupplierOrder, error) {
	return r.where(func(o *models.SupplierOrder) bool { return o.SupplierID == supplierID })
}

type supplierLineRepo struct{ *memRepo[models.SupplierOrderLine] }

func (r *supplierLineRepo) GetByOrderID(ctx context.Context, supplierOrderID uint) ([]models.SupplierOrderLine, error) {
	return r.where(func(l *models.SupplierOrderLine) bool { return l.SupplierOrderID == supplierOrderID })
}

// ledgerRepo exposes only Append and reads, like the gorm ledger.
type ledgerRepo struct{ rows *memRepo[models.LedgerEntry] }

func (r *ledgerRepo) Append(ctx context.Context, entry *models.LedgerEntry) error {
	return r.rows.Create(ctx, entry)
}

func (r *ledgerRepo) Find(ctx context.Context, f models.LedgerFilter) ([]models.LedgerEntry, error) {
	entries, err := r.rows.where(f.Matches)
	if err != nil {
		return nil, err
	}
	sortByRecordedAt(entries, func(e *models.LedgerEntry) time.Time { return e.RecordedAt })
	return entries, nil
}

func (r *ledgerRepo) Summarize(ctx context.Context, f models.LedgerFilter) (models.LedgerSummary, error) {
	entries, err := r.rows.where(f.Matches)
	if err != nil {
		return models.LedgerSummary{}, err
	}
	s := models.Summarize(entries)
	s.Net = s.Inflow.Sub(s.Outflow)
	return s, nil
}

type reportRepo struct{ rows *memRepo[models.ReportSnapshot] }

func (r *reportRepo) Append(ctx context.Context, snapshot *models.ReportSnapshot) error {
	return r.rows.Create(ctx, snapshot)
}

func (r *reportRepo) Find(ctx context.Context, f models.ReportFilter) ([]models.ReportSnapshot, error) {
	snapshots, err := r.rows.where(f.Matches)
	if err != nil {
		return nil, err
	}
	sortByRecordedAt(snapshots, func(s *models.ReportSnapshot) time.Time { return s.RecordedAt })
	return snapshots, nil
}

type rentalRepo struct{ *memRepo[models.EquipmentRental] }

func (r *rentalRepo) GetByEquipmentID(ctx context.Context, equipmentID uint) ([]models.EquipmentRental, error) {
	return r.where(func(x *models.EquipmentRental) bool { return x.HeavyEquipmentID == equipmentID })
}

type fuelDeliveryRepo struct{ *memRepo[models.FuelDelivery] }

func (r *fuelDeliveryRepo) GetByDateRange(ctx context.Context, from, to *time.Time) ([]models.FuelDelivery, error) {
	return r.where(func(d *models.FuelDelivery) bool {
		if from != nil && d.DeliveredAt.Before(*from) {
			return false
		}
		return to == nil || !d.DeliveredAt.After(*to)
	})
}

type fuelUsageRepo struct{ *memRepo[models.FuelUsage] }

func (r *fuelUsageRepo) GetByMachine(ctx context.Context, m models.MachineRef) ([]models.FuelUsage, error) {
	return r.where(func(u *models.FuelUsage) bool {
		return u.MachineKind == m.MachineKind() && u.MachineID == m.MachineID()
	})
}

type machineExpenseRepo struct{ *memRepo[models.MachineExpense] }

func (r *machineExpenseRepo) GetByMachine(ctx context.Context, m models.MachineRef) ([]models.MachineExpense, error) {
	return r.where(func(e *models.MachineExpense) bool {
		return e.MachineKind == m.MachineKind() && e.MachineID == m.MachineID()
	})
}

type salaryRepo struct{ *memRepo[models.SalaryPayment] }

func (r *salaryRepo) GetByEmployeeID(ctx context.Context, employeeID uint) ([]models.SalaryPayment, error) {
	return r.where(func(s *models.SalaryPayment) bool { return s.EmployeeID == employeeID })
}

func (r *salaryRepo) GetByPeriod(ctx context.Context, employeeID uint, period string) (*models.SalaryPayment, error) {
	return r.first(func(s *models.SalaryPayment) bool {
		return s.EmployeeID == employeeID && s.Period == period
	})
}

type driverBudgetRepo struct{ *memRepo[models.DriverBudget] }

func (r *driverBudgetRepo) GetByDriverID(ctx context.Context, driverID uint) ([]models.DriverBudget, error) {
	return r.where(func(b *models.DriverBudget) bool { return b.DriverID == driverID })
}

// sortByRecordedAt orders rows by time, keeping id order for ties.
func sortByRecordedAt[T any](rows []T, at func(*T) time.Time) {
	sort.SliceStable(rows, func(i, j int) bool { return at(&rows[i]).Before(at(&rows[j])) })
}
