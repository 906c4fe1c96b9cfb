package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

// FleetService books fuel and machine costs for vehicles and heavy
// equipment.
type FleetService interface {
	RecordFuelDelivery(ctx context.Context, input FuelDeliveryInput) (*models.FuelDelivery, error)
	ListFuelDeliveries(ctx context.Context, from, to *time.Time) ([]models.FuelDelivery, error)
	RecordFuelUsage(ctx context.Context, input FuelUsageInput) (*models.FuelUsage, error)
	FuelConsumption(ctx context.Context, machine models.MachineRef) (models.FuelConsumption, error)
	RecordMachineExpense(ctx context.Context, input MachineExpenseInput) (*models.MachineExpense, error)
	MachineExpenses(ctx context.Context, machine models.MachineRef) ([]models.MachineExpense, error)
}

type FuelDeliveryInput struct {
	SupplierID  uint            `json:"supplier_id" binding:"required"`
	Liters      decimal.Decimal `json:"liters"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Reference   string          `json:"reference"`
	DeliveredAt *time.Time      `json:"delivered_at"`
}

type FuelUsageInput struct {
	MachineKind string          `json:"machine_kind" binding:"required"`
	MachineID   uint            `json:"machine_id" binding:"required"`
	EmployeeID  *uint           `json:"employee_id"`
	Liters      decimal.Decimal `json:"liters"`
	Odometer    *int64          `json:"odometer"`
	UsedAt      *time.Time      `json:"used_at"`
	Notes       string          `json:"notes"`
}

type MachineExpenseInput struct {
	MachineKind string          `json:"machine_kind" binding:"required"`
	MachineID   uint            `json:"machine_id" binding:"required"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	SpentAt     *time.Time      `json:"spent_at"`
	Description string          `json:"description"`
}

type fleetService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewFleetService(store *repository.Store, cache SummaryCache, now Clock) FleetService {
	return &fleetService{store: store, cache: cache, now: systemClock(now)}
}

// RecordFuelDelivery stores a delivery and books its total as an outflow.
func (s *fleetService) RecordFuelDelivery(ctx context.Context, input FuelDeliveryInput) (*models.FuelDelivery, error) {
	if err := positive("liters", input.Liters); err != nil {
		return nil, err
	}
	if err := positive("unit_price", input.UnitPrice); err != nil {
		return nil, err
	}

	delivery := &models.FuelDelivery{
		SupplierID:  input.SupplierID,
		Liters:      input.Liters,
		UnitPrice:   input.UnitPrice,
		Reference:   input.Reference,
		DeliveredAt: orNow(input.DeliveredAt, s.now),
	}
	delivery.Recompute()

	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		ok, err := tx.Suppliers.Exists(ctx, input.SupplierID)
		if err := mustExist(ok, err, "supplier", input.SupplierID); err != nil {
			return err
		}
		if err := tx.FuelDeliveries.Create(ctx, delivery); err != nil {
			return fmt.Errorf("create fuel delivery: %w", err)
		}
		desc := fmt.Sprintf("Fuel delivery %s L", delivery.Liters)
		_, err = appendEntry(ctx, tx, models.FuelDeliveryOwner{ID: delivery.ID}, models.Outflow, delivery.Total, desc, delivery.DeliveredAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return delivery, nil
}

func (s *fleetService) ListFuelDeliveries(ctx context.Context, from, to *time.Time) ([]models.FuelDelivery, error) {
	return s.store.FuelDeliveries.GetByDateRange(ctx, from, to)
}

func (s *fleetService) RecordFuelUsage(ctx context.Context, input FuelUsageInput) (*models.FuelUsage, error) {
	machine, err := models.NewMachineRef(input.MachineKind, input.MachineID)
	if err != nil {
		return nil, err
	}
	if err := positive("liters", input.Liters); err != nil {
		return nil, err
	}

	usage := &models.FuelUsage{
		MachineKind: machine.MachineKind(),
		MachineID:   machine.MachineID(),
		EmployeeID:  input.EmployeeID,
		Liters:      input.Liters,
		Odometer:    input.Odometer,
		UsedAt:      orNow(input.UsedAt, s.now),
		Notes:       input.Notes,
	}
	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := machineExists(ctx, tx, machine)
		if err := mustExist(ok, err, string(machine.MachineKind()), machine.MachineID()); err != nil {
			return err
		}
		if input.EmployeeID != nil {
			ok, err := tx.Employees.Exists(ctx, *input.EmployeeID)
			if err := mustExist(ok, err, "employee", *input.EmployeeID); err != nil {
				return err
			}
		}
		return tx.FuelUsages.Create(ctx, usage)
	})
	if err != nil {
		return nil, err
	}
	return usage, nil
}

func (s *fleetService) FuelConsumption(ctx context.Context, machine models.MachineRef) (models.FuelConsumption, error) {
	usages, err := s.store.FuelUsages.GetByMachine(ctx, machine)
	if err != nil {
		return models.FuelConsumption{}, err
	}
	total := decimal.Zero
	for _, u := range usages {
		total = total.Add(u.Liters)
	}
	return models.FuelConsumption{
		MachineKind: machine.MachineKind(),
		MachineID:   machine.MachineID(),
		Liters:      total,
		Usages:      len(usages),
	}, nil
}

// RecordMachineExpense stores the expense, books it as an outflow and
// appends a vehicle or equipment expense snapshot.
func (s *fleetService) RecordMachineExpense(ctx context.Context, input MachineExpenseInput) (*models.MachineExpense, error) {
	machine, err := models.NewMachineRef(input.MachineKind, input.MachineID)
	if err != nil {
		return nil, err
	}
	if err := positive("amount", input.Amount); err != nil {
		return nil, err
	}
	category := input.Category
	if category == "" {
		category = "other"
	}

	expense := &models.MachineExpense{
		MachineKind: machine.MachineKind(),
		MachineID:   machine.MachineID(),
		Category:    category,
		Amount:      input.Amount,
		SpentAt:     orNow(input.SpentAt, s.now),
		Description: input.Description,
	}
	err = ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		ok, err := machineExists(ctx, tx, machine)
		if err := mustExist(ok, err, string(machine.MachineKind()), machine.MachineID()); err != nil {
			return err
		}
		if err := tx.MachineExpenses.Create(ctx, expense); err != nil {
			return fmt.Errorf("create machine expense: %w", err)
		}

		desc := fmt.Sprintf("%s on %s #%d", expense.Category, expense.MachineKind, expense.MachineID)
		if _, err := appendEntry(ctx, tx, models.MachineExpenseOwner{ID: expense.ID}, models.Outflow, expense.Amount, desc, expense.SpentAt); err != nil {
			return err
		}
		return snapshot(ctx, tx, models.ExpenseReportKind(machine), expense.MachineID, expense.Category, expense.Amount, expense, expense.SpentAt)
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *fleetService) MachineExpenses(ctx context.Context, machine models.MachineRef) ([]models.MachineExpense, error) {
	return s.store.MachineExpenses.GetByMachine(ctx, machine)
}
