package repository

import (
	"context"

	"transport_manager/internal/models"

	"gorm.io/gorm"
)

// NewGormStore builds a Store over db. Transactions open a gorm
// transaction and hand fn a Store bound to it.
func NewGormStore(db *gorm.DB) *Store {
	s := &Store{
		Clients:   newGormRepository[models.Client](db),
		Suppliers: newGormRepository[models.Supplier](db),
		Products:  newGormRepository[models.Product](db),
		Vehicles:  newGormRepository[models.Vehicle](db),
		Equipment: newGormRepository[models.HeavyEquipment](db),
		Employees: newGormRepository[models.Employee](db),
		Users:     NewUserRepository(db),

		Orders:         NewOrderRepository(db),
		OrderLines:     NewOrderLineRepository(db),
		Payments:       NewPaymentRepository(db),
		StockLots:      NewStockLotRepository(db),
		SupplierOrders: NewSupplierOrderRepository(db),
		SupplierLines:  NewSupplierOrderLineRepository(db),

		Ledger:  NewLedgerRepository(db),
		Reports: NewReportRepository(db),

		Rentals:         NewRentalRepository(db),
		FuelDeliveries:  NewFuelDeliveryRepository(db),
		FuelUsages:      NewFuelUsageRepository(db),
		MachineExpenses: NewMachineExpenseRepository(db),
		Salaries:        NewSalaryPaymentRepository(db),
		DriverBudgets:   NewDriverBudgetRepository(db),
	}
	s.Transactor = func(ctx context.Context, fn func(tx *Store) error) error {
		return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(NewGormStore(tx))
		})
	}
	return s
}
