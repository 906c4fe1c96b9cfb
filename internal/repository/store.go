package repository

import (
	"context"

	"transport_manager/internal/models"
)

// TxFunc runs fn inside one atomic unit of work.
type TxFunc func(ctx context.Context, fn func(tx *Store) error) error

// Store groups every repository over one connection or transaction. It is
// the unit of work handed to each service operation.
type Store struct {
	Clients   Repository[models.Client]
	Suppliers Repository[models.Supplier]
	Products  Repository[models.Product]
	Vehicles  Repository[models.Vehicle]
	Equipment Repository[models.HeavyEquipment]
	Employees Repository[models.Employee]
	Users     UserRepository

	Orders         OrderRepository
	OrderLines     OrderLineRepository
	Payments       PaymentRepository
	StockLots      StockLotRepository
	SupplierOrders SupplierOrderRepository
	SupplierLines  SupplierOrderLineRepository

	Ledger  LedgerRepository
	Reports ReportRepository

	Rentals         RentalRepository
	FuelDeliveries  FuelDeliveryRepository
	FuelUsages      FuelUsageRepository
	MachineExpenses MachineExpenseRepository
	Salaries        SalaryPaymentRepository
	DriverBudgets   DriverBudgetRepository

	// Transactor opens the unit of work. Nil runs fn on the store itself.
	Transactor TxFunc
}

// Transaction runs fn atomically: every write made through the tx store
// is committed together or not at all.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	if s.Transactor == nil {
		return fn(s)
	}
	return s.Transactor(ctx, fn)
}
