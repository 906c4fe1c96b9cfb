// Package memstore keeps every table in process memory. Transactions run
// one at a time on a copy of the data that replaces the live copy only
// when the transaction succeeds.
package memstore

import (
	"context"
	"sync"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

type state struct {
	clients   table[models.Client]
	suppliers table[models.Supplier]
	products  table[models.Product]
	vehicles  table[models.Vehicle]
	equipment table[models.HeavyEquipment]
	employees table[models.Employee]
	users     table[models.User]

	orders         table[models.ClientOrder]
	orderLines     table[models.OrderLine]
	payments       table[models.Payment]
	stockLots      table[models.StockLot]
	supplierOrders table[models.SupplierOrder]
	supplierLines  table[models.SupplierOrderLine]

	ledger  table[models.LedgerEntry]
	reports table[models.ReportSnapshot]

	rentals         table[models.EquipmentRental]
	fuelDeliveries  table[models.FuelDelivery]
	fuelUsages      table[models.FuelUsage]
	machineExpenses table[models.MachineExpense]
	salaries        table[models.SalaryPayment]
	driverBudgets   table[models.DriverBudget]
}

func newState() *state {
	return &state{
		clients:         newTable[models.Client](),
		suppliers:       newTable[models.Supplier](),
		products:        newTable[models.Product](),
		vehicles:        newTable[models.Vehicle](),
		equipment:       newTable[models.HeavyEquipment](),
		employees:       newTable[models.Employee](),
		users:           newTable[models.User](),
		orders:          newTable[models.ClientOrder](),
		orderLines:      newTable[models.OrderLine](),
		payments:        newTable[models.Payment](),
		stockLots:       newTable[models.StockLot](),
		supplierOrders:  newTable[models.SupplierOrder](),
		supplierLines:   newTable[models.SupplierOrderLine](),
		ledger:          newTable[models.LedgerEntry](),
		reports:         newTable[models.ReportSnapshot](),
		rentals:         newTable[models.EquipmentRental](),
		fuelDeliveries:  newTable[models.FuelDelivery](),
		fuelUsages:      newTable[models.FuelUsage](),
		machineExpenses: newTable[models.MachineExpense](),
		salaries:        newTable[models.SalaryPayment](),
		driverBudgets:   newTable[models.DriverBudget](),
	}
}

func (s *state) clone() *state {
	return &state{
		clients:         s.clients.clone(),
		suppliers:       s.suppliers.clone(),
		products:        s.products.clone(),
		vehicles:        s.vehicles.clone(),
		equipment:       s.equipment.clone(),
		employees:       s.employees.clone(),
		users:           s.users.clone(),
		orders:          s.orders.clone(),
		orderLines:      s.orderLines.clone(),
		payments:        s.payments.clone(),
		stockLots:       s.stockLots.clone(),
		supplierOrders:  s.supplierOrders.clone(),
		supplierLines:   s.supplierLines.clone(),
		ledger:          s.ledger.clone(),
		reports:         s.reports.clone(),
		rentals:         s.rentals.clone(),
		fuelDeliveries:  s.fuelDeliveries.clone(),
		fuelUsages:      s.fuelUsages.clone(),
		machineExpenses: s.machineExpenses.clone(),
		salaries:        s.salaries.clone(),
		driverBudgets:   s.driverBudgets.clone(),
	}
}

type memDB struct {
	mu   *sync.Mutex
	st   *state
	inTx bool
	now  func() time.Time
}

// New returns an empty in-memory Store.
func New() *repository.Store {
	db := &memDB{mu: &sync.Mutex{}, st: newState(), now: time.Now}
	return db.store()
}

func (db *memDB) store() *repository.Store {
	s := &repository.Store{
		Clients:   newMemRepo(db, func(s *state) *table[models.Client] { return &s.clients }),
		Suppliers: newMemRepo(db, func(s *state) *table[models.Supplier] { return &s.suppliers }),
		Products:  newMemRepo(db, func(s *state) *table[models.Product] { return &s.products }),
		Vehicles:  newMemRepo(db, func(s *state) *table[models.Vehicle] { return &s.vehicles }),
		Equipment: newMemRepo(db, func(s *state) *table[models.HeavyEquipment] { return &s.equipment }),
		Employees: newMemRepo(db, func(s *state) *table[models.Employee] { return &s.employees }),
		Users:     &userRepo{newMemRepo(db, func(s *state) *table[models.User] { return &s.users })},

		Orders:         &orderRepo{newMemRepo(db, func(s *state) *table[models.ClientOrder] { return &s.orders })},
		OrderLines:     &orderLineRepo{newMemRepo(db, func(s *state) *table[models.OrderLine] { return &s.orderLines })},
		Payments:       &paymentRepo{newMemRepo(db, func(s *state) *table[models.Payment] { return &s.payments })},
		StockLots:      &stockLotRepo{newMemRepo(db, func(s *state) *table[models.StockLot] { return &s.stockLots })},
		SupplierOrders: &supplierOrderRepo{newMemRepo(db, func(s *state) *table[models.SupplierOrder] { return &s.supplierOrders })},
		SupplierLines:  &supplierLineRepo{newMemRepo(db, func(s *state) *table[models.SupplierOrderLine] { return &s.supplierLines })},

		Ledger:  &ledgerRepo{newMemRepo(db, func(s *state) *table[models.LedgerEntry] { return &s.ledger })},
		Reports: &reportRepo{newMemRepo(db, func(s *state) *table[models.ReportSnapshot] { return &s.reports })},

		Rentals:         &rentalRepo{newMemRepo(db, func(s *state) *table[models.EquipmentRental] { return &s.rentals })},
		FuelDeliveries:  &fuelDeliveryRepo{newMemRepo(db, func(s *state) *table[models.FuelDelivery] { return &s.fuelDeliveries })},
		FuelUsages:      &fuelUsageRepo{newMemRepo(db, func(s *state) *table[models.FuelUsage] { return &s.fuelUsages })},
		MachineExpenses: &machineExpenseRepo{newMemRepo(db, func(s *state) *table[models.MachineExpense] { return &s.machineExpenses })},
		Salaries:        &salaryRepo{newMemRepo(db, func(s *state) *table[models.SalaryPayment] { return &s.salaries })},
		DriverBudgets:   &driverBudgetRepo{newMemRepo(db, func(s *state) *table[models.DriverBudget] { return &s.driverBudgets })},
	}
	s.Transactor = db.transaction
	return s
}

func (db *memDB) transaction(ctx context.Context, fn func(tx *repository.Store) error) error {
	if db.inTx {
		return fn(db.store())
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	work := db.st.clone()
	txdb := &memDB{mu: db.mu, st: work, inTx: true, now: db.now}
	if err := fn(txdb.store()); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	*db.st = *work
	return nil
}
