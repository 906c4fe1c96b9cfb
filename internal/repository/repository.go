package repository

import (
	"context"
	"errors"
	"time"

	"transport_manager/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Repository is the CRUD surface shared by every table.
type Repository[T any] interface {
	Create(ctx context.Context, v *T) error
	GetByID(ctx context.Context, id uint) (*T, error)
	// GetForUpdate reads the row and locks it until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id uint) error
	GetAll(ctx context.Context) ([]T, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type UserRepository interface {
	Repository[models.User]
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

type OrderFilter struct {
	ClientID *uint
	From     *time.Time
	To       *time.Time
}

type OrderRepository interface {
	Repository[models.ClientOrder]
	Find(ctx context.Context, filter OrderFilter) ([]models.ClientOrder, error)
}

type OrderLineRepository interface {
	Repository[models.OrderLine]
	GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderLine, error)
}

type PaymentRepository interface {
	Repository[models.Payment]
	GetByOrderID(ctx context.Context, orderID uint) (*models.Payment, error)
}

type StockLotRepository interface {
	Repository[models.StockLot]
	GetByProductID(ctx context.Context, productID uint) ([]models.StockLot, error)
}

type SupplierOrderRepository interface {
	Repository[models.SupplierOrder]
	GetBySupplierID(ctx context.Context, supplierID uint) ([]models.SupplierOrder, error)
}

type SupplierOrderLineRepository interface {
	Repository[models.SupplierOrderLine]
	GetByOrderID(ctx context.Context, supplierOrderID uint) ([]models.SupplierOrderLine, error)
}

// LedgerRepository only appends and reads; entries are never changed.
type LedgerRepository interface {
	Append(ctx context.Context, entry *models.LedgerEntry) error
	Find(ctx context.Context, filter models.LedgerFilter) ([]models.LedgerEntry, error)
	Summarize(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error)
}

type ReportRepository interface {
	Append(ctx context.Context, snapshot *models.ReportSnapshot) error
	Find(ctx context.Context, filter models.ReportFilter) ([]models.ReportSnapshot, error)
}

type RentalRepository interface {
	Repository[models.EquipmentRental]
	GetByEquipmentID(ctx context.Context, equipmentID uint) ([]models.EquipmentRental, error)
}

type FuelDeliveryRepository interface {
	Repository[models.FuelDelivery]
	// GetByDateRange bounds are inclusive; a nil bound is open.
	GetByDateRange(ctx context.Context, from, to *time.Time) ([]models.FuelDelivery, error)
}

type FuelUsageRepository interface {
	Repository[models.FuelUsage]
	GetByMachine(ctx context.Context, machine models.MachineRef) ([]models.FuelUsage, error)
}

type MachineExpenseRepository interface {
	Repository[models.MachineExpense]
	GetByMachine(ctx context.Context, machine models.MachineRef) ([]models.MachineExpense, error)
}

type SalaryPaymentRepository interface {
	Repository[models.SalaryPayment]
	GetByEmployeeID(ctx context.Context, employeeID uint) ([]models.SalaryPayment, error)
	GetByPeriod(ctx context.Context, employeeID uint, period string) (*models.SalaryPayment, error)
}

type DriverBudgetRepository interface {
	Repository[models.DriverBudget]
	GetByDriverID(ctx context.Context, driverID uint) ([]models.DriverBudget, error)
}
