package services

import (
	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

// Services bundles every service over one store.
type Services struct {
	Users     UserService
	Clients   CatalogService[models.Client]
	Suppliers CatalogService[models.Supplier]
	Products  CatalogService[models.Product]
	Vehicles  CatalogService[models.Vehicle]
	Equipment CatalogService[models.HeavyEquipment]
	Employees CatalogService[models.Employee]

	Orders         OrderService
	Payments       PaymentService
	Stock          StockService
	SupplierOrders SupplierOrderService
	Ledger         LedgerService
	Rentals        RentalService
	Fleet          FleetService
	Payroll        PayrollService
	DriverBudgets  DriverBudgetService
	Reports        ReportService
}

// New wires the services. cache may be nil; now defaults to time.Now.
func New(store *repository.Store, cache SummaryCache, now Clock) *Services {
	return &Services{
		Users:     NewUserService(store.Users),
		Clients:   NewCatalogService[models.Client](store.Clients),
		Suppliers: NewCatalogService[models.Supplier](store.Suppliers),
		Products:  NewCatalogService[models.Product](store.Products),
		Vehicles:  NewCatalogService[models.Vehicle](store.Vehicles),
		Equipment: NewCatalogService[models.HeavyEquipment](store.Equipment),
		Employees: NewCatalogService[models.Employee](store.Employees),

		Orders:         NewOrderService(store, now),
		Payments:       NewPaymentService(store, cache, now),
		Stock:          NewStockService(store, now),
		SupplierOrders: NewSupplierOrderService(store, cache, now),
		Ledger:         NewLedgerService(store, cache, now),
		Rentals:        NewRentalService(store, cache, now),
		Fleet:          NewFleetService(store, cache, now),
		Payroll:        NewPayrollService(store, cache, now),
		DriverBudgets:  NewDriverBudgetService(store, cache, now),
		Reports:        NewReportService(store),
	}
}
