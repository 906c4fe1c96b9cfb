package repository

import (
	"context"
	"time"

	"transport_manager/internal/models"

	"gorm.io/gorm"
)

type rentalRepository struct {
	*gormRepository[models.EquipmentRental]
}

func NewRentalRepository(db *gorm.DB) RentalRepository {
	return &rentalRepository{newGormRepository[models.EquipmentRental](db)}
}

func (r *rentalRepository) GetByEquipmentID(ctx context.Context, equipmentID uint) ([]models.EquipmentRental, error) {
	return r.find(ctx, "heavy_equipment_id = ?", equipmentID)
}

type fuelDeliveryRepository struct {
	*gormRepository[models.FuelDelivery]
}

func NewFuelDeliveryRepository(db *gorm.DB) FuelDeliveryRepository {
	return &fuelDeliveryRepository{newGormRepository[models.FuelDelivery](db)}
}

func (r *fuelDeliveryRepository) GetByDateRange(ctx context.Context, from, to *time.Time) ([]models.FuelDelivery, error) {
	q := r.db.WithContext(ctx)
	if from != nil {
		q = q.Where("delivered_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("delivered_at <= ?", *to)
	}
	var deliveries []models.FuelDelivery
	err := q.Order("delivered_at, id").Find(&deliveries).Error
	return deliveries, err
}

type fuelUsageRepository struct {
	*gormRepository[models.FuelUsage]
}

func NewFuelUsageRepository(db *gorm.DB) FuelUsageRepository {
	return &fuelUsageRepository{newGormRepository[models.FuelUsage](db)}
}

func (r *fuelUsageRepository) GetByMachine(ctx context.Context, machine models.MachineRef) ([]models.FuelUsage, error) {
	return r.find(ctx, "machine_kind = ? AND machine_id = ?", machine.MachineKind(), machine.MachineID())
}

type machineExpenseRepository struct {
	*gormRepository[models.MachineExpense]
}

func NewMachineExpenseRepository(db *gorm.DB) MachineExpenseRepository {
	return &machineExpenseRepository{newGormRepository[models.MachineExpense](db)}
}

func (r *machineExpenseRepository) GetByMachine(ctx context.Context, machine models.MachineRef) ([]models.MachineExpense, error) {
	return r.find(ctx, "machine_kind = ? AND machine_id = ?", machine.MachineKind(), machine.MachineID())
}

type salaryPaymentRepository struct {
	*gormRepository[models.SalaryPayment]
}

func NewSalaryPaymentRepository(db *gorm.DB) SalaryPaymentRepository {
	return &salaryPaymentRepository{newGormRepository[models.SalaryPayment](db)}
}

func (r *salaryPaymentRepository) GetByEmployeeID(ctx context.Context, employeeID uint) ([]models.SalaryPayment, error) {
	return r.find(ctx, "employee_id = ?", employeeID)
}

func (r *salaryPaymentRepository) GetByPeriod(ctx context.Context, employeeID uint, period string) (*models.SalaryPayment, error) {
	var payment models.SalaryPayment
	err := r.db.WithContext(ctx).Where("employee_id = ? AND period = ?", employeeID, period).First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

type driverBudgetRepository struct {
	*gormRepository[models.DriverBudget]
}

func NewDriverBudgetRepository(db *gorm.DB) DriverBudgetRepository {
	return &driverBudgetRepository{newGormRepository[models.DriverBudget](db)}
}

func (r *driverBudgetRepository) GetByDriverID(ctx context.Context, driverID uint) ([]models.DriverBudget, error) {
	return r.find(ctx, "driver_id = ?", driverID)
}
