package services

import (
	"context"
	"fmt"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

// DriverBudgetService tracks trip cash from allocation to settlement.
type DriverBudgetService interface {
	Allocate(ctx context.Context, input AllocateBudgetInput) (*models.DriverBudget, error)
	MarkUsed(ctx context.Context, id uint, used decimal.Decimal) (*models.DriverBudget, error)
	Settle(ctx context.Context, id uint) (*models.DriverBudget, error)
	List(ctx context.Context, driverID *uint) ([]models.DriverBudget, error)
}

type AllocateBudgetInput struct {
	DriverID  uint            `json:"driver_id" binding:"required"`
	VehicleID *uint           `json:"vehicle_id"`
	Amount    decimal.Decimal `json:"amount"`
	Purpose   string          `json:"purpose"`
}

type driverBudgetService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewDriverBudgetService(store *repository.Store, cache SummaryCache, now Clock) DriverBudgetService {
	return &driverBudgetService{store: store, cache: cache, now: systemClock(now)}
}

// Allocate hands cash to a driver and books it as an outflow.
func (s *driverBudgetService) Allocate(ctx context.Context, input AllocateBudgetInput) (*models.DriverBudget, error) {
	if err := positive("amount", input.Amount); err != nil {
		return nil, err
	}

	var budget *models.DriverBudget
	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		driver, err := tx.Employees.GetByID(ctx, input.DriverID)
		if err != nil {
			return fmt.Errorf("driver %d: %w", input.DriverID, err)
		}
		if !driver.IsDriver() {
			return invalid("employee %s is not a driver", driver.FullName())
		}
		if input.VehicleID != nil {
			ok, err := tx.Vehicles.Exists(ctx, *input.VehicleID)
			if err := mustExist(ok, err, "vehicle", *input.VehicleID); err != nil {
				return err
			}
		}

		budget = &models.DriverBudget{
			DriverID:    driver.ID,
			VehicleID:   input.VehicleID,
			Amount:      input.Amount,
			UsedAmount:  decimal.Zero,
			Status:      models.BudgetAllocated,
			Purpose:     input.Purpose,
			AllocatedAt: s.now(),
		}
		if err := tx.DriverBudgets.Create(ctx, budget); err != nil {
			return fmt.Errorf("create driver budget: %w", err)
		}
		desc := fmt.Sprintf("Budget for %s", driver.FullName())
		_, err = appendEntry(ctx, tx, models.DriverBudgetOwner{ID: budget.ID}, models.Outflow, budget.Amount, desc, budget.AllocatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *driverBudgetService) MarkUsed(ctx context.Context, id uint, used decimal.Decimal) (*models.DriverBudget, error) {
	if err := notNegative("used_amount", used); err != nil {
		return nil, err
	}
	return s.transition(ctx, id, models.BudgetUsed, func(tx *repository.Store, b *models.DriverBudget) error {
		if used.GreaterThan(b.Amount) {
			return invalid("used amount %s exceeds budget %s", used, b.Amount)
		}
		now := s.now()
		b.UsedAmount = used
		b.UsedAt = &now
		return nil
	})
}

// Settle closes the budget; the unused remainder comes back as an inflow.
func (s *driverBudgetService) Settle(ctx context.Context, id uint) (*models.DriverBudget, error) {
	return s.transition(ctx, id, models.BudgetSettled, func(tx *repository.Store, b *models.DriverBudget) error {
		now := s.now()
		b.SettledAt = &now
		if !b.Remainder().IsPositive() {
			return nil
		}
		desc := fmt.Sprintf("Unused budget #%d returned", b.ID)
		_, err := appendEntry(ctx, tx, models.DriverBudgetOwner{ID: b.ID}, models.Inflow, b.Remainder(), desc, now)
		return err
	})
}

func (s *driverBudgetService) transition(ctx context.Context, id uint, next models.BudgetStatus, apply func(tx *repository.Store, b *models.DriverBudget) error) (*models.DriverBudget, error) {
	var budget *models.DriverBudget
	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		var err error
		budget, err = tx.DriverBudgets.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !budget.CanMoveTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, budget.Status, next)
		}
		if err := apply(tx, budget); err != nil {
			return err
		}
		budget.Status = next
		return tx.DriverBudgets.Update(ctx, budget)
	})
	if err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *driverBudgetService) List(ctx context.Context, driverID *uint) ([]models.DriverBudget, error) {
	if driverID != nil {
		return s.store.DriverBudgets.GetByDriverID(ctx, *driverID)
	}
	return s.store.DriverBudgets.GetAll(ctx)
}
