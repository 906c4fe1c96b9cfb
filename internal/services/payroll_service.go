package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type PayrollService interface {
	PaySalary(ctx context.Context, input SalaryInput) (*models.SalaryPayment, error)
	ListSalaries(ctx context.Context, employeeID *uint) ([]models.SalaryPayment, error)
}

// SalaryInput pays one employee for one month. BaseAmount defaults to the
// employee's base salary when omitted.
type SalaryInput struct {
	EmployeeID uint             `json:"employee_id" binding:"required"`
	Period     string           `json:"period" binding:"required"`
	BaseAmount *decimal.Decimal `json:"base_amount"`
	Bonus      decimal.Decimal  `json:"bonus"`
	Deductions decimal.Decimal  `json:"deductions"`
	PaidAt     *time.Time       `json:"paid_at"`
}

const periodLayout = "2006-01"

type payrollService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewPayrollService(store *repository.Store, cache SummaryCache, now Clock) PayrollService {
	return &payrollService{store: store, cache: cache, now: systemClock(now)}
}

func (s *payrollService) PaySalary(ctx context.Context, input SalaryInput) (*models.SalaryPayment, error) {
	if _, err := time.Parse(periodLayout, input.Period); err != nil {
		return nil, invalid("period %q is not YYYY-MM", input.Period)
	}
	if err := notNegative("bonus", input.Bonus); err != nil {
		return nil, err
	}
	if err := notNegative("deductions", input.Deductions); err != nil {
		return nil, err
	}

	var salary *models.SalaryPayment
	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		employee, err := tx.Employees.GetForUpdate(ctx, input.EmployeeID)
		if err != nil {
			return fmt.Errorf("employee %d: %w", input.EmployeeID, err)
		}
		_, err = tx.Salaries.GetByPeriod(ctx, employee.ID, input.Period)
		switch {
		case err == nil:
			return fmt.Errorf("%w: %s %s", ErrAlreadyPaid, employee.FullName(), input.Period)
		case !isNotFound(err):
			return err
		}

		base := employee.BaseSalary
		if input.BaseAmount != nil {
			base = *input.BaseAmount
		}
		if err := notNegative("base_amount", base); err != nil {
			return err
		}
		salary = &models.SalaryPayment{
			EmployeeID: employee.ID,
			Period:     input.Period,
			BaseAmount: base,
			Bonus:      input.Bonus,
			Deductions: input.Deductions,
			PaidAt:     orNow(input.PaidAt, s.now),
		}
		salary.Recompute()
		if err := positive("net amount", salary.NetAmount); err != nil {
			return err
		}
		if err := tx.Salaries.Create(ctx, salary); err != nil {
			return fmt.Errorf("create salary payment: %w", err)
		}

		desc := fmt.Sprintf("Salary %s %s", employee.FullName(), salary.Period)
		if _, err := appendEntry(ctx, tx, models.SalaryPaymentOwner{ID: salary.ID}, models.Outflow, salary.NetAmount, desc, salary.PaidAt); err != nil {
			return err
		}
		return snapshot(ctx, tx, models.ReportSalary, employee.ID, salary.Period, salary.NetAmount, salary, salary.PaidAt)
	})
	if err != nil {
		return nil, err
	}
	return salary, nil
}

func (s *payrollService) ListSalaries(ctx context.Context, employeeID *uint) ([]models.SalaryPayment, error) {
	if employeeID != nil {
		return s.store.Salaries.GetByEmployeeID(ctx, *employeeID)
	}
	return s.store.Salaries.GetAll(ctx)
}
