package services

import (
	"errors"
	"testing"

	"transport_manager/internal/models"
)

func TestDriverBudgetLifecycle(t *testing.T) {
	f := newFixture(t)
	budgets := NewDriverBudgetService(f.store, nil, fixedClock)

	budget, err := budgets.Allocate(f.ctx, AllocateBudgetInput{DriverID: f.driver.ID, VehicleID: &f.vehicle.ID, Amount: dec("200"), Purpose: "tolls"})
	must(t, err)
	if budget.Status != models.BudgetAllocated {
		t.Fatalf("status %s", budget.Status)
	}

	if _, err := budgets.Settle(f.ctx, budget.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("settle before use: got %v", err)
	}
	if _, err := budgets.MarkUsed(f.ctx, budget.ID, dec("250")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("overspend: got %v", err)
	}

	budget, err = budgets.MarkUsed(f.ctx, budget.ID, dec("170"))
	must(t, err)
	if budget.Status != models.BudgetUsed || budget.UsedAt == nil {
		t.Errorf("after use: %+v", budget)
	}

	budget, err = budgets.Settle(f.ctx, budget.ID)
	must(t, err)
	if budget.Status != models.BudgetSettled {
		t.Errorf("status %s, want settled", budget.Status)
	}
	if _, err := budgets.MarkUsed(f.ctx, budget.ID, dec("1")); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("use after settle: got %v", err)
	}

	kind := models.OwnerDriverBudget
	entries := f.entries(t, models.LedgerFilter{OwnerKind: &kind, OwnerID: &budget.ID})
	summary := models.Summarize(entries)
	assertDec(t, "budget outflow", summary.Outflow, "200")
	assertDec(t, "returned remainder", summary.Inflow, "30")
}

func TestAllocateRequiresDriver(t *testing.T) {
	f := newFixture(t)
	budgets := NewDriverBudgetService(f.store, nil, fixedClock)
	if _, err := budgets.Allocate(f.ctx, AllocateBudgetInput{DriverID: f.office.ID, Amount: dec("10")}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("office employee: got %v", err)
	}
}
