package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Clock returns the current time. Tests pin it.
type Clock func() time.Time

func systemClock(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// SummaryCache keeps ledger summaries between writes. Invalidate is
// called after every committed ledger append and moves the cache to a new
// version. Get reports the version it looked under even on a miss; Set must
// be given that version so a summary computed before an invalidation is
// never served after it.
type SummaryCache interface {
	Get(ctx context.Context, filter models.LedgerFilter) (summary models.LedgerSummary, version int64, ok bool)
	Set(ctx context.Context, filter models.LedgerFilter, version int64, summary models.LedgerSummary)
	Invalidate(ctx context.Context)
}

// ledgerTx runs fn in a transaction and drops cached ledger summaries once
// it has committed.
func ledgerTx(ctx context.Context, store *repository.Store, cache SummaryCache, fn func(tx *repository.Store) error) error {
	if err := store.Transaction(ctx, fn); err != nil {
		return err
	}
	if cache != nil {
		cache.Invalidate(ctx)
	}
	return nil
}

// appendEntry writes one ledger entry after checking its owner exists.
func appendEntry(ctx context.Context, tx *repository.Store, owner models.LedgerOwner, dir models.Direction, amount decimal.Decimal, description string, at time.Time) (*models.LedgerEntry, error) {
	entry, err := models.NewLedgerEntry(owner, dir, amount, description, at)
	if err != nil {
		return nil, err
	}
	ok, err := ownerExists(ctx, tx, owner)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s #%d", ErrOwnerNotFound, owner.OwnerKind(), owner.OwnerID())
	}
	if err := tx.Ledger.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append ledger entry: %w", err)
	}
	return entry, nil
}

func ownerExists(ctx context.Context, tx *repository.Store, owner models.LedgerOwner) (bool, error) {
	id := owner.OwnerID()
	switch owner.(type) {
	case models.SalaryPaymentOwner:
		return tx.Salaries.Exists(ctx, id)
	case models.ClientOrderOwner:
		return tx.Orders.Exists(ctx, id)
	case models.HeavyEquipmentOwner:
		return tx.Equipment.Exists(ctx, id)
	case models.DriverBudgetOwner:
		return tx.DriverBudgets.Exists(ctx, id)
	case models.FuelDeliveryOwner:
		return tx.FuelDeliveries.Exists(ctx, id)
	case models.MachineExpenseOwner:
		return tx.MachineExpenses.Exists(ctx, id)
	case models.SupplierOrderOwner:
		return tx.SupplierOrders.Exists(ctx, id)
	}
	return false, models.ErrUnknownOwnerKind
}

func machineExists(ctx context.Context, tx *repository.Store, m models.MachineRef) (bool, error) {
	switch m.(type) {
	case models.VehicleRef:
		return tx.Vehicles.Exists(ctx, m.MachineID())
	case models.EquipmentRef:
		return tx.Equipment.Exists(ctx, m.MachineID())
	}
	return false, models.ErrUnknownMachineKind
}

// snapshot appends a report snapshot with data encoded as JSON.
func snapshot(ctx context.Context, tx *repository.Store, kind models.ReportKind, subjectID uint, event string, amount decimal.Decimal, data any, at time.Time) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", kind, err)
	}
	return tx.Reports.Append(ctx, &models.ReportSnapshot{
		Kind:       kind,
		SubjectID:  subjectID,
		Event:      event,
		Amount:     amount,
		Data:       datatypes.JSON(raw),
		RecordedAt: at,
	})
}

// mustExist turns a false Exists answer into a not found error naming what.
func mustExist(ok bool, err error, what string, id uint) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %d: %w", what, id, repository.ErrNotFound)
	}
	return nil
}

func notNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return invalid("%s must not be negative", name)
	}
	return nil
}

func positive(name string, v decimal.Decimal) error {
	if !v.IsPositive() {
		return invalid("%s must be positive", name)
	}
	return nil
}

func orNow(t *time.Time, now Clock) time.Time {
	if t == nil || t.IsZero() {
		return now()
	}
	return *t
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
