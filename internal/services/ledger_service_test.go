package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

func TestLedgerRecordChecksOwner(t *testing.T) {
	f := newFixture(t)
	ledger := NewLedgerService(f.store, nil, fixedClock)

	tests := []struct {
		name  string
		input RecordInput
		want  error
	}{
		{"unknown kind", RecordInput{Direction: "outflow", Amount: dec("1"), OwnerKind: "spaceship", OwnerID: 1}, models.ErrUnknownOwnerKind},
		{"missing owner", RecordInput{Direction: "outflow", Amount: dec("1"), OwnerKind: "fuel-delivery", OwnerID: 7}, ErrOwnerNotFound},
		{"bad direction", RecordInput{Direction: "sideways", Amount: dec("1"), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID}, models.ErrInvalidDirection},
		{"zero amount", RecordInput{Direction: "inflow", Amount: dec("0"), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID}, models.ErrInvalidAmount},
		{"ok", RecordInput{Direction: "inflow", Amount: dec("12.50"), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Record(f.ctx, tt.input)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}

	if got := f.entries(t, models.LedgerFilter{}); len(got) != 1 {
		t.Errorf("got %d entries, want only the valid one", len(got))
	}
}

func TestFuelDeliveryEntriesSumToFuelSpend(t *testing.T) {
	f := newFixture(t)
	fleet := NewFleetService(f.store, nil, fixedClock)
	ledger := NewLedgerService(f.store, nil, fixedClock)

	deliveries := []FuelDeliveryInput{
		{SupplierID: f.supplier.ID, Liters: dec("500"), UnitPrice: dec("1.219")},
		{SupplierID: f.supplier.ID, Liters: dec("320.5"), UnitPrice: dec("1.305")},
		{SupplierID: f.supplier.ID, Liters: dec("75"), UnitPrice: dec("1.2")},
	}
	spend := dec("0")
	for _, in := range deliveries {
		d, err := fleet.RecordFuelDelivery(f.ctx, in)
		must(t, err)
		spend = spend.Add(d.Total)
	}

	// unrelated movements must not leak into the fuel filter
	_, err := ledger.Record(f.ctx, RecordInput{Direction: "outflow", Amount: dec("99"), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID})
	must(t, err)

	kind := models.OwnerFuelDelivery
	summary, err := ledger.Summary(f.ctx, models.LedgerFilter{OwnerKind: &kind})
	must(t, err)
	if !summary.Outflow.Equal(spend) {
		t.Errorf("fuel outflow %s, want %s", summary.Outflow, spend)
	}
	if summary.Count != int64(len(deliveries)) {
		t.Errorf("count %d, want %d", summary.Count, len(deliveries))
	}
	assertDec(t, "inflow", summary.Inflow, "0")
}

func TestLedgerFilterByDirection(t *testing.T) {
	f := newFixture(t)
	ledger := NewLedgerService(f.store, nil, fixedClock)
	for _, dir := range []string{"inflow", "outflow", "inflow"} {
		_, err := ledger.Record(f.ctx, RecordInput{Direction: dir, Amount: dec("10"), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID})
		must(t, err)
	}

	in := models.Inflow
	got, err := ledger.List(f.ctx, models.LedgerFilter{Direction: &in})
	must(t, err)
	if len(got) != 2 {
		t.Errorf("got %d inflows, want 2", len(got))
	}
}

func TestLedgerSummaryCache(t *testing.T) {
	f := newFixture(t)
	cache := newCountingCache()
	ledger := NewLedgerService(f.store, cache, fixedClock)
	record := func(amount string) {
		t.Helper()
		_, err := ledger.Record(f.ctx, RecordInput{Direction: "inflow", Amount: dec(amount), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID})
		must(t, err)
	}

	record("10")
	first, err := ledger.Summary(f.ctx, models.LedgerFilter{})
	must(t, err)
	assertDec(t, "first net", first.Net, "10")
	if _, _, ok := cache.Get(f.ctx, models.LedgerFilter{}); !ok {
		t.Fatal("summary was not cached")
	}

	record("5")
	if cache.invalidated != 2 {
		t.Errorf("invalidated %d times, want 2", cache.invalidated)
	}
	second, err := ledger.Summary(f.ctx, models.LedgerFilter{})
	must(t, err)
	assertDec(t, "second net", second.Net, "15")
}

// interleavedLedger runs write once, right after the first Summarize has read
// the entries and before the caller gets to cache the result.
type interleavedLedger struct {
	repository.LedgerRepository
	once  sync.Once
	write func()
}

func (l *interleavedLedger) Summarize(ctx context.Context, filter models.LedgerFilter) (models.LedgerSummary, error) {
	summary, err := l.LedgerRepository.Summarize(ctx, filter)
	l.once.Do(l.write)
	return summary, err
}

func TestLedgerSummaryCacheDropsSummaryReadBeforeWrite(t *testing.T) {
	f := newFixture(t)
	cache := newCountingCache()
	ledger := NewLedgerService(f.store, cache, fixedClock)
	record := func(amount string) {
		t.Helper()
		_, err := ledger.Record(f.ctx, RecordInput{Direction: "inflow", Amount: dec(amount), OwnerKind: "heavy-equipment", OwnerID: f.crane.ID})
		must(t, err)
	}

	record("10")
	f.store.Ledger = &interleavedLedger{
		LedgerRepository: f.store.Ledger,
		write:            func() { record("5") },
	}

	stale, err := ledger.Summary(f.ctx, models.LedgerFilter{})
	must(t, err)
	assertDec(t, "summary read before the write", stale.Net, "10")

	fresh, err := ledger.Summary(f.ctx, models.LedgerFilter{})
	must(t, err)
	assertDec(t, "summary after the write", fresh.Net, "15")
}
