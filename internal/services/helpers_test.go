package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
	"transport_manager/internal/repository/memstore"

	"github.com/shopspring/decimal"
)

var testNow = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture is a seeded in-memory store.
type fixture struct {
	ctx      context.Context
	store    *repository.Store
	client   *models.Client
	supplier *models.Supplier
	product  *models.Product
	driver   *models.Employee
	office   *models.Employee
	vehicle  *models.Vehicle
	crane    *models.HeavyEquipment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), store: memstore.New()}

	f.client = &models.Client{Name: "Acme Construction"}
	f.supplier = &models.Supplier{Name: "Quarry Ltd"}
	f.product = &models.Product{Name: "Gravel", Unit: "ton"}
	f.driver = &models.Employee{FirstName: "Sam", LastName: "Reyes", Role: string(models.RoleDriver), BaseSalary: dec("1200")}
	f.office = &models.Employee{FirstName: "Lee", LastName: "Park", Role: string(models.RoleOffice), BaseSalary: dec("1500")}
	f.vehicle = &models.Vehicle{PlateNumber: "TR-100"}
	f.crane = &models.HeavyEquipment{Name: "Crane 1", DailyRate: dec("100")}

	must(t, f.store.Clients.Create(f.ctx, f.client))
	must(t, f.store.Suppliers.Create(f.ctx, f.supplier))
	must(t, f.store.Products.Create(f.ctx, f.product))
	must(t, f.store.Employees.Create(f.ctx, f.driver))
	must(t, f.store.Employees.Create(f.ctx, f.office))
	must(t, f.store.Vehicles.Create(f.ctx, f.vehicle))
	must(t, f.store.Equipment.Create(f.ctx, f.crane))
	return f
}

func (f *fixture) lot(t *testing.T, total, unitCost string) *models.StockLot {
	t.Helper()
	lot, err := NewStockService(f.store, fixedClock).CreateLot(f.ctx, CreateLotInput{
		ProductID:     f.product.ID,
		TotalQuantity: dec(total),
		UnitCost:      dec(unitCost),
	})
	must(t, err)
	return lot
}

func (f *fixture) entries(t *testing.T, filter models.LedgerFilter) []models.LedgerEntry {
	t.Helper()
	entries, err := f.store.Ledger.Find(f.ctx, filter)
	must(t, err)
	return entries
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

// countingCache is a SummaryCache that records invalidations. The
// invalidation count doubles as its version.
type countingCache struct {
	mu          sync.Mutex
	summaries   map[models.LedgerFilter]models.LedgerSummary
	invalidated int
}

func newCountingCache() *countingCache {
	return &countingCache{summaries: make(map[models.LedgerFilter]models.LedgerSummary)}
}

func (c *countingCache) Get(ctx context.Context, f models.LedgerFilter) (models.LedgerSummary, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.summaries[f]
	return s, int64(c.invalidated), ok
}

func (c *countingCache) Set(ctx context.Context, f models.LedgerFilter, version int64, s models.LedgerSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != int64(c.invalidated) {
		return
	}
	c.summaries[f] = s
}

func (c *countingCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated++
	c.summaries = make(map[models.LedgerFilter]models.LedgerSummary)
}
