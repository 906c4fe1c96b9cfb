package services

import (
	"errors"
	"testing"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"
)

func TestStockAvailability(t *testing.T) {
	f := newFixture(t)
	stock := NewStockService(f.store, fixedClock)
	orders := NewOrderService(f.store, fixedClock)

	lot := f.lot(t, "40", "2")
	_, err := orders.CreateOrder(f.ctx, CreateOrderInput{
		ClientID: f.client.ID,
		Lines:    []LineInput{{StockLotID: lot.ID, Quantity: dec("10"), SellPrice: dec("3")}},
	})
	must(t, err)

	avail, err := stock.Availability(f.ctx, lot.ID)
	must(t, err)
	assertDec(t, "available", avail.Available, "30")
	assertDec(t, "sold fraction", avail.SoldFraction, "0.25")
	assertDec(t, "sold percent", avail.SoldPercent, "25")

	tests := []struct {
		qty  string
		want bool
	}{
		{"30", true},
		{"30.001", false},
		{"0", true},
	}
	for _, tt := range tests {
		got, err := stock.IsAvailable(f.ctx, lot.ID, dec(tt.qty))
		must(t, err)
		if got != tt.want {
			t.Errorf("IsAvailable(%s) = %v, want %v", tt.qty, got, tt.want)
		}
	}

	empty := f.lot(t, "0", "0")
	avail, err = stock.Availability(f.ctx, empty.ID)
	must(t, err)
	assertDec(t, "empty lot percent", avail.SoldPercent, "0")
}

func TestCreateLotNeedsProduct(t *testing.T) {
	f := newFixture(t)
	stock := NewStockService(f.store, fixedClock)
	_, err := stock.CreateLot(f.ctx, CreateLotInput{ProductID: 99, TotalQuantity: dec("1")})
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestSnapshotAll(t *testing.T) {
	f := newFixture(t)
	stock := NewStockService(f.store, fixedClock)
	f.lot(t, "10", "1")
	f.lot(t, "20", "1")

	n, err := stock.SnapshotAll(f.ctx)
	must(t, err)
	if n != 2 {
		t.Errorf("snapshotted %d lots, want 2", n)
	}

	kind := models.ReportStock
	snapshots, err := NewReportService(f.store).List(f.ctx, models.ReportFilter{Kind: &kind})
	must(t, err)
	daily := 0
	for _, s := range snapshots {
		if s.Event == "daily" {
			daily++
		}
	}
	if daily != 2 {
		t.Errorf("got %d daily snapshots, want 2", daily)
	}
}
