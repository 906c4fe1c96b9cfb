package services

import (
	"errors"
	"testing"

	"transport_manager/internal/models"
)

func TestRecordPaymentDerivesStatus(t *testing.T) {
	f := newFixture(t)
	lot := f.lot(t, "100", "5")
	orders := NewOrderService(f.store, fixedClock)
	payments := NewPaymentService(f.store, nil, fixedClock)

	order, err := orders.CreateOrder(f.ctx, CreateOrderInput{
		ClientID: f.client.ID,
		Lines:    []LineInput{{StockLotID: lot.ID, Quantity: dec("10"), SellPrice: dec("10")}},
	})
	must(t, err)

	view, err := payments.GetPayment(f.ctx, order.ID)
	must(t, err)
	if view.Status != models.PaymentUnpaid {
		t.Errorf("before any payment: %s", view.Status)
	}
	assertDec(t, "due", view.DueAmount, "100")

	steps := []struct {
		amount      string
		wantStatus  models.PaymentStatus
		wantPercent string
	}{
		{"40", models.PaymentPartial, "40"},
		{"60", models.PaymentPaid, "100"},
		{"5", models.PaymentPaid, "105"},
	}
	for _, step := range steps {
		view, err = payments.RecordPayment(f.ctx, order.ID, RecordPaymentInput{Amount: dec(step.amount), Method: "cash"})
		must(t, err)
		if view.Status != step.wantStatus {
			t.Errorf("after %s: status %s, want %s", step.amount, view.Status, step.wantStatus)
		}
		assertDec(t, "paid percent", view.PaidPercent, step.wantPercent)
	}
	assertDec(t, "outstanding", view.Outstanding, "-5")

	kind := models.OwnerClientOrder
	entries := f.entries(t, models.LedgerFilter{OwnerKind: &kind})
	if len(entries) != 3 {
		t.Fatalf("got %d ledger entries, want 3", len(entries))
	}
	for _, e := range entries {
		if e.Direction != models.Inflow || e.OwnerID != order.ID {
			t.Errorf("unexpected entry %+v", e)
		}
	}
}

func TestPaymentDueFollowsOrderTotal(t *testing.T) {
	f := newFixture(t)
	lot := f.lot(t, "100", "5")
	orders := NewOrderService(f.store, fixedClock)
	payments := NewPaymentService(f.store, nil, fixedClock)

	order, err := orders.CreateOrder(f.ctx, CreateOrderInput{
		ClientID: f.client.ID,
		Lines:    []LineInput{{StockLotID: lot.ID, Quantity: dec("2"), SellPrice: dec("10")}},
	})
	must(t, err)
	view, err := payments.RecordPayment(f.ctx, order.ID, RecordPaymentInput{Amount: dec("20")})
	must(t, err)
	if view.Status != models.PaymentPaid {
		t.Fatalf("status %s, want paid", view.Status)
	}

	_, err = orders.AddLine(f.ctx, order.ID, LineInput{StockLotID: lot.ID, Quantity: dec("1"), SellPrice: dec("10")})
	must(t, err)

	view, err = payments.GetPayment(f.ctx, order.ID)
	must(t, err)
	assertDec(t, "due", view.DueAmount, "30")
	if view.Status != models.PaymentPartial {
		t.Errorf("status %s, want partial after the order grew", view.Status)
	}
}

func TestRecordPaymentRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	payments := NewPaymentService(f.store, nil, fixedClock)

	if _, err := payments.RecordPayment(f.ctx, 1, RecordPaymentInput{Amount: dec("0")}); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("zero amount: got %v", err)
	}
	if _, err := payments.RecordPayment(f.ctx, 404, RecordPaymentInput{Amount: dec("1")}); err == nil {
		t.Error("payment for a missing order succeeded")
	}
}
