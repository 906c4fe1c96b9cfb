package services

import (
	"errors"
	"testing"

	"transport_manager/internal/models"
)

func TestSupplierOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	suppliers := NewSupplierOrderService(f.store, nil, fixedClock)

	order, err := suppliers.Create(f.ctx, CreateSupplierOrderInput{
		SupplierID: f.supplier.ID,
		Lines: []SupplierLineInput{
			{ProductID: f.product.ID, Quantity: dec("20"), UnitCost: dec("4")},
			{ProductID: f.product.ID, Quantity: dec("10"), UnitCost: dec("4.5")},
		},
	})
	must(t, err)
	assertDec(t, "total", order.Total, "125")
	if order.PaymentStatus() != models.PaymentUnpaid {
		t.Errorf("new order status %s", order.PaymentStatus())
	}

	lots, err := suppliers.Receive(f.ctx, order.ID)
	must(t, err)
	if len(lots) != 2 {
		t.Fatalf("got %d lots, want 2", len(lots))
	}
	assertDec(t, "first lot", lots[0].TotalQuantity, "20")
	assertDec(t, "second lot cost", lots[1].UnitCost, "4.5")
	if lots[0].SupplierOrderID == nil || *lots[0].SupplierOrderID != order.ID {
		t.Errorf("lot not linked to its supplier order")
	}
	if _, err := suppliers.Receive(f.ctx, order.ID); !errors.Is(err, ErrAlreadyReceived) {
		t.Errorf("second receive: got %v", err)
	}

	paid, err := suppliers.RecordPayment(f.ctx, order.ID, RecordPaymentInput{Amount: dec("100")})
	must(t, err)
	assertDec(t, "outstanding", paid.Outstanding(), "25")

	kind := models.OwnerSupplierOrder
	entries := f.entries(t, models.LedgerFilter{OwnerKind: &kind})
	if len(entries) != 1 || entries[0].Direction != models.Outflow {
		t.Errorf("supplier payment entries = %+v", entries)
	}
}

func TestListDebts(t *testing.T) {
	f := newFixture(t)
	lot := f.lot(t, "100", "1")
	orders := NewOrderService(f.store, fixedClock)
	payments := NewPaymentService(f.store, nil, fixedClock)
	suppliers := NewSupplierOrderService(f.store, nil, fixedClock)

	unpaid, err := orders.CreateOrder(f.ctx, CreateOrderInput{ClientID: f.client.ID, Lines: []LineInput{{StockLotID: lot.ID, Quantity: dec("1"), SellPrice: dec("30")}}})
	must(t, err)
	settled, err := orders.CreateOrder(f.ctx, CreateOrderInput{ClientID: f.client.ID, Lines: []LineInput{{StockLotID: lot.ID, Quantity: dec("1"), SellPrice: dec("20")}}})
	must(t, err)
	_, err = payments.RecordPayment(f.ctx, settled.ID, RecordPaymentInput{Amount: dec("20")})
	must(t, err)

	purchase, err := suppliers.Create(f.ctx, CreateSupplierOrderInput{
		SupplierID: f.supplier.ID,
		Lines:      []SupplierLineInput{{ProductID: f.product.ID, Quantity: dec("5"), UnitCost: dec("10")}},
	})
	must(t, err)
	_, err = suppliers.RecordPayment(f.ctx, purchase.ID, RecordPaymentInput{Amount: dec("10")})
	must(t, err)

	debts, err := suppliers.ListDebts(f.ctx)
	must(t, err)
	if len(debts) != 2 {
		t.Fatalf("got %d debts, want 2: %+v", len(debts), debts)
	}
	client, supplier := debts[0], debts[1]
	if client.Party != "client" || client.OrderID != unpaid.ID || client.Status != models.PaymentUnpaid {
		t.Errorf("client debt = %+v", client)
	}
	assertDec(t, "client outstanding", client.Outstanding, "30")
	if supplier.Party != "supplier" || supplier.Status != models.PaymentPartial {
		t.Errorf("supplier debt = %+v", supplier)
	}
	assertDec(t, "supplier outstanding", supplier.Outstanding, "40")
}
