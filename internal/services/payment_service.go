package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, orderID uint, input RecordPaymentInput) (*models.PaymentView, error)
	GetPayment(ctx context.Context, orderID uint) (*models.PaymentView, error)
}

type RecordPaymentInput struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	PaidAt *time.Time      `json:"paid_at"`
}

type paymentService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewPaymentService(store *repository.Store, cache SummaryCache, now Clock) PaymentService {
	return &paymentService{store: store, cache: cache, now: systemClock(now)}
}

// RecordPayment adds amount to what the client has paid for the order.
// The payment row is created on first use with the order total as due.
func (s *paymentService) RecordPayment(ctx context.Context, orderID uint, input RecordPaymentInput) (*models.PaymentView, error) {
	if err := positive("amount", input.Amount); err != nil {
		return nil, err
	}
	paidAt := orNow(input.PaidAt, s.now)

	var view models.PaymentView
	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		payment, err := tx.Payments.GetByOrderID(ctx, orderID)
		switch {
		case isNotFound(err):
			payment = &models.Payment{OrderID: orderID, DueAmount: order.Total, PaidAmount: decimal.Zero}
			if err := tx.Payments.Create(ctx, payment); err != nil {
				return fmt.Errorf("create payment: %w", err)
			}
		case err != nil:
			return err
		}

		payment.DueAmount = order.Total
		payment.PaidAmount = payment.PaidAmount.Add(input.Amount)
		payment.LastPaidAt = &paidAt
		if input.Method != "" {
			payment.Method = input.Method
		}
		if err := tx.Payments.Update(ctx, payment); err != nil {
			return err
		}

		desc := fmt.Sprintf("Payment for order %s", order.OrderNumber)
		if _, err := appendEntry(ctx, tx, models.ClientOrderOwner{ID: order.ID}, models.Inflow, input.Amount, desc, paidAt); err != nil {
			return err
		}

		view = payment.ToView()
		return snapshot(ctx, tx, models.ReportDebt, order.ID, "client-payment", payment.Outstanding(), debtSnapshot("client", order.ClientID, order.OrderNumber, view.Status, payment.DueAmount, payment.PaidAmount), paidAt)
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GetPayment answers the payment of an order. An order nobody has paid
// yet reports its total as due.
func (s *paymentService) GetPayment(ctx context.Context, orderID uint) (*models.PaymentView, error) {
	payment, err := s.store.Payments.GetByOrderID(ctx, orderID)
	if err == nil {
		view := payment.ToView()
		return &view, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	order, err := s.store.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	unpaid := models.Payment{OrderID: order.ID, DueAmount: order.Total, PaidAmount: decimal.Zero}
	view := unpaid.ToView()
	return &view, nil
}

func debtSnapshot(party string, partyID uint, number string, status models.PaymentStatus, total, paid decimal.Decimal) map[string]any {
	return map[string]any{
		"party":        party,
		"party_id":     partyID,
		"order_number": number,
		"total":        total,
		"paid":         paid,
		"outstanding":  total.Sub(paid),
		"status":       status,
	}
}
