package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment tracks what a client owes and has paid for one order.
// The status is derived from the two amounts and never stored.
type Payment struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;uniqueIndex"`
	DueAmount  decimal.Decimal `json:"due_amount" gorm:"type:decimal(14,2);not null;default:0"`
	PaidAmount decimal.Decimal `json:"paid_amount" gorm:"type:decimal(14,2);not null;default:0"`
	Method     string          `json:"method"` // cash, transfer, cheque
	LastPaidAt *time.Time      `json:"last_paid_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// DerivePaymentStatus classifies paid against due. Overpayment counts as paid.
func DerivePaymentStatus(due, paid decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(due):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}

func (p *Payment) Status() PaymentStatus {
	return DerivePaymentStatus(p.DueAmount, p.PaidAmount)
}

// Outstanding is what remains to be paid; negative when overpaid.
func (p *Payment) Outstanding() decimal.Decimal {
	return p.DueAmount.Sub(p.PaidAmount)
}

// PaymentView is the JSON shape of a payment with its derived status.
type PaymentView struct {
	ID          uint            `json:"id"`
	OrderID     uint            `json:"order_id"`
	DueAmount   decimal.Decimal `json:"due_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Outstanding decimal.Decimal `json:"outstanding"`
	PaidPercent decimal.Decimal `json:"paid_percent"`
	Status      PaymentStatus   `json:"status"`
	Method      string          `json:"method"`
	LastPaidAt  *time.Time      `json:"last_paid_at"`
}

func (p *Payment) ToView() PaymentView {
	return PaymentView{
		ID:          p.ID,
		OrderID:     p.OrderID,
		DueAmount:   p.DueAmount,
		PaidAmount:  p.PaidAmount,
		Outstanding: p.Outstanding(),
		PaidPercent: Percent(p.PaidAmount, p.DueAmount),
		Status:      p.Status(),
		Method:      p.Method,
		LastPaidAt:  p.LastPaidAt,
	}
}
