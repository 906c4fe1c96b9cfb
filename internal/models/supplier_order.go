package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierOrder is a purchase from a supplier. Receiving it turns every
// line into a stock lot; what is not paid yet is a debt to the supplier.
type SupplierOrder struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"unique;not null"`
	SupplierID  uint            `json:"supplier_id" gorm:"not null;index"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null"`
	Status      string          `json:"status" gorm:"default:'pending'"` // pending, received
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null;default:0"`
	PaidAmount  decimal.Decimal `json:"paid_amount" gorm:"type:decimal(14,2);not null;default:0"`
	ReceivedAt  *time.Time      `json:"received_at"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Lines []SupplierOrderLine `json:"lines,omitempty" gorm:"foreignKey:SupplierOrderID;constraint:OnDelete:CASCADE"`
}

type SupplierOrderStatus string

const (
	SupplierOrderPending  SupplierOrderStatus = "pending"
	SupplierOrderReceived SupplierOrderStatus = "received"
)

func (o *SupplierOrder) Recompute(lines []SupplierOrderLine) {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total)
	}
	o.Total = total
}

func (o *SupplierOrder) Outstanding() decimal.Decimal {
	return o.Total.Sub(o.PaidAmount)
}

func (o *SupplierOrder) PaymentStatus() PaymentStatus {
	return DerivePaymentStatus(o.Total, o.PaidAmount)
}

type SupplierOrderLine struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	SupplierOrderID uint            `json:"supplier_order_id" gorm:"not null;index"`
	ProductID       uint            `json:"product_id" gorm:"not null;index"`
	Quantity        decimal.Decimal `json:"quantity" gorm:"type:decimal(14,3);not null"`
	UnitCost        decimal.Decimal `json:"unit_cost" gorm:"type:decimal(14,2);not null"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
}

func (l *SupplierOrderLine) Recompute() {
	l.Total = l.Quantity.Mul(l.UnitCost).Round(2)
}

// Debt is an unsettled balance, owed by a client or owed to a supplier.
type Debt struct {
	Party       string          `json:"party"` // client, supplier
	PartyID     uint            `json:"party_id"`
	OrderID     uint            `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Total       decimal.Decimal `json:"total"`
	Paid        decimal.Decimal `json:"paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Status      PaymentStatus   `json:"status"`
}
