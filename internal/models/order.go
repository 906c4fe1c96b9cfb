package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientOrder is a sale to a client. Total and Profit are always the sums
// of the order's lines and are rewritten whenever a line changes.
type ClientOrder struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderNumber string          `json:"order_number" gorm:"unique;not null"`
	ClientID    uint            `json:"client_id" gorm:"not null;index"`
	OrderDate   time.Time       `json:"order_date" gorm:"not null"`
	DeliveredAt *time.Time      `json:"delivered_at"`
	Status      string          `json:"status" gorm:"default:'pending'"` // pending, delivered
	Total       decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null;default:0"`
	Profit      decimal.Decimal `json:"profit" gorm:"type:decimal(14,2);not null;default:0"`
	Notes       string          `json:"notes" gorm:"type:text"`
	CreatedBy   *uint           `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Lines   []OrderLine `json:"lines,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payment *Payment    `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
)

// Recompute rewrites Total and Profit from lines.
func (o *ClientOrder) Recompute(lines []OrderLine) {
	total, profit := decimal.Zero, decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Total)
		profit = profit.Add(l.Margin)
	}
	o.Total = total
	o.Profit = profit
}

// OrderLine is one product line of a client order, drawn from a stock lot.
// VehicleID and DriverID attribute the delivery of the line.
type OrderLine struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"not null;index"`
	StockLotID uint            `json:"stock_lot_id" gorm:"not null;index"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(14,3);not null"`
	BuyPrice   decimal.Decimal `json:"buy_price" gorm:"type:decimal(14,2);not null"`
	SellPrice  decimal.Decimal `json:"sell_price" gorm:"type:decimal(14,2);not null"`
	Total      decimal.Decimal `json:"total" gorm:"type:decimal(14,2);not null"`
	Margin     decimal.Decimal `json:"margin" gorm:"type:decimal(14,2);not null"`
	VehicleID  *uint           `json:"vehicle_id" gorm:"index"`
	DriverID   *uint           `json:"driver_id" gorm:"index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Recompute derives Total and Margin from quantity and prices, rounded to
// the cent like the stored columns.
func (l *OrderLine) Recompute() {
	l.Total = l.Quantity.Mul(l.SellPrice).Round(2)
	l.Margin = l.SellPrice.Sub(l.BuyPrice).Mul(l.Quantity).Round(2)
}
