package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot is a batch of a product received at once. Sales draw it down
// through SoldQuantity; the received quantity never changes.
type StockLot struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	ProductID       uint            `json:"product_id" gorm:"not null;index"`
	SupplierOrderID *uint           `json:"supplier_order_id" gorm:"index"`
	Reference       string          `json:"reference"`
	TotalQuantity   decimal.Decimal `json:"total_quantity" gorm:"type:decimal(14,3);not null"`
	SoldQuantity    decimal.Decimal `json:"sold_quantity" gorm:"type:decimal(14,3);not null;default:0"`
	UnitCost        decimal.Decimal `json:"unit_cost" gorm:"type:decimal(14,2);not null;default:0"`
	ReceivedAt      time.Time       `json:"received_at" gorm:"not null"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (l *StockLot) Available() decimal.Decimal {
	return l.TotalQuantity.Sub(l.SoldQuantity)
}

// SoldFraction is sold/total, zero for an empty lot.
func (l *StockLot) SoldFraction() decimal.Decimal {
	return Fraction(l.SoldQuantity, l.TotalQuantity)
}

// CanFulfil reports whether qty more units can be sold from the lot.
func (l *StockLot) CanFulfil(qty decimal.Decimal) bool {
	return qty.LessThanOrEqual(l.Available())
}

// StockAvailability is the read model answered for a lot.
type StockAvailability struct {
	LotID        uint            `json:"lot_id"`
	ProductID    uint            `json:"product_id"`
	Total        decimal.Decimal `json:"total"`
	Sold         decimal.Decimal `json:"sold"`
	Available    decimal.Decimal `json:"available"`
	SoldFraction decimal.Decimal `json:"sold_fraction"`
	SoldPercent  decimal.Decimal `json:"sold_percent"`
}

func (l *StockLot) Availability() StockAvailability {
	return StockAvailability{
		LotID:        l.ID,
		ProductID:    l.ProductID,
		Total:        l.TotalQuantity,
		Sold:         l.SoldQuantity,
		Available:    l.Available(),
		SoldFraction: l.SoldFraction(),
		SoldPercent:  Percent(l.SoldQuantity, l.TotalQuantity),
	}
}
