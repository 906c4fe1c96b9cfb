package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type SupplierOrderService interface {
	Create(ctx context.Context, input CreateSupplierOrderInput) (*models.SupplierOrder, error)
	Get(ctx context.Context, id uint) (*models.SupplierOrder, error)
	List(ctx context.Context, supplierID *uint) ([]models.SupplierOrder, error)
	// Receive turns every line into a stock lot.
	Receive(ctx context.Context, id uint) ([]models.StockLot, error)
	RecordPayment(ctx context.Context, id uint, input RecordPaymentInput) (*models.SupplierOrder, error)
	// ListDebts lists what clients owe and what is owed to suppliers.
	ListDebts(ctx context.Context) ([]models.Debt, error)
}

type CreateSupplierOrderInput struct {
	SupplierID uint                `json:"supplier_id" binding:"required"`
	OrderDate  *time.Time          `json:"order_date"`
	Notes      string              `json:"notes"`
	Lines      []SupplierLineInput `json:"lines" binding:"required,min=1,dive"`
}

type SupplierLineInput struct {
	ProductID uint            `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type supplierOrderService struct {
	store *repository.Store
	cache SummaryCache
	now   Clock
}

func NewSupplierOrderService(store *repository.Store, cache SummaryCache, now Clock) SupplierOrderService {
	return &supplierOrderService{store: store, cache: cache, now: systemClock(now)}
}

func (s *supplierOrderService) Create(ctx context.Context, input CreateSupplierOrderInput) (*models.SupplierOrder, error) {
	if len(input.Lines) == 0 {
		return nil, invalid("a supplier order needs at least one line")
	}
	for _, l := range input.Lines {
		if err := notNegative("quantity", l.Quantity); err != nil {
			return nil, err
		}
		if err := notNegative("unit_cost", l.UnitCost); err != nil {
			return nil, err
		}
	}

	var order *models.SupplierOrder
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := tx.Suppliers.Exists(ctx, input.SupplierID)
		if err := mustExist(ok, err, "supplier", input.SupplierID); err != nil {
			return err
		}

		order = &models.SupplierOrder{
			OrderNumber: newOrderNumber("SO"),
			SupplierID:  input.SupplierID,
			OrderDate:   orNow(input.OrderDate, s.now),
			Status:      string(models.SupplierOrderPending),
			Total:       decimal.Zero,
			PaidAmount:  decimal.Zero,
			Notes:       input.Notes,
		}
		if err := tx.SupplierOrders.Create(ctx, order); err != nil {
			return fmt.Errorf("create supplier order: %w", err)
		}

		lines := make([]models.SupplierOrderLine, 0, len(input.Lines))
		for _, in := range input.Lines {
			ok, err := tx.Products.Exists(ctx, in.ProductID)
			if err := mustExist(ok, err, "product", in.ProductID); err != nil {
				return err
			}
			line := models.SupplierOrderLine{
				SupplierOrderID: order.ID,
				ProductID:       in.ProductID,
				Quantity:        in.Quantity,
				UnitCost:        in.UnitCost,
			}
			line.Recompute()
			if err := tx.SupplierLines.Create(ctx, &line); err != nil {
				return err
			}
			lines = append(lines, line)
		}

		order.Recompute(lines)
		return tx.SupplierOrders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, order.ID)
}

func (s *supplierOrderService) Get(ctx context.Context, id uint) (*models.SupplierOrder, error) {
	order, err := s.store.SupplierOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.SupplierLines.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

func (s *supplierOrderService) List(ctx context.Context, supplierID *uint) ([]models.SupplierOrder, error) {
	if supplierID != nil {
		return s.store.SupplierOrders.GetBySupplierID(ctx, *supplierID)
	}
	return s.store.SupplierOrders.GetAll(ctx)
}

func (s *supplierOrderService) Receive(ctx context.Context, id uint) ([]models.StockLot, error) {
	var lots []models.StockLot
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.SupplierOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order.Status == string(models.SupplierOrderReceived) {
			return fmt.Errorf("%w: %s", ErrAlreadyReceived, order.OrderNumber)
		}

		lines, err := tx.SupplierLines.GetByOrderID(ctx, id)
		if err != nil {
			return err
		}
		now := s.now()
		for i, line := range lines {
			lot := models.StockLot{
				ProductID:       line.ProductID,
				SupplierOrderID: &order.ID,
				Reference:       fmt.Sprintf("%s/%d", order.OrderNumber, i+1),
				TotalQuantity:   line.Quantity,
				SoldQuantity:    decimal.Zero,
				UnitCost:        line.UnitCost,
				ReceivedAt:      now,
			}
			if err := tx.StockLots.Create(ctx, &lot); err != nil {
				return fmt.Errorf("create stock lot: %w", err)
			}
			if err := snapshot(ctx, tx, models.ReportStock, lot.ID, "received", lot.TotalQuantity, lot.Availability(), now); err != nil {
				return err
			}
			lots = append(lots, lot)
		}

		order.Status = string(models.SupplierOrderReceived)
		order.ReceivedAt = &now
		order.Lines = nil
		return tx.SupplierOrders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return lots, nil
}

func (s *supplierOrderService) RecordPayment(ctx context.Context, id uint, input RecordPaymentInput) (*models.SupplierOrder, error) {
	if err := positive("amount", input.Amount); err != nil {
		return nil, err
	}
	paidAt := orNow(input.PaidAt, s.now)

	err := ledgerTx(ctx, s.store, s.cache, func(tx *repository.Store) error {
		order, err := tx.SupplierOrders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		order.PaidAmount = order.PaidAmount.Add(input.Amount)
		order.Lines = nil
		if err := tx.SupplierOrders.Update(ctx, order); err != nil {
			return err
		}

		desc := fmt.Sprintf("Payment to supplier for order %s", order.OrderNumber)
		if _, err := appendEntry(ctx, tx, models.SupplierOrderOwner{ID: order.ID}, models.Outflow, input.Amount, desc, paidAt); err != nil {
			return err
		}
		return snapshot(ctx, tx, models.ReportDebt, order.ID, "supplier-payment", order.Outstanding(),
			debtSnapshot("supplier", order.SupplierID, order.OrderNumber, order.PaymentStatus(), order.Total, order.PaidAmount), paidAt)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *supplierOrderService) ListDebts(ctx context.Context) ([]models.Debt, error) {
	orders, err := s.store.Orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.store.Payments.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	paid := make(map[uint]decimal.Decimal, len(payments))
	for _, p := range payments {
		paid[p.OrderID] = p.PaidAmount
	}

	var debts []models.Debt
	for _, o := range orders {
		p := paid[o.ID]
		if debt, ok := newDebt("client", o.ClientID, o.ID, o.OrderNumber, o.Total, p); ok {
			debts = append(debts, debt)
		}
	}

	supplierOrders, err := s.store.SupplierOrders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range supplierOrders {
		if debt, ok := newDebt("supplier", o.SupplierID, o.ID, o.OrderNumber, o.Total, o.PaidAmount); ok {
			debts = append(debts, debt)
		}
	}
	return debts, nil
}

// newDebt reports a debt only while something is still owed.
func newDebt(party string, partyID, orderID uint, number string, total, paid decimal.Decimal) (models.Debt, bool) {
	status := models.DerivePaymentStatus(total, paid)
	if status == models.PaymentPaid {
		return models.Debt{}, false
	}
	return models.Debt{
		Party:       party,
		PartyID:     partyID,
		OrderID:     orderID,
		OrderNumber: number,
		Total:       total,
		Paid:        paid,
		Outstanding: total.Sub(paid),
		Status:      status,
	}, true
}
