package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.ClientOrder, error)
	GetOrder(ctx context.Context, id uint) (*models.ClientOrder, error)
	ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.ClientOrder, error)
	MarkDelivered(ctx context.Context, id uint) (*models.ClientOrder, error)
	DeleteOrder(ctx context.Context, id uint) error

	// Line methods recompute the order totals in the same transaction.
	AddLine(ctx context.Context, orderID uint, input LineInput) (*models.ClientOrder, error)
	UpdateLine(ctx context.Context, orderID, lineID uint, input LineInput) (*models.ClientOrder, error)
	RemoveLine(ctx context.Context, orderID, lineID uint) (*models.ClientOrder, error)
}

type CreateOrderInput struct {
	ClientID  uint        `json:"client_id" binding:"required"`
	OrderDate *time.Time  `json:"order_date"`
	Notes     string      `json:"notes"`
	Lines     []LineInput `json:"lines"`
	CreatedBy *uint       `json:"-"`
}

// LineInput describes one order line. BuyPrice defaults to the lot's unit
// cost when omitted.
type LineInput struct {
	StockLotID uint             `json:"stock_lot_id" binding:"required"`
	Quantity   decimal.Decimal  `json:"quantity"`
	BuyPrice   *decimal.Decimal `json:"buy_price"`
	SellPrice  decimal.Decimal  `json:"sell_price"`
	VehicleID  *uint            `json:"vehicle_id"`
	DriverID   *uint            `json:"driver_id"`
}

type orderService struct {
	store *repository.Store
	now   Clock
}

func NewOrderService(store *repository.Store, now Clock) OrderService {
	return &orderService{store: store, now: systemClock(now)}
}

func (s *orderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.ClientOrder, error) {
	var order *models.ClientOrder
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := tx.Clients.Exists(ctx, input.ClientID)
		if err := mustExist(ok, err, "client", input.ClientID); err != nil {
			return err
		}

		order = &models.ClientOrder{
			OrderNumber: newOrderNumber("CO"),
			ClientID:    input.ClientID,
			OrderDate:   orNow(input.OrderDate, s.now),
			Status:      string(models.OrderPending),
			Total:       decimal.Zero,
			Profit:      decimal.Zero,
			Notes:       input.Notes,
			CreatedBy:   input.CreatedBy,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, in := range input.Lines {
			if _, err := s.insertLine(ctx, tx, order.ID, in); err != nil {
				return err
			}
		}
		return s.recompute(ctx, tx, order, "created")
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, order.ID)
}

func (s *orderService) GetOrder(ctx context.Context, id uint) (*models.ClientOrder, error) {
	order, err := s.store.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.OrderLines.GetByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Lines = lines
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter repository.OrderFilter) ([]models.ClientOrder, error) {
	return s.store.Orders.Find(ctx, filter)
}

func (s *orderService) MarkDelivered(ctx context.Context, id uint) (*models.ClientOrder, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderPending) {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, order.OrderNumber, order.Status)
		}
		now := s.now()
		order.Status = string(models.OrderDelivered)
		order.DeliveredAt = &now
		if err := tx.Orders.Update(ctx, order); err != nil {
			return err
		}
		return snapshot(ctx, tx, models.ReportOrder, order.ID, "delivered", order.Total, orderSnapshot(order, nil), now)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, id)
}

// DeleteOrder removes an order that has not been paid, giving its lines'
// quantities back to their stock lots.
func (s *orderService) DeleteOrder(ctx context.Context, id uint) error {
	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		payment, err := tx.Payments.GetByOrderID(ctx, id)
		switch {
		case err == nil && payment.PaidAmount.IsPositive():
			return fmt.Errorf("%w: %s", ErrOrderPaid, order.OrderNumber)
		case err == nil:
			if err := tx.Payments.Delete(ctx, payment.ID); err != nil {
				return err
			}
		case !isNotFound(err):
			return err
		}

		lines, err := tx.OrderLines.GetByOrderID(ctx, id)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if err := credit(ctx, tx, line.StockLotID, line.Quantity); err != nil {
				return err
			}
			if err := tx.OrderLines.Delete(ctx, line.ID); err != nil {
				return err
			}
		}
		if err := snapshot(ctx, tx, models.ReportOrder, order.ID, "deleted", order.Total, orderSnapshot(order, lines), s.now()); err != nil {
			return err
		}
		return tx.Orders.Delete(ctx, id)
	})
}

func (s *orderService) AddLine(ctx context.Context, orderID uint, input LineInput) (*models.ClientOrder, error) {
	return s.mutate(ctx, orderID, "line-added", func(tx *repository.Store, order *models.ClientOrder) error {
		_, err := s.insertLine(ctx, tx, order.ID, input)
		return err
	})
}

func (s *orderService) UpdateLine(ctx context.Context, orderID, lineID uint, input LineInput) (*models.ClientOrder, error) {
	return s.mutate(ctx, orderID, "line-updated", func(tx *repository.Store, order *models.ClientOrder) error {
		line, err := lineOf(ctx, tx, order.ID, lineID)
		if err != nil {
			return err
		}
		if err := credit(ctx, tx, line.StockLotID, line.Quantity); err != nil {
			return err
		}
		lot, err := s.debit(ctx, tx, input)
		if err != nil {
			return err
		}
		applyLine(line, lot, input)
		return tx.OrderLines.Update(ctx, line)
	})
}

func (s *orderService) RemoveLine(ctx context.Context, orderID, lineID uint) (*models.ClientOrder, error) {
	return s.mutate(ctx, orderID, "line-removed", func(tx *repository.Store, order *models.ClientOrder) error {
		line, err := lineOf(ctx, tx, order.ID, lineID)
		if err != nil {
			return err
		}
		if err := credit(ctx, tx, line.StockLotID, line.Quantity); err != nil {
			return err
		}
		return tx.OrderLines.Delete(ctx, line.ID)
	})
}

// mutate locks a pending order, applies fn and recomputes the totals
// before the transaction commits.
func (s *orderService) mutate(ctx context.Context, orderID uint, event string, fn func(tx *repository.Store, order *models.ClientOrder) error) (*models.ClientOrder, error) {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order.Status != string(models.OrderPending) {
			return fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, order.OrderNumber, order.Status)
		}
		if err := fn(tx, order); err != nil {
			return err
		}
		return s.recompute(ctx, tx, order, event)
	})
	if err != nil {
		return nil, err
	}
	return s.GetOrder(ctx, orderID)
}

// recompute rewrites the order totals from its persisted lines and keeps
// the payment due amount in step.
func (s *orderService) recompute(ctx context.Context, tx *repository.Store, order *models.ClientOrder, event string) error {
	lines, err := tx.OrderLines.GetByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	order.Recompute(lines)
	order.Lines = nil
	if err := tx.Orders.Update(ctx, order); err != nil {
		return fmt.Errorf("update order totals: %w", err)
	}

	payment, err := tx.Payments.GetByOrderID(ctx, order.ID)
	switch {
	case err == nil:
		payment.DueAmount = order.Total
		if err := tx.Payments.Update(ctx, payment); err != nil {
			return err
		}
	case !isNotFound(err):
		return err
	}

	return snapshot(ctx, tx, models.ReportOrder, order.ID, event, order.Total, orderSnapshot(order, lines), s.now())
}

func (s *orderService) insertLine(ctx context.Context, tx *repository.Store, orderID uint, input LineInput) (*models.OrderLine, error) {
	lot, err := s.debit(ctx, tx, input)
	if err != nil {
		return nil, err
	}
	line := &models.OrderLine{OrderID: orderID}
	applyLine(line, lot, input)
	if err := tx.OrderLines.Create(ctx, line); err != nil {
		return nil, fmt.Errorf("create order line: %w", err)
	}
	return line, nil
}

// debit validates a line and draws its quantity from the locked lot.
func (s *orderService) debit(ctx context.Context, tx *repository.Store, input LineInput) (*models.StockLot, error) {
	if err := validateLine(input); err != nil {
		return nil, err
	}
	if input.VehicleID != nil {
		ok, err := tx.Vehicles.Exists(ctx, *input.VehicleID)
		if err := mustExist(ok, err, "vehicle", *input.VehicleID); err != nil {
			return nil, err
		}
	}
	if input.DriverID != nil {
		driver, err := tx.Employees.GetByID(ctx, *input.DriverID)
		if err != nil {
			return nil, fmt.Errorf("driver %d: %w", *input.DriverID, err)
		}
		if !driver.IsDriver() {
			return nil, invalid("employee %s is not a driver", driver.FullName())
		}
	}

	lot, err := tx.StockLots.GetForUpdate(ctx, input.StockLotID)
	if err != nil {
		return nil, fmt.Errorf("stock lot %d: %w", input.StockLotID, err)
	}
	if !lot.CanFulfil(input.Quantity) {
		return nil, fmt.Errorf("%w: lot %d has %s left, %s requested",
			ErrInsufficientStock, lot.ID, lot.Available(), input.Quantity)
	}
	lot.SoldQuantity = lot.SoldQuantity.Add(input.Quantity)
	if err := tx.StockLots.Update(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// credit gives qty back to a lot.
func credit(ctx context.Context, tx *repository.Store, lotID uint, qty decimal.Decimal) error {
	lot, err := tx.StockLots.GetForUpdate(ctx, lotID)
	if err != nil {
		return fmt.Errorf("stock lot %d: %w", lotID, err)
	}
	lot.SoldQuantity = decimal.Max(lot.SoldQuantity.Sub(qty), decimal.Zero)
	return tx.StockLots.Update(ctx, lot)
}

func lineOf(ctx context.Context, tx *repository.Store, orderID, lineID uint) (*models.OrderLine, error) {
	line, err := tx.OrderLines.GetByID(ctx, lineID)
	if err != nil {
		return nil, err
	}
	if line.OrderID != orderID {
		return nil, fmt.Errorf("line %d of order %d: %w", lineID, orderID, repository.ErrNotFound)
	}
	return line, nil
}

func applyLine(line *models.OrderLine, lot *models.StockLot, input LineInput) {
	line.StockLotID = lot.ID
	line.Quantity = input.Quantity
	line.SellPrice = input.SellPrice
	line.BuyPrice = lot.UnitCost
	if input.BuyPrice != nil {
		line.BuyPrice = *input.BuyPrice
	}
	line.VehicleID = input.VehicleID
	line.DriverID = input.DriverID
	line.Recompute()
}

func validateLine(input LineInput) error {
	if err := notNegative("quantity", input.Quantity); err != nil {
		return err
	}
	if err := notNegative("sell_price", input.SellPrice); err != nil {
		return err
	}
	if input.BuyPrice != nil {
		return notNegative("buy_price", *input.BuyPrice)
	}
	return nil
}

func orderSnapshot(order *models.ClientOrder, lines []models.OrderLine) map[string]any {
	return map[string]any{
		"order_number": order.OrderNumber,
		"client_id":    order.ClientID,
		"status":       order.Status,
		"total":        order.Total,
		"profit":       order.Profit,
		"lines":        len(lines),
	}
}

// newOrderNumber builds a short unique reference such as CO-1A2B3C4D.
func newOrderNumber(prefix string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:8])
}
