package services

import (
	"context"
	"fmt"
	"time"

	"transport_manager/internal/models"
	"transport_manager/internal/repository"

	"github.com/shopspring/decimal"
)

type StockService interface {
	CreateLot(ctx context.Context, input CreateLotInput) (*models.StockLot, error)
	ListLots(ctx context.Context, productID *uint) ([]models.StockAvailability, error)
	Availability(ctx context.Context, lotID uint) (models.StockAvailability, error)
	IsAvailable(ctx context.Context, lotID uint, qty decimal.Decimal) (bool, error)
	// SnapshotAll appends a stock snapshot for every lot.
	SnapshotAll(ctx context.Context) (int, error)
}

type CreateLotInput struct {
	ProductID     uint            `json:"product_id" binding:"required"`
	Reference     string          `json:"reference"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ReceivedAt    *time.Time      `json:"received_at"`
}

type stockService struct {
	store *repository.Store
	now   Clock
}

func NewStockService(store *repository.Store, now Clock) StockService {
	return &stockService{store: store, now: systemClock(now)}
}

func (s *stockService) CreateLot(ctx context.Context, input CreateLotInput) (*models.StockLot, error) {
	if err := notNegative("total_quantity", input.TotalQuantity); err != nil {
		return nil, err
	}
	if err := notNegative("unit_cost", input.UnitCost); err != nil {
		return nil, err
	}

	lot := &models.StockLot{
		ProductID:     input.ProductID,
		Reference:     input.Reference,
		TotalQuantity: input.TotalQuantity,
		SoldQuantity:  decimal.Zero,
		UnitCost:      input.UnitCost,
		ReceivedAt:    orNow(input.ReceivedAt, s.now),
	}
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		ok, err := tx.Products.Exists(ctx, input.ProductID)
		if err := mustExist(ok, err, "product", input.ProductID); err != nil {
			return err
		}
		if err := tx.StockLots.Create(ctx, lot); err != nil {
			return fmt.Errorf("create stock lot: %w", err)
		}
		return snapshot(ctx, tx, models.ReportStock, lot.ID, "received", lot.TotalQuantity, lot.Availability(), lot.ReceivedAt)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}

func (s *stockService) ListLots(ctx context.Context, productID *uint) ([]models.StockAvailability, error) {
	var (
		lots []models.StockLot
		err  error
	)
	if productID != nil {
		lots, err = s.store.StockLots.GetByProductID(ctx, *productID)
	} else {
		lots, err = s.store.StockLots.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]models.StockAvailability, len(lots))
	for i := range lots {
		out[i] = lots[i].Availability()
	}
	return out, nil
}

func (s *stockService) Availability(ctx context.Context, lotID uint) (models.StockAvailability, error) {
	lot, err := s.store.StockLots.GetByID(ctx, lotID)
	if err != nil {
		return models.StockAvailability{}, err
	}
	return lot.Availability(), nil
}

func (s *stockService) IsAvailable(ctx context.Context, lotID uint, qty decimal.Decimal) (bool, error) {
	lot, err := s.store.StockLots.GetByID(ctx, lotID)
	if err != nil {
		return false, err
	}
	return lot.CanFulfil(qty), nil
}

func (s *stockService) SnapshotAll(ctx context.Context) (int, error) {
	var n int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		lots, err := tx.StockLots.GetAll(ctx)
		if err != nil {
			return err
		}
		at := s.now()
		for i := range lots {
			if err := snapshot(ctx, tx, models.ReportStock, lots[i].ID, "daily", lots[i].Available(), lots[i].Availability(), at); err != nil {
				return err
			}
		}
		n = len(lots)
		return nil
	})
	return n, err
}
