package repository

import (
	"context"

	"transport_manager/internal/models"

	"gorm.io/gorm"
)

type stockLotRepository struct {
	*gormRepository[models.StockLot]
}

func NewStockLotRepository(db *gorm.DB) StockLotRepository {
	return &stockLotRepository{newGormRepository[models.StockLot](db)}
}

func (r *stockLotRepository) GetByProductID(ctx context.Context, productID uint) ([]models.StockLot, error) {
	return r.find(ctx, "product_id = ?", productID)
}

type supplierOrderRepository struct {
	*gormRepository[models.SupplierOrder]
}

func NewSupplierOrderRepository(db *gorm.DB) SupplierOrderRepository {
	return &supplierOrderRepository{newGormRepository[models.SupplierOrder](db)}
}

func (r *supplierOrderRepository) GetBySupplierID(ctx context.Context, supplierID uint) ([]models.SupplierOrder, error) {
	return r.find(ctx, "supplier_id = ?", supplierID)
}

type supplierOrderLineRepository struct {
	*gormRepository[models.SupplierOrderLine]
}

func NewSupplierOrderLineRepository(db *gorm.DB) SupplierOrderLineRepository {
	return &supplierOrderLineRepository{newGormRepository[models.SupplierOrderLine](db)}
}

func (r *supplierOrderLineRepository) GetByOrderID(ctx context.Context, supplierOrderID uint) ([]models.SupplierOrderLine, error) {
	return r.find(ctx, "supplier_order_id = ?", supplierOrderID)
}
