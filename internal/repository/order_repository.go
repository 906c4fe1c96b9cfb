package repository

import (
	"context"

	"transport_manager/internal/models"

	"gorm.io/gorm"
)

type orderRepository struct {
	*gormRepository[models.ClientOrder]
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{newGormRepository[models.ClientOrder](db)}
}

func (r *orderRepository) Find(ctx context.Context, filter OrderFilter) ([]models.ClientOrder, error) {
	q := r.db.WithContext(ctx)
	if filter.ClientID != nil {
		q = q.Where("client_id = ?", *filter.ClientID)
	}
	if filter.From != nil {
		q = q.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("order_date <= ?", *filter.To)
	}
	var orders []models.ClientOrder
	err := q.Order("order_date, id").Find(&orders).Error
	return orders, err
}

type orderLineRepository struct {
	*gormRepository[models.OrderLine]
}

func NewOrderLineRepository(db *gorm.DB) OrderLineRepository {
	return &orderLineRepository{newGormRepository[models.OrderLine](db)}
}

func (r *orderLineRepository) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderLine, error) {
	return r.find(ctx, "order_id = ?", orderID)
}

type paymentRepository struct {
	*gormRepository[models.Payment]
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{newGormRepository[models.Payment](db)}
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&payment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}
