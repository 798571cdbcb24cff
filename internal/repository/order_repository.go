package repository

import (
	"errors"

	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create inserts a new order. The unique index on provider_order_id makes
	// this the idempotency barrier for duplicate webhook deliveries.
	Create(order *model.Order) error
	// FindByProviderOrderID returns (nil, nil) when no order has been recorded
	// for the receipt yet.
	FindByProviderOrderID(providerOrderID string) (*model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) FindByProviderOrderID(providerOrderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Where("provider_order_id = ?", providerOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
