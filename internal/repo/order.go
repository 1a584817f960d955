package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/mswiatek/web_shop/internal/models"
	"gorm.io/gorm"
)

// CreateOrder validates the order, then persists it with its line items in
// one transaction. A validation failure leaves the database untouched and is
// returned as-is so the caller can surface every violation at once.
func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}
	if len(order.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for i := range order.Items {
		if order.Items[i].ProductID == 0 {
			return nil, fmt.Errorf("%w: product_id required", ErrValidation)
		}
		if order.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}

	txErr := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range order.Items {
			var prod models.Product
			if err := tx.First(&prod, order.Items[i].ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrNotFound, order.Items[i].ProductID)
				}
				return err
			}
		}
		return tx.Create(order).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return order, nil
}

// GetOrder loads an order with its line items and their products, so line
// totals can be derived from the live product price.
func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items.Product").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Items.Product").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderTotal derives the order total by summing line totals. Nothing is
// cached or stored: a later price edit changes what this returns.
func OrderTotal(order *models.Order) float64 {
	var total float64
	for i := range order.Items {
		total += order.Items[i].Total()
	}
	return total
}
