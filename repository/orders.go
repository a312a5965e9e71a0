package repository

import (
	"context"

	"github.com/yashrajoria/shop-backend/models"
	"gorm.io/gorm"
)

// OrderRepository stores placed orders.
type OrderRepository interface {
	Create(ctx context.Context, order *models.OrderRecord) error
	FindByUser(ctx context.Context, userID string) ([]models.OrderRecord, error)
}

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) Create(ctx context.Context, order *models.OrderRecord) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByUser returns the user's orders, newest first.
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID string) ([]models.OrderRecord, error) {
	var orders []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("placed_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
