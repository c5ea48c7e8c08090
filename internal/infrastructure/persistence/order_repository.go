package persistence

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements crm.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID with customer and products preloaded
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Order, error) {
	var order crm.Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll returns all orders with customer and products preloaded, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]crm.Order, error) {
	var orders []crm.Order
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Save persists the order row and its product associations atomically.
// Either both land or neither does.
func (r *GormOrderRepository) Save(ctx context.Context, order *crm.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(order).Error; err != nil {
			return err
		}
		return tx.Model(order).Association("Products").Replace(order.Products)
	})
}

// Delete deletes an order and its association rows
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := crm.Order{BaseEntity: shared.BaseEntity{ID: id}}
		if err := tx.Model(&order).Association("Products").Clear(); err != nil {
			return err
		}
		result := tx.Delete(&crm.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts all orders
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&crm.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumTotalAmount returns the sum of all order totals, zero when there are none
func (r *GormOrderRepository) SumTotalAmount(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).
		Model(&crm.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ crm.OrderRepository = (*GormOrderRepository)(nil)
