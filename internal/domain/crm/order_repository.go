package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for order persistence.
// FindByID and FindAll return orders with customer and products loaded.
// Save persists the order row and its product associations atomically:
// either both commit or neither does.
type OrderRepository interface {
	shared.Repository[Order]

	// SumTotalAmount sums total_amount over all orders (report revenue)
	SumTotalAmount(ctx context.Context) (decimal.Decimal, error)
}
