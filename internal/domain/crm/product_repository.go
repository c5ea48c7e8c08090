package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence.
// Delete is blocked for products referenced by orders through the
// association's RESTRICT constraint.
type ProductRepository interface {
	shared.Repository[Product]

	// FindByIDs finds the products whose IDs exist, silently skipping
	// identifiers with no matching row
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindLowStock returns products with stock below the threshold
	FindLowStock(ctx context.Context, threshold int) ([]Product, error)

	// SaveBatch persists multiple products in one transaction
	SaveBatch(ctx context.Context, products []*Product) error
}
