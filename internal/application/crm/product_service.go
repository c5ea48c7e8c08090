package crm

import (
	"context"
	"fmt"

	"github.com/crm/backend/internal/domain/crm"
)

// lowStockThreshold and restockQuantity drive the periodic low-stock
// updater: products under the threshold are topped up by the quantity.
const (
	lowStockThreshold = 10
	restockQuantity   = 10
)

// ProductService handles product command and query operations
type ProductService struct {
	productRepo crm.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo crm.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create validates and persists a single product, all-or-nothing.
// A nil stock defaults to 0.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*CreateProductResult, error) {
	stock := 0
	if input.Stock != nil {
		stock = *input.Stock
	}

	product, err := crm.NewProduct(input.Name, input.Price, stock)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	return &CreateProductResult{
		Product: product,
		Message: "Product created successfully",
	}, nil
}

// List returns all products in store-defined order
func (s *ProductService) List(ctx context.Context) ([]crm.Product, error) {
	return s.productRepo.FindAll(ctx)
}

// UpdateLowStock restocks every product whose stock is below the threshold.
// All updates are persisted in one batch so the stock invariant holds after
// the mutation regardless of concurrent readers.
func (s *ProductService) UpdateLowStock(ctx context.Context) (*LowStockUpdateResult, error) {
	low, err := s.productRepo.FindLowStock(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	if len(low) == 0 {
		return &LowStockUpdateResult{
			Products: []crm.Product{},
			Message:  "No low-stock products found",
			Success:  true,
		}, nil
	}

	updated := make([]*crm.Product, len(low))
	for i := range low {
		if err := low[i].Restock(restockQuantity); err != nil {
			return nil, err
		}
		updated[i] = &low[i]
	}

	if err := s.productRepo.SaveBatch(ctx, updated); err != nil {
		return nil, err
	}

	return &LowStockUpdateResult{
		Products: low,
		Message:  fmt.Sprintf("Restocked %d low-stock product(s)", len(low)),
		Success:  true,
	}, nil
}
