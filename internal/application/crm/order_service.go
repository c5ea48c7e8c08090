package crm

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
)

// OrderService handles the order-creation command and order queries
type OrderService struct {
	orderRepo    crm.OrderRepository
	customerRepo crm.CustomerRepository
	productRepo  crm.ProductRepository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo crm.OrderRepository, customerRepo crm.CustomerRepository, productRepo crm.ProductRepository) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// Create creates an order for an existing customer over existing products.
//
// Product references that do not resolve are silently dropped and the order
// proceeds with the rest; only an empty resolved set fails. When no explicit
// total is supplied the total is the exact decimal sum of the resolved
// product prices; a supplied total is stored verbatim. The order row and
// its product associations are persisted in one transaction, so a failure
// leaves the orders table unchanged.
func (s *OrderService) Create(ctx context.Context, input OrderInput) (*CreateOrderResult, error) {
	customer, err := s.customerRepo.FindByID(ctx, input.CustomerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	products, err := s.productRepo.FindByIDs(ctx, input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No valid products found")
	}

	order, err := crm.NewOrder(customer, products, input.TotalAmount)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	return &CreateOrderResult{Order: order}, nil
}

// List returns all orders with customer and products loaded
func (s *OrderService) List(ctx context.Context) ([]crm.Order, error) {
	return s.orderRepo.FindAll(ctx)
}
