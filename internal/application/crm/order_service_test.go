package crm

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newServiceTestCustomer(t *testing.T) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer("Jane", "jane@x.com", "+12345678901")
	require.NoError(t, err)
	return customer
}

func newServiceTestProduct(t *testing.T, name, price string) crm.Product {
	t.Helper()
	product, err := crm.NewProduct(name, decimal.RequireFromString(price), 10)
	require.NoError(t, err)
	return *product
}

func TestOrderService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives total from resolved product prices", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, customerRepo, productRepo)

		customer := newServiceTestCustomer(t)
		p1 := newServiceTestProduct(t, "P1", "9.99")
		p2 := newServiceTestProduct(t, "P2", "5.00")
		ids := []uuid.UUID{p1.ID, p2.ID}

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByIDs", ctx, ids).Return([]crm.Product{p1, p2}, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*crm.Order")).Return(nil)

		result, err := service.Create(ctx, OrderInput{
			CustomerID: customer.ID,
			ProductIDs: ids,
		})

		require.NoError(t, err)
		assert.True(t, result.Order.TotalAmount.Equal(decimal.RequireFromString("14.99")),
			"expected 14.99, got %s", result.Order.TotalAmount)
		assert.Equal(t, "Jane", result.Order.Customer.Name)
		orderRepo.AssertExpectations(t)
	})

	t.Run("uses explicit total verbatim without cross-check", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, customerRepo, productRepo)

		customer := newServiceTestCustomer(t)
		p1 := newServiceTestProduct(t, "P1", "9.99")
		total := decimal.RequireFromString("42.00")

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByIDs", ctx, []uuid.UUID{p1.ID}).Return([]crm.Product{p1}, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*crm.Order")).Return(nil)

		result, err := service.Create(ctx, OrderInput{
			CustomerID:  customer.ID,
			ProductIDs:  []uuid.UUID{p1.ID},
			TotalAmount: &total,
		})

		require.NoError(t, err)
		assert.True(t, result.Order.TotalAmount.Equal(total))
	})

	t.Run("missing customer fails with NotFound and writes nothing", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, customerRepo, productRepo)

		missing := uuid.New()
		customerRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, OrderInput{CustomerID: missing})

		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "NOT_FOUND", derr.Code)
		assert.Equal(t, "Customer not found", derr.Message)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("silently drops unresolved product ids", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, customerRepo, productRepo)

		customer := newServiceTestCustomer(t)
		p1 := newServiceTestProduct(t, "P1", "9.99")
		ghost := uuid.New()
		ids := []uuid.UUID{p1.ID, ghost}

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByIDs", ctx, ids).Return([]crm.Product{p1}, nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*crm.Order")).Return(nil)

		result, err := service.Create(ctx, OrderInput{CustomerID: customer.ID, ProductIDs: ids})

		require.NoError(t, err)
		require.Len(t, result.Order.Products, 1)
		assert.True(t, result.Order.TotalAmount.Equal(decimal.RequireFromString("9.99")))
	})

	t.Run("fails when no product reference resolves", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		customerRepo := new(MockCustomerRepository)
		productRepo := new(MockProductRepository)
		service := NewOrderService(orderRepo, customerRepo, productRepo)

		customer := newServiceTestCustomer(t)
		ids := []uuid.UUID{uuid.New()}

		customerRepo.On("FindByID", ctx, customer.ID).Return(customer, nil)
		productRepo.On("FindByIDs", ctx, ids).Return([]crm.Product{}, nil)

		_, err := service.Create(ctx, OrderInput{CustomerID: customer.ID, ProductIDs: ids})

		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "No valid products found", derr.Message)
		orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
