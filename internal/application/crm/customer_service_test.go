package crm

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates customer and returns confirmation message", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, "jane@x.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(nil)

		result, err := service.Create(ctx, CustomerInput{
			Name:  "Jane",
			Email: "jane@x.com",
			Phone: "+12345678901",
		})

		require.NoError(t, err)
		assert.Equal(t, "Customer created successfully", result.Message)
		assert.Equal(t, "jane@x.com", result.Customer.Email)
		assert.Empty(t, result.Errors)
		repo.AssertExpectations(t)
	})

	t.Run("rejects invalid input without touching the store", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		_, err := service.Create(ctx, CustomerInput{Name: "Jane", Email: "bad"})

		require.Error(t, err)
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate email detected by pre-check", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, "jane@x.com").Return(true, nil)

		_, err := service.Create(ctx, CustomerInput{Name: "Jane", Email: "jane@x.com"})

		require.Error(t, err)
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Violations[0].Field)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("maps unique-index race to validation failure", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, "jane@x.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(shared.ErrAlreadyExists)

		_, err := service.Create(ctx, CustomerInput{Name: "Jane", Email: "jane@x.com"})

		require.Error(t, err)
		var verr *shared.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestCustomerService_BulkCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial success with errors in input order", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
		repo.On("ExistsByEmail", ctx, "dup@x.com").Return(true, nil)
		repo.On("ExistsByEmail", ctx, "b@x.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(nil)

		result, err := service.BulkCreate(ctx, []CustomerInput{
			{Name: "A", Email: "a@x.com"},
			{Name: "", Email: "invalid"},
			{Name: "Dup", Email: "dup@x.com"},
			{Name: "B", Email: "b@x.com"},
		})

		require.NoError(t, err)
		assert.Len(t, result.Customers, 2)
		require.Len(t, result.Errors, 2)
		assert.Contains(t, result.Errors[0], "Validation error for invalid")
		assert.Contains(t, result.Errors[1], "dup@x.com already exists")
		repo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("all valid yields empty error list", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, mock.Anything).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(nil)

		result, err := service.BulkCreate(ctx, []CustomerInput{
			{Name: "A", Email: "a@x.com"},
			{Name: "B", Email: "b@x.com"},
		})

		require.NoError(t, err)
		assert.Len(t, result.Customers, 2)
		assert.Empty(t, result.Errors)
	})

	t.Run("duplicate lost race is recorded per record", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		service := NewCustomerService(repo)

		repo.On("ExistsByEmail", ctx, "a@x.com").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*crm.Customer")).Return(shared.ErrAlreadyExists)

		result, err := service.BulkCreate(ctx, []CustomerInput{{Name: "A", Email: "a@x.com"}})

		require.NoError(t, err)
		assert.Empty(t, result.Customers)
		require.Len(t, result.Errors, 1)
		assert.Contains(t, result.Errors[0], "already exists")
	})
}

func TestCustomerService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCustomerRepository)
	service := NewCustomerService(repo)

	jane, err := crm.NewCustomer("Jane", "jane@x.com", "")
	require.NoError(t, err)
	repo.On("FindAll", ctx).Return([]crm.Customer{*jane}, nil)

	customers, err := service.List(ctx)

	require.NoError(t, err)
	assert.Len(t, customers, 1)
	assert.Equal(t, "jane@x.com", customers[0].Email)
}
