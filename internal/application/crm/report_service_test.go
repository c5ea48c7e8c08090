package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_Generate(t *testing.T) {
	ctx := context.Background()
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	service := NewReportService(customerRepo, orderRepo)

	customerRepo.On("Count", ctx).Return(int64(12), nil)
	orderRepo.On("Count", ctx).Return(int64(4), nil)
	orderRepo.On("SumTotalAmount", ctx).Return(decimal.RequireFromString("59.96"), nil)

	report, err := service.Generate(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(12), report.Customers)
	assert.Equal(t, int64(4), report.Orders)
	assert.True(t, report.Revenue.Equal(decimal.RequireFromString("59.96")))
	assert.False(t, report.GeneratedAt.IsZero())
}

func TestReportService_Generate_StoreError(t *testing.T) {
	ctx := context.Background()
	customerRepo := new(MockCustomerRepository)
	orderRepo := new(MockOrderRepository)
	service := NewReportService(customerRepo, orderRepo)

	customerRepo.On("Count", ctx).Return(int64(0), errors.New("connection refused"))

	report, err := service.Generate(ctx)

	assert.Error(t, err)
	assert.Nil(t, report)
	orderRepo.AssertNotCalled(t, "Count", ctx)
}
