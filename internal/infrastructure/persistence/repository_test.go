package persistence

import (
	"context"
	"testing"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&crm.Customer{}, &crm.Product{}, &crm.Order{}))
	return db
}

func mustCustomer(t *testing.T, name, email string) *crm.Customer {
	t.Helper()
	customer, err := crm.NewCustomer(name, email, "")
	require.NoError(t, err)
	return customer
}

func mustProduct(t *testing.T, name, price string, stock int) *crm.Product {
	t.Helper()
	product, err := crm.NewProduct(name, decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	return product
}

func TestCustomerRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	jane := mustCustomer(t, "Jane", "jane@x.com")
	require.NoError(t, repo.Save(ctx, jane))

	found, err := repo.FindByID(ctx, jane.ID)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", found.Email)

	byEmail, err := repo.FindByEmail(ctx, "JANE@X.COM")
	require.NoError(t, err)
	assert.Equal(t, jane.ID, byEmail.ID)

	exists, err := repo.ExistsByEmail(ctx, "jane@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCustomerRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	require.NoError(t, repo.Save(ctx, mustCustomer(t, "Jane", "jane@x.com")))

	err := repo.Save(ctx, mustCustomer(t, "Impostor", "jane@x.com"))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}

func TestCustomerRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewGormCustomerRepository(newTestDB(t))

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = repo.Delete(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestProductRepository_FindByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProductRepository(newTestDB(t))

	widget := mustProduct(t, "Widget", "9.99", 5)
	require.NoError(t, repo.Save(ctx, widget))

	products, err := repo.FindByIDs(ctx, []uuid.UUID{widget.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, widget.ID, products[0].ID)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProductRepository_FindLowStock(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProductRepository(newTestDB(t))

	require.NoError(t, repo.Save(ctx, mustProduct(t, "Scarce", "1.00", 3)))
	require.NoError(t, repo.Save(ctx, mustProduct(t, "Boundary", "1.00", 10)))
	require.NoError(t, repo.Save(ctx, mustProduct(t, "Plenty", "1.00", 50)))

	low, err := repo.FindLowStock(ctx, 10)
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "Scarce", low[0].Name)
}

func TestProductRepository_SaveBatch(t *testing.T) {
	ctx := context.Background()
	repo := NewGormProductRepository(newTestDB(t))

	a := mustProduct(t, "A", "1.00", 3)
	b := mustProduct(t, "B", "2.00", 4)
	require.NoError(t, repo.SaveBatch(ctx, []*crm.Product{a, b}))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestOrderRepository_SaveAndPreload(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customerRepo := NewGormCustomerRepository(db)
	productRepo := NewGormProductRepository(db)
	orderRepo := NewGormOrderRepository(db)

	jane := mustCustomer(t, "Jane", "jane@x.com")
	require.NoError(t, customerRepo.Save(ctx, jane))

	p1 := mustProduct(t, "P1", "9.99", 5)
	p2 := mustProduct(t, "P2", "5.00", 5)
	require.NoError(t, productRepo.Save(ctx, p1))
	require.NoError(t, productRepo.Save(ctx, p2))

	order, err := crm.NewOrder(jane, []crm.Product{*p1, *p2}, nil)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, order))

	found, err := orderRepo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "Jane", found.Customer.Name)
	assert.Len(t, found.Products, 2)
	assert.True(t, found.TotalAmount.Equal(decimal.RequireFromString("14.99")))
}

func TestOrderRepository_SumTotalAmount(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customerRepo := NewGormCustomerRepository(db)
	productRepo := NewGormProductRepository(db)
	orderRepo := NewGormOrderRepository(db)

	sum, err := orderRepo.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.True(t, sum.IsZero())

	jane := mustCustomer(t, "Jane", "jane@x.com")
	require.NoError(t, customerRepo.Save(ctx, jane))
	p1 := mustProduct(t, "P1", "10.00", 5)
	require.NoError(t, productRepo.Save(ctx, p1))

	for n := 0; n < 2; n++ {
		order, err := crm.NewOrder(jane, []crm.Product{*p1}, nil)
		require.NoError(t, err)
		require.NoError(t, orderRepo.Save(ctx, order))
	}

	sum, err = orderRepo.SumTotalAmount(ctx)
	require.NoError(t, err)
	assert.True(t, sum.Equal(decimal.RequireFromString("20.00")), "got %s", sum)
}

func TestCustomerRepository_DeleteCascadesOrders(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	customerRepo := NewGormCustomerRepository(db)
	productRepo := NewGormProductRepository(db)
	orderRepo := NewGormOrderRepository(db)

	jane := mustCustomer(t, "Jane", "jane@x.com")
	require.NoError(t, customerRepo.Save(ctx, jane))
	p1 := mustProduct(t, "P1", "10.00", 5)
	require.NoError(t, productRepo.Save(ctx, p1))

	order, err := crm.NewOrder(jane, []crm.Product{*p1}, nil)
	require.NoError(t, err)
	require.NoError(t, orderRepo.Save(ctx, order))

	require.NoError(t, customerRepo.Delete(ctx, jane.ID))

	count, err := orderRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Products are untouched by order removal
	remaining, err := productRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), remaining)
}
