package main

import (
	"context"
	"errors"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds a development database with one customer, one product, and one
// order. Running it twice is safe: it stops when the customer exists.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stdout",
	})
	defer func() {
		_ = logger.Sync(log)
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	customer, err := crm.NewCustomer("John Doe", "johndoe@example.com", "+1234567890")
	if err != nil {
		log.Fatal("Invalid seed customer", zap.Error(err))
	}
	if err := customerRepo.Save(ctx, customer); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			log.Info("Seed data already present, nothing to do")
			return
		}
		log.Fatal("Failed to save customer", zap.Error(err))
	}

	product, err := crm.NewProduct("Sample Product", decimal.RequireFromString("19.99"), 100)
	if err != nil {
		log.Fatal("Invalid seed product", zap.Error(err))
	}
	if err := productRepo.Save(ctx, product); err != nil {
		log.Fatal("Failed to save product", zap.Error(err))
	}

	order, err := crm.NewOrder(customer, []crm.Product{*product}, nil)
	if err != nil {
		log.Fatal("Invalid seed order", zap.Error(err))
	}
	if err := orderRepo.Save(ctx, order); err != nil {
		log.Fatal("Failed to save order", zap.Error(err))
	}

	log.Info("Seed data created",
		zap.String("customer", customer.Email),
		zap.String("product", product.Name),
		zap.String("order_total", order.TotalAmount.StringFixed(2)),
	)
}
