package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appcrm "github.com/crm/backend/internal/application/crm"
	"github.com/crm/backend/internal/infrastructure/config"
	"github.com/crm/backend/internal/infrastructure/logger"
	"github.com/crm/backend/internal/infrastructure/persistence"
	"github.com/crm/backend/internal/infrastructure/scheduler"
	"github.com/crm/backend/internal/interfaces/http/handler"
	"github.com/crm/backend/internal/interfaces/http/middleware"
	"github.com/crm/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting CRM backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Application services
	customerService := appcrm.NewCustomerService(customerRepo)
	productService := appcrm.NewProductService(productRepo)
	orderService := appcrm.NewOrderService(orderRepo, customerRepo, productRepo)
	reportService := appcrm.NewReportService(customerRepo, orderRepo)

	// HTTP surface
	if err := middleware.RegisterValidators(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	r := router.New(cfg.App.Env, log)
	r.GET("/health", handler.NewSystemHandler(db).Health)
	r.Register(handler.NewCustomerHandler(customerService))
	r.Register(handler.NewProductHandler(productService))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewReportHandler(reportService))
	engine := r.Setup()

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Scheduled jobs call back into the API like any other client
	var jobRunner *scheduler.Scheduler
	var ledger scheduler.RunLedger
	if cfg.Scheduler.Enabled {
		ledger, err = scheduler.NewRedisRunLedger(cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, falling back to in-process run ledger; "+
				"jobs may fire on every instance", zap.Error(err))
			ledger = scheduler.NewLocalRunLedger()
		}

		client := scheduler.NewAPIClient(
			cfg.Scheduler.APIBaseURL,
			cfg.Scheduler.RetryAttempts,
			cfg.Scheduler.RetryDelay,
			log,
		)

		jobRunner = scheduler.NewScheduler(ledger, cfg.Scheduler.JobTimeout, log)
		if cfg.Scheduler.HeartbeatEnabled {
			jobRunner.Register(scheduler.NewHeartbeatJob(client, cfg.Scheduler.HeartbeatInterval, log))
		}
		if cfg.Scheduler.LowStockEnabled {
			jobRunner.Register(scheduler.NewLowStockJob(client, cfg.Scheduler.LowStockInterval, log))
		}
		if cfg.Scheduler.ReportEnabled {
			jobRunner.Register(scheduler.NewReportJob(client, cfg.Scheduler.ReportInterval, log))
		}
		jobRunner.Start(context.Background())
		log.Info("Scheduler started",
			zap.Duration("heartbeat_interval", cfg.Scheduler.HeartbeatInterval),
			zap.Duration("low_stock_interval", cfg.Scheduler.LowStockInterval),
			zap.Duration("report_interval", cfg.Scheduler.ReportInterval),
		)
	}

	// Block until shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if jobRunner != nil {
		if err := jobRunner.Stop(ctx); err != nil {
			log.Error("Error stopping scheduler", zap.Error(err))
		}
		if err := ledger.Close(); err != nil {
			log.Error("Error closing run ledger", zap.Error(err))
		}
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP server shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
