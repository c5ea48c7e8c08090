package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// NewHeartbeatJob checks that the service answers on its public surface
// and reports the customer count as a liveness signal.
func NewHeartbeatJob(client *APIClient, interval time.Duration, logger *zap.Logger) Job {
	log := logger.Named("heartbeat")
	return Job{
		Name:     "heartbeat",
		Interval: interval,
		Run: func(ctx context.Context) error {
			if err := client.Health(ctx); err != nil {
				return err
			}
			customers, err := client.ListCustomers(ctx)
			if err != nil {
				return err
			}
			log.Info("CRM is alive", zap.Int("customers", len(customers)))
			return nil
		},
	}
}

// NewLowStockJob triggers the restock of products below the stock threshold
func NewLowStockJob(client *APIClient, interval time.Duration, logger *zap.Logger) Job {
	log := logger.Named("low_stock_update")
	return Job{
		Name:     "low_stock_update",
		Interval: interval,
		Run: func(ctx context.Context) error {
			result, err := client.UpdateLowStock(ctx)
			if err != nil {
				return err
			}
			log.Info("Low-stock update finished",
				zap.String("message", result.Message),
				zap.Int("restocked", len(result.Products)),
			)
			return nil
		},
	}
}

// NewReportJob fetches and logs the weekly business report
func NewReportJob(client *APIClient, interval time.Duration, logger *zap.Logger) Job {
	log := logger.Named("crm_report")
	return Job{
		Name:     "crm_report",
		Interval: interval,
		Run: func(ctx context.Context) error {
			report, err := client.Report(ctx)
			if err != nil {
				return err
			}
			log.Info("Weekly report",
				zap.Int64("customers", report.Customers),
				zap.Int64("orders", report.Orders),
				zap.String("revenue", report.Revenue),
			)
			return nil
		},
	}
}
