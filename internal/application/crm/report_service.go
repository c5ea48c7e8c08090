package crm

import (
	"context"
	"time"

	"github.com/crm/backend/internal/domain/crm"
)

// ReportService aggregates CRM activity totals. The weekly report job calls
// this through the HTTP API like any other client.
type ReportService struct {
	customerRepo crm.CustomerRepository
	orderRepo    crm.OrderRepository
}

// NewReportService creates a new ReportService
func NewReportService(customerRepo crm.CustomerRepository, orderRepo crm.OrderRepository) *ReportService {
	return &ReportService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// Generate counts customers and orders and sums order revenue
func (s *ReportService) Generate(ctx context.Context) (*Report, error) {
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	revenue, err := s.orderRepo.SumTotalAmount(ctx)
	if err != nil {
		return nil, err
	}

	return &Report{
		Customers:   customers,
		Orders:      orders,
		Revenue:     revenue,
		GeneratedAt: time.Now(),
	}, nil
}
