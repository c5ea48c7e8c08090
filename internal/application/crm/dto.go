package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerInput carries the fields for creating one customer
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// CreateCustomerResult is the result envelope of the createCustomer command
type CreateCustomerResult struct {
	Customer *crm.Customer `json:"customer,omitempty"`
	Message  string        `json:"message,omitempty"`
	Errors   []string      `json:"errors,omitempty"`
}

// BulkCreateCustomersResult is the result envelope of bulkCreateCustomers.
// Partial success is expected and normal: Customers holds the records that
// were persisted and Errors one message per skipped input, in input order.
type BulkCreateCustomersResult struct {
	Customers []crm.Customer `json:"customers"`
	Errors    []string       `json:"errors,omitempty"`
}

// ProductInput carries the fields for creating one product
type ProductInput struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock,omitempty"` // nil defaults to 0
}

// CreateProductResult is the result envelope of the createProduct command
type CreateProductResult struct {
	Product *crm.Product `json:"product,omitempty"`
	Message string       `json:"message,omitempty"`
	Errors  []string     `json:"errors,omitempty"`
}

// OrderInput carries the fields for creating one order
type OrderInput struct {
	CustomerID  uuid.UUID        `json:"customer_id"`
	ProductIDs  []uuid.UUID      `json:"product_ids"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
}

// CreateOrderResult is the result envelope of the createOrder command
type CreateOrderResult struct {
	Order  *crm.Order `json:"order,omitempty"`
	Errors []string   `json:"errors,omitempty"`
}

// LowStockUpdateResult is the result envelope of updateLowStockProducts
type LowStockUpdateResult struct {
	Products []crm.Product `json:"products"`
	Message  string        `json:"message"`
	Success  bool          `json:"success"`
}

// Report aggregates CRM activity totals for the weekly report job
type Report struct {
	Customers   int64           `json:"customers"`
	Orders      int64           `json:"orders"`
	Revenue     decimal.Decimal `json:"revenue"`
	GeneratedAt time.Time       `json:"generated_at"`
}
