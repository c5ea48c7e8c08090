package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest is the payload for creating a single customer.
// Name and email are validated by the domain so that all violations are
// reported together; the phone format is checked at binding time.
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone" binding:"omitempty,phone"`
}

// BulkCreateCustomersRequest is the payload for creating several customers
// in one call
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers" binding:"required,min=1,dive"`
}

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

// CreateOrderRequest is the payload for creating an order
type CreateOrderRequest struct {
	CustomerID  uuid.UUID        `json:"customer_id" binding:"required"`
	ProductIDs  []uuid.UUID      `json:"product_ids"`
	TotalAmount *decimal.Decimal `json:"total_amount"`
}
