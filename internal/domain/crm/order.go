package crm

import (
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order represents a customer order. It is owned by exactly one customer
// (deleting the customer deletes its orders) and is associated with one or
// more products through the order_products join table (deleting a product
// does not touch orders).
type Order struct {
	shared.BaseEntity
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer    *Customer       `gorm:"constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	Products    []Product       `gorm:"many2many:order_products" json:"products"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates an order for the given customer and resolved products.
// When totalAmount is nil the total is derived as the exact sum of the
// product prices; a supplied total is used verbatim without cross-checking.
// order_date is set once here and never mutated afterwards.
func NewOrder(customer *Customer, products []Product, totalAmount *decimal.Decimal) (*Order, error) {
	if customer == nil || customer.ID == uuid.Nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	if len(products) == 0 {
		return nil, shared.NewDomainError("NOT_FOUND", "No valid products found")
	}

	total := ComputeOrderTotal(products)
	if totalAmount != nil {
		total = totalAmount.Round(2)
	}

	return &Order{
		BaseEntity:  shared.NewBaseEntity(),
		CustomerID:  customer.ID,
		Customer:    customer,
		Products:    products,
		TotalAmount: total,
		OrderDate:   time.Now(),
	}, nil
}

// ComputeOrderTotal sums the product prices with exact decimal arithmetic.
func ComputeOrderTotal(products []Product) decimal.Decimal {
	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}
	return total.Round(2)
}
