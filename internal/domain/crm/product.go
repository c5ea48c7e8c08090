package crm

import (
	"strings"
	"time"

	"github.com/crm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// minPrice is the smallest admissible product price (two fractional digits).
var minPrice = decimal.RequireFromString("0.01")

// Product represents a sellable product in the CRM catalog.
// Orders reference products through a plain association: removing a product
// never cascades into orders.
type Product struct {
	shared.BaseEntity
	Name  string          `gorm:"type:varchar(200);not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product after validating every field eagerly.
func NewProduct(name string, price decimal.Decimal, stock int) (*Product, error) {
	if verr := ValidateProductFields(name, price, stock); verr.HasViolations() {
		return nil, verr
	}

	return &Product{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Price:      price.Round(2),
		Stock:      stock,
	}, nil
}

// ValidateProductFields runs all product field validators and collects
// every violation.
func ValidateProductFields(name string, price decimal.Decimal, stock int) *shared.ValidationError {
	verr := shared.NewValidationError()

	if strings.TrimSpace(name) == "" {
		verr.Add("name", "Name cannot be empty")
	} else if len(name) > 200 {
		verr.Add("name", "Name cannot exceed 200 characters")
	}

	if price.LessThan(minPrice) {
		verr.Add("price", "Price must be at least 0.01")
	}

	if stock < 0 {
		verr.Add("stock", "Stock cannot be negative")
	}

	return verr
}

// IsLowStock reports whether the stock is below the given threshold
func (p *Product) IsLowStock(threshold int) bool {
	return p.Stock < threshold
}

// Restock increases the stock level. The stock invariant (>= 0) is
// preserved because only positive increments are accepted.
func (p *Product) Restock(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}
