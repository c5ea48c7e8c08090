package crm

import (
	"context"

	"github.com/crm/backend/internal/domain/shared"
)

// CustomerRepository defines the interface for customer persistence.
// Save rejects a duplicate email through the store's unique index, not
// only through the validation layer, and Delete removes the customer's
// orders through the ownership cascade.
type CustomerRepository interface {
	shared.Repository[Customer]

	// FindByEmail finds a customer by email (emails are stored lowercased)
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// ExistsByEmail checks if a customer with the given email exists
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
