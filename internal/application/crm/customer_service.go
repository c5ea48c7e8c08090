package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/crm/backend/internal/domain/crm"
	"github.com/crm/backend/internal/domain/shared"
)

// CustomerService handles customer command and query operations
type CustomerService struct {
	customerRepo crm.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo crm.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create validates and persists a single customer. The operation is atomic:
// either the fully validated record is persisted or nothing is. A duplicate
// email is reported as a validation failure even when it is only detected by
// the store's unique index.
func (s *CustomerService) Create(ctx context.Context, input CustomerInput) (*CreateCustomerResult, error) {
	customer, err := crm.NewCustomer(input.Name, input.Email, input.Phone)
	if err != nil {
		return nil, err
	}

	exists, err := s.customerRepo.ExistsByEmail(ctx, customer.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, duplicateEmailError(customer.Email)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		// Concurrent creation with the same email loses the race at the
		// unique index; surface it the same way as the pre-check.
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, duplicateEmailError(customer.Email)
		}
		return nil, err
	}

	return &CreateCustomerResult{
		Customer: customer,
		Message:  "Customer created successfully",
	}, nil
}

// BulkCreate processes each input independently: invalid or duplicate
// records are skipped and reported in the errors list, valid ones are
// persisted. One bad record never blocks the others, so there is no
// batch-wide transaction.
func (s *CustomerService) BulkCreate(ctx context.Context, inputs []CustomerInput) (*BulkCreateCustomersResult, error) {
	result := &BulkCreateCustomersResult{
		Customers: make([]crm.Customer, 0, len(inputs)),
	}

	for _, input := range inputs {
		customer, err := crm.NewCustomer(input.Name, input.Email, input.Phone)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Validation error for %s: %s", input.Email, err.Error()))
			continue
		}

		exists, err := s.customerRepo.ExistsByEmail(ctx, customer.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Customer with email %s already exists.", customer.Email))
			continue
		}

		if err := s.customerRepo.Save(ctx, customer); err != nil {
			if errors.Is(err, shared.ErrAlreadyExists) {
				result.Errors = append(result.Errors,
					fmt.Sprintf("Customer with email %s already exists.", customer.Email))
				continue
			}
			return nil, err
		}

		result.Customers = append(result.Customers, *customer)
	}

	return result, nil
}

// List returns all customers in store-defined order
func (s *CustomerService) List(ctx context.Context) ([]crm.Customer, error) {
	return s.customerRepo.FindAll(ctx)
}

func duplicateEmailError(email string) *shared.ValidationError {
	return shared.NewValidationError().
		Add("email", fmt.Sprintf("Customer with email %s already exists", email))
}
