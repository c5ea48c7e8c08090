package crm

import (
	"regexp"
	"strings"

	"github.com/crm/backend/internal/domain/shared"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	// Up to 15 digits, optional leading + and country code 1.
	phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)
)

// Customer represents a customer in the CRM context.
// It is the aggregate root for customer-related operations; orders are
// owned by their customer and are removed when the customer is deleted.
type Customer struct {
	shared.BaseEntity
	Name  string `gorm:"type:varchar(200);not null" json:"name"`
	Email string `gorm:"type:varchar(200);not null;uniqueIndex" json:"email"`
	Phone string `gorm:"type:varchar(20)" json:"phone,omitempty"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer after validating every field eagerly.
// On failure it returns a *shared.ValidationError carrying all violations.
func NewCustomer(name, email, phone string) (*Customer, error) {
	if verr := ValidateCustomerFields(name, email, phone); verr.HasViolations() {
		return nil, verr
	}

	return &Customer{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Phone:      strings.TrimSpace(phone),
	}, nil
}

// IsValidEmail reports whether the string is a well-formed email address
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhone reports whether the string is an acceptable phone number
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// ValidateCustomerFields runs all customer field validators and collects
// every violation instead of stopping at the first one.
func ValidateCustomerFields(name, email, phone string) *shared.ValidationError {
	verr := shared.NewValidationError()

	if strings.TrimSpace(name) == "" {
		verr.Add("name", "Name cannot be empty")
	} else if len(name) > 200 {
		verr.Add("name", "Name cannot exceed 200 characters")
	}

	email = strings.TrimSpace(email)
	if email == "" {
		verr.Add("email", "Email cannot be empty")
	} else if len(email) > 200 || !emailPattern.MatchString(email) {
		verr.Add("email", "Invalid email format")
	}

	if phone = strings.TrimSpace(phone); phone != "" && !phonePattern.MatchString(phone) {
		verr.Add("phone", "Phone number must be entered in the format '+999999999', up to 15 digits")
	}

	return verr
}
