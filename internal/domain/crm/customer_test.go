package crm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("creates customer with valid fields", func(t *testing.T) {
		customer, err := NewCustomer("Jane", "jane@x.com", "+12345678901")

		require.NoError(t, err)
		assert.NotNil(t, customer)
		assert.Equal(t, "Jane", customer.Name)
		assert.Equal(t, "jane@x.com", customer.Email)
		assert.Equal(t, "+12345678901", customer.Phone)
		assert.False(t, customer.ID.String() == "00000000-0000-0000-0000-000000000000")
		assert.False(t, customer.CreatedAt.IsZero())
	})

	t.Run("lowercases and trims email", func(t *testing.T) {
		customer, err := NewCustomer("Jane", "  Jane@X.COM ", "")

		require.NoError(t, err)
		assert.Equal(t, "jane@x.com", customer.Email)
	})

	t.Run("phone is optional", func(t *testing.T) {
		customer, err := NewCustomer("Jane", "jane@x.com", "")

		require.NoError(t, err)
		assert.Empty(t, customer.Phone)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCustomer("", "jane@x.com", "")

		require.Error(t, err)
		verr := requireValidationError(t, err)
		assert.Equal(t, "name", verr.Violations[0].Field)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "a b@c.com"} {
			_, err := NewCustomer("Jane", email, "")

			require.Error(t, err, "email %q should be rejected", email)
			verr := requireValidationError(t, err)
			assert.Equal(t, "email", verr.Violations[0].Field)
		}
	})

	t.Run("collects all violations at once", func(t *testing.T) {
		_, err := NewCustomer("", "bad", "abc")

		require.Error(t, err)
		verr := requireValidationError(t, err)
		assert.Len(t, verr.Violations, 3)
	})
}

func TestCustomerPhoneValidation(t *testing.T) {
	valid := []string{
		"+12345678901",
		"12345678901",
		"+999999999",
		"123456789",
		"+1123456789012345", // country code plus 15 digits
	}
	invalid := []string{
		"abc",
		"12345678",          // too short
		"+2345678901234567", // too long
		"+1 234 567 8901",   // spaces
		"(123)456-7890",
	}

	for _, phone := range valid {
		t.Run("accepts "+phone, func(t *testing.T) {
			_, err := NewCustomer("Jane", "jane@x.com", phone)
			assert.NoError(t, err)
		})
	}

	for _, phone := range invalid {
		t.Run("rejects "+phone, func(t *testing.T) {
			_, err := NewCustomer("Jane", "jane@x.com", phone)
			assert.Error(t, err)
		})
	}
}
