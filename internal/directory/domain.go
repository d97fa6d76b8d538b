// Package directory keeps the customer list.
package directory

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

var (
	// ErrNotFound is returned when a customer id is unknown.
	ErrNotFound = fmt.Errorf("directory: customer %w", httpx.ErrNotFound)
	// ErrDuplicateID is returned when inserting a customer whose id already exists.
	ErrDuplicateID = fmt.Errorf("directory: customer id %w", httpx.ErrDuplicate)
	// ErrInvalidCustomer flags input rejected by the service.
	ErrInvalidCustomer = fmt.Errorf("directory: %w", httpx.ErrValidation)
)

// Customer is a directory entry. CreatedAt is a unix timestamp in milliseconds.
type Customer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

// CustomerInput carries the editable customer fields.
type CustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address"`
	Email   string `json:"email" validate:"omitempty,email"`
}

// NormalizePhone strips all whitespace from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, phone)
}

// Search returns customers whose name contains query (ignoring case) or whose
// whitespace-stripped phone contains the whitespace-stripped query.
func Search(customers []Customer, query string) []Customer {
	if query == "" {
		return append([]Customer(nil), customers...)
	}
	name := strings.ToLower(query)
	phone := NormalizePhone(query)
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if strings.Contains(NormalizePhone(c.Phone), phone) || strings.Contains(strings.ToLower(c.Name), name) {
			out = append(out, c)
		}
	}
	return out
}

// FindByPhone returns the first customer whose whitespace-stripped phone
// equals the whitespace-stripped input.
func FindByPhone(customers []Customer, phone string) (Customer, bool) {
	key := NormalizePhone(phone)
	for _, c := range customers {
		if NormalizePhone(c.Phone) == key {
			return c, true
		}
	}
	return Customer{}, false
}
