// Package catalog manages the product list and its stock levels.
package catalog

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

var (
	// ErrNotFound is returned when a product id is unknown.
	ErrNotFound = fmt.Errorf("catalog: product %w", httpx.ErrNotFound)
	// ErrDuplicateID is returned when inserting a product whose id already exists.
	ErrDuplicateID = fmt.Errorf("catalog: product id %w", httpx.ErrDuplicate)
	// ErrInvalidProduct flags input rejected by the service.
	ErrInvalidProduct = fmt.Errorf("catalog: %w", httpx.ErrValidation)
)

// Product is a catalog entry. CreatedAt is a unix timestamp in milliseconds.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
	CreatedAt   int64   `json:"createdAt"`
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name        string  `json:"name" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	}
	if in.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	return nil
}

// NameKey folds a product name for case-insensitive comparison. Names are
// compared exactly otherwise; no trimming is applied.
func NameKey(name string) string {
	return cases.Fold().String(name)
}

// SameName reports whether two product names match case-insensitively.
func SameName(a, b string) bool {
	return NameKey(a) == NameKey(b)
}

// Search returns products whose name or description contains query,
// ignoring case. An empty query returns every product.
func Search(products []Product, query string) []Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]Product(nil), products...)
	}
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}
