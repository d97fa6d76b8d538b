// Package ledger records invoices and keeps product stock in step with them.
package ledger

import (
	"fmt"

	"github.com/warrick-io/warrick/internal/business"
	"github.com/warrick-io/warrick/internal/platform/httpx"
)

var (
	// ErrNotFound is returned when an invoice id is unknown.
	ErrNotFound = fmt.Errorf("ledger: invoice %w", httpx.ErrNotFound)
	// ErrDuplicateID is returned when inserting an invoice whose id already exists.
	ErrDuplicateID = fmt.Errorf("ledger: invoice id %w", httpx.ErrDuplicate)
	// ErrInvalidInvoice flags invoice input rejected at entry.
	ErrInvalidInvoice = fmt.Errorf("ledger: %w", httpx.ErrValidation)
)

// Status is the invoice lifecycle state.
type Status string

// Invoice statuses.
const (
	StatusDraft Status = "Draft"
	StatusSent  Status = "Sent"
	StatusPaid  Status = "Paid"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}
	return false
}

// DefaultTerms is printed on new drafts.
const DefaultTerms = "Payment is due within 14 days. Thank you!"

// CustomerInfo is the customer snapshot embedded in an invoice.
type CustomerInfo struct {
	Name string `json:"name"`
	// Contact is usually a phone number. It is stored as "email" for
	// compatibility with existing data.
	Contact string `json:"email"`
	Address string `json:"address"`
}

// Item is an invoice line.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	// ProductID caches the catalog product the line matched when the
	// invoice was recorded.
	ProductID string `json:"productId,omitempty"`
}

// Invoice is a recorded sale. Business and Customer are copies taken when
// the invoice was written and do not follow later profile edits.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoiceNumber"`
	Date          string        `json:"date"`
	DueDate       string        `json:"dueDate"`
	Business      business.Info `json:"business"`
	Customer      CustomerInfo  `json:"customer"`
	Items         []Item        `json:"items"`
	Currency      string        `json:"currency"`
	TaxRate       float64       `json:"taxRate"`
	Discount      float64       `json:"discount"`
	Notes         string        `json:"notes"`
	Terms         string        `json:"terms"`
	Status        Status        `json:"status"`
	WarrantyDate  string        `json:"warrantyDate,omitempty"`
}

// Totals computes the invoice totals from its lines.
func (inv Invoice) Totals() Totals {
	return ComputeTotals(inv.Items, inv.TaxRate)
}

// CurrencySymbol returns the display symbol for a currency code.
func CurrencySymbol(code string) string {
	switch code {
	case "BDT":
		return "৳"
	case "USD":
		return "$"
	default:
		return code
	}
}
