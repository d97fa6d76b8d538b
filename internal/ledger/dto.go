package ledger

import "github.com/warrick-io/warrick/internal/business"

// InvoiceRequest is the body accepted when creating or editing an invoice.
type InvoiceRequest struct {
	ID           string        `json:"id"`
	Date         string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	DueDate      string        `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Business     business.Info `json:"business" validate:"-"`
	Customer     CustomerInfo  `json:"customer"`
	Items        []ItemRequest `json:"items" validate:"dive"`
	Currency     string        `json:"currency" validate:"omitempty,len=3"`
	TaxRate      float64       `json:"taxRate" validate:"gte=0"`
	Notes        string        `json:"notes"`
	Terms        string        `json:"terms"`
	Status       Status        `json:"status" validate:"omitempty,oneof=Draft Sent Paid"`
	WarrantyDate string        `json:"warrantyDate"`
}

// ItemRequest is one invoice line in a request body.
type ItemRequest struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Invoice converts the request into an invoice. Number and stock bindings
// are assigned by the service.
func (r InvoiceRequest) Invoice() Invoice {
	items := make([]Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, Item{ID: it.ID, Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return Invoice{
		ID:           r.ID,
		Date:         r.Date,
		DueDate:      r.DueDate,
		Business:     r.Business,
		Customer:     r.Customer,
		Items:        items,
		Currency:     r.Currency,
		TaxRate:      r.TaxRate,
		Notes:        r.Notes,
		Terms:        r.Terms,
		Status:       r.Status,
		WarrantyDate: r.WarrantyDate,
	}
}

// TotalsRequest previews totals for unsaved lines.
type TotalsRequest struct {
	Items   []ItemRequest `json:"items"`
	TaxRate float64       `json:"taxRate"`
}

// InvoiceView is an invoice with its derived totals.
type InvoiceView struct {
	Invoice
	Totals Totals `json:"totals"`
}

func viewOf(inv Invoice) InvoiceView {
	return InvoiceView{Invoice: inv, Totals: inv.Totals()}
}
