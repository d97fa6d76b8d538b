package ledger

// Totals holds the derived money amounts of an invoice.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// LineTotal is price times quantity.
func LineTotal(item Item) float64 {
	return item.Price * float64(item.Quantity)
}

// ComputeTotals sums the lines and applies taxRate as a percentage. Inputs
// are not validated; negative values flow through.
func ComputeTotals(items []Item, taxRate float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += LineTotal(item)
	}
	tax := subtotal * (taxRate / 100)
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}
