package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ids(invoices []Invoice) []string {
	out := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, inv.ID)
	}
	return out
}

func TestFilterInvoicesByWindow(t *testing.T) {
	now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
	invoices := []Invoice{
		{ID: "today", Date: "2024-03-20"},
		{ID: "six-days", Date: "2024-03-14"},
		{ID: "seven-and-half-days", Date: "2024-03-13"},
		{ID: "two-months", Date: "2024-01-20"},
		{ID: "future", Date: "2024-04-01"},
		{ID: "garbage", Date: "not a date"},
	}

	require.Equal(t, []string{"today", "six-days", "future"}, ids(FilterInvoices(invoices, WindowWeek, "", now)))
	require.Equal(t, []string{"today", "future"}, ids(FilterInvoices(invoices, WindowDay, "", now)))
	require.Equal(t, []string{"today", "six-days", "seven-and-half-days", "two-months", "future"}, ids(FilterInvoices(invoices, WindowHalfYear, "", now)))
	require.Len(t, FilterInvoices(invoices, WindowAll, "", now), len(invoices))

	// Stable for a fixed now.
	require.Equal(t, FilterInvoices(invoices, WindowWeek, "", now), FilterInvoices(invoices, WindowWeek, "", now))
}

func TestFilterWindowBoundaryIsInclusive(t *testing.T) {
	date := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	invoices := []Invoice{{ID: "edge", Date: "2024-03-13"}}

	require.Len(t, FilterInvoices(invoices, WindowWeek, "", date.Add(7*24*time.Hour)), 1)
	require.Empty(t, FilterInvoices(invoices, WindowWeek, "", date.Add(7*24*time.Hour+time.Second)))
}

func TestFilterInvoicesByQuery(t *testing.T) {
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	invoices := []Invoice{
		{ID: "a", InvoiceNumber: "#0001", Date: "2024-03-19", Customer: CustomerInfo{Name: "Rahim Uddin", Contact: "01711111111"}},
		{ID: "b", InvoiceNumber: "#0002", Date: "2024-01-02", Customer: CustomerInfo{Name: "Karim", Contact: "karim@example.com"}},
	}

	require.Equal(t, []string{"a"}, ids(FilterInvoices(invoices, WindowAll, "  RAHIM ", now)))
	require.Equal(t, []string{"b"}, ids(FilterInvoices(invoices, WindowAll, "EXAMPLE", now)))
	require.Equal(t, []string{"b"}, ids(FilterInvoices(invoices, WindowAll, "#0002", now)))
	require.Equal(t, []string{"a"}, ids(FilterInvoices(invoices, WindowAll, "2024-03", now)))
	require.Equal(t, []string{"a", "b"}, ids(FilterInvoices(invoices, WindowAll, "   ", now)))

	// Window first, then query.
	require.Empty(t, ids(FilterInvoices(invoices, WindowWeek, "karim", now)))
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("")
	require.NoError(t, err)
	require.Equal(t, WindowAll, w)

	w, err = ParseWindow("6M")
	require.NoError(t, err)
	require.Equal(t, WindowHalfYear, w)

	_, err = ParseWindow("2w")
	require.ErrorIs(t, err, ErrInvalidInvoice)
}
