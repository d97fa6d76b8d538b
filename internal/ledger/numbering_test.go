package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func numbered(numbers ...string) []Invoice {
	out := make([]Invoice, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, Invoice{InvoiceNumber: n})
	}
	return out
}

func TestNextInvoiceNumber(t *testing.T) {
	cases := []struct {
		name     string
		invoices []Invoice
		want     string
	}{
		{"empty", nil, "#0001"},
		{"max of unordered", numbered("#0007", "#0003"), "#0008"},
		{"pads up only", numbered("#10234"), "#10235"},
		{"non numeric counts as zero", numbered("DRAFT", ""), "#0001"},
		{"first digit run wins", numbered("INV-12-2024"), "#0013"},
		{"duplicates are fine", numbered("#0005", "#0005"), "#0006"},
		{"wider than int64", numbered("#99999999999999999999999"), "#100000000000000000000000"},
		{"int64 ceiling", numbered("#9223372036854775807"), "#9223372036854775808"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, NextInvoiceNumber(tc.invoices))
		})
	}
}

func TestNextInvoiceNumberPastInt64StaysUnique(t *testing.T) {
	invoices := numbered("#9223372036854775806")
	seen := map[string]bool{"#9223372036854775806": true}
	for range 3 {
		next := NextInvoiceNumber(invoices)
		require.False(t, seen[next], "repeated %s", next)
		require.NotContains(t, next, "-")
		seen[next] = true
		invoices = append([]Invoice{{InvoiceNumber: next}}, invoices...)
	}
	require.Equal(t, "#9223372036854775810", NextInvoiceNumber(invoices))
}
