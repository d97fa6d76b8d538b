package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	got := ComputeTotals([]Item{{Price: 100, Quantity: 2}}, 10)
	require.Equal(t, Totals{Subtotal: 200, Tax: 20, Total: 220}, got)

	require.Equal(t, Totals{}, ComputeTotals(nil, 15))

	negative := ComputeTotals([]Item{{Price: -5, Quantity: 2}, {Price: 3, Quantity: 0}}, 0)
	require.Equal(t, -10.0, negative.Total)
}

func TestComputeTotalsScalesWithPrice(t *testing.T) {
	items := []Item{{Price: 12.5, Quantity: 3}, {Price: 7, Quantity: 1}, {Price: 0.4, Quantity: 10}}
	base := ComputeTotals(items, 7.5)

	for _, k := range []float64{0, 0.5, 2, 3, 10} {
		scaled := make([]Item, len(items))
		for i, it := range items {
			it.Price *= k
			scaled[i] = it
		}
		got := ComputeTotals(scaled, 7.5)
		require.InDelta(t, base.Subtotal*k, got.Subtotal, 1e-9)
		require.InDelta(t, base.Tax*k, got.Tax, 1e-9)
		require.InDelta(t, base.Total*k, got.Total, 1e-9)
	}
}
