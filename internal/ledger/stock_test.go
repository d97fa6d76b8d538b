package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warrick-io/warrick/internal/catalog"
)

func TestApplyInvoiceCreatedAndDeleted(t *testing.T) {
	products := []catalog.Product{{ID: "w", Name: "Widget", Stock: 10}}
	items := []Item{{Name: "Widget", Quantity: 3}}

	afterCreate := ApplyInvoiceCreated(items, products)
	require.Equal(t, 7, afterCreate[0].Stock)
	require.Equal(t, 10, products[0].Stock, "input must not be mutated")

	afterDelete := ApplyInvoiceDeleted(items, afterCreate)
	require.Equal(t, 10, afterDelete[0].Stock)
}

func TestApplyInvoiceMatchesNameCaseInsensitively(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Name: "Ballpoint PEN", Stock: 5},
		{ID: "2", Name: "Notebook", Stock: 1},
	}
	items := []Item{
		{Name: "ballpoint pen", Quantity: 2},
		{Name: "notebook", Quantity: 4},
		{Name: "Stapler", Quantity: 9},
		{Name: "Notebook ", Quantity: 1},
	}

	got := ApplyInvoiceCreated(items, products)
	require.Equal(t, 3, got[0].Stock)
	require.Equal(t, -3, got[1].Stock, "stock may go negative")
	require.Len(t, got, 2)
}

func TestApplyRoundTripIsIdentity(t *testing.T) {
	products := []catalog.Product{
		{ID: "1", Name: "Pen", Stock: 100},
		{ID: "2", Name: "Ink", Stock: 0},
		{ID: "3", Name: "Paper", Stock: -2},
		{ID: "4", Name: "Unused", Stock: 7},
	}
	items := []Item{
		{Name: "pen", Quantity: 4},
		{Name: "INK", Quantity: 12},
		{Name: "Paper", Quantity: 1},
	}

	require.Equal(t, products, ApplyInvoiceDeleted(items, ApplyInvoiceCreated(items, products)))
}

func TestCachedProductIDSurvivesRename(t *testing.T) {
	inv := catalog.NewInventory([]catalog.Product{{ID: "1", Name: "Pen", Stock: 10}})
	items := bindProducts(inv, []Item{{Name: "Pen", Quantity: 2}, {Name: "Ghost", Quantity: 1, ProductID: "stale"}})
	require.Equal(t, "1", items[0].ProductID)
	require.Empty(t, items[1].ProductID)

	renamed := catalog.NewInventory([]catalog.Product{{ID: "1", Name: "Gel Pen", Stock: 8}})
	moved, err := moveStock(renamed, items, 1)
	require.NoError(t, err)
	require.Equal(t, 2, moved)
	p, _ := renamed.FindByID("1")
	require.Equal(t, 10, p.Stock)
}
