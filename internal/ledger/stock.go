package ledger

import "github.com/warrick-io/warrick/internal/catalog"

// StockBook is the catalog surface stock reconciliation works against.
type StockBook interface {
	FindByName(name string) (catalog.Product, bool)
	FindByID(id string) (catalog.Product, bool)
	AdjustStock(id string, delta int) (catalog.Product, error)
}

// ApplyInvoiceCreated returns a copy of products with each line's quantity
// taken out of the product whose name matches case-insensitively. Lines
// without a match are skipped and stock may go negative.
func ApplyInvoiceCreated(items []Item, products []catalog.Product) []catalog.Product {
	inv := catalog.NewInventory(products)
	_, _ = moveStock(inv, items, -1)
	return inv.Products()
}

// ApplyInvoiceDeleted is the inverse of ApplyInvoiceCreated.
func ApplyInvoiceDeleted(items []Item, products []catalog.Product) []catalog.Product {
	inv := catalog.NewInventory(products)
	_, _ = moveStock(inv, items, 1)
	return inv.Products()
}

// moveStock adjusts stock by sign*quantity for every line that resolves to
// a product and returns the number of units moved.
func moveStock(book StockBook, items []Item, sign int) (int, error) {
	moved := 0
	for _, item := range items {
		product, ok := resolveProduct(book, item)
		if !ok {
			continue
		}
		if _, err := book.AdjustStock(product.ID, sign*item.Quantity); err != nil {
			return moved, err
		}
		moved += item.Quantity
	}
	return moved, nil
}

// resolveProduct prefers the cached product id and falls back to the name.
func resolveProduct(book StockBook, item Item) (catalog.Product, bool) {
	if item.ProductID != "" {
		if p, ok := book.FindByID(item.ProductID); ok {
			return p, true
		}
	}
	return book.FindByName(item.Name)
}

// bindProducts returns items with ProductID set to the product each line
// matches by name, or cleared when nothing matches.
func bindProducts(book StockBook, items []Item) []Item {
	out := make([]Item, len(items))
	for i, item := range items {
		item.ProductID = ""
		if p, ok := book.FindByName(item.Name); ok {
			item.ProductID = p.ID
		}
		out[i] = item
	}
	return out
}

// rebindProducts binds edited lines like bindProducts, except that a line
// carried over from previous keeps its cached product id while that product
// still exists. Lines pair up by id, or by position when the id is blank,
// and only when the line name is unchanged.
func rebindProducts(book StockBook, items, previous []Item) []Item {
	out := bindProducts(book, items)
	for i, item := range out {
		prev, ok := previousLine(previous, item, i)
		if !ok || prev.ProductID == "" || !catalog.SameName(prev.Name, item.Name) {
			continue
		}
		if _, found := book.FindByID(prev.ProductID); found {
			out[i].ProductID = prev.ProductID
		}
	}
	return out
}

func previousLine(previous []Item, item Item, pos int) (Item, bool) {
	if item.ID != "" {
		for _, p := range previous {
			if p.ID == item.ID {
				return p, true
			}
		}
		return Item{}, false
	}
	if pos < len(previous) && previous[pos].ID == "" {
		return previous[pos], true
	}
	return Item{}, false
}
