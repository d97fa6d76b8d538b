package catalog

import "fmt"

// Inventory is a working copy of the product list that stock movements are
// applied to before the list is written back.
type Inventory struct {
	products []Product
	byID     map[string]int
}

// NewInventory copies products into a new working set.
func NewInventory(products []Product) *Inventory {
	inv := &Inventory{
		products: append([]Product(nil), products...),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range inv.products {
		if _, seen := inv.byID[p.ID]; !seen {
			inv.byID[p.ID] = i
		}
	}
	return inv
}

// FindByName returns the first product whose name matches case-insensitively.
func (inv *Inventory) FindByName(name string) (Product, bool) {
	key := NameKey(name)
	for _, p := range inv.products {
		if NameKey(p.Name) == key {
			return p, true
		}
	}
	return Product{}, false
}

// FindByID returns the product with the given id.
func (inv *Inventory) FindByID(id string) (Product, bool) {
	i, ok := inv.byID[id]
	if !ok {
		return Product{}, false
	}
	return inv.products[i], true
}

// AdjustStock adds delta to a product's stock. Stock may go negative.
func (inv *Inventory) AdjustStock(id string, delta int) (Product, error) {
	i, ok := inv.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	inv.products[i].Stock += delta
	return inv.products[i], nil
}

// Products returns a copy of the current product list.
func (inv *Inventory) Products() []Product {
	return append([]Product(nil), inv.products...)
}
