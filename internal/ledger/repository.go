package ledger

import (
	"context"
	"log/slog"

	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/storage"
)

// Document returns the storage binding for the invoice list.
func Document(logger *slog.Logger) storage.Document[[]Invoice] {
	return storage.Document[[]Invoice]{
		Key:     storage.KeyInvoices,
		Default: func() []Invoice { return []Invoice{} },
		Logger:  logger,
	}
}

// Repository persists invoices together with the product list they move
// stock on.
type Repository struct {
	store    storage.Store
	invoices storage.Document[[]Invoice]
	products storage.Document[[]catalog.Product]
}

// NewRepository builds a ledger repository backed by store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{
		store:    store,
		invoices: Document(logger),
		products: catalog.Document(logger),
	}
}

// List loads the invoice list outside a transaction.
func (r *Repository) List(ctx context.Context) ([]Invoice, error) {
	return r.invoices.Load(ctx, r.store)
}

// WithTx runs fn with both documents bound to one store transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		return fn(ctx, &txRepository{tx: tx, repo: r})
	})
}

type txRepository struct {
	tx   storage.Tx
	repo *Repository
}

func (t *txRepository) ListInvoices(ctx context.Context) ([]Invoice, error) {
	return t.repo.invoices.Load(ctx, t.tx)
}

func (t *txRepository) SaveInvoices(ctx context.Context, invoices []Invoice) error {
	return t.repo.invoices.Save(ctx, t.tx, invoices)
}

func (t *txRepository) Inventory(ctx context.Context) (*catalog.Inventory, error) {
	products, err := t.repo.products.Load(ctx, t.tx)
	if err != nil {
		return nil, err
	}
	return catalog.NewInventory(products), nil
}

func (t *txRepository) SaveInventory(ctx context.Context, inv *catalog.Inventory) error {
	return t.repo.products.Save(ctx, t.tx, inv.Products())
}
