package catalog

import (
	"context"
	"log/slog"

	"github.com/warrick-io/warrick/internal/storage"
)

// Document returns the storage binding for the product list.
func Document(logger *slog.Logger) storage.Document[[]Product] {
	return storage.Document[[]Product]{
		Key:     storage.KeyProducts,
		Default: func() []Product { return []Product{} },
		Logger:  logger,
	}
}

// Repository provides persistence for the catalog.
type Repository struct {
	store storage.Store
	doc   storage.Document[[]Product]
}

// NewRepository builds a catalog repository backed by store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, doc: Document(logger)}
}

// List loads the product list outside a transaction.
func (r *Repository) List(ctx context.Context) ([]Product, error) {
	return r.doc.Load(ctx, r.store)
}

// WithTx runs fn against a transactional view of the product list.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		return fn(ctx, txRepository{tx: tx, doc: r.doc})
	})
}

type txRepository struct {
	tx  storage.Tx
	doc storage.Document[[]Product]
}

func (t txRepository) List(ctx context.Context) ([]Product, error) {
	return t.doc.Load(ctx, t.tx)
}

func (t txRepository) Save(ctx context.Context, products []Product) error {
	return t.doc.Save(ctx, t.tx, products)
}
