package directory

import (
	"context"
	"log/slog"

	"github.com/warrick-io/warrick/internal/storage"
)

// Document returns the storage binding for the customer list.
func Document(logger *slog.Logger) storage.Document[[]Customer] {
	return storage.Document[[]Customer]{
		Key:     storage.KeyCustomers,
		Default: func() []Customer { return []Customer{} },
		Logger:  logger,
	}
}

// Repository provides persistence for the directory.
type Repository struct {
	store storage.Store
	doc   storage.Document[[]Customer]
}

// NewRepository builds a directory repository backed by store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{store: store, doc: Document(logger)}
}

// List loads the customer list.
func (r *Repository) List(ctx context.Context) ([]Customer, error) {
	return r.doc.Load(ctx, r.store)
}

// Mutate loads the customer list, applies fn and saves the result atomically.
func (r *Repository) Mutate(ctx context.Context, fn func([]Customer) ([]Customer, error)) error {
	return r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		customers, err := r.doc.Load(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(customers)
		if err != nil {
			return err
		}
		return r.doc.Save(ctx, tx, next)
	})
}
