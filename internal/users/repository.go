package users

import (
	"context"
	"log/slog"

	"github.com/warrick-io/warrick/internal/storage"
)

// Repository persists accounts and the active-session pointer.
type Repository struct {
	store   storage.Store
	users   storage.Document[[]User]
	session storage.Document[*Session]
}

// NewRepository builds a users repository backed by store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{
		store:   store,
		users:   storage.Document[[]User]{Key: storage.KeyUsers, Logger: logger},
		session: storage.Document[*Session]{Key: storage.KeyAuth, Logger: logger},
	}
}

// List returns the stored accounts, or nil when none were ever saved.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	return r.users.Load(ctx, r.store)
}

// Mutate loads the accounts, applies fn and saves the result atomically.
// fn receives nil when no accounts were ever saved.
func (r *Repository) Mutate(ctx context.Context, fn func([]User) ([]User, error)) error {
	return r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		list, err := r.users.Load(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		return r.users.Save(ctx, tx, next)
	})
}

// ActiveSession returns the session pointer, if any.
func (r *Repository) ActiveSession(ctx context.Context) (*Session, error) {
	return r.session.Load(ctx, r.store)
}

// SetActiveSession replaces the session pointer.
func (r *Repository) SetActiveSession(ctx context.Context, sess Session) error {
	return r.session.Save(ctx, r.store, &sess)
}

// ClearActiveSession removes the session pointer.
func (r *Repository) ClearActiveSession(ctx context.Context) error {
	return r.session.Remove(ctx, r.store)
}
