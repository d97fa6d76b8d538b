package wallet

import (
	"context"
	"log/slog"

	"github.com/warrick-io/warrick/internal/storage"
)

// Repository persists the journal and the wallet profile.
type Repository struct {
	store   storage.Store
	journal storage.Document[[]Transaction]
	profile storage.Document[Profile]
}

// NewRepository builds a wallet repository backed by store.
func NewRepository(store storage.Store, logger *slog.Logger) *Repository {
	return &Repository{
		store: store,
		journal: storage.Document[[]Transaction]{
			Key:     storage.KeyWallet,
			Default: func() []Transaction { return []Transaction{} },
			Logger:  logger,
		},
		profile: storage.Document[Profile]{
			Key:     storage.KeyWalletProfile,
			Default: DefaultProfile,
			Logger:  logger,
		},
	}
}

// Transactions loads the journal.
func (r *Repository) Transactions(ctx context.Context) ([]Transaction, error) {
	return r.journal.Load(ctx, r.store)
}

// Profile loads the wallet profile.
func (r *Repository) Profile(ctx context.Context) (Profile, error) {
	return r.profile.Load(ctx, r.store)
}

// MutateProfile rewrites the wallet profile under the store's write lock
// and returns the saved value.
func (r *Repository) MutateProfile(ctx context.Context, fn func(Profile) (Profile, error)) (Profile, error) {
	var saved Profile
	err := r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		p, err := r.profile.Load(ctx, tx)
		if err != nil {
			return err
		}
		if saved, err = fn(p); err != nil {
			return err
		}
		return r.profile.Save(ctx, tx, saved)
	})
	if err != nil {
		return Profile{}, err
	}
	return saved, nil
}

// MutateJournal rewrites the journal under the store's write lock. fn sees
// the profile as of the same transaction.
func (r *Repository) MutateJournal(ctx context.Context, fn func(Profile, []Transaction) ([]Transaction, error)) error {
	return r.store.Update(ctx, func(ctx context.Context, tx storage.Tx) error {
		p, err := r.profile.Load(ctx, tx)
		if err != nil {
			return err
		}
		txs, err := r.journal.Load(ctx, tx)
		if err != nil {
			return err
		}
		next, err := fn(p, txs)
		if err != nil {
			return err
		}
		return r.journal.Save(ctx, tx, next)
	})
}
