package wallet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warrick-io/warrick/internal/users"
)

// RepositoryPort describes the persistence the service relies on.
type RepositoryPort interface {
	Transactions(ctx context.Context) ([]Transaction, error)
	Profile(ctx context.Context) (Profile, error)
	MutateProfile(ctx context.Context, fn func(Profile) (Profile, error)) (Profile, error)
	MutateJournal(ctx context.Context, fn func(Profile, []Transaction) ([]Transaction, error)) error
}

// Authenticator verifies the credentials presented for admin clearance.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, password string, portal users.Portal) (users.User, error)
}

// Service orchestrates wallet use cases.
type Service struct {
	repo   RepositoryPort
	auth   Authenticator
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs the wallet service.
func NewService(repo RepositoryPort, auth Authenticator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, auth: auth, logger: logger, now: time.Now, newID: uuid.NewString}
}

// Transactions returns the journal, newest first.
func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	txs, err := s.repo.Transactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("wallet: list: %w", err)
	}
	return txs, nil
}

// Stats totals the journal.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(txs), nil
}

// Add records a transaction at the head of the journal.
func (s *Service) Add(ctx context.Context, in TransactionInput) (Transaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return Transaction{}, fmt.Errorf("%w: description is required", ErrInvalidTransaction)
	}
	if in.Amount <= 0 {
		return Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalidTransaction)
	}
	if in.Type != Income && in.Type != Expense {
		return Transaction{}, fmt.Errorf("%w: unknown type %q", ErrInvalidTransaction, in.Type)
	}
	entry := Transaction{
		ID:          s.newID(),
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Date:        s.now().UTC().Format(time.RFC3339),
	}
	err := s.repo.MutateJournal(ctx, func(p Profile, txs []Transaction) ([]Transaction, error) {
		if !p.Elevated() {
			return nil, ErrNotElevated
		}
		return append([]Transaction{entry}, txs...), nil
	})
	if err != nil {
		return Transaction{}, fmt.Errorf("wallet: add: %w", err)
	}
	return entry, nil
}

// Delete removes a transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.MutateJournal(ctx, func(p Profile, txs []Transaction) ([]Transaction, error) {
		if !p.Elevated() {
			return nil, ErrNotElevated
		}
		for i, t := range txs {
			if t.ID == id {
				return append(txs[:i:i], txs[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
	if err != nil {
		return fmt.Errorf("wallet: delete: %w", err)
	}
	return nil
}

// Profile returns the wallet profile.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	p, err := s.repo.Profile(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("wallet: profile: %w", err)
	}
	return p, nil
}

// UpdateProfile applies display settings. A blank name resets to the
// default; a blank currency keeps the current one.
func (s *Service) UpdateProfile(ctx context.Context, in ProfileInput) (Profile, error) {
	if in.Currency != "" && !validCurrency(in.Currency) {
		return Profile{}, fmt.Errorf("%w: currency must be one of %s", ErrInvalidTransaction, strings.Join(Currencies, " "))
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultName
	}
	p, err := s.repo.MutateProfile(ctx, func(p Profile) (Profile, error) {
		if in.Currency != "" {
			p.Currency = in.Currency
		}
		p.Name = name
		return p, nil
	})
	if err != nil {
		return Profile{}, fmt.Errorf("wallet: update profile: %w", err)
	}
	return p, nil
}

// Elevate grants wallet admin rights to a user who passes the admin portal
// check and takes on their name.
func (s *Service) Elevate(ctx context.Context, identifier, password string) (Profile, error) {
	u, err := s.auth.Authenticate(ctx, identifier, password, users.PortalAdmin)
	if err != nil {
		s.logger.Warn("wallet clearance denied", slog.String("identifier", identifier), slog.Any("error", err))
		return Profile{}, err
	}
	p, err := s.repo.MutateProfile(ctx, func(p Profile) (Profile, error) {
		p.Role = RoleAdmin
		p.Name = u.Name
		return p, nil
	})
	if err != nil {
		return Profile{}, fmt.Errorf("wallet: elevate: %w", err)
	}
	s.logger.Info("wallet clearance granted", slog.String("user_id", u.ID))
	return p, nil
}

// Demote drops wallet admin rights and resets the name.
func (s *Service) Demote(ctx context.Context) (Profile, error) {
	p, err := s.repo.MutateProfile(ctx, func(p Profile) (Profile, error) {
		p.Role = RoleUser
		p.Name = DefaultName
		return p, nil
	})
	if err != nil {
		return Profile{}, fmt.Errorf("wallet: demote: %w", err)
	}
	return p, nil
}
