package app

import (
	"fmt"
	"log/slog"

	"github.com/warrick-io/warrick/internal/business"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/directory"
	"github.com/warrick-io/warrick/internal/ledger"
	"github.com/warrick-io/warrick/internal/observability"
	"github.com/warrick-io/warrick/internal/storage"
	"github.com/warrick-io/warrick/internal/users"
	"github.com/warrick-io/warrick/internal/wallet"
)

// Services groups the domain services sharing one document store.
type Services struct {
	Users     *users.Service
	Business  *business.Service
	Catalog   *catalog.Service
	Directory *directory.Service
	Ledger    *ledger.Service
	Wallet    *wallet.Service
}

// NewServices wires every domain service onto store. metrics may be nil.
func NewServices(store storage.Store, cfg *Config, logger *slog.Logger, metrics *observability.Metrics) (*Services, error) {
	accounts, err := users.NewService(users.NewRepository(store, logger), users.ServiceConfig{SeedPassword: cfg.SeedAdminPassword})
	if err != nil {
		return nil, fmt.Errorf("app: users: %w", err)
	}
	profile := business.NewService(store, logger)
	products := catalog.NewService(catalog.NewRepository(store, logger))
	customers := directory.NewService(directory.NewRepository(store, logger), directory.PhoneValidator{Region: cfg.PhoneRegion})

	var ledgerMetrics ledger.Metrics
	if metrics != nil {
		ledgerMetrics = metrics
	}
	invoices := ledger.NewService(ledger.NewRepository(store, logger), products, customers, profile, ledgerMetrics, logger, cfg.LedgerConfig())

	return &Services{
		Users:     accounts,
		Business:  profile,
		Catalog:   products,
		Directory: customers,
		Ledger:    invoices,
		Wallet:    wallet.NewService(wallet.NewRepository(store, logger), accounts, logger),
	}, nil
}
