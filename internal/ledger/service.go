package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"

	"github.com/warrick-io/warrick/internal/business"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/directory"
)

// EditPolicy decides whether editing an invoice moves stock.
type EditPolicy string

// Edit policies. Preserve leaves stock as recorded at creation; reconcile
// restores the old lines and applies the new ones.
const (
	EditPreserveStock  EditPolicy = "preserve"
	EditReconcileStock EditPolicy = "reconcile"
)

// ParseEditPolicy validates a policy name. The empty string means preserve.
func ParseEditPolicy(s string) (EditPolicy, error) {
	switch EditPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", EditPreserveStock:
		return EditPreserveStock, nil
	case EditReconcileStock:
		return EditReconcileStock, nil
	}
	return "", fmt.Errorf("ledger: unknown edit policy %q", s)
}

// minLookupLength is the shortest contact that triggers a customer lookup.
const minLookupLength = 4

// RepositoryPort describes the persistence the service relies on.
type RepositoryPort interface {
	List(ctx context.Context) ([]Invoice, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes invoices and stock inside one transaction.
type TxRepository interface {
	ListInvoices(ctx context.Context) ([]Invoice, error)
	SaveInvoices(ctx context.Context, invoices []Invoice) error
	Inventory(ctx context.Context) (*catalog.Inventory, error)
	SaveInventory(ctx context.Context, inv *catalog.Inventory) error
}

// Catalog is the product lookup used for price suggestions and the dashboard.
type Catalog interface {
	List(ctx context.Context) ([]catalog.Product, error)
	FindByName(ctx context.Context, name string) (catalog.Product, bool, error)
}

// Directory is the customer lookup used to autofill invoices.
type Directory interface {
	List(ctx context.Context) ([]directory.Customer, error)
	FindByPhone(ctx context.Context, phone string) (directory.Customer, bool, error)
}

// Profile supplies the business snapshot for new drafts.
type Profile interface {
	Get(ctx context.Context) (business.Info, error)
}

// Metrics records ledger activity.
type Metrics interface {
	InvoiceRecorded(event string)
	StockMoved(units int)
}

type noopMetrics struct{}

func (noopMetrics) InvoiceRecorded(string) {}
func (noopMetrics) StockMoved(int)         {}

// ServiceConfig tunes ledger behaviour.
type ServiceConfig struct {
	EditPolicy      EditPolicy
	DueDays         int
	DefaultCurrency string
}

// Service orchestrates invoice use cases.
type Service struct {
	repo      RepositoryPort
	catalog   Catalog
	directory Directory
	profile   Profile
	metrics   Metrics
	logger    *slog.Logger
	cfg       ServiceConfig
	now       func() time.Time
	newID     func() string
}

// NewService constructs the ledger service. metrics and logger may be nil.
func NewService(repo RepositoryPort, products Catalog, customers Directory, profile Profile, metrics Metrics, logger *slog.Logger, cfg ServiceConfig) *Service {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.EditPolicy == "" {
		cfg.EditPolicy = EditPreserveStock
	}
	if cfg.DueDays <= 0 {
		cfg.DueDays = 14
	}
	if cfg.DefaultCurrency == "" {
		cfg.DefaultCurrency = "BDT"
	}
	return &Service{
		repo:      repo,
		catalog:   products,
		directory: customers,
		profile:   profile,
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// NextInvoiceNumber returns the number the next created invoice will get.
func (s *Service) NextInvoiceNumber(ctx context.Context) (string, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("ledger: next number: %w", err)
	}
	return NextInvoiceNumber(invoices), nil
}

// NewDraft returns an unsaved invoice prefilled with defaults.
func (s *Service) NewDraft(ctx context.Context) (Invoice, error) {
	number, err := s.NextInvoiceNumber(ctx)
	if err != nil {
		return Invoice{}, err
	}
	info, err := s.profile.Get(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("ledger: draft: %w", err)
	}
	now := s.now().UTC()
	return Invoice{
		ID:            s.newID(),
		InvoiceNumber: number,
		Date:          now.Format(time.DateOnly),
		DueDate:       now.AddDate(0, 0, s.cfg.DueDays).Format(time.DateOnly),
		Business:      info,
		Items:         []Item{{ID: "1", Quantity: 1}},
		Currency:      s.cfg.DefaultCurrency,
		Terms:         DefaultTerms,
		Status:        StatusDraft,
	}, nil
}

// List returns invoices within window that match query, newest first.
func (s *Service) List(ctx context.Context, window Window, query string) ([]Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ledger: list: %w", err)
	}
	return FilterInvoices(invoices, window, query, s.now()), nil
}

// Get returns an invoice by id.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	invoices, err := s.repo.List(ctx)
	if err != nil {
		return Invoice{}, fmt.Errorf("ledger: get: %w", err)
	}
	if idx := indexOf(invoices, id); idx >= 0 {
		return invoices[idx], nil
	}
	return Invoice{}, ErrNotFound
}

// Create records a new invoice and takes its lines out of stock in the same
// transaction. The invoice number is assigned here.
func (s *Service) Create(ctx context.Context, inv Invoice) (Invoice, error) {
	inv, err := s.prepare(inv)
	if err != nil {
		return Invoice{}, err
	}
	if inv.ID == "" {
		inv.ID = s.newID()
	}
	if inv.Business.Name == "" {
		if inv.Business, err = s.profile.Get(ctx); err != nil {
			return Invoice{}, fmt.Errorf("ledger: create: %w", err)
		}
	}
	var moved int
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		invoices, err := tx.ListInvoices(ctx)
		if err != nil {
			return err
		}
		if indexOf(invoices, inv.ID) >= 0 {
			return ErrDuplicateID
		}
		inv.InvoiceNumber = NextInvoiceNumber(invoices)

		book, err := tx.Inventory(ctx)
		if err != nil {
			return err
		}
		inv.Items = bindProducts(book, inv.Items)
		if moved, err = moveStock(book, inv.Items, -1); err != nil {
			return err
		}
		if err := tx.SaveInvoices(ctx, append([]Invoice{inv}, invoices...)); err != nil {
			return err
		}
		return tx.SaveInventory(ctx, book)
	})
	if err != nil {
		return Invoice{}, fmt.Errorf("ledger: create: %w", err)
	}
	s.metrics.InvoiceRecorded("created")
	s.metrics.StockMoved(moved)
	s.logger.Info("invoice created",
		slog.String("invoice_id", inv.ID),
		slog.String("number", inv.InvoiceNumber),
		slog.Int("units_out", moved))
	return inv, nil
}

// Update replaces an invoice. The stored number is kept. Stock only moves
// under the reconcile edit policy.
func (s *Service) Update(ctx context.Context, inv Invoice) (Invoice, error) {
	inv, err := s.prepare(inv)
	if err != nil {
		return Invoice{}, err
	}
	var restored, taken int
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		invoices, err := tx.ListInvoices(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(invoices, inv.ID)
		if idx < 0 {
			return ErrNotFound
		}
		previous := invoices[idx]
		inv.InvoiceNumber = previous.InvoiceNumber
		if inv.Business.Name == "" {
			inv.Business = previous.Business
		}

		book, err := tx.Inventory(ctx)
		if err != nil {
			return err
		}
		if s.cfg.EditPolicy == EditReconcileStock {
			if restored, err = moveStock(book, previous.Items, 1); err != nil {
				return err
			}
		}
		inv.Items = rebindProducts(book, inv.Items, previous.Items)
		invoices[idx] = inv
		if err := tx.SaveInvoices(ctx, invoices); err != nil {
			return err
		}
		if s.cfg.EditPolicy != EditReconcileStock {
			return nil
		}
		if taken, err = moveStock(book, inv.Items, -1); err != nil {
			return err
		}
		return tx.SaveInventory(ctx, book)
	})
	if err != nil {
		return Invoice{}, fmt.Errorf("ledger: update: %w", err)
	}
	s.metrics.InvoiceRecorded("updated")
	s.metrics.StockMoved(restored + taken)
	s.logger.Info("invoice updated",
		slog.String("invoice_id", inv.ID),
		slog.String("policy", string(s.cfg.EditPolicy)),
		slog.Int("units_in", restored),
		slog.Int("units_out", taken))
	return inv, nil
}

// Delete removes an invoice and returns its lines to stock in the same
// transaction.
func (s *Service) Delete(ctx context.Context, id string) error {
	var moved int
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		invoices, err := tx.ListInvoices(ctx)
		if err != nil {
			return err
		}
		idx := indexOf(invoices, id)
		if idx < 0 {
			return ErrNotFound
		}
		book, err := tx.Inventory(ctx)
		if err != nil {
			return err
		}
		if moved, err = moveStock(book, invoices[idx].Items, 1); err != nil {
			return err
		}
		if err := tx.SaveInvoices(ctx, append(invoices[:idx:idx], invoices[idx+1:]...)); err != nil {
			return err
		}
		return tx.SaveInventory(ctx, book)
	})
	if err != nil {
		return fmt.Errorf("ledger: delete: %w", err)
	}
	s.metrics.InvoiceRecorded("deleted")
	s.metrics.StockMoved(moved)
	s.logger.Info("invoice deleted", slog.String("invoice_id", id), slog.Int("units_in", moved))
	return nil
}

// LookupCustomer returns the customer snapshot for a typed contact when it
// is long enough and matches a saved phone number.
func (s *Service) LookupCustomer(ctx context.Context, contact string) (CustomerInfo, bool, error) {
	if utf8.RuneCountInString(contact) < minLookupLength {
		return CustomerInfo{}, false, nil
	}
	c, ok, err := s.directory.FindByPhone(ctx, contact)
	if err != nil || !ok {
		return CustomerInfo{}, false, err
	}
	return CustomerInfo{Name: c.Name, Contact: c.Phone, Address: c.Address}, true, nil
}

// SuggestPrice returns the catalog price of the product named name.
func (s *Service) SuggestPrice(ctx context.Context, name string) (float64, bool, error) {
	p, ok, err := s.catalog.FindByName(ctx, name)
	if err != nil || !ok {
		return 0, false, err
	}
	return p.Price, true, nil
}

// Summary is the dashboard overview.
type Summary struct {
	LifetimeRevenue float64        `json:"lifetimeRevenue"`
	InvoiceCount    int            `json:"invoiceCount"`
	CustomerCount   int            `json:"customerCount"`
	ProductCount    int            `json:"productCount"`
	Currency        string         `json:"currency"`
	Symbol          string         `json:"symbol"`
	ByStatus        map[Status]int `json:"byStatus"`
}

// Summary loads invoices, customers and products concurrently and
// aggregates them. Revenue sums every invoice total regardless of currency.
func (s *Service) Summary(ctx context.Context) (Summary, error) {
	var (
		invoices  []Invoice
		customers []directory.Customer
		products  []catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		invoices, err = s.repo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		customers, err = s.directory.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.catalog.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, fmt.Errorf("ledger: summary: %w", err)
	}

	sum := Summary{
		InvoiceCount:  len(invoices),
		CustomerCount: len(customers),
		ProductCount:  len(products),
		Currency:      s.cfg.DefaultCurrency,
		ByStatus:      make(map[Status]int),
	}
	if len(invoices) > 0 {
		sum.Currency = invoices[0].Currency
	}
	sum.Symbol = CurrencySymbol(sum.Currency)
	for _, inv := range invoices {
		sum.LifetimeRevenue += inv.Totals().Total
		sum.ByStatus[inv.Status]++
	}
	return sum, nil
}

// prepare validates entry-level invariants and fills defaults. Discounts
// are not applied and are recorded as zero.
func (s *Service) prepare(inv Invoice) (Invoice, error) {
	inv.Customer.Name = strings.TrimSpace(inv.Customer.Name)
	if inv.Customer.Name == "" {
		return Invoice{}, fmt.Errorf("%w: customer name is required", ErrInvalidInvoice)
	}
	if inv.Currency == "" {
		inv.Currency = s.cfg.DefaultCurrency
	}
	if _, err := currency.ParseISO(inv.Currency); err != nil {
		return Invoice{}, fmt.Errorf("%w: currency %q is not an ISO 4217 code", ErrInvalidInvoice, inv.Currency)
	}
	if inv.Status == "" {
		inv.Status = StatusDraft
	}
	if !inv.Status.Valid() {
		return Invoice{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInvoice, inv.Status)
	}
	if inv.TaxRate < 0 {
		return Invoice{}, fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInvoice)
	}
	if inv.Date == "" {
		inv.Date = s.now().UTC().Format(time.DateOnly)
	}
	if inv.Items == nil {
		inv.Items = []Item{}
	}
	inv.Discount = 0
	return inv, nil
}

func indexOf(invoices []Invoice, id string) int {
	for i, inv := range invoices {
		if inv.ID == id {
			return i
		}
	}
	return -1
}
