package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/warrick-io/warrick/internal/app"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/directory"
	"github.com/warrick-io/warrick/internal/ledger"
	"github.com/warrick-io/warrick/internal/storage"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.StoreDriver == app.DriverMemory {
		log.Fatal("seeding the memory store has no effect; set STORE_DRIVER to redis or postgres")
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx := context.Background()
	store, closeStore, err := app.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer closeStore()

	if err := ensureEmpty(ctx, store); err != nil {
		log.Fatalf("seed: %v", err)
	}

	services, err := app.NewServices(store, cfg, logger, nil)
	if err != nil {
		log.Fatalf("wire services: %v", err)
	}

	fmt.Println("→ Seeding products...")
	if err := seedProducts(ctx, services.Catalog); err != nil {
		log.Fatalf("seed products: %v", err)
	}
	fmt.Println("→ Seeding customers...")
	if err := seedCustomers(ctx, services.Directory); err != nil {
		log.Fatalf("seed customers: %v", err)
	}
	fmt.Println("→ Seeding invoices...")
	if err := seedInvoices(ctx, services.Ledger); err != nil {
		log.Fatalf("seed invoices: %v", err)
	}

	fmt.Println("✓ Seed complete at", time.Now().Format(time.RFC3339))
}

// ensureEmpty refuses to seed over existing ledger data.
func ensureEmpty(ctx context.Context, store storage.Store) error {
	for _, key := range []string{storage.KeyInvoices, storage.KeyProducts, storage.KeyCustomers} {
		_, ok, err := store.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			return errors.New("store already holds " + key)
		}
	}
	return nil
}

func seedProducts(ctx context.Context, svc *catalog.Service) error {
	products := []catalog.ProductInput{
		{Name: "Ballpoint Pen", Price: 15, Stock: 500, Description: "Blue ink, box of 1"},
		{Name: "A4 Paper Ream", Price: 450, Stock: 80, Description: "80gsm, 500 sheets"},
		{Name: "Stapler", Price: 320, Stock: 25},
		{Name: "Notebook", Price: 120, Stock: 200, Description: "Ruled, 200 pages"},
	}
	for _, p := range products {
		if _, err := svc.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func seedCustomers(ctx context.Context, svc *directory.Service) error {
	customers := []directory.CustomerInput{
		{Name: "Rahim Traders", Phone: "01711 000111", Address: "Motijheel, Dhaka"},
		{Name: "Karim Stationery", Phone: "01811 222333", Address: "Agrabad, Chattogram", Email: "karim@example.com"},
	}
	for _, c := range customers {
		if _, err := svc.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func seedInvoices(ctx context.Context, svc *ledger.Service) error {
	today := time.Now().UTC()
	invoices := []ledger.Invoice{
		{
			Date:     today.AddDate(0, 0, -20).Format(time.DateOnly),
			DueDate:  today.AddDate(0, 0, -6).Format(time.DateOnly),
			Customer: ledger.CustomerInfo{Name: "Karim Stationery", Contact: "01811 222333", Address: "Agrabad, Chattogram"},
			Items: []ledger.Item{
				{ID: "1", Name: "A4 Paper Ream", Quantity: 10, Price: 450},
				{ID: "2", Name: "Stapler", Quantity: 2, Price: 320},
			},
			TaxRate: 5,
			Terms:   ledger.DefaultTerms,
			Status:  ledger.StatusPaid,
		},
		{
			Date:     today.Format(time.DateOnly),
			DueDate:  today.AddDate(0, 0, 14).Format(time.DateOnly),
			Customer: ledger.CustomerInfo{Name: "Rahim Traders", Contact: "01711 000111", Address: "Motijheel, Dhaka"},
			Items: []ledger.Item{
				{ID: "1", Name: "Ballpoint Pen", Quantity: 40, Price: 15},
				{ID: "2", Name: "Notebook", Quantity: 12, Price: 120},
			},
			Terms:  ledger.DefaultTerms,
			Status: ledger.StatusSent,
		},
	}
	for _, inv := range invoices {
		created, err := svc.Create(ctx, inv)
		if err != nil {
			return err
		}
		fmt.Printf("  %s %s %.2f\n", created.InvoiceNumber, created.Customer.Name, created.Totals().Total)
	}
	return nil
}
