package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/warrick-io/warrick/internal/app"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/ledger"
	"github.com/warrick-io/warrick/internal/storage"
	_ "github.com/warrick-io/warrick/testing"
)

func newEnv(t *testing.T) *Env {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemory()
	cfg := &app.Config{StoreDriver: app.DriverMemory, LedgerEditPolicy: "preserve", LedgerDueDays: 14, DefaultCurrency: "BDT", SeedAdminPassword: "x"}
	services, err := app.NewServices(store, cfg, logger, nil)
	require.NoError(t, err)
	return &Env{Store: store, Services: services}
}

func run(t *testing.T, env *Env, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(func(context.Context) (*Env, func(), error) { return env, func() {}, nil })
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInvoiceCommands(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	_, err := env.Services.Catalog.Create(ctx, catalog.ProductInput{Name: "Pen", Price: 5, Stock: 100})
	require.NoError(t, err)
	inv, err := env.Services.Ledger.Create(ctx, ledger.Invoice{
		Customer: ledger.CustomerInfo{Name: "Rahim"},
		Items:    []ledger.Item{{Name: "Pen", Quantity: 4, Price: 5}},
	})
	require.NoError(t, err)

	out, err := run(t, env, "invoices", "list")
	require.NoError(t, err)
	require.Contains(t, out, "#0001")
	require.Contains(t, out, "৳20.00")

	out, err = run(t, env, "invoices", "next-number")
	require.NoError(t, err)
	require.Equal(t, "#0002\n", out)

	out, err = run(t, env, "invoices", "show", inv.ID)
	require.NoError(t, err)
	var shown struct {
		InvoiceNumber string        `json:"invoiceNumber"`
		Totals        ledger.Totals `json:"totals"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	require.Equal(t, "#0001", shown.InvoiceNumber)
	require.Equal(t, 20.0, shown.Totals.Total)

	_, err = run(t, env, "invoices", "show", "missing")
	require.ErrorIs(t, err, ledger.ErrNotFound)

	_, err = run(t, env, "invoices", "list", "--window", "2w")
	require.Error(t, err)

	out, err = run(t, env, "products", "list")
	require.NoError(t, err)
	require.Contains(t, out, "96")
}

func TestDumpCommand(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	_, err := env.Services.Catalog.Create(ctx, catalog.ProductInput{Name: "Pen", Price: 5, Stock: 1})
	require.NoError(t, err)
	require.NoError(t, env.Store.Set(ctx, storage.KeyAuth, []byte("not json")))

	out, err := run(t, env, "dump")
	require.NoError(t, err)

	var docs map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Contains(t, docs, storage.KeyProducts)
	require.JSONEq(t, `"not json"`, string(docs[storage.KeyAuth]))
	require.NotContains(t, docs, storage.KeyInvoices)

	out, err = run(t, env, "dump", "--key", storage.KeyProducts)
	require.NoError(t, err)
	docs = nil
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 1)
}
