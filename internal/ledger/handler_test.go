package ledger_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/warrick-io/warrick/internal/business"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/directory"
	"github.com/warrick-io/warrick/internal/ledger"
	"github.com/warrick-io/warrick/internal/storage"
	_ "github.com/warrick-io/warrick/testing"
)

func newRouter(t *testing.T) (http.Handler, *catalog.Service) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := storage.NewMemory()
	products := catalog.NewService(catalog.NewRepository(store, logger))
	customers := directory.NewService(directory.NewRepository(store, logger), directory.PhoneValidator{})
	svc := ledger.NewService(ledger.NewRepository(store, logger), products, customers, business.NewService(store, logger), nil, logger, ledger.ServiceConfig{})
	handler := ledger.NewHandler(logger, svc)

	router := chi.NewRouter()
	router.Route("/invoices", handler.MountRoutes)
	router.Get("/dashboard", handler.Dashboard)
	return router, products
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest(method, target, reader))
	return res
}

func TestInvoiceLifecycleOverHTTP(t *testing.T) {
	router, products := newRouter(t)
	pen, err := products.Create(t.Context(), catalog.ProductInput{Name: "Pen", Price: 5, Stock: 100})
	require.NoError(t, err)

	res := serve(router, http.MethodPost, "/invoices", `{"customer":{"name":"Rahim","email":"01712345678"},"items":[{"id":"1","name":"Pen","quantity":4,"price":5}],"taxRate":0,"date":"2024-05-01"}`)
	require.Equal(t, http.StatusCreated, res.Code)
	var created ledger.InvoiceView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&created))
	require.Equal(t, "#0001", created.InvoiceNumber)
	require.Equal(t, 20.0, created.Totals.Total)

	stocked, err := products.Get(t.Context(), pen.ID)
	require.NoError(t, err)
	require.Equal(t, 96, stocked.Stock)

	res = serve(router, http.MethodGet, "/invoices?q=rahim", "")
	require.Equal(t, http.StatusOK, res.Code)
	var listed []ledger.InvoiceView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&listed))
	require.Len(t, listed, 1)

	res = serve(router, http.MethodGet, "/invoices/next-number", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"invoiceNumber":"#0002"}`, res.Body.String())

	res = serve(router, http.MethodPut, "/invoices/"+created.ID, `{"customer":{"name":"Rahim Uddin"},"items":[{"name":"Pen","quantity":4,"price":5}],"status":"Sent"}`)
	require.Equal(t, http.StatusOK, res.Code)
	var updated ledger.InvoiceView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&updated))
	require.Equal(t, ledger.StatusSent, updated.Status)
	require.Equal(t, "#0001", updated.InvoiceNumber)

	res = serve(router, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, res.Code)
	var summary ledger.Summary
	require.NoError(t, json.NewDecoder(res.Body).Decode(&summary))
	require.Equal(t, 20.0, summary.LifetimeRevenue)

	res = serve(router, http.MethodDelete, "/invoices/"+created.ID, "")
	require.Equal(t, http.StatusNoContent, res.Code)

	stocked, err = products.Get(t.Context(), pen.ID)
	require.NoError(t, err)
	require.Equal(t, 100, stocked.Stock)

	res = serve(router, http.MethodGet, "/invoices/"+created.ID, "")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestInvoiceRequestValidation(t *testing.T) {
	router, _ := newRouter(t)

	cases := map[string]string{
		"blank customer": `{"customer":{"name":" "}}`,
		"bad date":       `{"customer":{"name":"A"},"date":"01/05/2024"}`,
		"bad status":     `{"customer":{"name":"A"},"status":"Void"}`,
		"negative tax":   `{"customer":{"name":"A"},"taxRate":-5}`,
		"malformed json": `{"customer":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			res := serve(router, http.MethodPost, "/invoices", body)
			require.Equal(t, http.StatusBadRequest, res.Code)
		})
	}

	res := serve(router, http.MethodGet, "/invoices?window=2w", "")
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestDraftTotalsAndLookups(t *testing.T) {
	router, products := newRouter(t)
	_, err := products.Create(t.Context(), catalog.ProductInput{Name: "Notebook", Price: 120})
	require.NoError(t, err)

	res := serve(router, http.MethodGet, "/invoices/draft", "")
	require.Equal(t, http.StatusOK, res.Code)
	var draft ledger.InvoiceView
	require.NoError(t, json.NewDecoder(res.Body).Decode(&draft))
	require.Equal(t, "#0001", draft.InvoiceNumber)
	require.Equal(t, ledger.DefaultTerms, draft.Terms)

	res = serve(router, http.MethodPost, "/invoices/totals", `{"items":[{"quantity":2,"price":100}],"taxRate":10}`)
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"subtotal":200,"tax":20,"total":220}`, res.Body.String())

	res = serve(router, http.MethodGet, "/invoices/price?name=notebook", "")
	require.Equal(t, http.StatusOK, res.Code)
	require.JSONEq(t, `{"price":120}`, res.Body.String())

	res = serve(router, http.MethodGet, "/invoices/price?name=stapler", "")
	require.Equal(t, http.StatusNotFound, res.Code)

	res = serve(router, http.MethodGet, "/invoices/lookup?phone=0171", "")
	require.Equal(t, http.StatusNotFound, res.Code)
}
