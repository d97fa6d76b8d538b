package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func scrape(t *testing.T, metrics *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rr.Code)
	}
	return rr.Body.String()
}

func TestMetricsHandlerExposesPrometheusMetrics(t *testing.T) {
	body := scrape(t, NewMetrics())
	if !strings.Contains(body, `warrick_invoices_total{event="created"} 0`) {
		t.Fatalf("expected body to contain warrick_invoices_total, got: %s", body)
	}
}

func TestMetricsMiddlewareRecordsRequest(t *testing.T) {
	metrics := NewMetrics()

	handler := metrics.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	routeCtx := chi.NewRouteContext()
	routeCtx.RoutePatterns = append(routeCtx.RoutePatterns, "/test")

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	req = req.WithContext(ctx)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status %d, got %d", http.StatusTeapot, rr.Code)
	}

	body := scrape(t, metrics)
	if !strings.Contains(body, "warrick_http_requests_total{code=\"418\",route=\"/test\"} 1") {
		t.Fatalf("expected metrics to record request, got: %s", body)
	}
	if !strings.Contains(body, "warrick_http_request_duration_seconds_bucket{route=\"/test\"") {
		t.Fatalf("expected duration histogram to be present, got: %s", body)
	}
}

func TestLedgerCounters(t *testing.T) {
	metrics := NewMetrics()
	metrics.InvoiceRecorded("created")
	metrics.InvoiceRecorded("created")
	metrics.InvoiceRecorded("deleted")
	metrics.StockMoved(4)
	metrics.StockMoved(0)
	metrics.StockMoved(3)

	body := scrape(t, metrics)
	for _, want := range []string{
		`warrick_invoices_total{event="created"} 2`,
		`warrick_invoices_total{event="deleted"} 1`,
		`warrick_stock_units_moved_total 7`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in: %s", want, body)
		}
	}

	var nilMetrics *Metrics
	nilMetrics.InvoiceRecorded("created")
	nilMetrics.StockMoved(1)
}
