package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

// Handler exposes invoice endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the ledger HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers invoice routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/draft", h.draft)
	r.Get("/next-number", h.nextNumber)
	r.Get("/lookup", h.lookupCustomer)
	r.Get("/price", h.suggestPrice)
	r.Post("/totals", h.previewTotals)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// Dashboard serves the revenue overview.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "dashboard summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	window, err := ParseWindow(r.URL.Query().Get("window"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	invoices, err := h.service.List(r.Context(), window, r.URL.Query().Get("q"))
	if err != nil {
		httpx.Fail(w, h.logger, "list invoices", err)
		return
	}
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		views = append(views, viewOf(inv))
	}
	httpx.JSON(w, http.StatusOK, views)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, h.logger, "get invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(inv))
}

func (h *Handler) draft(w http.ResponseWriter, r *http.Request) {
	inv, err := h.service.NewDraft(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "new draft", err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(inv))
}

func (h *Handler) nextNumber(w http.ResponseWriter, r *http.Request) {
	number, err := h.service.NextInvoiceNumber(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "next invoice number", err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"invoiceNumber": number})
}

func (h *Handler) lookupCustomer(w http.ResponseWriter, r *http.Request) {
	info, ok, err := h.service.LookupCustomer(r.Context(), r.URL.Query().Get("phone"))
	if err != nil {
		httpx.Fail(w, h.logger, "lookup customer", err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no customer with that phone")
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) suggestPrice(w http.ResponseWriter, r *http.Request) {
	price, ok, err := h.service.SuggestPrice(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		httpx.Fail(w, h.logger, "suggest price", err)
		return
	}
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "no product with that name")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{"price": price})
}

func (h *Handler) previewTotals(w http.ResponseWriter, r *http.Request) {
	var req TotalsRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	items := InvoiceRequest{Items: req.Items}.Invoice().Items
	httpx.JSON(w, http.StatusOK, ComputeTotals(items, req.TaxRate))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	inv, err := h.service.Create(r.Context(), req.Invoice())
	if err != nil {
		httpx.Fail(w, h.logger, "create invoice", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, viewOf(inv))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req InvoiceRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	inv, err := h.service.Update(r.Context(), req.Invoice())
	if err != nil {
		httpx.Fail(w, h.logger, "update invoice", err)
		return
	}
	httpx.JSON(w, http.StatusOK, viewOf(inv))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, h.logger, "delete invoice", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
