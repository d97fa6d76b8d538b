package directory

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

// Handler exposes customer endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the directory HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers customer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Fail(w, h.logger, "list customers", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customers)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	customer, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, h.logger, "get customer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CustomerInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "create customer", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, customer)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in CustomerInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	customer, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.Fail(w, h.logger, "update customer", err)
		return
	}
	httpx.JSON(w, http.StatusOK, customer)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, h.logger, "delete customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
