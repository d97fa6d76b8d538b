package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

// Handler exposes catalog endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the catalog HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/stock", h.adjustStock)
}

type stockAdjustment struct {
	Delta int `json:"delta" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httpx.Fail(w, h.logger, "list products", err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, h.logger, "get product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Create(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "create product", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in ProductInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.Fail(w, h.logger, "update product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, h.logger, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var in stockAdjustment
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "id"), in.Delta)
	if err != nil {
		httpx.Fail(w, h.logger, "adjust stock", err)
		return
	}
	h.logger.Info("stock adjusted", slog.String("product_id", product.ID), slog.Int("delta", in.Delta), slog.Int("stock", product.Stock))
	httpx.JSON(w, http.StatusOK, product)
}
