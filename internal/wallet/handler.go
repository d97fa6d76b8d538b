package wallet

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

// Handler exposes wallet endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the wallet HTTP handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers wallet routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/transactions", h.list)
	r.Post("/transactions", h.add)
	r.Delete("/transactions/{id}", h.delete)
	r.Get("/stats", h.stats)
	r.Get("/profile", h.profile)
	r.Put("/profile", h.updateProfile)
	r.Post("/elevate", h.elevate)
	r.Post("/demote", h.demote)
}

type clearanceRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	txs, err := h.service.Transactions(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "list wallet transactions", err)
		return
	}
	httpx.JSON(w, http.StatusOK, txs)
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	var in TransactionInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	entry, err := h.service.Add(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "add wallet transaction", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, h.logger, "delete wallet transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	st, err := h.service.Stats(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "wallet stats", err)
		return
	}
	httpx.JSON(w, http.StatusOK, st)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Profile(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "wallet profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in ProfileInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.UpdateProfile(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "update wallet profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) elevate(w http.ResponseWriter, r *http.Request) {
	var req clearanceRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	p, err := h.service.Elevate(r.Context(), req.Identifier, req.Password)
	if err != nil {
		httpx.Fail(w, h.logger, "wallet elevate", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

func (h *Handler) demote(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Demote(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "wallet demote", err)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}
