package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
)

// Handler manages user management endpoints.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Post("/", h.createUser)
	r.Put("/{id}", h.updateUser)
	r.Delete("/{id}", h.deleteUser)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "list users failed", err)
		return
	}
	profiles := make([]Profile, 0, len(list))
	for _, u := range list {
		profiles = append(profiles, u.Profile())
	}
	httpx.JSON(w, http.StatusOK, profiles)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var in UserInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	u, err := h.service.Register(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "register user failed", err)
		return
	}
	h.logger.Info("user registered", slog.String("user_id", u.ID), slog.String("role", u.Role))
	httpx.JSON(w, http.StatusCreated, u.Profile())
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var in UserInput
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	u, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		httpx.Fail(w, h.logger, "update user failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, u.Profile())
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.Fail(w, h.logger, "delete user failed", err)
		return
	}
	h.logger.Info("user deleted", slog.String("user_id", id))
	w.WriteHeader(http.StatusNoContent)
}
