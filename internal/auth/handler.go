// Package auth exposes login, logout and session guards over HTTP.
package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"

	"github.com/warrick-io/warrick/internal/platform/httpx"
	"github.com/warrick-io/warrick/internal/users"
)

// Sessions is the account surface the auth endpoints rely on.
type Sessions interface {
	Login(ctx context.Context, identifier, password string, portal users.Portal) (users.User, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (users.User, error)
}

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger    *slog.Logger
	sessions  Sessions
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, sessions Sessions) *Handler {
	return &Handler{
		logger:    logger,
		sessions:  sessions,
		validator: validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Get("/me", h.handleMe)
}

type loginForm struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
	Portal     string `json:"portal" validate:"omitempty,oneof=login admin"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed login body")
		return
	}
	if err := h.validator.Struct(form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "identifier and password are required")
		return
	}
	portal := users.PortalStandard
	if form.Portal == string(users.PortalAdmin) {
		portal = users.PortalAdmin
	}
	user, err := h.sessions.Login(r.Context(), form.Identifier, form.Password, portal)
	if err != nil {
		h.logger.Warn("login failed", slog.String("portal", string(portal)), slog.Any("error", err))
		httpx.Fail(w, h.logger, "login", err)
		return
	}
	h.logger.Info("login", slog.String("user_id", user.ID), slog.String("portal", string(portal)))
	httpx.JSON(w, http.StatusOK, user.Profile())
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(r.Context()); err != nil {
		httpx.Fail(w, h.logger, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.sessions.Current(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "current session", err)
		return
	}
	httpx.JSON(w, http.StatusOK, user.Profile())
}
