// Package business holds the business profile printed on every invoice.
package business

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/warrick-io/warrick/internal/platform/httpx"
	"github.com/warrick-io/warrick/internal/shared"
	"github.com/warrick-io/warrick/internal/storage"
)

// ErrInvalidProfile flags a rejected profile update.
var ErrInvalidProfile = fmt.Errorf("business: %w", httpx.ErrValidation)

// Info is the business profile. Invoices embed a copy taken at creation time.
type Info struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Logo    string `json:"logo,omitempty"`
}

// Default returns the profile used until one has been saved.
func Default() Info {
	return Info{
		Name:    "Warrick Studios",
		Email:   "billing@warrick.io",
		Phone:   "+880 1XXX-XXXXXX",
		Address: "Gulshan, Dhaka, Bangladesh",
	}
}

// Service reads and updates the business profile.
type Service struct {
	store storage.Store
	doc   storage.Document[Info]
}

// NewService constructs the profile service.
func NewService(store storage.Store, logger *slog.Logger) *Service {
	return &Service{
		store: store,
		doc:   storage.Document[Info]{Key: storage.KeyBusiness, Default: Default, Logger: logger},
	}
}

// Get returns the current profile.
func (s *Service) Get(ctx context.Context) (Info, error) {
	info, err := s.doc.Load(ctx, s.store)
	if err != nil {
		return Info{}, fmt.Errorf("business: get: %w", err)
	}
	return info, nil
}

// Update replaces the profile. Only admins may change it.
func (s *Service) Update(ctx context.Context, info Info) (Info, error) {
	if _, err := shared.RequireAdmin(ctx); err != nil {
		return Info{}, err
	}
	info.Name = strings.TrimSpace(info.Name)
	if info.Name == "" {
		return Info{}, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}
	if err := s.doc.Save(ctx, s.store, info); err != nil {
		return Info{}, fmt.Errorf("business: update: %w", err)
	}
	return info, nil
}

// Handler exposes the profile over HTTP.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds the profile handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers profile routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.get)
	r.Put("/", h.update)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Get(r.Context())
	if err != nil {
		httpx.Fail(w, h.logger, "get business profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in Info
	if err := httpx.Bind(r, &in); err != nil {
		httpx.RespondError(w, err)
		return
	}
	info, err := h.service.Update(r.Context(), in)
	if err != nil {
		httpx.Fail(w, h.logger, "update business profile", err)
		return
	}
	httpx.JSON(w, http.StatusOK, info)
}
