package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/warrick-io/warrick/internal/auth"
	"github.com/warrick-io/warrick/internal/business"
	"github.com/warrick-io/warrick/internal/catalog"
	"github.com/warrick-io/warrick/internal/directory"
	"github.com/warrick-io/warrick/internal/ledger"
	"github.com/warrick-io/warrick/internal/observability"
	"github.com/warrick-io/warrick/internal/users"
	"github.com/warrick-io/warrick/internal/wallet"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger   *slog.Logger
	Config   *Config
	Services *Services
	Metrics  *observability.Metrics
}

// NewRouter constructs the chi.Router with Warrick defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	svc := params.Services
	r.Route("/auth", auth.NewHandler(params.Logger, svc.Users).MountRoutes)

	invoices := ledger.NewHandler(params.Logger, svc.Ledger)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(svc.Users, params.Logger))

		r.Route("/business", business.NewHandler(params.Logger, svc.Business).MountRoutes)
		r.Route("/customers", directory.NewHandler(params.Logger, svc.Directory).MountRoutes)
		r.Route("/products", catalog.NewHandler(params.Logger, svc.Catalog).MountRoutes)
		r.Route("/invoices", invoices.MountRoutes)
		r.Get("/dashboard", invoices.Dashboard)
		r.Route("/wallet", wallet.NewHandler(params.Logger, svc.Wallet).MountRoutes)
		r.With(auth.RequireAdmin).Route("/users", users.NewHandler(params.Logger, svc.Users).MountRoutes)
	})

	return r
}
