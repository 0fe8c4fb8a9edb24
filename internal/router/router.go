package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/ngo-dashboard/internal/handlers"
	"github.com/GregMSThompson/ngo-dashboard/internal/middleware"
)

// NewRouter mounts the dashboard API. auth is applied to every route except
// /healthz; pass nil to serve unauthenticated.
func NewRouter(deps *handlers.Deps, auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	fh := handlers.NewFcraHandlers(deps)
	gah := handlers.NewGrantApplicationHandlers(deps)
	gh := handlers.NewGrantHandlers(deps)
	oh := handlers.NewOverviewHandlers(deps)

	r.Get("/healthz", oh.Health)

	r.Group(func(r chi.Router) {
		if auth != nil {
			r.Use(auth)
		}
		r.Get("/overview", oh.GetOverview)
		r.Mount("/fcra", fh.FcraRoutes())
		r.Mount("/grant-applications", gah.GrantApplicationRoutes())
		r.Mount("/grants", gh.GrantRoutes())
	})
	return r
}
